package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"hookhunter/internal/app"
	"hookhunter/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check credentials, history store and queue connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		failed := 0
		report := func(name string, err error, okMsg string) {
			if err != nil {
				failed++
				fmt.Printf("%-14s %s %v\n", name, color.RedString("FAIL"), err)
				return
			}
			fmt.Printf("%-14s %s %s\n", name, color.GreenString("OK"), okMsg)
		}

		report("twitter key", requireSet(config.TwitterAPIKey(), "TWITTER_API_KEY"), "set")
		if config.KitAPIKey() == "" {
			fmt.Printf("%-14s %s %s\n", "kit key", color.YellowString("WARN"), "KIT_API_KEY not set, subscribe is unavailable")
		} else {
			report("kit key", nil, "set")
		}

		if appInstance.HistoryStore == nil {
			fmt.Printf("%-14s %s %s\n", "history", color.YellowString("SKIP"), "history.driver is none")
		} else {
			report("history", appInstance.HistoryStore.Ping(ctx), appInstance.Config.History.Driver)
		}

		if appInstance.JobClient != nil {
			report("redis", pingRedis(appInstance), appInstance.Config.Redis.Address)
		}

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func requireSet(v, name string) error {
	if v == "" {
		return fmt.Errorf("%s is not set", name)
	}
	return nil
}

func pingRedis(a *app.App) error {
	inspector := asynq.NewInspector(app.RedisOpt(a.Config))
	defer inspector.Close()
	_, err := inspector.Queues()
	return err
}
