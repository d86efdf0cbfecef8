package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <email>",
	Short: "Add an email address to the newsletter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if _, err := appInstance.SubscriptionService.Subscribe(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("subscribe failed: %w", err)
		}
		fmt.Printf("%s subscribed %s\n", color.GreenString("OK"), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
}
