package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tweetCmd = &cobra.Command{
	Use:   "tweet <id>",
	Short: "Print the embed payload for a single tweet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		raw, err := appInstance.EmbedService.GetTweet(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch tweet %s: %w", args[0], err)
		}

		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			out.Reset()
			out.Write(raw)
		}
		out.WriteByte('\n')
		_, err = out.WriteTo(os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tweetCmd)
}
