package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func pingCmd(root *rootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check the AI provider credential and connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(root.configFile)
			if err != nil {
				return err
			}
			defer app.log.Sync()

			gateway, err := app.openGateway()
			if err != nil {
				return err
			}
			if err := gateway.Validate(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := gateway.Ping(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%s)\n", gateway.Provider(), gateway.Model())
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}
