package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"briefy/internal/services"
)

func keysCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage AI provider API keys stored in the keyring",
	}

	open := func() (*services.KeyringService, error) {
		app, err := newApp(root.configFile)
		if err != nil {
			return nil, err
		}
		return app.openKeyring()
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <provider> <api-key>",
		Short: "Store the API key for a provider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := open()
			if err != nil {
				return err
			}
			if err := keys.StoreApiKey(args[0], []byte(strings.TrimSpace(args[1]))); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored key for %s\n", args[0])
			return nil
		},
	})

	var reveal bool
	get := &cobra.Command{
		Use:   "get <provider>",
		Short: "Show the stored API key (masked unless --reveal)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := open()
			if err != nil {
				return err
			}
			key, err := keys.GetApiKey(args[0])
			if err != nil {
				return fmt.Errorf("no key stored for %s: %w", args[0], err)
			}
			if !reveal {
				key = mask(key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	get.Flags().BoolVar(&reveal, "reveal", false, "print the full key")
	cmd.AddCommand(get)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <provider>",
		Short: "Remove the stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := open()
			if err != nil {
				return err
			}
			if err := keys.DeleteApiKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted key for %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List providers with a stored key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := open()
			if err != nil {
				return err
			}
			list, err := keys.ListApiKeys()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No keys stored")
				return nil
			}
			for _, item := range list {
				fmt.Fprintln(cmd.OutOrStdout(), item["provider"])
			}
			return nil
		},
	})
	return cmd
}

// mask keeps the provider prefix and the last four characters.
func mask(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
