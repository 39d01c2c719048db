package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crawlworks/yelpcrawl/internal/auth"
)

// authCmd groups API-key management subcommands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the scraping API credential",
}

var authSetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the scraping API key in the OS keyring",
	Long: `Stores the API key in the OS keyring (or a file under ~/.yelpcrawl when
no keyring is available). The key can be passed as an argument or typed
on stdin when omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Fprint(os.Stderr, "API key: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
			key = strings.TrimSpace(line)
		}

		if err := auth.SaveAPIKey(key); err != nil {
			return fmt.Errorf("failed to store API key: %w", err)
		}
		fmt.Println("API key stored")
		return nil
	},
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key (redacted)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := auth.LoadAPIKey()
		if err != nil {
			return err
		}
		fmt.Println(auth.Redact(key))
		return nil
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.DeleteAPIKey(); err != nil {
			return fmt.Errorf("failed to remove API key: %w", err)
		}
		fmt.Println("API key removed")
		return nil
	},
}

func init() {
	authCmd.AddCommand(authSetCmd, authShowCmd, authClearCmd)
	rootCmd.AddCommand(authCmd)
}
