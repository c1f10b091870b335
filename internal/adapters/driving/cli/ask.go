package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Ask the stylist a single question",
	Long: `Sends one query to the stylist and prints the answer followed by the
recommended products, most relevant first. The primary pick is marked ★.

Examples:
  stylist ask show me oversized hoodies under 2000
  stylist ask --json "linen shirts for summer"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the reply as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	session := chatService.NewSession()
	reply, err := session.Submit(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(newMessageJSON(session.ID(), reply), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal reply: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printMessage(cmd, reply)
	return nil
}
