package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// isTerminal reports whether stdin is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a conversation with the stylist",
	Long: `Starts a line-oriented conversation. Each line is sent to the stylist
and the reply is printed with its recommended products.

Type /quit or /exit (or send EOF) to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := cmd.Context()
	startConfigWatch(ctx, nil)

	session := chatService.NewSession()
	for _, m := range session.Messages() {
		printMessage(cmd, m)
	}

	interactive := isTerminal()
	reader := bufio.NewReader(cmd.InOrStdin())

	for {
		if interactive {
			cmd.Print("> ")
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read input: %w", readErr)
		}

		query := strings.TrimSpace(line)
		switch query {
		case "/quit", "/exit":
			return nil
		case "":
			if readErr != nil {
				return nil
			}
			continue
		}

		reply, err := session.Submit(ctx, query)
		switch {
		case errors.Is(err, domain.ErrEmptyQuery):
		case err != nil:
			return fmt.Errorf("chat failed: %w", err)
		default:
			cmd.Println()
			printMessage(cmd, reply)
			cmd.Println()
		}

		if readErr != nil {
			return nil
		}
	}
}
