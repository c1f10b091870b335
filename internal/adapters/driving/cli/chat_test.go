package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

func TestChatCmd_Use(t *testing.T) {
	assert.Equal(t, "chat", chatCmd.Use)
	assert.Equal(t, "Start a conversation with the stylist", chatCmd.Short)
}

func TestChatCmd_Conversation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	chat := &MockChatService{Greeting: "Hi! Ask me for **outfits**."}
	chatService = chat
	rootCmd.SetIn(strings.NewReader("hoodies\n\n  \ncheaper ones\n/quit\nignored\n"))

	out, err := execute(t, "chat")

	require.NoError(t, err)
	require.Len(t, chat.Sessions, 1)
	assert.Equal(t, []string{"hoodies", "cheaper ones"}, chat.Sessions[0].queries)
	assert.Contains(t, out, "Stylist: Hi! Ask me for outfits.")
	assert.Contains(t, out, "Stylist: You said: hoodies")
	assert.Contains(t, out, "Stylist: You said: cheaper ones")
	assert.NotContains(t, out, "ignored")
	assert.NotContains(t, out, "> ")
}

func TestChatCmd_EndsAtEOF(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	chat := &MockChatService{}
	chatService = chat
	rootCmd.SetIn(strings.NewReader("linen shirts"))

	out, err := execute(t, "chat")

	require.NoError(t, err)
	assert.Equal(t, []string{"linen shirts"}, chat.Sessions[0].queries)
	assert.Contains(t, out, "You said: linen shirts")
}

func TestChatCmd_PromptsOnTerminal(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	isTerminal = func() bool { return true }
	rootCmd.SetIn(strings.NewReader("/exit\n"))

	out, err := execute(t, "chat")

	require.NoError(t, err)
	assert.Contains(t, out, "> ")
}

func TestChatCmd_SessionError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	chatService = &MockChatService{ReplyFunc: func(string) (domain.Message, error) {
		return domain.Message{}, domain.ErrRequestInFlight
	}}
	rootCmd.SetIn(strings.NewReader("hello\n"))

	_, err := execute(t, "chat")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRequestInFlight))
}

func TestChatCmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "chat", "extra")

	assert.Error(t, err)
}
