// Package chat provides the stylist chat view for the TUI.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driving"
)

// ErrNoChatService is returned when the view has no chat service.
var ErrNoChatService = errors.New("chat service not available")

// Transcript labels.
const (
	UserLabel = "You"
	BotLabel  = "Stylist"
)

// maxPickerRows bounds the product picker height.
const maxPickerRows = 5

// Focus identifies which part of the chat view receives keys.
type Focus int

const (
	// FocusInput sends keys to the message input.
	FocusInput Focus = iota
	// FocusPicker sends keys to the product picker.
	FocusPicker
)

// View is a conversation with the stylist: transcript, product picker for
// the latest reply, and a message input.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.QueryInput
	transcript viewport.Model
	picker     *list.ProductList
	spinner    spinner.Model
	statusbar  *status.Bar

	chat    driving.ChatService
	session driving.ChatSession
	ctx     context.Context

	focus   Focus
	pending bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chat driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	bar := status.NewBar(s, km)
	bar.SetHints(km.ChatHelp())

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s, UserLabel+":", "Ask for an outfit..."),
		transcript: viewport.New(80, 16),
		picker:     list.NewProductList(s, ""),
		spinner:    sp,
		statusbar:  bar,
		chat:       chat,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init opens a session on first use and focuses the input.
// An existing conversation is kept.
func (v *View) Init() tea.Cmd {
	if v.session == nil {
		if v.chat == nil {
			v.err = ErrNoChatService
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(ErrNoChatService.Error())
			return nil
		}
		v.session = v.chat.NewSession()
	}
	v.setFocus(FocusInput)
	v.refresh()
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.pending {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refresh()
		return v, cmd

	case messages.ChatReplied:
		v.handleReply(msg)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if keymap.Matches(key, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if keymap.Matches(key, v.keymap.Focus) {
		if v.focus == FocusInput && !v.picker.IsEmpty() {
			v.setFocus(FocusPicker)
		} else {
			v.setFocus(FocusInput)
		}
		return v, nil
	}

	switch key {
	case "pgup", "pgdown":
		var cmd tea.Cmd
		v.transcript, cmd = v.transcript.Update(msg)
		return v, cmd
	}

	if v.focus == FocusPicker {
		return v.handlePickerKey(key)
	}

	if keymap.Matches(key, v.keymap.Submit) {
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handlePickerKey navigates the product picker.
func (v *View) handlePickerKey(key string) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.picker.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.picker.MoveDown()
	case keymap.Matches(key, v.keymap.Select):
		if p := v.picker.SelectedProduct(); p != nil {
			id := p.Identifier()
			return v, func() tea.Msg {
				return messages.ProductSelected{ID: id}
			}
		}
	}
	return v, nil
}

// submit sends the input to the session. Blank input and submissions while
// a reply is pending are ignored and leave the input untouched.
func (v *View) submit() tea.Cmd {
	query := strings.TrimSpace(v.input.Value())
	if query == "" || v.pending || v.session == nil {
		return nil
	}

	v.input.Reset()
	v.pending = true
	v.err = nil
	v.statusbar.SetState(status.StateTyping)
	v.statusbar.SetMessage("")

	session := v.session
	ctx := v.ctx
	send := func() tea.Msg {
		reply, err := session.Submit(ctx, query)
		return messages.ChatReplied{Reply: reply, Err: err}
	}
	return tea.Batch(v.spinner.Tick, send)
}

// handleReply settles a pending submission.
func (v *View) handleReply(msg messages.ChatReplied) {
	v.pending = false

	switch {
	case msg.Err == nil:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
	case errors.Is(msg.Err, domain.ErrRequestInFlight):
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Still answering your last message")
	case errors.Is(msg.Err, domain.ErrEmptyQuery):
		v.statusbar.SetState(status.StateReady)
	default:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
	}

	v.refresh()
}

// refresh re-renders the transcript and the picker from a session snapshot.
func (v *View) refresh() {
	if v.session == nil {
		return
	}
	msgs := v.session.Messages()

	latest := latestBotMessage(msgs)
	if latest != nil {
		v.picker.SetProducts(latest.Products, latest.PrimaryProductID)
	} else {
		v.picker.SetProducts(nil, nil)
	}
	if v.picker.IsEmpty() && v.focus == FocusPicker {
		v.setFocus(FocusInput)
	}

	v.layout()
	v.transcript.SetContent(v.renderTranscript(msgs))
	v.transcript.GotoBottom()
}

// latestBotMessage returns the last bot message, or nil.
func latestBotMessage(msgs []domain.Message) *domain.Message {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsBot() {
			return &msgs[i]
		}
	}
	return nil
}

// renderTranscript renders every message in order, followed by the
// typing indicator while a reply is pending.
func (v *View) renderTranscript(msgs []domain.Message) string {
	width := v.transcript.Width
	if width < 20 {
		width = 20
	}

	blocks := make([]string, 0, len(msgs)+1)
	for i := range msgs {
		blocks = append(blocks, v.renderMessage(&msgs[i], width))
	}
	if v.pending {
		blocks = append(blocks, v.styles.BotLabel.Render(BotLabel)+"\n"+
			v.spinner.View()+v.styles.Muted.Render(status.TypingText))
	}
	return strings.Join(blocks, "\n\n")
}

// renderMessage renders one message: label, paragraphs with emphasis,
// and for bot replies the attached products with the primary marked.
func (v *View) renderMessage(m *domain.Message, width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	if m.IsBot() {
		b.WriteString(v.styles.BotLabel.Render(BotLabel))
	} else {
		b.WriteString(v.styles.UserLabel.Render(UserLabel))
	}

	for i, p := range m.Paragraphs() {
		if i == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString("\n\n")
		}
		b.WriteString(wrap.Render(v.renderParagraph(p)))
	}

	for _, p := range m.Products {
		marker := "•"
		if m.IsPrimary(p) {
			marker = v.styles.PrimaryMarker.Render(list.PrimaryMarker)
		}
		line := "  " + marker + " " + p.Title
		if p.Price.Valid {
			line += v.styles.Price.Render("  " + list.FormatPrice(p.Price, ""))
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	return b.String()
}

// renderParagraph styles a paragraph's spans.
func (v *View) renderParagraph(p domain.Paragraph) string {
	var b strings.Builder
	for _, span := range p.Spans {
		if span.Emphasis {
			b.WriteString(v.styles.Emphasis.Render(span.Text))
		} else {
			b.WriteString(v.styles.Normal.Render(span.Text))
		}
	}
	return b.String()
}

// setFocus moves keyboard focus and updates the hints.
func (v *View) setFocus(f Focus) {
	v.focus = f
	if f == FocusPicker {
		v.input.Blur()
		v.statusbar.SetHints(v.keymap.PickerHelp())
		return
	}
	v.input.Focus()
	v.statusbar.SetHints(v.keymap.ChatHelp())
}

// layout sizes the transcript around the picker, input and status bar.
func (v *View) layout() {
	pickerRows := v.picker.Count()
	if pickerRows > maxPickerRows {
		pickerRows = maxPickerRows
	}
	v.picker.SetDimensions(v.width, pickerRows)

	// title + blank, input (bordered), blank + status bar
	reserved := 2 + 3 + 2
	if pickerRows > 0 {
		reserved += pickerRows + 2
	}
	height := v.height - reserved
	if height < 3 {
		height = 3
	}
	v.transcript.Width = v.width
	v.transcript.Height = height
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Stylist chat"), "")
	sections = append(sections, v.transcript.View())

	if !v.picker.IsEmpty() {
		label := "Products"
		if v.focus == FocusPicker {
			label = v.styles.Subtitle.Render(label)
		} else {
			label = v.styles.Muted.Render(label + " (tab to browse)")
		}
		sections = append(sections, label, v.picker.View())
	}

	sections = append(sections, v.input.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.layout()
	v.refresh()
}

// Session returns the current chat session, or nil before Init.
func (v *View) Session() driving.ChatSession {
	return v.session
}

// Pending returns whether a reply is outstanding.
func (v *View) Pending() bool {
	return v.pending
}

// Focus returns the focused area.
func (v *View) Focus() Focus {
	return v.focus
}

// Picker returns the product picker for the latest reply.
func (v *View) Picker() *list.ProductList {
	return v.picker
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Input returns the message input.
func (v *View) Input() *input.QueryInput {
	return v.input
}
