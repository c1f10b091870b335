package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/views/catalog"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/stylist-cli/internal/adapters/driving/tui/views/product"
	"github.com/custodia-labs/stylist-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// chatView is the stylist conversation.
	chatView *chat.View

	// catalogView lists catalog products.
	catalogView *catalog.View

	// productView shows a single product.
	productView *product.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// program is set while Run is active.
	mu      sync.Mutex
	program *tea.Program

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	menuView := menu.NewView(s)
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			menuView.SetEndpoint(settings.API.BaseURL)
		} else {
			logger.Warn("tui: load settings: %v", err)
		}
	}

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menuView,
		chatView:    chat.NewView(s, km, ports.Chat),
		catalogView: catalog.NewView(s, km, ports.Catalog),
		productView: product.NewView(s, km, ports.Catalog),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.catalogView.WithContext(ctx)
	a.productView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("stylist"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ProductSelected:
		back := a.currentView
		if back == messages.ViewProduct {
			back = a.productView.Back()
		}
		a.currentView = messages.ViewProduct
		return a, a.productView.SetProduct(msg.ID, back)

	// Replies are routed to their owner even after navigating away.
	case messages.ChatReplied, spinner.TickMsg:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ProductsLoaded:
		a.catalogView, cmd = a.catalogView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.ProductLoaded:
		a.productView, cmd = a.productView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.SettingsChanged:
		a.menuView.SetEndpoint(msg.BaseURL)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewCatalog:
		a.catalogView, cmd = a.catalogView.Update(msg)
	case messages.ViewProduct:
		a.productView, cmd = a.productView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyEsc || key.String() == "q") {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// switchTo activates a view, initialising it where needed.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewChat:
		return a.chatView.Init()
	case messages.ViewCatalog:
		// Keep the current page when returning from a product.
		if len(a.catalogView.Items()) == 0 && !a.catalogView.Loading() {
			return a.catalogView.Init()
		}
	case messages.ViewMenu, messages.ViewProduct, messages.ViewHelp:
		// No initialisation needed
	}
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewCatalog:
		return a.catalogView.View()
	case messages.ViewProduct:
		return a.productView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Chat:
  (type)      Write a message
  enter       Send
  tab         Switch to the product list of the latest reply
  j/k, enter  Pick a product and open it
  pgup/pgdn   Scroll the conversation

Catalog:
  j/k, ↑/↓    Navigate products
  enter       Open product
  n/p         Next/previous page
  r           Refresh

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))

	a.mu.Lock()
	a.program = p
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.program = nil
		a.mu.Unlock()
	}()

	_, err := p.Run()
	return err
}

// Send delivers a message to the running program from another goroutine.
// It is a no-op when the app is not running.
func (a *App) Send(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.catalogView.SetDimensions(width, height)
	a.productView.SetDimensions(width, height)
}
