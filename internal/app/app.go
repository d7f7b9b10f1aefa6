package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/baiyu/pjexam/internal/progress"
	"github.com/baiyu/pjexam/internal/router"
	"github.com/baiyu/pjexam/internal/screen"
	"github.com/baiyu/pjexam/internal/screens/home"
	"github.com/baiyu/pjexam/internal/stats"
	"github.com/baiyu/pjexam/internal/store"
	"github.com/baiyu/pjexam/internal/ui/layout"
	"github.com/baiyu/pjexam/internal/ui/theme"
)

// Options carries the dependencies for the TUI.
type Options struct {
	Store *store.Store
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel wires the services over the store and builds the home
// screen.
func newAppModel(opts Options) AppModel {
	cfg := loadSettings(opts.Store)
	theme.SetDark(cfg.DarkMode)

	st := stats.New(opts.Store)
	prog := progress.New(opts.Store)
	settings := &cfg

	save := func() { saveSettings(opts.Store, *settings) }
	homeScreen := home.New(settings, st, prog, save)

	return AppModel{
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, "", m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "确定"},
		{Key: "Ctrl+C", Description: "退出"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	if m.router.Depth() > 1 {
		footerHints = append(footerHints, layout.KeyHint{Key: "Esc", Description: "返回"})
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
