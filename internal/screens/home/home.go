// Package home is the entry screen: mode selection.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/progress"
	"github.com/baiyu/pjexam/internal/router"
	"github.com/baiyu/pjexam/internal/screen"
	"github.com/baiyu/pjexam/internal/screens/quizplay"
	"github.com/baiyu/pjexam/internal/screens/settings"
	"github.com/baiyu/pjexam/internal/screens/statsview"
	"github.com/baiyu/pjexam/internal/screens/tastingplay"
	"github.com/baiyu/pjexam/internal/stats"
	"github.com/baiyu/pjexam/internal/ui/components"
	"github.com/baiyu/pjexam/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. Menu entries carry a resume hint when the
// mode has a stored session worth picking up.
func New(cfg *config.Settings, st *stats.Stats, prog *progress.Manager, save func()) *HomeScreen {
	resumeHint := func(mode config.Mode) string {
		var resumable bool
		if mode == config.ModeBlind {
			resumable = prog.LoadTasting().Resumable()
		} else {
			resumable = prog.LoadQuiz(mode).Resumable()
		}
		if resumable {
			return "有未完成进度"
		}
		return ""
	}

	// Screens are built at push time so that reentering a mode always
	// starts from a clean screen state.
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{
			Label: "理论考试",
			Hint:  resumeHint(config.ModeExam),
			Action: push(func() screen.Screen {
				return quizplay.New(config.ModeExam, cfg, st, prog)
			}),
		},
		{
			Label: "刷题练习",
			Hint:  resumeHint(config.ModePractice),
			Action: push(func() screen.Screen {
				return quizplay.New(config.ModePractice, cfg, st, prog)
			}),
		},
		{
			Label: "品评训练",
			Hint:  resumeHint(config.ModeBlind),
			Action: push(func() screen.Screen {
				return tastingplay.New(cfg, st, prog)
			}),
		},
		{
			Label:  "成绩统计",
			Action: push(func() screen.Screen { return statsview.New(st) }),
		},
		{
			Label:  "设置",
			Action: push(func() screen.Screen { return settings.New(cfg, prog, save) }),
		},
		{
			Label:  "退出",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("白酒品鉴考试系统"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("理论 · 品评 · 统计"))
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "主菜单"
}
