// Package tastingplay is the blind-tasting screen: one numbered pour at a
// time, judged on aroma type, strength, total score, fermentation
// equipment, and fermentation agents.
package tastingplay

import (
	"errors"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/progress"
	"github.com/baiyu/pjexam/internal/router"
	"github.com/baiyu/pjexam/internal/screen"
	"github.com/baiyu/pjexam/internal/stats"
	"github.com/baiyu/pjexam/internal/tasting"
	"github.com/baiyu/pjexam/internal/ui/layout"
)

// TastingScreen implements screen.Screen for blind-tasting mode.
type TastingScreen struct {
	settings *config.Settings
	stats    *stats.Stats
	prog     *progress.Manager

	sess   *tasting.Session
	fields []tasting.Field
	field  int
	cursor int

	askResume   bool
	pendingSnap *progress.TastingSnapshot
	done        bool
	errMsg      string
}

var _ screen.Screen = (*TastingScreen)(nil)
var _ screen.KeyHintProvider = (*TastingScreen)(nil)

// New creates the blind-tasting screen.
func New(settings *config.Settings, st *stats.Stats, prog *progress.Manager) *TastingScreen {
	return &TastingScreen{
		settings: settings,
		stats:    st,
		prog:     prog,
		fields:   activeFields(settings.Tasting),
	}
}

// activeFields lists the enabled fields in display order.
func activeFields(f config.TastingFields) []tasting.Field {
	var out []tasting.Field
	if f.Aroma {
		out = append(out, tasting.FieldAroma)
	}
	if f.ABV {
		out = append(out, tasting.FieldABV)
	}
	if f.Score {
		out = append(out, tasting.FieldScore)
	}
	if f.Equipment {
		out = append(out, tasting.FieldEquipment)
	}
	if f.Agents {
		out = append(out, tasting.FieldAgents)
	}
	return out
}

func (s *TastingScreen) Init() tea.Cmd {
	return s.loadOrStart()
}

func (s *TastingScreen) Title() string {
	return "品评训练"
}

func (s *TastingScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.askResume:
		return []layout.KeyHint{
			{Key: "Y", Description: "继续上次"},
			{Key: "N", Description: "重新开始"},
		}
	case s.done:
		return []layout.KeyHint{{Key: "Enter", Description: "返回"}}
	case s.sess != nil && s.sess.Confirmed:
		return []layout.KeyHint{{Key: "Enter", Description: "下一杯"}}
	default:
		return []layout.KeyHint{
			{Key: "←→", Description: "切换项目"},
			{Key: "↑↓", Description: "选项/加减分"},
			{Key: "Space", Description: "选择"},
			{Key: "Enter", Description: "确认"},
		}
	}
}

func (s *TastingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resumePromptMsg:
		s.askResume = true
		s.pendingSnap = msg.Snap
		return s, nil
	case sessionReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sess = msg.Session
		s.prog.SaveTasting(s.sess)
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *TastingScreen) loadOrStart() tea.Cmd {
	return func() tea.Msg {
		if snap := s.prog.LoadTasting(); snap.Resumable() {
			return resumePromptMsg{Snap: snap}
		}
		return s.startFresh()
	}
}

func (s *TastingScreen) startFresh() tea.Msg {
	if !s.settings.Tasting.Any() {
		return sessionReadyMsg{Err: errors.New("未启用任何品评项目")}
	}
	samples, err := bank.Samples()
	if err != nil {
		return sessionReadyMsg{Err: err}
	}
	if len(samples) == 0 {
		return sessionReadyMsg{Err: errors.New("酒样库为空")}
	}

	now := uint64(time.Now().UnixNano())
	rnd := rand.New(rand.NewPCG(now, now>>32))
	ordered := tasting.Order(samples, s.stats.Load(), rnd)
	return sessionReadyMsg{Session: tasting.NewSession(s.settings.Tasting, ordered, s.stats)}
}

func (s *TastingScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.askResume {
		switch key {
		case "y", "Y", "enter":
			s.askResume = false
			sess := s.pendingSnap.Restore(s.stats)
			s.pendingSnap = nil
			return s, func() tea.Msg { return sessionReadyMsg{Session: sess} }
		case "n", "N":
			s.askResume = false
			s.pendingSnap = nil
			s.prog.Clear(config.ModeBlind)
			return s, func() tea.Msg { return s.startFresh() }
		}
		return s, nil
	}

	if s.sess == nil {
		return s, nil
	}

	if s.done {
		if key == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "enter":
		ended := s.sess.ConfirmOrAdvance()
		s.field = 0
		s.cursor = 0
		if ended {
			s.done = true
			s.prog.Clear(config.ModeBlind)
		} else {
			s.prog.SaveTasting(s.sess)
		}
		return s, nil

	case "right", "l", "tab":
		s.moveField(1)
	case "left", "h", "shift+tab":
		s.moveField(-1)

	case "up", "k":
		if s.currentField() == tasting.FieldScore {
			s.sess.AdjustScore(0.2)
			s.prog.SaveTasting(s.sess)
		} else {
			s.moveCursor(-1)
		}
	case "down", "j":
		if s.currentField() == tasting.FieldScore {
			s.sess.AdjustScore(-0.2)
			s.prog.SaveTasting(s.sess)
		} else {
			s.moveCursor(1)
		}
	case "+", "=":
		if s.currentField() == tasting.FieldScore {
			s.sess.AdjustScore(1)
			s.prog.SaveTasting(s.sess)
		}
	case "-", "_":
		if s.currentField() == tasting.FieldScore {
			s.sess.AdjustScore(-1)
			s.prog.SaveTasting(s.sess)
		}

	case "space", " ":
		s.pick()
	}
	return s, nil
}

// pick applies the option under the cursor to the current field.
func (s *TastingScreen) pick() {
	f := s.currentField()
	opts := fieldOptions(f)
	if len(opts) == 0 || s.cursor < 0 || s.cursor >= len(opts) {
		return
	}
	switch f {
	case tasting.FieldAroma, tasting.FieldABV:
		s.sess.SelectField(f, opts[s.cursor])
	case tasting.FieldEquipment, tasting.FieldAgents:
		s.sess.ToggleMulti(f, opts[s.cursor])
	}
	s.prog.SaveTasting(s.sess)
}

func (s *TastingScreen) currentField() tasting.Field {
	if len(s.fields) == 0 {
		return tasting.FieldAroma
	}
	if s.field < 0 || s.field >= len(s.fields) {
		return s.fields[0]
	}
	return s.fields[s.field]
}

func (s *TastingScreen) moveField(delta int) {
	if len(s.fields) == 0 {
		return
	}
	s.field = (s.field + delta + len(s.fields)) % len(s.fields)
	s.cursor = 0
}

func (s *TastingScreen) moveCursor(delta int) {
	opts := fieldOptions(s.currentField())
	if len(opts) == 0 {
		return
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > len(opts)-1 {
		s.cursor = len(opts) - 1
	}
}

// fieldOptions returns the selectable vocabulary for a field; the score
// field has none.
func fieldOptions(f tasting.Field) []string {
	switch f {
	case tasting.FieldAroma:
		return bank.TastingOptions.Aroma
	case tasting.FieldABV:
		return bank.TastingOptions.ABV
	case tasting.FieldEquipment:
		return bank.TastingOptions.Equipment
	case tasting.FieldAgents:
		return bank.TastingOptions.Agents
	}
	return nil
}
