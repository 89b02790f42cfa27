// Package tui is the terminal front-end to a workbench session.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/runner"
	"github.com/felixgeelhaar/codelearn/internal/session"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

// Workbench applies actions to one session and composes its screens.
// *session.Service satisfies it.
type Workbench interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Dispatch(ctx context.Context, id string, action workbench.Action) (*session.Session, error)
	SelectRandom(ctx context.Context, id string) (*session.Session, error)
	Screen(ctx context.Context, id string) (*workbench.Screen, error)
}

// Runner simulates code runs. *runner.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, sessionID, exerciseID, code string) (runner.Run, error)
}

var _ Workbench = (*session.Service)(nil)
var _ Runner = (*runner.Runner)(nil)

type focus int

const (
	focusNav focus = iota
	focusEditor
)

// runDoneMsg reports the end of a simulated run
type runDoneMsg struct {
	run runner.Run
	err error
}

// Model is the root bubbletea model
type Model struct {
	ctx       context.Context
	wb        Workbench
	runner    Runner
	sessionID string

	state  workbench.State
	screen *workbench.Screen
	editor textarea.Model
	focus  focus

	navIndex int // cursor in domain.Views
	pick     int // cursor in the exercise list
	running  bool
	status   string
	err      error

	width  int
	height int
}

var _ tea.Model = (*Model)(nil)

// New creates a model bound to an existing session
func New(ctx context.Context, wb Workbench, r Runner, sessionID string) (*Model, error) {
	sess, err := wb.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(14)

	m := &Model{
		ctx:       ctx,
		wb:        wb,
		runner:    r,
		sessionID: sessionID,
		state:     sess.State,
		editor:    ta,
	}
	m.editor.SetValue(sess.State.Code)
	m.navIndex = viewIndex(sess.State.View)
	if err := m.refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Screen returns the last composed screen
func (m *Model) Screen() *workbench.Screen {
	return m.screen
}

// State returns the session state as last dispatched
func (m *Model) State() workbench.State {
	return m.state
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width-sidebarWidth-10, 20))
		m.editor.SetHeight(max(msg.Height/2, 5))
		return m, nil

	case runDoneMsg:
		m.running = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = fmt.Sprintf("Ran %d lines", msg.run.Lines())
		}
		m.setError(m.refresh())
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusEditor {
			return m.updateEditor(msg)
		}
		return m.updateNav(msg)
	}
	return m, nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusNav
		m.editor.Blur()
		return m, nil
	case "ctrl+r":
		return m, m.run()
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.dispatch(workbench.Edit(after))
	}
	return m, cmd
}

func (m *Model) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.navIndex > 0 {
			m.navIndex--
		}
	case "down", "j":
		if m.navIndex < len(domain.Views)-1 {
			m.navIndex++
		}
	case "enter":
		m.dispatch(workbench.Navigate(domain.Views[m.navIndex]))
	case "1", "2", "3", "4", "5", "6", "7":
		m.navIndex = int(key[0] - '1')
		m.dispatch(workbench.Navigate(domain.Views[m.navIndex]))
	case "b":
		m.dispatch(workbench.Action{Type: workbench.ActionToggleSidebar})
	case "n", "right":
		m.dispatch(workbench.Action{Type: workbench.ActionNextStep})
	case "p", "left":
		m.dispatch(workbench.Action{Type: workbench.ActionPreviousStep})
	case "h":
		m.dispatch(workbench.Action{Type: workbench.ActionToggleHint})
	case "i":
		m.dispatch(workbench.Action{Type: workbench.ActionInsertExample})
	case "[":
		if m.pick > 0 {
			m.pick--
		}
	case "]":
		if m.screen.Exercises != nil && m.pick < len(m.screen.Exercises.Exercises)-1 {
			m.pick++
		}
	case "s":
		if ex := m.picked(); ex != nil {
			m.dispatch(workbench.SelectExercise(ex.ID))
		}
	case "r":
		sess, err := m.wb.SelectRandom(m.ctx, m.sessionID)
		if err != nil {
			m.err = err
			break
		}
		m.apply(sess)
	case "tab", "e":
		if m.screen.Editor != nil {
			m.focus = focusEditor
			return m, m.editor.Focus()
		}
	case "ctrl+r":
		return m, m.run()
	}
	return m, nil
}

// picked returns the exercise under the list cursor
func (m *Model) picked() *domain.Exercise {
	if m.screen.Exercises == nil || m.pick >= len(m.screen.Exercises.Exercises) {
		return nil
	}
	return m.screen.Exercises.Exercises[m.pick]
}

func (m *Model) dispatch(a workbench.Action) {
	sess, err := m.wb.Dispatch(m.ctx, m.sessionID, a)
	if err != nil {
		m.err = err
		return
	}
	m.apply(sess)
}

func (m *Model) apply(sess *session.Session) {
	m.state = sess.State
	if m.editor.Value() != sess.State.Code {
		m.editor.SetValue(sess.State.Code)
	}
	if sess.State.View.Valid() {
		m.navIndex = viewIndex(sess.State.View)
	}
	m.setError(m.refresh())
}

func (m *Model) refresh() error {
	screen, err := m.wb.Screen(m.ctx, m.sessionID)
	if err != nil {
		return err
	}
	m.screen = screen
	if screen.Exercises == nil || m.pick >= len(screen.Exercises.Exercises) {
		m.pick = 0
	}
	return nil
}

func (m *Model) setError(err error) {
	if err != nil {
		m.err = err
	}
}

func (m *Model) run() tea.Cmd {
	if m.running || m.screen.Editor == nil || m.runner == nil {
		return nil
	}
	m.running = true
	m.status = "Running..."

	r, ctx, id := m.runner, m.ctx, m.sessionID
	exerciseID, code := m.state.ExerciseID, m.state.Code
	return func() tea.Msg {
		run, err := r.Run(ctx, id, exerciseID, code)
		return runDoneMsg{run: run, err: err}
	}
}

func viewIndex(v domain.View) int {
	for i, known := range domain.Views {
		if known == v {
			return i
		}
	}
	return 0
}
