package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/store"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/view"
)

// snapshotMsg carries a canonical-collection replacement into the program.
type snapshotMsg struct {
	list models.TaskList
}

// statusMsg shows a transient one-line result under the list.
type statusMsg struct {
	text  string
	isErr bool
}

// WatchModel is the live task view: it re-renders on every snapshot the
// store delivers and issues mutations straight back to it.
type WatchModel struct {
	store *store.TaskStore
	undo  *store.UndoBuffer
	opts  Options

	snapshot models.TaskList
	filter   view.Filter
	cursor   int
	status   string

	input  textinput.Model
	adding bool
}

// NewWatchModel builds the live view over an already-subscribed store.
func NewWatchModel(s *store.TaskStore, opts Options) *WatchModel {
	ti := textinput.New()
	ti.Placeholder = "New task text"
	ti.CharLimit = 500
	return &WatchModel{
		store:    s,
		undo:     store.NewUndoBuffer(),
		opts:     opts,
		snapshot: s.Snapshot(),
		filter:   view.FilterAll,
		input:    ti,
	}
}

// Run starts the program and forwards store snapshots into it until the
// user quits.
func (m *WatchModel) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	remove := m.store.OnChange(func(list models.TaskList) {
		p.Send(snapshotMsg{list: list})
	})
	defer remove()
	_, err := p.Run()
	return err
}

func (m *WatchModel) Init() tea.Cmd {
	return nil
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = msg.list
		m.clampCursor()
		return m, nil
	case statusMsg:
		if msg.isErr {
			m.status = StyleError.Render(msg.text)
		} else {
			m.status = StyleSubtle.Render(msg.text)
		}
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *WatchModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Reset()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Reset()
		if text == "" {
			return m, nil
		}
		return m, m.mutate("added", func(ctx context.Context) error {
			_, err := m.store.Create(ctx, store.TaskDraft{Text: text})
			return err
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *WatchModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.visible()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "tab":
		m.filter = nextFilter(m.filter)
		m.clampCursor()
	case "a":
		m.adding = true
		m.input.Focus()
		return m, textinput.Blink
	case " ", "enter":
		if t, ok := m.current(tasks); ok {
			id := t.ID
			return m, m.mutate("toggled", func(ctx context.Context) error {
				return m.store.ToggleCompletion(ctx, id)
			})
		}
	case "d":
		if t, ok := m.current(tasks); ok {
			id := t.ID
			return m, m.mutate("deleted (press u to undo)", func(ctx context.Context) error {
				removed, err := m.store.Remove(ctx, id)
				if err != nil {
					return err
				}
				m.undo.Capture(removed, id)
				return nil
			})
		}
	case "u":
		held, oldID, ok := m.undo.Held()
		if !ok {
			return m, func() tea.Msg {
				return statusMsg{text: "nothing to undo", isErr: true}
			}
		}
		return m, m.mutate("restored "+held.Text+" (was "+shortID(oldID)+")", func(ctx context.Context) error {
			_, err := m.undo.Restore(ctx, m.store)
			return err
		})
	}
	return m, nil
}

// mutate runs a store write off the update loop and reports the outcome as
// a status line.
func (m *WatchModel) mutate(done string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return statusMsg{text: done}
	}
}

func (m *WatchModel) View() string {
	tasks := m.visible()
	progress := view.Summarize(m.snapshot)

	var b strings.Builder
	b.WriteString(StyleTitle.Render("todo") + "  " + StyleSubtle.Render("filter: "+string(m.filter)) + "\n\n")

	if len(tasks) == 0 {
		b.WriteString(StyleSubtle.Render("No tasks.") + "\n")
	}
	for i, t := range tasks {
		line := strings.TrimRight(renderTaskLine(i+1, t, m.opts), "\n")
		if i == m.cursor {
			line = StyleSelected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		if m.opts.Features.Subtasks {
			for j, sub := range t.Subtasks {
				b.WriteString("  " + strings.TrimRight(renderSubtaskLine(j+1, sub), "\n") + "\n")
			}
		}
	}
	b.WriteString(RenderProgress(progress))

	if m.adding {
		b.WriteString("\n" + m.input.View() + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + StyleSubtle.Render("a add · space toggle · d delete · u undo · tab filter · q quit") + "\n")
	return b.String()
}

// visible projects the snapshot through the active filter.
func (m *WatchModel) visible() []models.Task {
	return view.Project(m.snapshot, m.filter, time.Now())
}

func (m *WatchModel) current(tasks []models.Task) (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *WatchModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextFilter(f view.Filter) view.Filter {
	switch f {
	case view.FilterAll:
		return view.FilterActive
	case view.FilterActive:
		return view.FilterCompleted
	case view.FilterCompleted:
		return view.FilterOverdue
	default:
		return view.FilterAll
	}
}
