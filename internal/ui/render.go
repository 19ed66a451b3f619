// Package ui renders task snapshots for the terminal: static listings for
// one-shot commands and a live view for the watch command.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/view"
)

// Options controls which optional task facets the renderer shows.
type Options struct {
	Features types.FeaturesConfig
	Now      time.Time
	// ShowIDs adds a short ID column so tasks can be referenced by prefix.
	ShowIDs bool
}

// RenderTasks produces the flat listing: one numbered line per task plus
// the progress summary.
func RenderTasks(tasks []models.Task, progress view.Progress, opts Options) string {
	var b strings.Builder
	if len(tasks) == 0 {
		b.WriteString(StyleSubtle.Render("No tasks.") + "\n")
	}
	for i, t := range tasks {
		b.WriteString(renderTaskLine(i+1, t, opts))
		if opts.Features.Subtasks {
			for j, sub := range t.Subtasks {
				b.WriteString(renderSubtaskLine(j+1, sub))
			}
		}
	}
	b.WriteString(RenderProgress(progress))
	return b.String()
}

// RenderDayGroups produces the grouped listing: a dated header per calendar
// day, tasks numbered across groups in snapshot order.
func RenderDayGroups(groups []view.DayGroup, progress view.Progress, opts Options) string {
	var b strings.Builder
	if len(groups) == 0 {
		b.WriteString(StyleSubtle.Render("No tasks.") + "\n")
	}
	n := 0
	for _, g := range groups {
		b.WriteString(StyleDayHeader.Render(dayLabel(g.Day, opts.Now)) + "\n")
		for _, t := range g.Tasks {
			n++
			b.WriteString(renderTaskLine(n, t, opts))
			if opts.Features.Subtasks {
				for j, sub := range t.Subtasks {
					b.WriteString(renderSubtaskLine(j+1, sub))
				}
			}
		}
	}
	b.WriteString(RenderProgress(progress))
	return b.String()
}

// RenderProgress draws the completed-over-total bar shown under every
// listing.
func RenderProgress(p view.Progress) string {
	if p.TotalCount == 0 {
		return ""
	}
	const width = 20
	filled := p.Percent * width / 100
	bar := StyleSuccess.Render(strings.Repeat("█", filled)) + StyleSubtle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("\n%s %d/%d (%d%%)\n", bar, p.CompletedCount, p.TotalCount, p.Percent)
}

func renderTaskLine(n int, t models.Task, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d. ", n)
	b.WriteString(checkbox(t.Completed))
	b.WriteString(" ")

	text := t.Text
	if t.Completed {
		text = StyleDone.Render(text)
	} else {
		text = StyleTitle.Render(text)
	}
	b.WriteString(text)

	if opts.Features.Priorities {
		switch t.Priority {
		case models.PriorityHigh:
			b.WriteString(" " + StyleHigh.Render("[high]"))
		case models.PriorityLow:
			b.WriteString(" " + StyleLow.Render("[low]"))
		}
	}

	if t.Deadline != nil {
		label := "due " + t.Deadline.Local().Format("Jan 2 15:04")
		if t.Overdue(opts.Now) {
			b.WriteString(" " + StyleOverdue.Render(label+" (overdue)"))
		} else {
			b.WriteString(" " + StyleWarning.Render(label))
		}
	}

	if opts.ShowIDs && t.ID != "" {
		b.WriteString(" " + StyleSubtle.Render(shortID(t.ID)))
	}
	b.WriteString("\n")
	return b.String()
}

func renderSubtaskLine(n int, s models.Subtask) string {
	text := s.Text
	if s.Completed {
		text = StyleDone.Render(text)
	}
	return fmt.Sprintf("       %s %d) %s\n", checkbox(s.Completed), n, text)
}

func checkbox(done bool) string {
	if done {
		return StyleSuccess.Render("[x]")
	}
	return "[ ]"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// dayLabel names a group's date, with Today/Yesterday shortcuts.
func dayLabel(day, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("Mon, Jan 2 2006")
	}
}
