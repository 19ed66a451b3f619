// Package view derives presentation data from task snapshots. Everything is
// a pure function of its inputs; callers pass the clock in so the same
// snapshot and filter always project to the same sequence.
package view

import (
	"sort"
	"time"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
)

// Filter selects which tasks the projection includes.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterOverdue   Filter = "overdue"
)

// ParseFilter maps a user-supplied name to a Filter, defaulting to all.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterCompleted, FilterOverdue:
		return Filter(s), true
	case "":
		return FilterAll, true
	}
	return FilterAll, false
}

// Matches reports whether the task passes the filter at the given time.
func (f Filter) Matches(t models.Task, now time.Time) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterOverdue:
		return t.Overdue(now)
	default:
		return true
	}
}

// Project returns the filtered task sequence in the snapshot's order
// (AddedDate descending). The snapshot itself is never mutated.
func Project(list models.TaskList, f Filter, now time.Time) []models.Task {
	out := make([]models.Task, 0, len(list.Tasks))
	for _, t := range list.Tasks {
		if f.Matches(t, now) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// DayGroup is one calendar date's worth of tasks.
type DayGroup struct {
	// Day is midnight (local) of the group's calendar date.
	Day   time.Time
	Tasks []models.Task
}

// ProjectByDay groups the filtered sequence by the local calendar date of
// AddedDate. Group keys are sorted descending by date; within a group the
// snapshot's order (AddedDate descending) is retained.
func ProjectByDay(list models.TaskList, f Filter, now time.Time) []DayGroup {
	byDay := make(map[time.Time]int)
	var groups []DayGroup
	for _, t := range Project(list, f, now) {
		day := localDay(t.AddedDate)
		i, ok := byDay[day]
		if !ok {
			i = len(groups)
			byDay[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Day.After(groups[j].Day)
	})
	return groups
}

func localDay(ts time.Time) time.Time {
	local := ts.Local()
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, local.Location())
}
