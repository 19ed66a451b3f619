package view

import (
	"math"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
)

// Progress holds completion metrics for a snapshot.
type Progress struct {
	CompletedCount int `json:"completedCount"`
	TotalCount     int `json:"totalCount"`
	// Percent is round(100 * completed / total), 0 for an empty snapshot.
	Percent int `json:"percent"`
}

// Summarize computes completion metrics over the whole snapshot, ignoring
// any active filter.
func Summarize(list models.TaskList) Progress {
	p := Progress{TotalCount: len(list.Tasks)}
	for _, t := range list.Tasks {
		if t.Completed {
			p.CompletedCount++
		}
	}
	if p.TotalCount > 0 {
		p.Percent = int(math.Round(100 * float64(p.CompletedCount) / float64(p.TotalCount)))
	}
	return p
}
