package view

import (
	"testing"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		completed []bool
		want      Progress
	}{
		{"empty", nil, Progress{0, 0, 0}},
		{"two of three", []bool{true, false, true}, Progress{2, 3, 67}},
		{"none done", []bool{false, false}, Progress{0, 2, 0}},
		{"all done", []bool{true, true, true, true}, Progress{4, 4, 100}},
		{"one of three rounds down", []bool{true, false, false}, Progress{1, 3, 33}},
		{"half rounds up", []bool{true, false}, Progress{1, 2, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := models.TaskList{}
			for i, c := range tt.completed {
				list.Tasks = append(list.Tasks, models.Task{ID: string(rune('a' + i)), Completed: c})
			}
			list.TotalCount = len(list.Tasks)

			if got := Summarize(list); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
