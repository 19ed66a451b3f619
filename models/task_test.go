package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTask_ValidateStruct(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{
			name: "valid task",
			task: Task{
				ID:        uuid.NewString(),
				Text:      "Buy milk",
				AddedDate: now,
				Priority:  PriorityNormal,
			},
			wantErr: false,
		},
		{
			name: "empty id is allowed before the store assigns one",
			task: Task{
				Text:      "Buy milk",
				AddedDate: now,
				Priority:  PriorityNormal,
			},
			wantErr: false,
		},
		{
			name: "empty text",
			task: Task{
				ID:        uuid.NewString(),
				Text:      "",
				AddedDate: now,
				Priority:  PriorityNormal,
			},
			wantErr: true,
		},
		{
			name: "missing added date",
			task: Task{
				ID:       uuid.NewString(),
				Text:     "Buy milk",
				Priority: PriorityNormal,
			},
			wantErr: true,
		},
		{
			name: "invalid priority",
			task: Task{
				ID:        uuid.NewString(),
				Text:      "Buy milk",
				AddedDate: now,
				Priority:  "urgent",
			},
			wantErr: true,
		},
		{
			name: "invalid UUID",
			task: Task{
				ID:        "not-a-uuid",
				Text:      "Buy milk",
				AddedDate: now,
				Priority:  PriorityNormal,
			},
			wantErr: true,
		},
		{
			name: "empty subtask text",
			task: Task{
				ID:        uuid.NewString(),
				Text:      "Buy milk",
				AddedDate: now,
				Priority:  PriorityNormal,
				Subtasks:  []Subtask{{Text: ""}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTask_Clone(t *testing.T) {
	deadline := time.Now().Add(24 * time.Hour)
	orig := Task{
		ID:        uuid.NewString(),
		Text:      "Plan trip",
		AddedDate: time.Now(),
		Deadline:  &deadline,
		Priority:  PriorityHigh,
		Subtasks:  []Subtask{{Text: "book flights"}, {Text: "pack", Completed: true}},
	}

	clone := orig.Clone()
	clone.Subtasks[0].Completed = true
	*clone.Deadline = clone.Deadline.Add(time.Hour)

	if orig.Subtasks[0].Completed {
		t.Error("mutating a clone's subtasks changed the original")
	}
	if !orig.Deadline.Equal(deadline) {
		t.Error("mutating a clone's deadline changed the original")
	}
}

func TestTask_Overdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past deadline, incomplete", Task{Deadline: &past}, true},
		{"past deadline, completed", Task{Deadline: &past, Completed: true}, false},
		{"future deadline", Task{Deadline: &future}, false},
		{"no deadline", Task{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Errorf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTask_JSONRoundTrip_OmitsAbsentDeadline(t *testing.T) {
	task := Task{
		ID:        uuid.NewString(),
		Text:      "No deadline",
		AddedDate: time.Now().UTC(),
		Priority:  PriorityLow,
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), `"deadline"`) {
		t.Errorf("absent deadline should be omitted, got %s", data)
	}

	var back Task
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Deadline != nil {
		t.Error("round trip invented a deadline")
	}
}
