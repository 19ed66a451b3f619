package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
)

func TestEditPatch(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		deadline string
		priority string
		wantKeys []string
		wantErr  bool
	}{
		{name: "no flags", wantKeys: nil},
		{name: "text only", text: "new text", wantKeys: []string{"text"}},
		{name: "blank text", text: "   ", wantErr: true},
		{name: "deadline set", deadline: "2026-09-01", wantKeys: []string{"deadline"}},
		{name: "deadline cleared", deadline: "none", wantKeys: []string{"deadline"}},
		{name: "bad deadline", deadline: "whenever", wantErr: true},
		{name: "priority", priority: "high", wantKeys: []string{"priority"}},
		{name: "all three", text: "t", deadline: "2026-09-01", priority: "low", wantKeys: []string{"text", "deadline", "priority"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			patch, err := editPatch(tc.text, tc.deadline, tc.priority)
			if tc.wantErr {
				if err == nil {
					t.Fatal("editPatch should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("editPatch failed: %v", err)
			}
			if len(patch) != len(tc.wantKeys) {
				t.Fatalf("patch = %v, want keys %v", patch, tc.wantKeys)
			}
			for _, key := range tc.wantKeys {
				if _, ok := patch[key]; !ok {
					t.Errorf("patch missing key %q", key)
				}
			}
		})
	}
}

func TestEditPatch_AppliesThroughStore(t *testing.T) {
	ts := newResolverStore(t, "original text")
	task := ts.Snapshot().Tasks[0]

	patch, err := editPatch("rewritten", "2026-09-01T18:00", "high")
	if err != nil {
		t.Fatalf("editPatch failed: %v", err)
	}
	if err := ts.Update(context.Background(), task.ID, patch); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := ts.Get(task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Text != "rewritten" {
		t.Errorf("text = %q, want rewritten", got.Text)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high", got.Priority)
	}
	if got.Deadline == nil || got.Deadline.Year() != 2026 || got.Deadline.Month() != time.September {
		t.Errorf("deadline = %v, want September 2026", got.Deadline)
	}
	if !got.AddedDate.Equal(task.AddedDate) || got.ID != task.ID {
		t.Error("edit must not move id or addedDate")
	}

	clearPatch, err := editPatch("", "none", "")
	if err != nil {
		t.Fatalf("editPatch failed: %v", err)
	}
	if err := ts.Update(context.Background(), task.ID, clearPatch); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err = ts.Get(task.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Deadline != nil {
		t.Errorf("deadline should be cleared, got %v", got.Deadline)
	}
}
