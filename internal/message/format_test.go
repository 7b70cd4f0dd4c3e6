package message

import (
	"strings"
	"testing"
	"time"

	"taskbot/internal/domain"
)

func TestTimeUntil(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := TimeUntil(now.Add(2*time.Hour+30*time.Minute), now); got != "2hrs 30mins time" {
		t.Errorf("TimeUntil = %q", got)
	}
	if got := TimeUntil(now.Add(-time.Minute), now); got != "due" {
		t.Errorf("TimeUntil past = %q, want %q", got, "due")
	}
	if got := TimeUntil(time.Time{}, now); got != "" {
		t.Errorf("TimeUntil zero = %q, want empty", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	due := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)
	if got := FormatDateTime(due); got != "Saturday, March 1, 2025 by 14:30" {
		t.Errorf("FormatDateTime = %q", got)
	}
}

func TestComposeEmptyLists(t *testing.T) {
	if got := ComposeTaskList(nil); got != "No open tasks" {
		t.Errorf("ComposeTaskList(nil) = %q", got)
	}
	if got := ComposeCompletedTasks(nil); got != "No completed tasks" {
		t.Errorf("ComposeCompletedTasks(nil) = %q", got)
	}
}

func TestComposeTaskDone(t *testing.T) {
	task := domain.Task{
		ID:          "#1",
		Description: "Ship report",
		AssignedTo:  "@alice",
		DueAt:       time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC),
	}
	got := ComposeTaskDone(task)
	for _, want := range []string{"Task Done", "Task ID: #1", "Ship report", "@alice", "Saturday, March 1, 2025 by 14:30"} {
		if !strings.Contains(got, want) {
			t.Errorf("ComposeTaskDone missing %q in %q", want, got)
		}
	}
}

func TestComposeError(t *testing.T) {
	if got := ComposeError("No task provided"); got != "❌ Error: No task provided" {
		t.Errorf("ComposeError = %q", got)
	}
}
