// Package message composes the human-readable bodies posted back to the
// channel.
package message

import (
	"fmt"
	"strings"
	"time"

	"taskbot/internal/domain"
)

const (
	TitleNewTask = "🎯 New task"
	TitleTask    = "🎯 Task"
	TitleTaskDue = "⏰ Task Due 🔴"
)

func ComposeTaskCreated(t domain.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString("🎯 New Task \n")
	writeEntry(&b, t, "◽")
	if until := TimeUntil(t.DueAt, now); until != "" {
		fmt.Fprintf(&b, "⏳ %s\n", until)
	}
	return b.String()
}

func ComposeTaskDone(t domain.Task) string {
	var b strings.Builder
	b.WriteString("✅️ Task Done \n")
	writeEntry(&b, t, "✅")
	return b.String()
}

func ComposeTaskList(tasks []domain.Task) string {
	if len(tasks) < 1 {
		return "No open tasks"
	}
	var b strings.Builder
	b.WriteString("📝 Tasks \n\n")
	for _, t := range tasks {
		writeEntry(&b, t, "◽")
		b.WriteByte('\n')
	}
	return b.String()
}

func ComposeCompletedTasks(tasks []domain.Task) string {
	if len(tasks) < 1 {
		return "No completed tasks"
	}
	var b strings.Builder
	b.WriteString("📝 Completed Tasks \n\n")
	for _, t := range tasks {
		writeEntry(&b, t, "✅")
		b.WriteByte('\n')
	}
	return b.String()
}

func ComposeTaskDue(t domain.Task) string {
	var b strings.Builder
	writeEntry(&b, t, "🔴 ")
	return b.String()
}

func ComposeError(reason string) string {
	return "❌ Error: " + reason
}

func writeEntry(b *strings.Builder, t domain.Task, marker string) {
	fmt.Fprintf(b, "Task ID: %s\n", t.ID)
	fmt.Fprintf(b, "%sTask: %s\n", marker, t.Description)
	fmt.Fprintf(b, "👨🏻‍💻 Assigned to: %s\n", t.AssignedTo)
	fmt.Fprintf(b, "📅 Due By: %s\n", FormatDateTime(t.DueAt))
}

// TimeUntil renders the remaining time as "<H>hrs <M>mins time", or "due"
// once the deadline has passed.
func TimeUntil(due, now time.Time) string {
	if due.IsZero() {
		return ""
	}
	if due.Before(now) {
		return "due"
	}
	d := due.Sub(now)
	hours := int(d / time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)
	return fmt.Sprintf("%dhrs %dmins time", hours, minutes)
}

// FormatDateTime renders a due time as "Weekday, Month D, YYYY by HH:MM".
func FormatDateTime(t time.Time) string {
	return t.Format("Monday, January 2, 2006 by 15:04")
}
