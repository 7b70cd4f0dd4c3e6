// Package command interprets the task command language embedded in chat
// messages. Extraction follows a fixed marker precedence: the description
// sits between "TODO:" and the next "@", the assignee between "@" and the
// next "/d", and the due-date field after "/d".
package command

import (
	"regexp"
	"strings"
	"time"
)

const (
	TodoMarker   = "TODO:"
	assignMarker = "@"
	dateMarker   = "/d"

	// NotAssigned is the assignee sentinel when no "@" segment is present.
	NotAssigned = "Not Assigned"
	// NoDueDate is the due-field sentinel when no "/d" segment is present.
	NoDueDate = "N/A"

	dateTimeLayout = "2006-01-02 15:04"
)

var (
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)
	timePattern = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)
)

// ValidationError reports a malformed command. The reason is safe to echo
// back to the channel verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Fields is the structured result of parsing a TODO command.
type Fields struct {
	Description string
	AssignedTo  string
	DueDate     string
	DueTime     string
	DueAt       time.Time
}

// StripTags removes markup tags and surrounding whitespace. The platform
// wraps messages in formatting tags before POSTing them.
func StripTags(message string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(message, ""))
}

// Parse extracts and validates the fields of a TODO command from an
// already tag-stripped message. All checks are pure and side-effect free;
// every failure is a *ValidationError with a distinct reason.
func Parse(message string) (Fields, error) {
	desc := Description(message)
	if desc == "" || strings.HasPrefix(desc, assignMarker) || strings.HasPrefix(desc, dateMarker) {
		return Fields{}, &ValidationError{Reason: "No task provided"}
	}

	if !strings.Contains(message, dateMarker) {
		return Fields{}, &ValidationError{Reason: "Date time field not set"}
	}

	field := DueField(message)
	if !datePattern.MatchString(field) {
		return Fields{}, &ValidationError{Reason: "Date time should follow the format YYYY-MM-DD HH:MM"}
	}

	date, clock, _ := strings.Cut(field, " ")
	if !timePattern.MatchString(clock) {
		return Fields{}, &ValidationError{Reason: "Invalid time provided"}
	}

	dueAt, err := time.ParseInLocation(dateTimeLayout, field, time.Local)
	if err != nil {
		// Shape matched but the calendar rejected it (e.g. month 13).
		return Fields{}, &ValidationError{Reason: "Date time should follow the format YYYY-MM-DD HH:MM"}
	}

	return Fields{
		Description: desc,
		AssignedTo:  Assignee(message),
		DueDate:     date,
		DueTime:     clock,
		DueAt:       dueAt,
	}, nil
}

// Description returns the trimmed text between the TODO marker and the
// next "@", or the rest of the message if no assignee follows.
func Description(message string) string {
	i := strings.Index(message, TodoMarker)
	if i < 0 {
		return ""
	}
	rest := message[i+len(TodoMarker):]
	if j := strings.Index(rest, assignMarker); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// Assignee returns "@"+name from the segment between "@" and the next
// "/d", or the NotAssigned sentinel when the message has no "@".
func Assignee(message string) string {
	i := strings.Index(message, assignMarker)
	if i < 0 {
		return NotAssigned
	}
	rest := message[i+len(assignMarker):]
	if j := strings.Index(rest, dateMarker); j >= 0 {
		rest = rest[:j]
	}
	return assignMarker + strings.TrimSpace(rest)
}

// DueField returns the trimmed text after the "/d" marker, or the
// NoDueDate sentinel when the marker is absent.
func DueField(message string) string {
	i := strings.Index(message, dateMarker)
	if i < 0 {
		return NoDueDate
	}
	return strings.TrimSpace(message[i+len(dateMarker):])
}
