package domain

import "time"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SenderBot labels every message the bot itself authors.
const SenderBot = "Task Bot"

type Task struct {
	ID          string
	Description string
	AssignedTo  string
	DueDate     string // YYYY-MM-DD
	DueTime     string // HH:MM, 24-hour
	DueAt       time.Time
	ChannelID   string
	Completed   bool
	CreatedAt   time.Time
}

// Envelope is one outbound message awaiting best-effort delivery.
// The ID is a correlation id for delivery logs only; queue order is FIFO.
type Envelope struct {
	ID         string
	ChannelID  string
	Title      string
	Message    string
	Status     string
	Sender     string
	EnqueuedAt time.Time
}

// Reply is both the synchronous response to the platform and the body
// POSTed to the return webhook.
type Reply struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Sender  string `json:"sender"`
}

type Setting struct {
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  string `json:"default"`
}

// InboundMessage is the payload the platform POSTs for every channel message.
type InboundMessage struct {
	Message  string    `json:"message"`
	Settings []Setting `json:"settings"`
}

// ChannelID reads the originating channel from the integration settings.
func (m InboundMessage) ChannelID() string {
	for _, s := range m.Settings {
		if s.Label == "channelID" {
			return s.Default
		}
	}
	return ""
}
