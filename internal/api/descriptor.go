package api

import "taskbot/internal/domain"

// Descriptor is the static integration document the host platform fetches
// to register the bot against a channel.
type Descriptor struct {
	Data DescriptorData `json:"data"`
}

type DescriptorData struct {
	Descriptions    Descriptions     `json:"descriptions"`
	IntegrationType string           `json:"integration_type"`
	KeyFeatures     []string         `json:"key_features"`
	Settings        []domain.Setting `json:"settings"`
	TargetURL       string           `json:"target_url"`
	IsActive        bool             `json:"is_active"`
	Author          string           `json:"author"`
}

type Descriptions struct {
	AppName        string `json:"app_name"`
	AppDescription string `json:"app_description"`
	AppURL         string `json:"app_url"`
}

func NewDescriptor(publicURL string) Descriptor {
	return Descriptor{
		Data: DescriptorData{
			Descriptions: Descriptions{
				AppName:        "Task Bot",
				AppDescription: "Creates and tracks tasks from channel messages, with due-date reminders.",
				AppURL:         publicURL,
			},
			IntegrationType: "modifier",
			KeyFeatures: []string{
				"Create tasks with TODO: <description> @<assignee> /d YYYY-MM-DD HH:MM",
				"List open and completed tasks per channel",
				"Mark tasks done and delete tasks by id",
				"Due-date reminders posted back to the channel",
			},
			Settings: []domain.Setting{
				{Label: "channelID", Type: "text", Required: true, Default: ""},
			},
			TargetURL: publicURL + "/format-message",
			IsActive:  true,
			Author:    "Task Bot",
		},
	}
}
