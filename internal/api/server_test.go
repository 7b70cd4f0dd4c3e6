package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskbot/internal/domain"
)

type stubHandler struct {
	gotMessage string
	gotChannel string
	reply      domain.Reply
}

func (h *stubHandler) Handle(_ context.Context, message, channelID string) domain.Reply {
	h.gotMessage = message
	h.gotChannel = channelID
	return h.reply
}

func inbound(message, channelID string) *bytes.Buffer {
	payload := domain.InboundMessage{
		Message: message,
		Settings: []domain.Setting{
			{Label: "channelID", Type: "text", Required: true, Default: channelID},
		},
	}
	body, _ := json.Marshal(payload)
	return bytes.NewBuffer(body)
}

func TestFormatMessage(t *testing.T) {
	h := &stubHandler{reply: domain.Reply{
		Title: "🎯 New task", Message: "ok", Status: domain.StatusSuccess, Sender: domain.SenderBot,
	}}
	srv := httptest.NewServer(NewServer(h, "http://localhost:8080"))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/format-message", "application/json",
		inbound("TODO: Ship report @alice /d 2025-03-01 14:30", "C1"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var reply domain.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Status != domain.StatusSuccess || reply.Title != "🎯 New task" {
		t.Errorf("reply = %+v", reply)
	}
	if h.gotChannel != "C1" {
		t.Errorf("channel = %q, want C1 (from the channelID setting)", h.gotChannel)
	}
	if !strings.HasPrefix(h.gotMessage, "TODO:") {
		t.Errorf("message = %q", h.gotMessage)
	}
}

func TestFormatMessageMissingChannel(t *testing.T) {
	srv := httptest.NewServer(NewServer(&stubHandler{}, "http://localhost:8080"))
	defer srv.Close()

	body, _ := json.Marshal(domain.InboundMessage{Message: "/tasks"})
	resp, err := http.Post(srv.URL+"/format-message", "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestFormatMessageBadJSON(t *testing.T) {
	srv := httptest.NewServer(NewServer(&stubHandler{}, "http://localhost:8080"))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/format-message", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestIntegrationJSON(t *testing.T) {
	srv := httptest.NewServer(NewServer(&stubHandler{}, "https://bot.example.com"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/integration.json")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var desc Descriptor
	if err := json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if desc.Data.TargetURL != "https://bot.example.com/format-message" {
		t.Errorf("TargetURL = %q", desc.Data.TargetURL)
	}
	found := false
	for _, s := range desc.Data.Settings {
		if s.Label == "channelID" {
			found = true
		}
	}
	if !found {
		t.Error("descriptor missing channelID setting")
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(NewServer(&stubHandler{}, "http://localhost:8080"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
