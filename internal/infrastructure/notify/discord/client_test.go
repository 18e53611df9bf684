package discord

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicrushers/minitracker/internal/domain/report"
	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

func TestSendJSONPayload(t *testing.T) {
	t.Parallel()

	var captured webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, sonic.Unmarshal(raw, &captured))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{WebhookURL: server.URL}, logging.NewNop())
	require.NoError(t, err)

	msg := report.Message{
		Content: "alice completed the Mini in 01:30",
		Embeds:  []report.Embed{{Title: "Current Monday Standing", Description: "1. alice - 01:30\n"}},
	}
	require.NoError(t, client.Send(context.Background(), msg))

	assert.Equal(t, msg.Content, captured.Content)
	require.Len(t, captured.Embeds, 1)
	assert.Equal(t, "Current Monday Standing", captured.Embeds[0].Title)
}

func TestSendMultipartWithFiles(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var payload webhookPayload
		require.NoError(t, sonic.Unmarshal([]byte(r.FormValue("payload_json")), &payload))
		assert.Empty(t, payload.Content)

		file, header, err := r.FormFile("files[0]")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "chart.png", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{WebhookURL: server.URL}, logging.NewNop())
	require.NoError(t, err)

	msg := report.Message{
		Files: []report.File{{Name: "chart.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}},
	}
	require.NoError(t, client.Send(context.Background(), msg))
}

func TestSendNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Invalid Webhook Token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{WebhookURL: server.URL}, logging.NewNop())
	require.NoError(t, err)

	err = client.Send(context.Background(), report.Message{Content: "hello"})
	require.ErrorIs(t, err, usecase.ErrDelivery)
	assert.Contains(t, err.Error(), "status=401")
}

func TestNewClientRequiresWebhookURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient(ClientConfig{}, logging.NewNop())
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}
