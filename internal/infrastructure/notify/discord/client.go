package discord

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/minicrushers/minitracker/internal/domain/report"
	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

type ClientConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

// Client posts messages to a single Discord webhook.
type Client struct {
	client     *http.Client
	webhookURL string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig, logger *logging.Logger) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.Wrap(usecase.ErrInvalidInput, "discord webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		client:     &http.Client{Timeout: timeout},
		webhookURL: webhookURL,
		logger:     logger,
	}, nil
}

type webhookEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type webhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []webhookEmbed `json:"embeds,omitempty"`
}

func buildPayload(msg report.Message) webhookPayload {
	payload := webhookPayload{Content: msg.Content}
	for _, embed := range msg.Embeds {
		payload.Embeds = append(payload.Embeds, webhookEmbed{
			Title:       embed.Title,
			Description: embed.Description,
		})
	}
	return payload
}

// Send delivers one message. Messages carrying file attachments go out as
// multipart/form-data with the JSON payload in the payload_json field, the
// rest as a plain JSON body.
func (c *Client) Send(ctx context.Context, msg report.Message) error {
	body, err := sonic.Marshal(buildPayload(msg))
	if err != nil {
		return errors.Wrap(err, "marshal webhook payload")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.Int("discord.embeds", len(msg.Embeds)),
			attribute.Int("discord.files", len(msg.Files)),
		)
	}

	var req *http.Request
	if len(msg.Files) == 0 {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
		if err != nil {
			return errors.Wrap(err, "create webhook request")
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		writer := multipart.NewWriter(buf)
		payloadField, err := writer.CreateFormField("payload_json")
		if err != nil {
			return errors.Wrap(err, "create payload field")
		}
		if _, err := payloadField.Write(body); err != nil {
			return errors.Wrap(err, "write payload field")
		}
		for i, file := range msg.Files {
			part, err := writer.CreateFormFile("files["+strconv.Itoa(i)+"]", file.Name)
			if err != nil {
				return errors.Wrapf(err, "create file part %s", file.Name)
			}
			if _, err := part.Write(file.Data); err != nil {
				return errors.Wrapf(err, "write file part %s", file.Name)
			}
		}
		if err := writer.Close(); err != nil {
			return errors.Wrap(err, "finalize multipart body")
		}

		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return errors.Wrap(err, "create webhook request")
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(usecase.ErrDelivery, "post webhook: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return errors.Wrapf(usecase.ErrDelivery, "post webhook: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	c.logger.DebugContext(ctx, "webhook delivered", "embeds", len(msg.Embeds), "files", len(msg.Files))
	return nil
}
