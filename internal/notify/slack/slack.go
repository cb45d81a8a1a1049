// Package slack sends triage notifications to Slack via incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/pulse/internal/triage"
)

const httpTimeout = 10 * time.Second

// Notifier sends triage assessments to a Slack webhook.
type Notifier struct {
	webhookURL string
	threshold  triage.Category
	client     *http.Client
	logger     log.Logger
}

// New creates a new Slack notifier for assessments at or above threshold.
// If webhookURL is empty, Send is a no-op.
func New(webhookURL string, logger log.Logger, threshold triage.Category) *Notifier {
	if logger == nil {
		logger = log.Nop()
	}
	return &Notifier{
		webhookURL: webhookURL,
		threshold:  threshold,
		client:     &http.Client{Timeout: httpTimeout},
		logger:     logger,
	}
}

// Threshold is the least severe category this notifier announces.
func (n *Notifier) Threshold() triage.Category {
	return n.threshold
}

// Send posts an assessment to the configured Slack webhook.
// If no webhook URL is configured, it returns nil immediately.
func (n *Notifier) Send(ctx context.Context, a *triage.Assessment) error {
	if n.webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(buildMessage(a))
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req) //nolint:gosec // G704: webhookURL is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(respBody))
	}

	n.logger.Info(ctx, "slack notification sent", "assessment_id", a.ID, "category", a.Result.Category.String())
	return nil
}

func buildMessage(a *triage.Assessment) map[string]any {
	return map[string]any{
		"text": fmt.Sprintf("%s triage: %s", categoryTitle(a.Result.Category), a.Result.Summary),
		"blocks": []map[string]any{
			headerBlock(a),
			{"type": "divider"},
			fieldsBlock(a),
			{"type": "divider"},
			summaryBlock(a),
			{"type": "divider"},
			contextBlock(a),
		},
	}
}

func headerBlock(a *triage.Assessment) map[string]any {
	text := fmt.Sprintf("%s %s triage", categoryEmoji(a.Result.Category), categoryTitle(a.Result.Category))

	return map[string]any{
		"type": "header",
		"text": map[string]any{
			"type": "plain_text",
			"text": text,
		},
	}
}

func fieldsBlock(a *triage.Assessment) map[string]any {
	v := a.Vitals
	fields := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Treatment:* %s", a.Result.Treatment),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Medication:* %s", a.Result.Medication),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Heart rate:* %d bpm", v.HeartRate),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Oxygen:* %d%%", v.Oxygen),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Pain:* %d/10", v.PainLevel),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Temperature:* %.1f°F", v.Temperature),
		},
	}

	return map[string]any{
		"type":   "section",
		"fields": fields,
	}
}

func summaryBlock(a *triage.Assessment) map[string]any {
	return map[string]any{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Summary*\n\n%s", a.Result.Summary),
		},
	}
}

func contextBlock(a *triage.Assessment) map[string]any {
	elements := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("pulse • assessment %s • %s", a.ID, a.AssessedAt.UTC().Format("2006-01-02 15:04 UTC")),
		},
	}

	return map[string]any{
		"type":     "context",
		"elements": elements,
	}
}

func categoryEmoji(c triage.Category) string {
	switch c {
	case triage.CategoryEmergency:
		return "\U0001f534" // red circle
	case triage.CategoryUrgent:
		return "\U0001f7e0" // orange circle
	case triage.CategoryPriority:
		return "\U0001f7e1" // yellow circle
	default:
		return "\U0001f7e2" // green circle
	}
}

func categoryTitle(c triage.Category) string {
	switch c {
	case triage.CategoryEmergency:
		return "Emergency"
	case triage.CategoryUrgent:
		return "Urgent"
	case triage.CategoryPriority:
		return "Priority"
	default:
		return "Routine"
	}
}
