package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/pulse/internal/triage"
)

func testAssessment(v triage.VitalSigns) *triage.Assessment {
	return &triage.Assessment{
		ID:         "01JN123",
		Vitals:     v,
		Result:     triage.Classify(v),
		AssessedAt: time.Date(2026, 2, 26, 14, 23, 0, 0, time.UTC),
	}
}

func TestSend_PostsToWebhook(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type = %q, want application/json", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL, log.Nop(), triage.CategoryUrgent)
	a := testAssessment(triage.VitalSigns{HeartRate: 130, Oxygen: 96, PainLevel: 6, Temperature: 102.3})

	if err := n.Send(context.Background(), a); err != nil {
		t.Fatalf("Send: %v", err)
	}

	blocks, ok := got["blocks"].([]any)
	if !ok {
		t.Fatal("expected blocks array in payload")
	}

	// header, divider, fields, divider, summary, divider, context = 7 blocks
	if len(blocks) != 7 {
		t.Errorf("blocks count = %d, want 7", len(blocks))
	}

	header := blocks[0].(map[string]any)
	headerText := header["text"].(map[string]any)["text"].(string)
	if !strings.Contains(headerText, "Emergency") {
		t.Errorf("header text = %q, want to contain Emergency", headerText)
	}
	if !strings.Contains(headerText, "\U0001f534") {
		t.Errorf("header should contain red circle for emergency")
	}

	summary := blocks[4].(map[string]any)["text"].(map[string]any)["text"].(string)
	if !strings.Contains(summary, "Heart Rate is 130") {
		t.Errorf("summary block = %q, want classification summary", summary)
	}

	ctxText := blocks[6].(map[string]any)["elements"].([]any)[0].(map[string]any)["text"].(string)
	if !strings.Contains(ctxText, "01JN123") || !strings.Contains(ctxText, "2026-02-26 14:23 UTC") {
		t.Errorf("context block = %q, want id and timestamp", ctxText)
	}

	fallback, _ := got["text"].(string)
	if !strings.HasPrefix(fallback, "Emergency triage:") {
		t.Errorf("fallback text = %q", fallback)
	}
}

func TestSend_NoOpWithoutURL(t *testing.T) {
	t.Parallel()

	n := New("", log.Nop(), triage.CategoryEmergency)
	if err := n.Send(context.Background(), testAssessment(triage.VitalSigns{})); err != nil {
		t.Fatalf("Send with empty URL should be no-op, got: %v", err)
	}
}

func TestSend_Non2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("invalid_token"))
	}))
	defer srv.Close()

	n := New(srv.URL, nil, triage.CategoryEmergency)
	err := n.Send(context.Background(), testAssessment(triage.VitalSigns{HeartRate: 150}))
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "invalid_token") {
		t.Errorf("error = %q, want status and body", err)
	}
}

func TestSend_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := New(srv.URL, log.Nop(), triage.CategoryEmergency)
	if err := n.Send(ctx, testAssessment(triage.VitalSigns{})); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestThreshold(t *testing.T) {
	t.Parallel()

	n := New("", nil, triage.CategoryPriority)
	if n.Threshold() != triage.CategoryPriority {
		t.Errorf("Threshold() = %s, want priority", n.Threshold())
	}
}

func TestCategoryEmoji(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category triage.Category
		want     string
	}{
		{triage.CategoryEmergency, "\U0001f534"},
		{triage.CategoryUrgent, "\U0001f7e0"},
		{triage.CategoryPriority, "\U0001f7e1"},
		{triage.CategoryRoutine, "\U0001f7e2"},
	}

	for _, tt := range tests {
		if got := categoryEmoji(tt.category); got != tt.want {
			t.Errorf("categoryEmoji(%s) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestFieldsBlock_Vitals(t *testing.T) {
	t.Parallel()

	b := fieldsBlock(testAssessment(triage.VitalSigns{HeartRate: 88, Oxygen: 95, PainLevel: 4, Temperature: 100.24}))
	fields := b["fields"].([]map[string]any)

	var texts []string
	for _, f := range fields {
		texts = append(texts, f["text"].(string))
	}
	joined := strings.Join(texts, "\n")

	for _, want := range []string{"88 bpm", "95%", "4/10", "100.2°F", "After treatment", "Standard procedure"} {
		if !strings.Contains(joined, want) {
			t.Errorf("fields %q missing %q", joined, want)
		}
	}
}
