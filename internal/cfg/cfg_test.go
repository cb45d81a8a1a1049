package cfg

import (
	"flag"
	"strings"
	"testing"

	"github.com/linnemanlabs/pulse/internal/triage"
)

// validBase returns a Config with all required fields set to valid values.
func validBase() Config {
	return Config{
		DrainSeconds:          60,
		ShutdownBudgetSeconds: 90,
		APIPort:               8080,
		NotifyMinCategory:     "urgent",
	}
}

func TestRegisterFlags_Defaults(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse empty args: %v", err)
	}

	if c.DrainSeconds != 60 {
		t.Errorf("DrainSeconds = %d, want 60", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 90 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 90", c.ShutdownBudgetSeconds)
	}
	if c.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", c.APIPort)
	}
	if c.APIToken != "" {
		t.Errorf("APIToken = %q, want empty", c.APIToken)
	}
	if c.NotifyMinCategory != "urgent" {
		t.Errorf("NotifyMinCategory = %q, want %q", c.NotifyMinCategory, "urgent")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestRegisterFlags_Override(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	args := []string{
		"-drain-seconds", "30",
		"-shutdown-budget-seconds", "120",
		"-http-port", "9090",
		"-api-token", "tok-override",
		"-slack-webhook-url", "https://hooks.slack.test/x",
		"-notify-min-category", "emergency",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	if c.DrainSeconds != 30 {
		t.Errorf("DrainSeconds = %d, want 30", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 120 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 120", c.ShutdownBudgetSeconds)
	}
	if c.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", c.APIPort)
	}
	if c.APIToken != "tok-override" {
		t.Errorf("APIToken = %q, want %q", c.APIToken, "tok-override")
	}
	if c.SlackWebhookURL != "https://hooks.slack.test/x" {
		t.Errorf("SlackWebhookURL = %q", c.SlackWebhookURL)
	}
	if c.NotifyThreshold() != triage.CategoryEmergency {
		t.Errorf("NotifyThreshold() = %s, want emergency", c.NotifyThreshold())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errSubstr []string // substrings that must appear in error message
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "minimum valid values",
			mutate: func(c *Config) {
				c.DrainSeconds, c.ShutdownBudgetSeconds, c.APIPort = 1, 2, 1
			},
		},
		{
			name: "maximum valid values",
			mutate: func(c *Config) {
				c.DrainSeconds, c.ShutdownBudgetSeconds, c.APIPort = 299, 300, 65535
			},
		},
		{
			name:      "drain zero",
			mutate:    func(c *Config) { c.DrainSeconds = 0 },
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS"},
		},
		{
			name:      "drain above max",
			mutate:    func(c *Config) { c.DrainSeconds, c.ShutdownBudgetSeconds = 301, 302 },
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS", "SHUTDOWN_BUDGET_SECONDS"},
		},
		{
			name:      "budget not greater than drain",
			mutate:    func(c *Config) { c.DrainSeconds, c.ShutdownBudgetSeconds = 60, 60 },
			wantErr:   true,
			errSubstr: []string{"must be greater than DRAIN_SECONDS"},
		},
		{
			name:      "port zero",
			mutate:    func(c *Config) { c.APIPort = 0 },
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT"},
		},
		{
			name:      "port above max",
			mutate:    func(c *Config) { c.APIPort = 65536 },
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT"},
		},
		{
			name:      "unknown notify category",
			mutate:    func(c *Config) { c.NotifyMinCategory = "critical" },
			wantErr:   true,
			errSubstr: []string{"NOTIFY_MIN_CATEGORY", "critical"},
		},
		{
			name:      "empty notify category",
			mutate:    func(c *Config) { c.NotifyMinCategory = "" },
			wantErr:   true,
			errSubstr: []string{"NOTIFY_MIN_CATEGORY"},
		},
		{
			name: "multiple errors joined",
			mutate: func(c *Config) {
				c.APIPort = -1
				c.NotifyMinCategory = "nope"
			},
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT", "NOTIFY_MIN_CATEGORY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validBase()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, sub := range tt.errSubstr {
				if !strings.Contains(err.Error(), sub) {
					t.Errorf("error %q missing substring %q", err, sub)
				}
			}
		})
	}
}

func TestNotifyThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want triage.Category
	}{
		{"emergency", triage.CategoryEmergency},
		{"urgent", triage.CategoryUrgent},
		{"priority", triage.CategoryPriority},
		{"routine", triage.CategoryRoutine},
		{"garbage", triage.CategoryEmergency},
	}

	for _, tt := range tests {
		c := Config{NotifyMinCategory: tt.in}
		if got := c.NotifyThreshold(); got != tt.want {
			t.Errorf("NotifyThreshold(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
