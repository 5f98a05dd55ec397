package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestSecureHandlerRedaction tests that sensitive attributes are masked.
func TestSecureHandlerRedaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{name: "cookie is redacted", key: "cookie", value: "session=abc123", wantMask: true},
		{name: "authorization is redacted", key: "Authorization", value: "Bearer xyz", wantMask: true},
		{name: "api key is redacted", key: "api_key", value: "k-12345", wantMask: true},
		{name: "domain passes through", key: "domain", value: "example.com", wantMask: false},
		{name: "error passes through", key: "error", value: "lookup failed", wantMask: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("test", tt.key, tt.value)

			output := buf.String()
			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("sensitive value leaked into log: %s", output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask in log output: %s", output)
				}
			} else {
				if !strings.Contains(output, tt.value) {
					t.Errorf("expected value in log output: %s", output)
				}
			}
		})
	}
}

// TestSecureHandlerWithAttrs tests that pre-bound attributes are sanitized.
func TestSecureHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

	bound := logger.With("cookie", "session=secret", "domain", "example.com")
	bound.Info("fetching")

	output := buf.String()
	if strings.Contains(output, "session=secret") {
		t.Errorf("bound sensitive value leaked: %s", output)
	}
	if !strings.Contains(output, "example.com") {
		t.Errorf("expected domain in output: %s", output)
	}
}

// TestSecureHandlerGroups tests recursive sanitization inside groups.
func TestSecureHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSecureHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("request",
		slog.Group("headers",
			slog.String("Cookie", "id=42"),
			slog.String("Accept", "text/html"),
		),
	)

	output := buf.String()
	if strings.Contains(output, "id=42") {
		t.Errorf("grouped sensitive value leaked: %s", output)
	}
	if !strings.Contains(output, "text/html") {
		t.Errorf("expected non-sensitive grouped value: %s", output)
	}
}
