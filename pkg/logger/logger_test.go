package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		value string
		env   string
		want  slog.Level
	}{
		{value: "debug", want: slog.LevelDebug},
		{value: "", env: "development", want: slog.LevelDebug},
		{value: "", want: slog.LevelInfo},
		{value: " WARNING ", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: "fatal", want: LevelCritical},
		{value: "loud", want: slog.LevelInfo},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLevel(tc.value, tc.env), tc.value)
	}
}

func TestParseFormatDefaultsToJSON(t *testing.T) {
	assert.Equal(t, "text", parseFormat("TEXT"))
	assert.Equal(t, "json", parseFormat("yaml"))
}

func TestErrorHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "json").With("service", "test")

	log.BusinessError("bills.create: rejected", nil)
	assert.Empty(t, buf.String())

	log.BusinessError("bills.create: rejected", errors.New("name is required"), "user_id", "u-1")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"err":"name is required"`)
	assert.Contains(t, buf.String(), `"service":"test"`)

	buf.Reset()
	log.InternalError("bills.create: insert failed", errors.New("conn reset"))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)

	buf.Reset()
	log.Critical("db: unreachable")
	assert.Contains(t, buf.String(), `"level":"CRITICAL"`)
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Critical("ignored", "k", "v")
	})
}

func TestNewFromOptions(t *testing.T) {
	var buf bytes.Buffer
	log := NewFromOptions(Options{Env: "Development", Format: "json", Service: "budgetbuddy-test", Output: &buf})

	log.Debug("bills.list: loaded", "count", 2)
	out := buf.String()
	assert.Contains(t, out, `"service":"budgetbuddy-test"`)
	assert.Contains(t, out, `"env":"development"`)
	assert.Contains(t, out, `"source"`)

	buf.Reset()
	log = NewFromOptions(Options{Level: "warn", Output: &buf})
	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Warn("shown")
	assert.Contains(t, buf.String(), `"service":"budgetbuddy"`)
	assert.Contains(t, buf.String(), `"env":"production"`)
	assert.NotContains(t, buf.String(), `"source"`)
}
