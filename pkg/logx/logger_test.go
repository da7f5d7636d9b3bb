package logx_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"auction_client/pkg/logx"
)

func TestParseLevel(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		input string
		level slog.Level
	}{
		{input: "debug", level: slog.LevelDebug},
		{input: "WARN", level: slog.LevelWarn},
		{input: "error", level: slog.LevelError},
		{input: "info", level: slog.LevelInfo},
		{input: "", level: slog.LevelInfo},
		{input: "verbose", level: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(*testing.T) {
			rq.Equal(tc.level, logx.ParseLevel(tc.input))
		})
	}
}
