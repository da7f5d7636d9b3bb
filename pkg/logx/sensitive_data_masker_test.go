package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"auction_client/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Token",
			input:  []byte(`{"token":"123:ABC","chat_id":42}`),
			output: []byte(`{"token":"[MASKED]","chat_id":42}`),
		},
		{
			name:   "Session cookie",
			input:  []byte("GET /api/user/data HTTP/1.1\r\nCookie: session=eyJ1c2VyX3Nlc3Npb25faWQiOiIxIn0\r\n\r\n"),
			output: []byte("GET /api/user/data HTTP/1.1\r\nCookie: [MASKED]\r\n\r\n"),
		},
		{
			name:   "Set-Cookie header",
			input:  []byte("HTTP/1.1 200 OK\r\nSet-Cookie: session=abc.def; HttpOnly; Path=/\r\n"),
			output: []byte("HTTP/1.1 200 OK\r\nSet-Cookie: session=[MASKED]; HttpOnly; Path=/\r\n"),
		},
		{
			name:   "Game payload untouched",
			input:  []byte(`{"action":"buy","player_id":"human"}`),
			output: []byte(`{"action":"buy","player_id":"human"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
