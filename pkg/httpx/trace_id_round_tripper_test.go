package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"auction_client/pkg/contextx"
	"auction_client/pkg/httpx"
)

func TestTraceIDRoundTripper(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		ctx    context.Context
		header string
		check  func(got string)
	}{
		{
			name: "Trace id from context",
			ctx:  contextx.WithTraceID(context.Background(), "trace-from-ctx"),
			check: func(got string) {
				rq.Equal("trace-from-ctx", got)
			},
		},
		{
			name: "Generated trace id",
			ctx:  context.Background(),
			check: func(got string) {
				const xidLen = 20

				rq.Len(got, xidLen)
			},
		},
		{
			name:   "Explicit header wins",
			ctx:    contextx.WithTraceID(context.Background(), "trace-from-ctx"),
			header: "explicit",
			check: func(got string) {
				rq.Equal("explicit", got)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var got string

			httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get(httpx.HeaderNameTraceID)
				w.WriteHeader(http.StatusOK)
			}))
			defer httpServer.Close()

			client := &http.Client{
				Transport: httpx.NewTraceIDRoundTripper(http.DefaultTransport),
			}

			req, err := http.NewRequestWithContext(tc.ctx, http.MethodGet, httpServer.URL, http.NoBody)
			rq.NoError(err)

			if tc.header != "" {
				req.Header.Set(httpx.HeaderNameTraceID, tc.header)
			}

			resp, err := client.Do(req)
			rq.NoError(err)

			defer resp.Body.Close()

			tc.check(got)
		})
	}
}
