package httpx

import (
	"fmt"
	"net/http"

	"github.com/rs/xid"

	"auction_client/pkg/contextx"
)

const HeaderNameTraceID = "X-Trace-Id"

// TraceIDRoundTripper проставляет X-Trace-Id исходящему запросу: берёт
// trace id из контекста, а если его нет, генерирует новый.
type TraceIDRoundTripper struct {
	next http.RoundTripper
}

func NewTraceIDRoundTripper(next http.RoundTripper) TraceIDRoundTripper {
	return TraceIDRoundTripper{
		next: next,
	}
}

func (rt TraceIDRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(HeaderNameTraceID) == "" {
		traceID, err := contextx.TraceIDFromContext(req.Context())
		if err != nil {
			traceID = contextx.TraceID(xid.New().String())
		}

		// RoundTripper не должен менять исходный запрос.
		req = req.Clone(req.Context())
		req.Header.Set(HeaderNameTraceID, traceID.String())
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
