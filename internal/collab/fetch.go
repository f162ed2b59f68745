package collab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kairowan/gatehouse/internal/domain"
)

// OutboundFetch performs bounded GETs against pre-resolved URLs. The default
// transport keeps certificate verification on; there is no switch to turn it
// off.
type OutboundFetch struct {
	client  *http.Client
	maxBody int64
}

func NewOutboundFetch(timeout time.Duration) *OutboundFetch {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &OutboundFetch{
		client:  &http.Client{Timeout: timeout},
		maxBody: 4 << 20, // 4MB
	}
}

// Get returns the body on 2xx. Timeout and non-2xx both surface as
// ExternalServiceError; the deadline is hard, never a longer wait.
func (f *OutboundFetch) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.Internal("build outbound request failed", err)
	}
	res, err := f.client.Do(req)
	if err != nil {
		return nil, domain.External("upstream unreachable", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, domain.External("upstream error", fmt.Errorf("status %d", res.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, f.maxBody))
	if err != nil {
		return nil, domain.External("upstream read failed", err)
	}
	return body, nil
}
