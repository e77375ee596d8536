package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	dErrors "scanhub/pkg/domain-errors"
)

// HTTPCaseService queries the case-management service over HTTP with a
// bounded timeout.
type HTTPCaseService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPCaseService builds a case-service client.
func NewHTTPCaseService(baseURL string, timeout time.Duration) *HTTPCaseService {
	return &HTTPCaseService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetDefendant fetches the defendant attached to a case.
func (c *HTTPCaseService) GetDefendant(ctx context.Context, caseURN string) (*Defendant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/cases/"+url.PathEscape(caseURN)+"/defendant", nil)
	if err != nil {
		return nil, fmt.Errorf("build defendant request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("defendant request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, dErrors.New(dErrors.CodeNotFound, "no defendant for case "+caseURN)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("case service responded %d", resp.StatusCode)
	}

	var defendant Defendant
	if err := json.NewDecoder(resp.Body).Decode(&defendant); err != nil {
		return nil, fmt.Errorf("decode defendant: %w", err)
	}
	return &defendant, nil
}
