package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"scanhub/internal/refdata/metrics"
)

var tracer = otel.Tracer("scanhub/refdata")

// HTTPGateway queries the reference-data service over HTTP. Every call
// carries a bounded timeout; non-2xx responses and timeouts surface as
// transport errors which callers treat as "lookup absent".
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewHTTPGateway builds a gateway against the given base URL.
func NewHTTPGateway(baseURL string, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: m,
	}
}

type orgCodeResponse struct {
	OrganisationCode string `json:"organisationCode"`
}

type organisationResponse struct {
	ShortName string `json:"shortName"`
}

// OrgCodeByCaseReference resolves a PTI URN to its organisation code.
func (g *HTTPGateway) OrgCodeByCaseReference(ctx context.Context, ref string) (string, error) {
	ctx, span := tracer.Start(ctx, "refdata.OrgCodeByCaseReference",
		trace.WithAttributes(attribute.String("refdata.kind", "org_code")))
	defer span.End()

	var out orgCodeResponse
	err := g.get(ctx, "/reference/cases/"+url.PathEscape(ref)+"/organisation", "org_code", &out)
	if err != nil {
		return "", err
	}
	return out.OrganisationCode, nil
}

// ShortNameByOrgCode resolves an organisation code to a short prosecutor name.
func (g *HTTPGateway) ShortNameByOrgCode(ctx context.Context, code string) (string, error) {
	ctx, span := tracer.Start(ctx, "refdata.ShortNameByOrgCode",
		trace.WithAttributes(attribute.String("refdata.kind", "short_name")))
	defer span.End()

	var out organisationResponse
	err := g.get(ctx, "/reference/organisations/"+url.PathEscape(code), "short_name", &out)
	if err != nil {
		return "", err
	}
	return out.ShortName, nil
}

func (g *HTTPGateway) get(ctx context.Context, path, kind string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build reference-data request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		g.metrics.RecordLookup(kind, "error")
		return fmt.Errorf("reference-data request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Not found is a normal empty result, not an error.
		g.metrics.RecordLookup(kind, "miss")
		return nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		g.metrics.RecordLookup(kind, "error")
		return fmt.Errorf("reference-data responded %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		g.metrics.RecordLookup(kind, "error")
		return fmt.Errorf("decode reference-data response: %w", err)
	}
	g.metrics.RecordLookup(kind, "hit")
	return nil
}
