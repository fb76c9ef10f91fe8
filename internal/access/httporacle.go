package access

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultOracleTimeout bounds a single oracle lookup. The surrounding
// request timeout still applies; this is a second, tighter bound so a slow
// authorization backend cannot pin gateway requests.
const DefaultOracleTimeout = 5 * time.Second

// HTTPOracle consults an external authorization endpoint over HTTP.
// The endpoint receives the resource id and the caller credentials and
// answers with a Decision. Any transport failure or non-200 response is an
// error, which the gate converts into a denial.
type HTTPOracle struct {
	endpoint string
	client   *http.Client
}

// NewHTTPOracle creates an HTTPOracle for the given endpoint.
// A non-positive timeout uses DefaultOracleTimeout.
func NewHTTPOracle(endpoint string, timeout time.Duration) *HTTPOracle {
	if timeout <= 0 {
		timeout = DefaultOracleTimeout
	}
	return &HTTPOracle{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// checkAccessRequest is the wire payload sent to the authorization endpoint.
type checkAccessRequest struct {
	ResourceID string `json:"resourceId"`
	SessionID  string `json:"sessionId,omitempty"`
	Token      string `json:"token,omitempty"`
	UserID     string `json:"userId,omitempty"`
}

// CheckAccess implements Oracle.
func (o *HTTPOracle) CheckAccess(ctx context.Context, resourceID string, creds Credentials) (Decision, error) {
	payload, err := json.Marshal(checkAccessRequest{
		ResourceID: resourceID,
		SessionID:  creds.SessionID,
		Token:      creds.Token,
		UserID:     creds.UserID,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("access: encode check request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Decision{}, fmt.Errorf("access: build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return Decision{}, fmt.Errorf("access: oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Decision{}, fmt.Errorf("access: oracle returned status %d", resp.StatusCode)
	}

	var decision Decision
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return Decision{}, fmt.Errorf("access: decode oracle response: %w", err)
	}

	// Anything that is not an explicit grant is a deny.
	if decision.Status != StatusGrant {
		decision.Status = StatusDeny
	}

	return decision, nil
}

var _ Oracle = (*HTTPOracle)(nil)
