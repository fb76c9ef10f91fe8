// Package access enforces per-request authorization for the gateway.
//
// The Access Oracle is the single source of truth for whether a caller may
// touch a resource. The gate around it is strictly fail-closed: a missing
// oracle, an oracle error, and a policy denial all refuse access, and the
// caller-visible outcome never reveals which one occurred.
package access

import (
	"context"
	"errors"
	"log/slog"
)

// Sentinel errors for authorization outcomes.
var (
	// ErrDenied is returned for policy denials and oracle failures alike.
	ErrDenied = errors.New("access: denied")

	// ErrUnavailable is returned when the oracle dependency is not wired up.
	ErrUnavailable = errors.New("access: authorization dependency unavailable")

	// ErrUnauthenticated is reserved for flows that bypass the oracle
	// entirely; the standard pipeline always consults the oracle, which
	// treats anonymous callers as a deny.
	ErrUnauthenticated = errors.New("access: no usable credential")
)

// Status is the oracle's verdict.
type Status string

const (
	StatusGrant Status = "grant"
	StatusDeny  Status = "deny"
)

// Decision is the oracle's answer for one request. Decisions are produced
// fresh per request and never cached; resource permissions can change at
// any time.
type Decision struct {
	Status    Status `json:"status"`
	Principal string `json:"principal"`
}

// Credentials carries whatever caller credentials were present on the
// request. Any subset may be empty; the oracle must treat a fully anonymous
// caller as a deny, not an error.
type Credentials struct {
	SessionID string `json:"sessionId,omitempty"`
	Token     string `json:"token,omitempty"`
	UserID    string `json:"userId,omitempty"`
}

// Oracle answers whether the holder of the given credentials may access a
// resource.
type Oracle interface {
	CheckAccess(ctx context.Context, resourceID string, creds Credentials) (Decision, error)
}

// Gate wraps an Oracle with fail-closed semantics and mandatory audit
// logging. Every terminal state is logged with the caller IP and resource
// id, plus the resolved principal on grant.
type Gate struct {
	oracle Oracle
	log    *slog.Logger
}

// NewGate creates a Gate. A nil oracle is permitted: the gate then refuses
// every request with ErrUnavailable rather than falling back to a weaker
// check.
func NewGate(oracle Oracle, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{oracle: oracle, log: log}
}

// Authorize resolves the request to one of three terminal states: granted
// (returns the principal), denied (ErrDenied), or unavailable
// (ErrUnavailable). An oracle error is logged as an operational failure but
// surfaces as a denial, indistinguishable from a policy deny.
func (g *Gate) Authorize(ctx context.Context, resourceID, callerIP string, creds Credentials) (string, error) {
	if g.oracle == nil {
		g.log.ErrorContext(ctx, "access check unavailable: oracle not configured",
			slog.String("resource_id", resourceID),
			slog.String("caller_ip", callerIP),
		)
		return "", ErrUnavailable
	}

	decision, err := g.oracle.CheckAccess(ctx, resourceID, creds)
	if err != nil {
		g.log.ErrorContext(ctx, "access check failed",
			slog.String("resource_id", resourceID),
			slog.String("caller_ip", callerIP),
			slog.String("error", err.Error()),
		)
		return "", ErrDenied
	}

	if decision.Status != StatusGrant {
		g.log.WarnContext(ctx, "access denied",
			slog.String("resource_id", resourceID),
			slog.String("caller_ip", callerIP),
		)
		return "", ErrDenied
	}

	g.log.InfoContext(ctx, "access granted",
		slog.String("resource_id", resourceID),
		slog.String("caller_ip", callerIP),
		slog.String("principal", decision.Principal),
	)

	return decision.Principal, nil
}
