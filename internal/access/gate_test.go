package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeOracle returns a canned decision or error and records its calls.
type fakeOracle struct {
	decision Decision
	err      error
	calls    int
}

func (f *fakeOracle) CheckAccess(_ context.Context, _ string, _ Credentials) (Decision, error) {
	f.calls++
	return f.decision, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGateUnavailableWithoutOracle(t *testing.T) {
	t.Parallel()

	gate := NewGate(nil, discardLogger())

	principal, err := gate.Authorize(context.Background(), "padA", "1.2.3.4", Credentials{})
	require.ErrorIs(t, err, ErrUnavailable)
	require.Empty(t, principal)
}

func TestGateGrant(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{decision: Decision{Status: StatusGrant, Principal: "user:alice"}}
	gate := NewGate(oracle, discardLogger())

	principal, err := gate.Authorize(context.Background(), "padA", "1.2.3.4", Credentials{SessionID: "s"})
	require.NoError(t, err)
	require.Equal(t, "user:alice", principal)
	require.Equal(t, 1, oracle.calls)
}

func TestGateDeny(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{decision: Decision{Status: StatusDeny}}
	gate := NewGate(oracle, discardLogger())

	_, err := gate.Authorize(context.Background(), "padA", "1.2.3.4", Credentials{})
	require.ErrorIs(t, err, ErrDenied)
}

// An oracle failure must be indistinguishable from a policy denial to the
// caller.
func TestGateOracleErrorBecomesDenied(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{err: errors.New("connection refused")}
	gate := NewGate(oracle, discardLogger())

	_, err := gate.Authorize(context.Background(), "padA", "1.2.3.4", Credentials{})
	require.ErrorIs(t, err, ErrDenied)
}

func TestGateUnknownStatusIsDenied(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{decision: Decision{Status: "maybe"}}
	gate := NewGate(oracle, discardLogger())

	_, err := gate.Authorize(context.Background(), "padA", "1.2.3.4", Credentials{})
	require.ErrorIs(t, err, ErrDenied)
}
