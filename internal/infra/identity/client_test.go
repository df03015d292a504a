package identity

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testEndpoint = "https://identity.example.com/v1/verify"

func newTestClient() *Client {
	cfg := ClientConfig{
		BaseURL: "https://identity.example.com",
		Timeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 2,
			WaitTime:    10 * time.Millisecond,
			MaxWaitTime: 50 * time.Millisecond,
		},
		CB: CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func TestVerify_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	httpmock.RegisterResponder("POST", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, verifyResponse{
			UserID:   "uid-123",
			Email:    "alice@example.com",
			Username: "alice",
		}))

	id, err := client.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "uid-123", id.UserID)
	assert.Equal(t, "alice", id.Username)
}

func TestVerify_RejectedToken(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	httpmock.RegisterResponder("POST", testEndpoint,
		httpmock.NewJsonResponderOrPanic(401, errorResponse{Error: "token expired"}))

	id, err := client.Verify(context.Background(), "stale-token")
	assert.Nil(t, id)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ProviderError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	httpmock.RegisterResponder("POST", testEndpoint,
		httpmock.NewStringResponder(500, "internal error"))

	id, err := client.Verify(context.Background(), "any-token")
	assert.Nil(t, id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_CircuitBreakerOpens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	httpmock.RegisterResponder("POST", testEndpoint,
		httpmock.NewStringResponder(500, "internal error"))

	// Enough consecutive failures to trip the breaker.
	for i := 0; i < 5; i++ {
		_, _ = client.Verify(context.Background(), "any-token")
	}

	assert.Equal(t, "open", client.cb.State().String())

	// While open, calls fail fast without hitting the provider.
	before := httpmock.GetTotalCallCount()
	_, err := client.Verify(context.Background(), "any-token")
	require.Error(t, err)
	assert.Equal(t, before, httpmock.GetTotalCallCount())
}

func TestHealthCheck(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	client := newTestClient()
	httpmock.RegisterResponder("GET", "https://identity.example.com/health",
		httpmock.NewStringResponder(http.StatusOK, `{"status":"ok"}`))

	assert.NoError(t, client.HealthCheck(context.Background()))
}
