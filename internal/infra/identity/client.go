// Package identity implements the client for the external identity
// provider that issues and verifies user tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"penhub-service/internal/domain"
)

// VerifyEndpoint is the provider's token verification path.
const VerifyEndpoint = "/v1/verify"

// ErrInvalidToken is returned when the provider rejects the token.
var ErrInvalidToken = errors.New("identity: invalid token")

// ClientConfig holds configuration for the identity client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client implements domain.TokenVerifier against the external
// identity provider, with retries for transient failures and a
// circuit breaker so a provider outage fails fast instead of piling
// up blocked requests.
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new identity client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry network errors and 5xx; a 401 is a final answer.
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	settings := gobreaker.Settings{
		Name:        "identity",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	return &Client{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[*resty.Response](settings),
		logger: logger,
	}
}

// Verify resolves a bearer token into the caller's identity.
// Returns ErrInvalidToken when the provider rejects the token; other
// errors indicate the provider was unreachable.
func (c *Client) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result verifyResponse
		r, err := c.client.R().
			SetContext(ctx).
			SetBody(verifyRequest{Token: token}).
			SetResult(&result).
			SetError(&errorResponse{}).
			Post(VerifyEndpoint)
		if err != nil {
			return nil, err
		}
		if r.StatusCode() == 401 || r.StatusCode() == 403 {
			return r, nil // rejected token is not a breaker failure
		}
		if r.IsError() {
			return nil, fmt.Errorf("identity provider returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("identity verification unavailable",
			zap.Error(err),
			zap.String("breaker_state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("verifying token: %w", err)
	}

	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return nil, ErrInvalidToken
	}

	result := resp.Result().(*verifyResponse)

	return &domain.Identity{
		UserID:   result.UserID,
		Email:    result.Email,
		Username: result.Username,
	}, nil
}

// HealthCheck verifies the provider is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("identity health check returned status %d", resp.StatusCode())
	}

	return nil
}
