package identity

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fight-fantasy/internal/domain/user"
	"github.com/riskibarqy/fight-fantasy/internal/platform/cache"
	"github.com/riskibarqy/fight-fantasy/internal/platform/logging"
	"github.com/riskibarqy/fight-fantasy/internal/usecase"
	"github.com/sony/gobreaker"
)

// errTransient marks failures that count against the circuit breaker.
var errTransient = errors.New("identity provider transient failure")

const maxResponseBytes = 1 << 20

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// Client verifies bearer tokens against the identity provider's
// introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *gobreaker.CircuitBreaker
	principals    *cache.Store[user.Principal]
	logger        *logging.Logger
}

type Option func(*Client)

// WithPrincipalCache keeps verified principals for ttl, keyed by a token
// digest. Rejected tokens are never cached.
func WithPrincipalCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.principals = cache.NewStore[user.Principal](ttl)
		}
	}
}

func NewClient(
	httpClient *http.Client,
	baseURL, introspectPath, adminKey string,
	cbCfg CircuitBreakerConfig,
	logger *logging.Logger,
	opts ...Option,
) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		adminKey:      strings.TrimSpace(adminKey),
		logger:        logger,
	}
	if cbCfg.Enabled {
		c.breaker = newBreaker(normalizeCircuitBreakerConfig(cbCfg), logger)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newBreaker(cfg CircuitBreakerConfig, logger *logging.Logger) *gobreaker.CircuitBreaker {
	threshold := uint32(cfg.FailureThreshold)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "identity-introspect",
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, errTransient)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if c.principals == nil {
		return c.verify(ctx, token)
	}
	return c.principals.GetOrLoad(ctx, tokenDigest(token), func(ctx context.Context) (user.Principal, error) {
		return c.verify(ctx, token)
	})
}

func (c *Client) verify(ctx context.Context, token string) (user.Principal, error) {
	if c.breaker == nil {
		return c.introspect(ctx, token)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.introspect(ctx, token)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return user.Principal{}, fmt.Errorf("%w: identity circuit %s: %w", usecase.ErrDependencyUnavailable, c.breaker.State(), err)
		}
		return user.Principal{}, err
	}
	return res.(user.Principal), nil
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w: request introspection: %w", usecase.ErrDependencyUnavailable, errTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w: read introspect response: %w", usecase.ErrDependencyUnavailable, errTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// the provider rejected our admin key, not the caller's token
		c.logger.ErrorContext(ctx, "identity introspection forbidden", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: introspection forbidden", usecase.ErrDependencyUnavailable)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "identity introspection unavailable", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: %w: status %d", usecase.ErrDependencyUnavailable, errTransient, resp.StatusCode)
	default:
		c.logger.WarnContext(ctx, "identity introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: introspection failed with status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: unmarshal introspect response: %w", usecase.ErrDependencyUnavailable, err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: invalid introspect response: user_id is empty", usecase.ErrDependencyUnavailable)
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
