// Package clerk implements identity.Provider against a Clerk-style identity
// platform: session tokens are HS256 JWTs verified locally, while user
// snapshots and usage counters go through the platform's backend REST API.
package clerk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quickai/quickai-api/internal/config"
	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/quickai/quickai-api/internal/platform/logger"
	"github.com/quickai/quickai-api/internal/redact"
)

// defaultTimeout bounds each backend API call.
const defaultTimeout = 10 * time.Second

// maxErrorBodyBytes limits how much of an upstream error body is read.
const maxErrorBodyBytes = 4 * 1024

// Client talks to the identity platform. It implements identity.Provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	jwtSecret  []byte
	logger     *slog.Logger
}

// NewClient creates an identity client from the identity configuration.
// If log is nil, a default logger will be used.
func NewClient(cfg config.IdentityConfig, log *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("identity base URL cannot be empty")
	}

	if cfg.SecretKey == "" {
		return nil, errors.New("identity secret key cannot be empty")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("identity JWT secret cannot be empty")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:  cfg.SecretKey,
		jwtSecret:  []byte(cfg.JWTSecret),
		logger:     log.With(slog.String("component", "identity_client")),
	}, nil
}

// Ensure Client implements identity.Provider
var _ identity.Provider = (*Client)(nil)

// userResponse is the subset of the platform's user object we consume.
type userResponse struct {
	ID              string `json:"id"`
	PrivateMetadata struct {
		Plan      string `json:"plan"`
		FreeUsage int    `json:"free_usage"`
	} `json:"private_metadata"`
}

// CurrentUser implements identity.Provider. It verifies the session token
// locally, then fetches the user's plan and usage count from the platform.
func (c *Client) CurrentUser(ctx context.Context, sessionToken string) (*identity.User, error) {
	userID, err := c.verifyToken(sessionToken)
	if err != nil {
		return nil, err
	}

	log := logger.FromContextOrDefault(ctx, c.logger)

	var user userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/users/"+userID, nil, &user); err != nil {
		log.Error("failed to fetch user from identity platform",
			slog.String("user_id", userID),
			slog.String("error", redact.Error(err)))
		return nil, err
	}

	plan := domain.PlanFree
	if user.PrivateMetadata.Plan == string(domain.PlanPremium) {
		plan = domain.PlanPremium
	}

	return &identity.User{
		ID:        userID,
		Plan:      plan,
		FreeUsage: user.PrivateMetadata.FreeUsage,
	}, nil
}

// IncrementFreeUsage implements identity.Provider. The stored counter is
// overwritten with seen+1; concurrent requests that observed the same count
// will each write the same successor value.
func (c *Client) IncrementFreeUsage(ctx context.Context, userID string, seen int) error {
	body := map[string]interface{}{
		"private_metadata": map[string]interface{}{
			"free_usage": seen + 1,
		},
	}

	log := logger.FromContextOrDefault(ctx, c.logger)

	if err := c.doJSON(ctx, http.MethodPatch, "/v1/users/"+userID+"/metadata", body, nil); err != nil {
		log.Error("failed to record free usage",
			slog.String("user_id", userID),
			slog.String("error", redact.Error(err)))
		return err
	}

	log.Debug("free usage recorded",
		slog.String("user_id", userID),
		slog.Int("free_usage", seen+1))
	return nil
}

// verifyToken checks the HS256 signature and expiry and extracts the subject.
func (c *Client) verifyToken(sessionToken string) (string, error) {
	if sessionToken == "" {
		return "", identity.ErrUnauthenticated
	}

	token, err := jwt.Parse(sessionToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", identity.ErrUnauthenticated
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", identity.ErrUnauthenticated
	}
	return subject, nil
}

// doJSON performs one authenticated backend API call, encoding body (when
// non-nil) and decoding the response into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return identity.ErrUserNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("identity platform returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode identity response: %w", err)
		}
	}
	return nil
}
