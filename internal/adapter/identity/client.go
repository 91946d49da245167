package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
)

const profilePath = "/api/users/profile"

// Client confirms the ordering principal against the identity service.
type Client interface {
	Verify(ctx context.Context, credential string) (*model.User, error)
}

// HTTPClient implements Client via the identity service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type profileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    struct {
		User *model.User `json:"user"`
	} `json:"data"`
}

// NewHTTPClient creates an identity client bounded by timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse user service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("user service url must be absolute")
	}
	return &HTTPClient{
		baseURL:    parsed,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Verify fetches the profile for the forwarded credential. Every failure,
// including transport errors and timeouts, maps to ErrUserValidationFailed.
func (c *HTTPClient) Verify(ctx context.Context, credential string) (*model.User, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, profilePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrUserValidationFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("identity request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrUserValidationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("identity rejected principal", slog.Int("status", resp.StatusCode))
		return nil, domainErrors.ErrUserValidationFailed
	}

	var body profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %w", domainErrors.ErrUserValidationFailed, err)
	}
	if !body.Success || body.Data.User == nil || body.Data.User.ID == "" {
		return nil, domainErrors.ErrUserValidationFailed
	}
	return body.Data.User, nil
}
