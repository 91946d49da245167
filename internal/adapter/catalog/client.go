package catalog

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

const productsPath = "/api/products/"

// Client fetches authoritative product snapshots from the catalog service.
type Client interface {
	Product(ctx context.Context, productID string) (*model.Product, error)
}

// HTTPClient implements Client via the catalog service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type productResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Product *model.Product `json:"product"`
	} `json:"data"`
}

// NewHTTPClient creates a catalog client bounded by timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse product service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("product service url must be absolute")
	}
	return &HTTPClient{
		baseURL:    parsed,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Product returns ErrProductNotFound when the catalog does not know the id
// and ErrProductUnavailable when the catalog cannot be reached.
func (c *HTTPClient) Product(ctx context.Context, productID string) (*model.Product, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, productsPath, url.PathEscape(productID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrProductUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", slog.String("product_id", productID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrProductUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domainErrors.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("catalog request failed", slog.String("product_id", productID), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: catalog status %s", domainErrors.ErrProductUnavailable, resp.Status)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode product: %w", domainErrors.ErrProductUnavailable, err)
	}
	if !body.Success || body.Data.Product == nil {
		return nil, domainErrors.ErrProductNotFound
	}
	product := body.Data.Product
	if product.ID == "" {
		product.ID = productID
	}
	return product, nil
}
