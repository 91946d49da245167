package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/ordersvc/internal/config"
	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestProductDecodesSnapshot(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "numeric price", body: `{"success":true,"data":{"product":{"id":"p1","name":"Lamp","price":10.5,"inventory_count":4}}}`},
		{name: "string price", body: `{"success":true,"data":{"product":{"id":"p1","name":"Lamp","price":"10.50","inventory_count":4}}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/products/p1" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, time.Second, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			product, err := client.Product(context.Background(), "p1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if product.Name != "Lamp" || product.InventoryCount != 4 || !product.Price.Equal(decimal.RequireFromString("10.5")) {
				t.Fatalf("unexpected product: %+v", product)
			}
		})
	}
}

func TestProductFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name:    "not found status",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			want:    domainErrors.ErrProductNotFound,
		},
		{
			name: "success false",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"success":false,"message":"Product not found"}`)
			},
			want: domainErrors.ErrProductNotFound,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { http.Error(w, "boom", http.StatusInternalServerError) },
			want:    domainErrors.ErrProductUnavailable,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, `not json`) },
			want:    domainErrors.ErrProductUnavailable,
		},
		{
			name:    "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) { time.Sleep(200 * time.Millisecond) },
			want:    domainErrors.ErrProductUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, 50*time.Millisecond, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			if _, err := client.Product(context.Background(), "p1"); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{ProductServiceURL: "http://example.com", ServiceTimeout: time.Second}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}
