package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tienda-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// client implements Backend over the ERP's JSON HTTP API.
type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Backend talking to the ERP at baseURL. The API key is
// sent in the X-API-Key header on every request.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) Backend {
	return &client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "backend-client").Logger(),
	}
}

// Products retrieves the full product list.
func (c *client) Products(ctx context.Context) ([]model.Product, error) {
	var body struct {
		Products []model.Product `json:"products"`
	}
	if err := c.getJSON(ctx, "/products", &body); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return body.Products, nil
}

// Product retrieves a single product by id.
func (c *client) Product(ctx context.Context, id string) (*model.Product, error) {
	var body struct {
		Product *model.Product `json:"product"`
	}
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(id), &body); err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}
	if body.Product == nil {
		return nil, fmt.Errorf("fetch product %s: not found", id)
	}
	return body.Product, nil
}

// Categories retrieves all product categories.
func (c *client) Categories(ctx context.Context) ([]model.Category, error) {
	var body struct {
		Categories []model.Category `json:"categories"`
	}
	if err := c.getJSON(ctx, "/categories", &body); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return body.Categories, nil
}

// ActivePromotions retrieves the promotions currently active on the backend.
func (c *client) ActivePromotions(ctx context.Context) ([]model.Promotion, error) {
	var body struct {
		Promotions []model.Promotion `json:"promotions"`
	}
	if err := c.getJSON(ctx, "/promotions/active", &body); err != nil {
		return nil, fmt.Errorf("fetch promotions: %w", err)
	}
	return body.Promotions, nil
}

// ExchangeRate retrieves the local-per-base currency rate.
func (c *client) ExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	var body struct {
		Rate decimal.Decimal `json:"rate"`
	}
	if err := c.getJSON(ctx, "/exchange-rate", &body); err != nil {
		return decimal.Zero, fmt.Errorf("fetch exchange rate: %w", err)
	}
	return body.Rate, nil
}

// SearchCustomer looks a customer up by identity document.
func (c *client) SearchCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var body struct {
		Customer *model.Customer `json:"customer"`
	}
	path := "/customers/search?id=" + url.QueryEscape(id)
	if err := c.getJSON(ctx, path, &body); err != nil {
		return nil, fmt.Errorf("search customer: %w", err)
	}
	return body.Customer, nil
}

// SubmitSale posts the sale request. The response body is decoded on any
// status so a rejection message survives as a *model.SaleRejectedError.
func (c *client) SubmitSale(ctx context.Context, saleReq *model.SaleRequest) (*model.SaleResult, error) {
	payload, err := json.Marshal(saleReq)
	if err != nil {
		return nil, fmt.Errorf("encode sale request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sales", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build sale request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit sale: %w", err)
	}
	defer resp.Body.Close()

	var result model.SaleResult
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("decode sale response: %w", decodeErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("message", result.Message).
			Msg("sale rejected by backend")
		return nil, &model.SaleRejectedError{StatusCode: resp.StatusCode, Message: result.Message}
	}

	return &result, nil
}

// getJSON performs an authenticated GET and decodes the response body.
func (c *client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setAuth(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug().
		Str("path", path).
		Dur("duration", time.Since(start)).
		Msg("backend fetch")
	return nil
}

func (c *client) setAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}
