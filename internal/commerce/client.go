// Package commerce is the HTTP client for the external commerce API. It
// translates the storefront's five logical operations into requests against
// a configurable base endpoint and normalizes every failure into a single
// *RequestError carrying one human-readable message.
package commerce

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

	"github.com/imvikashdev/storefront/internal/domain"
	"github.com/imvikashdev/storefront/pkg/httpclient"
)

// Client calls the external commerce service.
type Client struct {
	baseURL string
	http    *httpclient.CircuitBreakerClient
	logger  *slog.Logger
}

// New creates a commerce API client against the given base URL.
func New(baseURL string, hc *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// AddItemInput is the POST /cart request body.
type AddItemInput struct {
	UserID   string  `json:"userId"`
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// AddItemResult is the POST /cart success body.
type AddItemResult struct {
	Message string              `json:"message"`
	Item    domain.CartLineItem `json:"item"`
}

// AddItem submits a creation request for one cart line. The server merges
// repeat adds of the same product into a single line and reports the
// resulting quantity.
func (c *Client) AddItem(ctx context.Context, input AddItemInput) (*AddItemResult, error) {
	var out AddItemResult
	if err := c.do(ctx, http.MethodPost, "/cart", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchCart returns the server's current line items for the user. An empty
// user identifier short-circuits to an empty slice without a network call;
// that is a valid case, not an error.
func (c *Client) FetchCart(ctx context.Context, userID string) ([]domain.CartLineItem, error) {
	if userID == "" {
		return []domain.CartLineItem{}, nil
	}

	var items []domain.CartLineItem
	if err := c.do(ctx, http.MethodGet, "/cart/"+userID, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CartLineItem{}
	}
	return items, nil
}

// CheckoutInput is the POST /order/checkout request body. DiscountCode is
// omitted from the JSON entirely when empty.
type CheckoutInput struct {
	UserID       string `json:"userId"`
	DiscountCode string `json:"discountCode,omitempty"`
}

// CheckoutResult is the POST /order/checkout success body.
type CheckoutResult struct {
	Message string       `json:"message"`
	Order   domain.Order `json:"order"`
}

// Checkout submits an order-creation request. The server rejects invalid or
// expired discount codes and empty carts with a structured error message,
// which surfaces verbatim through *RequestError.
func (c *Client) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	var out CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/order/checkout", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchAdminStats returns the read-only store statistics aggregate.
func (c *Client) FetchAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var out domain.AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type activeDiscountResult struct {
	ActiveDiscount *domain.DiscountCode `json:"activeDiscount"`
}

// FetchActiveDiscount returns the currently active discount code, or nil
// when the server reports none.
func (c *Client) FetchActiveDiscount(ctx context.Context) (*domain.DiscountCode, error) {
	var out activeDiscountResult
	if err := c.do(ctx, http.MethodGet, "/discount/active", nil, &out); err != nil {
		return nil, err
	}
	return out.ActiveDiscount, nil
}

// do performs one request/response cycle. On non-success it decodes the
// structured error body, falling back to the HTTP status text; 204 and empty
// bodies are successful empty results.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	url := c.baseURL + path

	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &RequestError{Message: fmt.Sprintf("encode %s request: %v", path, err)}
		}
		body = bytes.NewReader(data)
	}

	c.logger.DebugContext(ctx, "commerce API call",
		slog.String("method", method),
		slog.String("url", url),
	)

	var resp *http.Response
	var err error
	if method == http.MethodPost {
		resp, err = c.http.Post(ctx, url, "application/json", body)
	} else {
		resp, err = c.http.Get(ctx, url)
	}
	if err != nil {
		reqErr := normalizeError(err)
		c.logger.WarnContext(ctx, "commerce API call failed",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("status", reqErr.StatusCode),
			slog.String("error", reqErr.Message),
		)
		return reqErr
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := parseErrorResponse(resp)
		c.logger.WarnContext(ctx, "commerce API rejected request",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("status", reqErr.StatusCode),
			slog.String("error", reqErr.Message),
		)
		return reqErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// Success with no body is an empty result, not a failure.
			return nil
		}
		return &RequestError{
			Message:    fmt.Sprintf("decode %s response: %v", path, err),
			StatusCode: resp.StatusCode,
		}
	}

	return nil
}
