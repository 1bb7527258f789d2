package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// entitlementsResponse is the wire shape of the entitlements endpoint.
type entitlementsResponse struct {
	Entitlements map[string]struct {
		Offerings map[string]struct {
			ActiveProductIdentifier string `json:"active_product_identifier"`
		} `json:"offerings"`
	} `json:"entitlements"`
}

// HTTPClient is the production Client implementation talking to the
// entitlement backend over HTTP.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a backend client from the configuration.
func NewHTTPClient(cfg Config, logger *zap.Logger) (*HTTPClient, error) {
	base := strings.TrimSuffix(cfg.URL, "/")
	if base == "" {
		return nil, fmt.Errorf("backend url is required")
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &HTTPClient{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Transport: transport},
		logger:  logger,
	}, nil
}

// GetPurchaserInfo fetches the purchaser snapshot for a user.
func (c *HTTPClient) GetPurchaserInfo(ctx context.Context, userID string, fn PurchaserInfoCallback) {
	go func() {
		body, err := c.do(ctx, http.MethodGet, "/subscribers/"+url.PathEscape(userID), nil)
		if err != nil {
			fn(nil, err)
			return
		}
		fn(&PurchaserInfo{Raw: body, FetchedAt: time.Now()}, nil)
	}()
}

// GetEntitlements fetches and decodes the entitlement map for a user.
func (c *HTTPClient) GetEntitlements(ctx context.Context, userID string, fn EntitlementsCallback) {
	go func() {
		body, err := c.do(ctx, http.MethodGet, "/subscribers/"+url.PathEscape(userID)+"/entitlements", nil)
		if err != nil {
			fn(nil, err)
			return
		}

		var decoded entitlementsResponse
		if err := json.Unmarshal(body, &decoded); err != nil {
			fn(nil, &Error{StatusCode: http.StatusOK, Message: "malformed entitlements payload: " + err.Error()})
			return
		}

		entitlements := make(map[string]*Entitlement, len(decoded.Entitlements))
		for name, e := range decoded.Entitlements {
			offerings := make(map[string]*Offering, len(e.Offerings))
			for id, o := range e.Offerings {
				offerings[id] = &Offering{ProductID: o.ActiveProductIdentifier}
			}
			entitlements[name] = &Entitlement{Offerings: offerings}
		}

		fn(entitlements, nil)
	}()
}

// PostReceipt submits a purchase receipt.
func (c *HTTPClient) PostReceipt(ctx context.Context, receipt Receipt, fn PurchaserInfoCallback) {
	go func() {
		payload, err := json.Marshal(receipt)
		if err != nil {
			fn(nil, &Error{Message: "failed to encode receipt: " + err.Error()})
			return
		}

		body, err := c.do(ctx, http.MethodPost, "/receipts", payload)
		if err != nil {
			fn(nil, err)
			return
		}
		fn(&PurchaserInfo{Raw: body, FetchedAt: time.Now()}, nil)
	}()
}

// do executes a single request and returns the response body. Non-2xx
// responses are mapped to *Error with the status code preserved.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	return body, nil
}
