package oracle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPOracle is a JSON-over-HTTP client for a remote signing oracle.
type HTTPOracle struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retries    int
}

// HTTPOption configures the HTTP oracle client.
type HTTPOption func(*HTTPOracle)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(o *HTTPOracle) {
		o.httpClient = client
	}
}

// WithRetries sets the number of retries for transient failures.
func WithRetries(retries int) HTTPOption {
	return func(o *HTTPOracle) {
		o.retries = retries
	}
}

// NewHTTPOracle creates a client for the signing oracle at baseURL. The token
// authenticates this service to the oracle; timeout bounds a single attempt.
func NewHTTPOracle(baseURL, token string, timeout time.Duration, opts ...HTTPOption) (*HTTPOracle, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("oracle base URL is required")
	}

	o := &HTTPOracle{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retries: 2,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// signRequestPayload is the wire form of a SignRequest.
type signRequestPayload struct {
	Message        string   `json:"message"`
	DerivationPath []string `json:"derivation_path"`
	KeyID          KeyID    `json:"key_id"`
}

// signResponsePayload is the wire form of the oracle's response.
type signResponsePayload struct {
	Signature string `json:"signature"`
}

// Sign requests a signature from the remote oracle. Transient failures
// (network errors and 5xx responses) are retried with a linear backoff;
// any other failure is returned immediately.
func (o *HTTPOracle) Sign(ctx context.Context, req SignRequest) ([]byte, error) {
	payload := signRequestPayload{
		Message:        base64.StdEncoding.EncodeToString(req.Message),
		DerivationPath: make([]string, 0, len(req.DerivationPath)),
		KeyID:          req.KeyID,
	}
	for _, p := range req.DerivationPath {
		payload.DerivationPath = append(payload.DerivationPath, base64.StdEncoding.EncodeToString(p))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign request: %w", err)
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= o.retries; attempt++ {
		httpReq, err := http.NewRequestWithContext(
			ctx, http.MethodPost, o.baseURL+"/v1/sign", bytes.NewReader(body),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create sign request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		if o.token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+o.token)
		}

		resp, lastErr = o.httpClient.Do(httpReq)
		if lastErr == nil && resp.StatusCode < 500 {
			break
		}
		if resp != nil {
			lastErr = fmt.Errorf("oracle returned %d", resp.StatusCode)
			resp.Body.Close()
			resp = nil
		}
		if attempt < o.retries {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrSigningFailed, ctx.Err())
			case <-time.After(time.Duration(attempt+1) * time.Second):
			}
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, lastErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: oracle returned %d: %s", ErrSigningFailed, resp.StatusCode, respBody)
	}

	var out signResponsePayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrSigningFailed, err)
	}

	signature, err := base64.StdEncoding.DecodeString(out.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid signature encoding: %v", ErrSigningFailed, err)
	}
	if len(signature) == 0 {
		return nil, fmt.Errorf("%w: empty signature", ErrSigningFailed)
	}

	return signature, nil
}
