// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing shared by outbound gateway
// calls: JSON request/response handling and status classification into the
// engine's error taxonomy. Failures are terminal; nothing here retries.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/sred-engine/pkg/types"
)

// maxErrorBody bounds how much of an error response body is kept for the
// operator-facing message.
const maxErrorBody = 4096

// PostJSON marshals body and issues a POST with a bearer token. The caller
// owns the response and must close its body.
func PostJSON(ctx context.Context, client *http.Client, url, bearer string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// DecodeJSON decodes the response body into v and closes it.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// ClassifyStatus maps a non-2xx gateway status to a classified error and
// drains the body into the message. 429 is rate limiting, 402 is billing,
// everything else is a generic upstream failure.
func ClassifyStatus(resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	kind := types.KindUpstream
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		kind = types.KindRateLimited
	case http.StatusPaymentRequired:
		kind = types.KindPaymentRequired
	}
	return types.NewError(kind, "gateway returned %d: %s", resp.StatusCode, string(body))
}
