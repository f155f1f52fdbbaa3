// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userinfoEndpoint serves the profile behind a Google access token.
const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrInvalidToken means the upstream identity provider rejected the token.
var ErrInvalidToken = errors.New("invalid access token")

// UserInfo is the identity attached to a verified access token.
type UserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verifier resolves an access token to the identity it belongs to.
type Verifier interface {
	Verify(ctx context.Context, token string) (*UserInfo, error)
}

// googleVerifier checks tokens against Google's userinfo endpoint.
type googleVerifier struct {
	client   *http.Client
	endpoint string
}

// NewGoogleVerifier returns a Verifier backed by Google's userinfo endpoint.
func NewGoogleVerifier() Verifier {
	return &googleVerifier{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: userinfoEndpoint,
	}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling userinfo endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Any non-OK response means the token does not map to an identity.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrInvalidToken
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding userinfo response: %w", err)
	}
	if info.Email == "" {
		return nil, ErrInvalidToken
	}
	return &info, nil
}
