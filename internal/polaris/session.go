// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package polaris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/tfctl/ec2snap/internal/log"
)

// SessionPath is the token endpoint relative to the account URL.
const SessionPath = "/api/session"

// Session holds the access token issued for one run. It is never refreshed.
type Session struct {
	AccessToken string
}

// Authorization returns the header value every later request carries.
func (s Session) Authorization() string {
	return "Bearer " + s.AccessToken
}

type sessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticate exchanges a username and password for an access token. Any
// non-200 status or a response without access_token is an ErrAuthentication.
func Authenticate(ctx context.Context, hc *http.Client, baseURL, username, password string) (Session, error) {
	body, err := json.Marshal(sessionRequest{Username: username, Password: password})
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+SessionPath, bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debugf("requesting session: url=%s user=%s", req.URL, username)
	resp, err := hc.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	defer resp.Body.Close()

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return Session{}, fmt.Errorf("%w: failed to read response: %w", ErrAuthentication, err)
	}

	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("%w: %w", ErrAuthentication,
			&StatusError{StatusCode: resp.StatusCode, Status: resp.Status})
	}

	token := gjson.GetBytes(doc, "access_token")
	if !token.Exists() || token.String() == "" {
		return Session{}, fmt.Errorf("%w: response has no access_token", ErrAuthentication)
	}

	log.Debugf("session established")
	return Session{AccessToken: token.String()}, nil
}
