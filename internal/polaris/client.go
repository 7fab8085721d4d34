// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package polaris

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"time"

	graphql "github.com/hasura/go-graphql-client"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/tfctl/ec2snap/internal/log"
	"github.com/tfctl/ec2snap/internal/version"
)

// GraphQLPath is the GraphQL endpoint relative to the account URL.
const GraphQLPath = "/api/graphql"

// Client issues the Polaris GraphQL operations with a fixed session token.
type Client struct {
	gql *graphql.Client
}

// NewHTTPClient returns the plain HTTP client used for the session call and
// as the base transport of the GraphQL client. Every request is bounded by
// timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: http.DefaultTransport},
	}
}

// NewClient builds a GraphQL client for baseURL that sends the session token
// as a bearer header on every request. Request bodies carry the operationName
// of the document they hold.
func NewClient(ctx context.Context, base *http.Client, baseURL string, session Session) *Client {
	named := *base
	named.Transport = &operationNameTransport{base: base.Transport}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &named)
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: session.AccessToken})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = base.Timeout

	log.Debugf("graphql client created: url=%s", baseURL+GraphQLPath)
	return &Client{gql: graphql.NewClient(baseURL+GraphQLPath, httpClient)}
}

// query runs a named query and wraps any failure as a RequestError.
func (c *Client) query(ctx context.Context, op string, q any, vars map[string]any) error {
	log.Tracef("graphql query: op=%s vars=%v", op, vars)
	if err := c.gql.Query(ctx, q, vars, graphql.OperationName(op)); err != nil {
		return &RequestError{Operation: op, Err: err}
	}
	return nil
}

// mutate runs a named mutation and wraps any failure as a RequestError.
func (c *Client) mutate(ctx context.Context, op string, m any, vars map[string]any) error {
	log.Tracef("graphql mutation: op=%s vars=%v", op, vars)
	if err := c.gql.Mutate(ctx, m, vars, graphql.OperationName(op)); err != nil {
		return &RequestError{Operation: op, Err: err}
	}
	return nil
}

type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(req)
}

var operationPattern = regexp.MustCompile(`^\s*(?:query|mutation|subscription)\s+([_A-Za-z][_0-9A-Za-z]*)`)

// OperationName returns the name a GraphQL document declares for its
// operation, or "" for an anonymous operation.
func OperationName(document string) string {
	m := operationPattern.FindStringSubmatch(document)
	if m == nil {
		return ""
	}
	return m[1]
}

// operationNameTransport adds operationName to GraphQL request bodies that
// lack one.
type operationNameTransport struct {
	base http.RoundTripper
}

func (t *operationNameTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Body == nil || req.Method != http.MethodPost {
		return base.RoundTrip(req)
	}

	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, err
	}
	body = withOperationName(body)

	req = req.Clone(req.Context())
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	req.ContentLength = int64(len(body))
	return base.RoundTrip(req)
}

// withOperationName returns body with operationName set from its query. Bodies
// that already name an operation, or that are not GraphQL requests, are
// returned unchanged.
func withOperationName(body []byte) []byte {
	if gjson.GetBytes(body, "operationName").String() != "" {
		return body
	}
	name := OperationName(gjson.GetBytes(body, "query").String())
	if name == "" {
		return body
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return body
	}
	fields["operationName"], _ = json.Marshal(name)
	out, err := json.Marshal(fields)
	if err != nil {
		return body
	}
	log.Tracef("graphql body named: op=%s", name)
	return out
}
