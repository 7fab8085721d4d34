// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package polaris

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type graphqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type reply struct {
	status int
	body   string
}

// declaredOperation returns the name after the leading query or mutation
// keyword of a GraphQL document.
func declaredOperation(document string) string {
	rest := strings.TrimSpace(document)
	for _, kw := range []string{"query ", "mutation "} {
		if strings.HasPrefix(rest, kw) {
			rest = strings.TrimSpace(strings.TrimPrefix(rest, kw))
			if i := strings.IndexAny(rest, "( {"); i >= 0 {
				return rest[:i]
			}
			return rest
		}
	}
	return ""
}

// fakePolaris serves /api/session and /api/graphql. GraphQL replies are keyed
// by the operation the query text declares.
type fakePolaris struct {
	t       *testing.T
	srv     *httptest.Server
	mu      sync.Mutex
	calls   []graphqlRequest
	ops     []string
	auth    []string
	replies map[string]func(graphqlRequest) reply
	session reply
}

func newFakePolaris(t *testing.T) *fakePolaris {
	t.Helper()

	f := &fakePolaris{
		t:       t,
		replies: map[string]func(graphqlRequest) reply{},
		session: reply{http.StatusOK, `{"access_token":"tok-123","mfa_token":null}`},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(SessionPath, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var creds sessionRequest
		if err := json.Unmarshal(body, &creds); err != nil || creds.Username == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(f.session.status)
		_, _ = io.WriteString(w, f.session.body)
	})
	mux.HandleFunc(GraphQLPath, func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		op := declaredOperation(req.Query)

		f.mu.Lock()
		f.calls = append(f.calls, req)
		f.ops = append(f.ops, op)
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		handler, ok := f.replies[op]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		rep := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		_, _ = io.WriteString(w, rep.body)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakePolaris) on(op string, status int, body string) {
	f.replies[op] = func(graphqlRequest) reply { return reply{status, body} }
}

func (f *fakePolaris) client() *Client {
	return NewClient(context.Background(), NewHTTPClient(5*time.Second), f.srv.URL, Session{AccessToken: "tok-123"})
}

// operations returns the operations the query texts declared, in call order.
func (f *fakePolaris) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

// bodyOperations returns the operationName of each request body.
func (f *fakePolaris) bodyOperations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ops []string
	for _, c := range f.calls {
		ops = append(ops, c.OperationName)
	}
	return ops
}

func TestAuthenticate(t *testing.T) {
	f := newFakePolaris(t)

	s, err := Authenticate(context.Background(), NewHTTPClient(5*time.Second), f.srv.URL, "ops@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", s.AccessToken)
	assert.Equal(t, "Bearer tok-123", s.Authorization())
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		session reply
		wantMsg string
	}{
		{
			name:    "unauthorized",
			session: reply{http.StatusUnauthorized, `{"message":"bad credentials"}`},
			wantMsg: "401",
		},
		{
			name:    "no token in body",
			session: reply{http.StatusOK, `{"mfa_token":"x"}`},
			wantMsg: "no access_token",
		},
		{
			name:    "empty token",
			session: reply{http.StatusOK, `{"access_token":""}`},
			wantMsg: "no access_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakePolaris(t)
			f.session = tt.session

			_, err := Authenticate(context.Background(), NewHTTPClient(5*time.Second), f.srv.URL, "ops@example.com", "pw")

			assert.ErrorIs(t, err, ErrAuthentication)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestAuthenticate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := Authenticate(context.Background(), NewHTTPClient(time.Second), url, "u", "p")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestLookupInstance(t *testing.T) {
	f := newFakePolaris(t)
	f.replies[OpInstancesList] = func(req graphqlRequest) reply {
		assert.Contains(t, req.Query, "awsNativeEc2InstanceConnection")
		assert.Equal(t, "EC2_INSTANCE_ID", req.Variables["sortBy"])
		assert.Equal(t, "ASC", req.Variables["sortOrder"])

		filters, _ := json.Marshal(req.Variables["filters"])
		assert.JSONEq(t, `[
			{"field":"EC2_INSTANCE_NAME_OR_INSTANCE_ID","texts":["i-0abc"]},
			{"field":"IS_ARCHIVED","texts":["0"]}
		]`, string(filters))

		return reply{http.StatusOK, `{"data":{"ec2InstancesList":{"edges":[{"node":{"id":"5f1c-uuid"}}]}}}`}
	}

	handle, err := f.client().LookupInstance(context.Background(), "i-0abc")

	require.NoError(t, err)
	assert.Equal(t, "5f1c-uuid", handle)
	assert.Equal(t, []string{"Bearer tok-123"}, f.auth)
}

func TestLookupInstance_FirstOfMany(t *testing.T) {
	f := newFakePolaris(t)
	f.on(OpInstancesList, http.StatusOK,
		`{"data":{"ec2InstancesList":{"edges":[{"node":{"id":"first"}},{"node":{"id":"second"}}]}}}`)

	handle, err := f.client().LookupInstance(context.Background(), "i-0abc")

	require.NoError(t, err)
	assert.Equal(t, "first", handle)
}

func TestLookupInstance_NotFound(t *testing.T) {
	f := newFakePolaris(t)
	f.on(OpInstancesList, http.StatusOK, `{"data":{"ec2InstancesList":{"edges":[]}}}`)

	_, err := f.client().LookupInstance(context.Background(), "i-0abc")

	assert.ErrorIs(t, err, ErrInstanceNotFound)
	assert.NotErrorIs(t, err, ErrRequest)
	assert.Contains(t, err.Error(), "i-0abc")
}

func TestLookupInstance_RequestFailure(t *testing.T) {
	f := newFakePolaris(t)
	f.on(OpInstancesList, http.StatusInternalServerError, `oops`)

	_, err := f.client().LookupInstance(context.Background(), "i-0abc")

	assert.ErrorIs(t, err, ErrRequest)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, OpInstancesList, reqErr.Operation)
}

func TestLookupInstance_GraphQLError(t *testing.T) {
	f := newFakePolaris(t)
	f.on(OpInstancesList, http.StatusOK, `{"data":null,"errors":[{"message":"UNAUTHENTICATED"}]}`)

	_, err := f.client().LookupInstance(context.Background(), "i-0abc")

	assert.ErrorIs(t, err, ErrRequest)
	assert.Contains(t, err.Error(), "UNAUTHENTICATED")
}

func TestTakeSnapshot(t *testing.T) {
	f := newFakePolaris(t)
	f.replies[OpTakeSnapshot] = func(req graphqlRequest) reply {
		assert.True(t, strings.HasPrefix(strings.TrimSpace(req.Query), "mutation"))
		assert.Equal(t, []any{"5f1c-uuid"}, req.Variables["ec2InstanceIds"])
		return reply{http.StatusOK, `{"data":{"createAwsNativeEc2InstanceSnapshots":{
			"taskchainUuids":[{"ec2InstanceId":"5f1c-uuid","taskchainUuid":"tc-1"}],
			"errors":[]}}}`}
	}

	res, err := f.client().TakeSnapshot(context.Background(), "5f1c-uuid")

	require.NoError(t, err)
	assert.Equal(t, []TaskChain{{InstanceID: "5f1c-uuid", TaskChainID: "tc-1"}}, res.TaskChains)
	assert.NoError(t, res.Err())
}

func TestTakeSnapshot_EmbeddedErrors(t *testing.T) {
	f := newFakePolaris(t)
	f.on(OpTakeSnapshot, http.StatusOK, `{"data":{"createAwsNativeEc2InstanceSnapshots":{
		"taskchainUuids":[],
		"errors":[{"error":"instance is being deleted"}]}}}`)

	res, err := f.client().TakeSnapshot(context.Background(), "5f1c-uuid")

	require.NoError(t, err, "transport succeeded")
	assert.Equal(t, []string{"instance is being deleted"}, res.Errors)
	assert.ErrorIs(t, res.Err(), ErrSnapshotRejected)
	assert.Contains(t, res.Err().Error(), "instance is being deleted")
}

func TestOnDemandSnapshots(t *testing.T) {
	f := newFakePolaris(t)
	f.replies[OpSnapshotDetails] = func(req graphqlRequest) reply {
		assert.Equal(t, "5f1c-uuid", req.Variables["snappableFid"])
		assert.Equal(t, true, req.Variables["isOnDemandSnapshot"])
		assert.Equal(t, "Date", req.Variables["sortBy"])
		return reply{http.StatusOK, `{"data":{"snappable":{
			"id":"5f1c-uuid","instanceId":"i-0abc","instanceName":"web",
			"snapshotConnection":{"nodes":[
				{"id":"s5","date":"2026-10-05T10:00:00.000Z","isOnDemandSnapshot":true},
				{"id":"s4","date":"2026-10-04T10:00:00.000Z","isOnDemandSnapshot":true}
			]}}}}`}
	}

	snaps, err := f.client().OnDemandSnapshots(context.Background(), "5f1c-uuid")

	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "s5", snaps[0].ID)
	assert.True(t, snaps[0].IsOnDemand)
	assert.Equal(t, time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC), snaps[0].Date.UTC())
	assert.Equal(t, "s4", snaps[1].ID)
}

func TestOnDemandSnapshots_Empty(t *testing.T) {
	f := newFakePolaris(t)
	f.on(OpSnapshotDetails, http.StatusOK,
		`{"data":{"snappable":{"id":"h","instanceId":"i","instanceName":"n","snapshotConnection":{"nodes":[]}}}}`)

	snaps, err := f.client().OnDemandSnapshots(context.Background(), "h")

	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestDeleteSnapshot(t *testing.T) {
	f := newFakePolaris(t)
	f.replies[OpDeleteSnapshot] = func(req graphqlRequest) reply {
		assert.Equal(t, "s4", req.Variables["snapshotFid"])
		return reply{http.StatusOK, `{"data":{"deletePolarisSnapshot":true}}`}
	}

	require.NoError(t, f.client().DeleteSnapshot(context.Background(), "s4"))
	assert.Equal(t, []string{OpDeleteSnapshot}, f.operations())
}

func TestDeleteSnapshot_Failure(t *testing.T) {
	f := newFakePolaris(t)
	f.on(OpDeleteSnapshot, http.StatusForbidden, `{"message":"forbidden"}`)

	err := f.client().DeleteSnapshot(context.Background(), "s4")

	assert.ErrorIs(t, err, ErrRequest)
	assert.Contains(t, err.Error(), OpDeleteSnapshot)
}

func TestClient_SendsOperationName(t *testing.T) {
	f := newFakePolaris(t)
	f.on(OpInstancesList, http.StatusOK, `{"data":{"ec2InstancesList":{"edges":[{"node":{"id":"h"}}]}}}`)
	f.on(OpTakeSnapshot, http.StatusOK, `{"data":{"createAwsNativeEc2InstanceSnapshots":{"taskchainUuids":[],"errors":[]}}}`)
	f.on(OpSnapshotDetails, http.StatusOK,
		`{"data":{"snappable":{"id":"h","instanceId":"i","instanceName":"n","snapshotConnection":{"nodes":[]}}}}`)
	f.on(OpDeleteSnapshot, http.StatusOK, `{"data":{"deletePolarisSnapshot":true}}`)

	c := f.client()
	ctx := context.Background()
	_, err := c.LookupInstance(ctx, "i-0abc")
	require.NoError(t, err)
	_, err = c.TakeSnapshot(ctx, "h")
	require.NoError(t, err)
	_, err = c.OnDemandSnapshots(ctx, "h")
	require.NoError(t, err)
	require.NoError(t, c.DeleteSnapshot(ctx, "s1"))

	want := []string{OpInstancesList, OpTakeSnapshot, OpSnapshotDetails, OpDeleteSnapshot}
	assert.Equal(t, want, f.operations())
	assert.Equal(t, want, f.bodyOperations())
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     string
	}{
		{name: "query", document: "query AWSInstancesList($filters:[Filter!]!){x}", want: "AWSInstancesList"},
		{name: "mutation", document: "  mutation DeletePolarisSnapshot($snapshotFid:UUID!){x}", want: "DeletePolarisSnapshot"},
		{name: "no variables", document: "query Ping {ping}", want: "Ping"},
		{name: "anonymous", document: "{ping}", want: ""},
		{name: "anonymous query", document: "query { ping }", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OperationName(tt.document))
		})
	}
}

func TestWithOperationName(t *testing.T) {
	got := withOperationName([]byte(`{"query":"query AWSInstancesList($f:[Filter!]!){x}","variables":{"f":[]}}`))
	assert.JSONEq(t, `{
		"operationName":"AWSInstancesList",
		"query":"query AWSInstancesList($f:[Filter!]!){x}",
		"variables":{"f":[]}
	}`, string(got))

	named := `{"operationName":"Other","query":"query AWSInstancesList{x}"}`
	assert.Equal(t, named, string(withOperationName([]byte(named))))

	assert.Equal(t, `{"query":"{x}"}`, string(withOperationName([]byte(`{"query":"{x}"}`))))
	assert.Equal(t, `not json`, string(withOperationName([]byte(`not json`))))
}

func TestUserAgentTransport(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(time.Second).Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.True(t, strings.HasPrefix(ua, "ec2snap/"))
}
