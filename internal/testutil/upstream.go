package testutil

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

const (
	APIPrefix  = "/ES/api/fortiflex/v2/"
	AuthPath   = "/api/v1/oauth/token/"
	TestToken  = "test-access-token"
	okResponse = `{"status":0,"message":"Request successfully processed.","error":null}`
)

// Request is one call recorded by the fake upstream.
type Request struct {
	Path   string
	Header http.Header
	Body   map[string]any
}

type reply struct {
	status int
	body   string
}

// Upstream is a fake FortiFlex API (auth + v2 endpoints) that records
// every request it receives.
type Upstream struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []Request
	replies  map[string]reply
	open     int
}

// NewUpstream starts the fake on a random port and stops it on cleanup.
// By default the auth endpoint returns TestToken and every API endpoint
// returns a generic success object.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()

	u := &Upstream{replies: make(map[string]reply)}

	e := echo.New()
	e.HideBanner = true
	e.POST("/*", u.handle)

	u.Server = httptest.NewUnstartedServer(e)
	u.Server.Config.ConnState = u.track
	u.Server.Start()
	t.Cleanup(u.Server.Close)
	return u
}

func (u *Upstream) track(_ net.Conn, state http.ConnState) {
	u.mu.Lock()
	defer u.mu.Unlock()
	switch state {
	case http.StateNew:
		u.open++
	case http.StateClosed, http.StateHijacked:
		u.open--
	}
}

// OpenConns reports how many client connections are currently open,
// idle keep-alive connections included.
func (u *Upstream) OpenConns() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.open
}

// BaseURI is the FortiFlex v2 API base, with trailing slash.
func (u *Upstream) BaseURI() string {
	return u.Server.URL + APIPrefix
}

// AuthURI is the OAuth token endpoint.
func (u *Upstream) AuthURI() string {
	return u.Server.URL + AuthPath
}

// Respond overrides the reply for a path. API paths may be given relative
// to the v2 prefix ("entitlements/list").
func (u *Upstream) Respond(path string, status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.replies[u.fullPath(path)] = reply{status: status, body: body}
}

// Requests returns a snapshot of everything received so far.
func (u *Upstream) Requests() []Request {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]Request, len(u.requests))
	copy(out, u.requests)
	return out
}

// Paths returns the request paths in arrival order.
func (u *Upstream) Paths() []string {
	reqs := u.Requests()
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Path)
	}
	return out
}

// Last returns the most recent request for path.
func (u *Upstream) Last(path string) (Request, bool) {
	full := u.fullPath(path)
	reqs := u.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Path == full {
			return reqs[i], true
		}
	}
	return Request{}, false
}

func (u *Upstream) fullPath(path string) string {
	if path == AuthPath || (len(path) > 0 && path[0] == '/') {
		return path
	}
	return APIPrefix + path
}

func (u *Upstream) handle(c echo.Context) error {
	req := c.Request()

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	path := req.URL.Path

	u.mu.Lock()
	u.requests = append(u.requests, Request{
		Path:   path,
		Header: req.Header.Clone(),
		Body:   body,
	})
	r, ok := u.replies[path]
	u.mu.Unlock()

	if ok {
		return c.Blob(r.status, echo.MIMEApplicationJSON, []byte(r.body))
	}

	if path == AuthPath {
		return c.JSON(http.StatusOK, map[string]any{
			"access_token":  TestToken,
			"expires_in":    3600,
			"token_type":    "Bearer",
			"scope":         "read write",
			"refresh_token": "test-refresh-token",
			"message":       "successfully authenticated",
			"status":        "success",
		})
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(okResponse))
}
