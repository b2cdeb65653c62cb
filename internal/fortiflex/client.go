package fortiflex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIBaseURI = "https://support.fortinet.com/ES/api/fortiflex/v2/"
	DefaultAuthURI    = "https://customerapiauth.fortinet.com/api/v1/oauth/token/"
	DefaultClientID   = "flexvm"

	// MaxTimeout is the ceiling for a single outbound request.
	MaxTimeout = 30 * time.Second
)

// Credentials are the process-wide defaults used when a tool call leaves
// the corresponding argument empty.
type Credentials struct {
	APIUser     string
	APIPassword string
	AccountID   int64
	ProgramSN   string
}

// Options configures endpoints and transport behaviour. Zero values fall
// back to the FortiFlex production endpoints and MaxTimeout.
type Options struct {
	APIBaseURI string
	AuthURI    string
	ClientID   string
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// Client issues FortiFlex API calls. It holds no mutable state and is safe
// for concurrent use; every call builds its own short-lived http.Client.
type Client struct {
	creds    Credentials
	baseURI  string
	authURI  string
	clientID string
	timeout  time.Duration
	log      zerolog.Logger
}

func New(creds Credentials, opts Options) *Client {
	c := &Client{
		creds:    creds,
		baseURI:  opts.APIBaseURI,
		authURI:  opts.AuthURI,
		clientID: opts.ClientID,
		timeout:  opts.Timeout,
		log:      opts.Logger.With().Str("component", "fortiflex").Logger(),
	}
	if c.baseURI == "" {
		c.baseURI = DefaultAPIBaseURI
	}
	if !strings.HasSuffix(c.baseURI, "/") {
		c.baseURI += "/"
	}
	if c.authURI == "" {
		c.authURI = DefaultAuthURI
	}
	if c.clientID == "" {
		c.clientID = DefaultClientID
	}
	if c.timeout <= 0 || c.timeout > MaxTimeout {
		c.timeout = MaxTimeout
	}
	return c
}

// endpoint joins a path such as "entitlements/list" onto the API base URI.
func (c *Client) endpoint(path string) string {
	return c.baseURI + strings.TrimPrefix(path, "/")
}

// logger prefers the call-scoped logger stored in ctx by the tool layer.
func (c *Client) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &c.log
}

// newHTTPClient returns a client with its own transport so calls never
// share a connection pool. A non-empty token is attached as a bearer header.
// The caller closes the returned base transport's idle connections once the
// call is done; the oauth2 wrapper does not forward CloseIdleConnections.
func (c *Client) newHTTPClient(token string) (*http.Client, *http.Transport) {
	base := http.DefaultTransport.(*http.Transport).Clone()

	var rt http.RoundTripper = base
	if token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		}
	}
	return &http.Client{
		Transport: rt,
		Timeout:   c.timeout,
	}, base
}

// post sends body as JSON to uri and decodes the JSON object in the reply.
func (c *Client) post(ctx context.Context, uri string, body any, token string) (map[string]any, error) {
	log := c.logger(ctx).With().Str("uri", uri).Logger()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, c.fail(&log, &UnexpectedError{URI: uri, Err: fmt.Errorf("marshal request: %w", err)})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(payload))
	if err != nil {
		return nil, c.fail(&log, &UnexpectedError{URI: uri, Err: fmt.Errorf("create request: %w", err)})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	hc, base := c.newHTTPClient(token)
	defer base.CloseIdleConnections()

	log.Debug().RawJSON("body", redact(payload)).Msg("POST")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, c.fail(&log, &RequestError{URI: uri, Err: err})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&log, &RequestError{URI: uri, Err: fmt.Errorf("read response: %w", err)})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(&log, &HTTPError{URI: uri, StatusCode: resp.StatusCode, Body: string(data)})
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, c.fail(&log, &UnexpectedError{URI: uri, Err: fmt.Errorf("decode response: %w", err)})
	}

	log.Debug().Int("status", resp.StatusCode).Msg("response")
	return out, nil
}

// fail logs err by kind and hands it back unchanged.
func (c *Client) fail(log *zerolog.Logger, err error) error {
	switch e := err.(type) {
	case *HTTPError:
		log.Error().Int("status", e.StatusCode).Str("body", e.Body).Msg("HTTP error occurred")
	case *RequestError:
		log.Error().Err(e.Err).Msg("request error occurred")
	default:
		log.Error().Err(err).Msg("unexpected error occurred")
	}
	return err
}

// redact masks the password field of token requests before debug logging.
func redact(payload []byte) []byte {
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return payload
	}
	if _, ok := m["password"]; !ok {
		return payload
	}
	m["password"] = "***"
	out, err := json.Marshal(m)
	if err != nil {
		return payload
	}
	return out
}
