package happn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/samvad-hq/happn-client/pkg/httpclient"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.happn.fr"

const (
	userAgent       = "Happn/19.1.0 AndroidSDK/19"
	legacyUserAgent = "Happn/1.0 AndroidSDK/0"

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded; charset=UTF-8"
)

// Config carries the values a Client needs at construction.
type Config struct {
	BaseURL     string
	Credentials Credentials
}

// Client is a single-user session against the remote API. Session state is
// guarded by a mutex; requests themselves are not serialized.
type Client struct {
	baseURL   string
	host      string
	creds     Credentials
	transport httpclient.Client
	log       Logger

	mu      sync.RWMutex
	session Session
}

// New builds a Client. A nil transport falls back to a resty client with the
// default timeout and a nil logger discards output.
func New(cfg Config, transport httpclient.Client, log Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", base)
	}
	if transport == nil {
		transport = httpclient.NewRestyClient(httpclient.DefaultTimeout)
	}

	return &Client{
		baseURL:   base,
		host:      u.Host,
		creds:     cfg.Credentials,
		transport: transport,
		log:       ensureLogger(log),
	}, nil
}

// Session returns a copy of the current session state.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.session
	if s.Position != nil {
		p := *s.Position
		s.Position = &p
	}
	return s
}

// Authenticated reports whether a token has been obtained.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Token != ""
}

// identity returns the token and user id, or ErrNotAuthenticated.
func (c *Client) identity() (string, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session.Token == "" {
		return "", "", ErrNotAuthenticated
	}
	return c.session.Token, c.session.UserID, nil
}

// baseHeaders returns a fresh copy of the headers every request carries.
func (c *Client) baseHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"platform":        "android",
		"Host":            c.host,
		"Connection":      "Keep-Alive",
		"Accept-Encoding": "gzip",
	}
}

// authHeaders adds the OAuth header and content type to the base set.
func (c *Client) authHeaders(token, contentType string) map[string]string {
	h := c.baseHeaders()
	h["Authorization"] = `OAuth="` + token + `"`
	h["Content-Type"] = contentType
	return h
}

// queryHeaders is the header set used by the read endpoints.
func (c *Client) queryHeaders(token string) map[string]string {
	h := c.authHeaders(token, contentTypeJSON)
	h["http.useragent"] = legacyUserAgent
	return h
}

func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

// send performs one exchange and classifies it. Only 200 counts as success.
func (c *Client) send(ctx context.Context, op, method, rawURL string, headers map[string]string, body []byte) ([]byte, error) {
	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method:  method,
		URL:     rawURL,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	code := resp.StatusCode()
	if code != http.StatusOK {
		reason := StatusReason(code)
		c.log.WarnObj("request rejected", "rejection", map[string]any{
			"op":     op,
			"status": code,
			"reason": reason,
		})
		return nil, &RequestError{Op: op, StatusCode: code, Reason: reason}
	}
	return resp.Body(), nil
}

// sendForm issues an authenticated form-encoded request and discards the body.
func (c *Client) sendForm(ctx context.Context, op, method, rawURL, token string, form url.Values) error {
	_, err := c.send(ctx, op, method, rawURL, c.authHeaders(token, contentTypeForm), []byte(form.Encode()))
	return err
}

// sendJSON issues an authenticated JSON request and discards the body.
func (c *Client) sendJSON(ctx context.Context, op, method, rawURL, token string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", op, err)
	}
	_, err = c.send(ctx, op, method, rawURL, c.authHeaders(token, contentTypeJSON), body)
	return err
}

// envelope is the wrapper every read endpoint answers with.
type envelope[T any] struct {
	Data T `json:"data"`
}

// decodeData extracts the "data" member, keeping numbers as json.Number so
// values pass through unchanged.
func decodeData[T any](op string, body []byte) (T, error) {
	var env envelope[T]
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s response: %w", op, err)
	}
	return env.Data, nil
}
