package happn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	opAuthenticate = "authenticate"

	grantType     = "assertion"
	assertionType = "facebook_access_token"
	oauthScope    = "mobile_app"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	UserID      any    `json:"user_id"`
}

// userID accepts the id as either a JSON string or number.
func (t tokenResponse) userID() string {
	switch v := t.UserID.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Authenticate exchanges a Facebook access token for an API session and
// returns the new token and user id. The session is immutable once set.
func (c *Client) Authenticate(ctx context.Context, fbToken string) (string, string, error) {
	if strings.TrimSpace(fbToken) == "" {
		return "", "", &AuthenticationError{Err: errors.New("facebook access token is empty")}
	}
	if c.Authenticated() {
		return "", "", ErrSessionEstablished
	}

	form := url.Values{
		"client_id":      {c.creds.ClientID},
		"client_secret":  {c.creds.ClientSecret},
		"grant_type":     {grantType},
		"assertion_type": {assertionType},
		"assertion":      {fbToken},
		"scope":          {oauthScope},
	}
	headers := c.baseHeaders()
	headers["Content-Type"] = contentTypeForm

	body, err := c.send(ctx, opAuthenticate, http.MethodPost, c.endpoint("connect", "oauth", "token"), headers, []byte(form.Encode()))
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return "", "", &AuthenticationError{StatusCode: reqErr.StatusCode, Reason: reqErr.Reason}
		}
		return "", "", &AuthenticationError{Err: err}
	}

	var tok tokenResponse
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&tok); err != nil {
		return "", "", &AuthenticationError{StatusCode: http.StatusOK, Err: fmt.Errorf("decode token response: %w", err)}
	}
	userID := tok.userID()
	if tok.AccessToken == "" || userID == "" {
		return "", "", &AuthenticationError{StatusCode: http.StatusOK, Err: errors.New("token response missing access_token or user_id")}
	}

	c.mu.Lock()
	if c.session.Token != "" {
		c.mu.Unlock()
		return "", "", ErrSessionEstablished
	}
	c.session = Session{Token: tok.AccessToken, UserID: userID}
	c.mu.Unlock()

	c.log.DebugObj("session established", "session", map[string]any{"user_id": userID})
	return tok.AccessToken, userID, nil
}

// Login authenticates and, when pos is non-nil, publishes an initial position.
func (c *Client) Login(ctx context.Context, fbToken string, pos *Position) error {
	if _, _, err := c.Authenticate(ctx, fbToken); err != nil {
		return err
	}
	if pos == nil {
		return nil
	}
	return c.SetPosition(ctx, pos.Latitude, pos.Longitude)
}
