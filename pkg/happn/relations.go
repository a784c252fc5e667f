package happn

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const (
	opLikeUser     = "like_user"
	opDeclineUser  = "decline_user"
	opUnrejectUser = "unreject_user"
)

// LikeUser marks userID as accepted. Repeated calls send repeated requests.
func (c *Client) LikeUser(ctx context.Context, userID string) error {
	return c.relate(ctx, opLikeUser, http.MethodPost, userID, func(me, target string) string {
		return c.endpoint("api", "users", me, "accepted", target)
	})
}

// DeclineUser marks userID as rejected.
func (c *Client) DeclineUser(ctx context.Context, userID string) error {
	return c.relate(ctx, opDeclineUser, http.MethodPost, userID, func(me, target string) string {
		return c.endpoint("api", "users", me, "rejected", target)
	})
}

// UnrejectUser removes userID from the rejected list.
func (c *Client) UnrejectUser(ctx context.Context, userID string) error {
	return c.relate(ctx, opUnrejectUser, http.MethodDelete, userID, func(_, target string) string {
		return c.endpoint("api", "users", "me", "rejected", target)
	})
}

func (c *Client) relate(ctx context.Context, op, method, userID string, path func(me, target string) string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New(op + ": user id is required")
	}
	token, me, err := c.identity()
	if err != nil {
		return err
	}

	form := url.Values{"id": {userID}}
	if err := c.sendForm(ctx, op, method, path(url.PathEscape(me), url.PathEscape(userID)), token, form); err != nil {
		return err
	}
	c.log.DebugObj("relation updated", op, userID)
	return nil
}
