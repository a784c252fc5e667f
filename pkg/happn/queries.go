package happn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	opGetDistance        = "get_distance"
	opGetUserInfo        = "get_user_info"
	opGetRecommendations = "get_recommendations"
	opGetDeclined        = "get_declined"

	// DefaultRecommendationsLimit is the page size used when Page.Limit is zero.
	DefaultRecommendationsLimit = 16
	// DefaultDeclinedLimit is the page size used when Page.Limit is zero.
	DefaultDeclinedLimit = 128

	notificationTypes = "468"
)

// Field selections understood by the remote service. These are part of the
// wire contract and must not be reordered.
const (
	distanceFields = "id,first_name,gender,last_name,birth_date,login,workplace,distance"

	userInfoFields = "about,is_accepted,first_name,age,job,workplace,modification_date," +
		"profiles.mode(1).width(720).height(1280).fields(url,width,height,mode)," +
		"last_meet_position,my_relation,is_charmed,distance,gender,my_conversation"

	recommendationFields = "id,modification_date,notification_type,nb_times," +
		"notifier.fields(id,job,is_accepted,workplace,my_relation,distance,gender,my_conversation," +
		"is_charmed,nb_photos,first_name,age,profiles.mode(1).width(360).height(640).fields(width,height,mode,url))"

	declinedFields = "is_charmed,modification_date,age,id,my_relation,distance,first_name"
)

type fieldsQuery struct {
	Fields string `json:"fields"`
}

type distanceData struct {
	Distance json.Number `json:"distance"`
}

type listQuery struct {
	Types  string `json:"types"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Fields string `json:"fields"`
}

// encodeQuery renders q as compact JSON and percent-escapes it for a query string.
func encodeQuery(q any) (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(raw)), nil
}

func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	token, _, err := c.identity()
	if err != nil {
		return nil, err
	}
	return c.send(ctx, op, http.MethodGet, rawURL, c.queryHeaders(token), nil)
}

// GetDistance returns how far userID is from the session user, in meters.
func (c *Client) GetDistance(ctx context.Context, userID string) (float64, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, errors.New(opGetDistance + ": user id is required")
	}
	q, err := encodeQuery(fieldsQuery{Fields: distanceFields})
	if err != nil {
		return 0, fmt.Errorf("encode %s query: %w", opGetDistance, err)
	}

	body, err := c.get(ctx, opGetDistance, c.endpoint("api", "users", url.PathEscape(userID))+"?"+q)
	if err != nil {
		return 0, err
	}
	data, err := decodeData[distanceData](opGetDistance, body)
	if err != nil {
		return 0, err
	}
	distance, err := data.Distance.Float64()
	if err != nil {
		return 0, fmt.Errorf("decode %s response: distance %q: %w", opGetDistance, data.Distance, err)
	}

	c.log.InfoObj("distance fetched", "distance", map[string]any{"user_id": userID, "meters": distance})
	return distance, nil
}

// GetUserInfo returns the "data" object of userID's profile unchanged.
func (c *Client) GetUserInfo(ctx context.Context, userID string) (RemoteProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New(opGetUserInfo + ": user id is required")
	}
	q, err := encodeQuery(fieldsQuery{Fields: userInfoFields})
	if err != nil {
		return nil, fmt.Errorf("encode %s query: %w", opGetUserInfo, err)
	}

	body, err := c.get(ctx, opGetUserInfo, c.endpoint("api", "users", url.PathEscape(userID))+"?query="+q)
	if err != nil {
		return nil, err
	}
	return decodeData[RemoteProfile](opGetUserInfo, body)
}

// GetRecommendations lists profiles crossed by the session user. Page.Limit
// defaults to 16.
func (c *Client) GetRecommendations(ctx context.Context, page Page) ([]RemoteProfile, error) {
	page, err := page.withDefaults(DefaultRecommendationsLimit)
	if err != nil {
		return nil, err
	}
	q, err := encodeQuery(listQuery{Types: notificationTypes, Limit: page.Limit, Offset: page.Offset, Fields: recommendationFields})
	if err != nil {
		return nil, fmt.Errorf("encode %s query: %w", opGetRecommendations, err)
	}
	_, me, err := c.identity()
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, opGetRecommendations, c.endpoint("api", "users", url.PathEscape(me), "notifications")+"/?query="+q)
	if err != nil {
		return nil, err
	}
	return decodeData[[]RemoteProfile](opGetRecommendations, body)
}

// GetDeclined lists profiles the session user rejected. Page.Limit defaults to 128.
func (c *Client) GetDeclined(ctx context.Context, page Page) ([]RemoteProfile, error) {
	page, err := page.withDefaults(DefaultDeclinedLimit)
	if err != nil {
		return nil, err
	}
	q, err := encodeQuery(listQuery{Types: notificationTypes, Limit: page.Limit, Offset: page.Offset, Fields: declinedFields})
	if err != nil {
		return nil, fmt.Errorf("encode %s query: %w", opGetDeclined, err)
	}

	body, err := c.get(ctx, opGetDeclined, c.endpoint("api", "users", "me", "rejected")+"?"+q)
	if err != nil {
		return nil, err
	}
	return decodeData[[]RemoteProfile](opGetDeclined, body)
}
