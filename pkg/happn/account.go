package happn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	opSetPosition    = "set_position"
	opSetDevice      = "set_device"
	opApplySettings  = "apply_settings"
	opMatchingAgeMin = "set_matching_age_min"
	opMatchingAgeMax = "set_matching_age_max"
	opUpdateActivity = "update_activity"
)

// positionBody keeps the altitude literal as 0.0 on the wire.
type positionBody struct {
	Alt       json.RawMessage `json:"alt"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
}

var zeroAltitude = json.RawMessage("0.0")

// SetPosition publishes the user's position. Coordinates are rounded to seven
// decimal places on the wire; the session keeps the unrounded values, and only
// when the server accepted the update.
func (c *Client) SetPosition(ctx context.Context, latitude, longitude float64) error {
	pos := Position{Latitude: latitude, Longitude: longitude}
	if err := pos.Validate(); err != nil {
		return err
	}
	token, me, err := c.identity()
	if err != nil {
		return err
	}

	wire := pos.Rounded()
	payload := positionBody{Alt: zeroAltitude, Latitude: wire.Latitude, Longitude: wire.Longitude}
	if err := c.sendJSON(ctx, opSetPosition, http.MethodPost, c.endpoint("api", "users", url.PathEscape(me), "position")+"/", token, payload); err != nil {
		return err
	}

	c.mu.Lock()
	c.session.Position = &pos
	c.mu.Unlock()

	c.log.DebugObj("position updated", "position", pos)
	return nil
}

// SetDevice registers the handset described by dev for the session user.
func (c *Client) SetDevice(ctx context.Context, dev DeviceProfile) error {
	if dev.DeviceID == "" {
		return errors.New("device id is required")
	}
	if dev.LanguageID == "" {
		dev.LanguageID = "en"
	}
	token, me, err := c.identity()
	if err != nil {
		return err
	}

	rawURL := c.endpoint("api", "users", url.PathEscape(me), "devices", url.PathEscape(dev.DeviceID))
	if err := c.sendJSON(ctx, opSetDevice, http.MethodPut, rawURL, token, dev); err != nil {
		return err
	}
	c.log.DebugObj("device set", "device_id", dev.DeviceID)
	return nil
}

// ApplySettings sends settings as the user's preference document.
func (c *Client) ApplySettings(ctx context.Context, settings map[string]any) error {
	if len(settings) == 0 {
		return errors.New("settings are empty")
	}
	token, me, err := c.identity()
	if err != nil {
		return err
	}

	if err := c.sendJSON(ctx, opApplySettings, http.MethodPut, c.endpoint("api", "users", url.PathEscape(me)), token, settings); err != nil {
		return err
	}
	c.log.DebugObj("settings updated", "keys", len(settings))
	return nil
}

// SetMatchingAgeMin sets the lowest age the user wants to be matched with.
func (c *Client) SetMatchingAgeMin(ctx context.Context, age int) error {
	return c.updateUserField(ctx, opMatchingAgeMin, "matching_age_min", age)
}

// SetMatchingAgeMax sets the highest age the user wants to be matched with.
func (c *Client) SetMatchingAgeMax(ctx context.Context, age int) error {
	return c.updateUserField(ctx, opMatchingAgeMax, "matching_age_max", age)
}

func (c *Client) updateUserField(ctx context.Context, op, field string, age int) error {
	if age < 0 {
		return fmt.Errorf("%s: age must not be negative, got %d", op, age)
	}
	token, me, err := c.identity()
	if err != nil {
		return err
	}

	form := url.Values{field: {strconv.Itoa(age)}}
	if err := c.sendForm(ctx, op, http.MethodPut, c.endpoint("api", "users", url.PathEscape(me)), token, form); err != nil {
		return err
	}
	c.log.DebugObj("matching age updated", field, age)
	return nil
}

// UpdateActivity marks the user as recently active.
func (c *Client) UpdateActivity(ctx context.Context) error {
	token, me, err := c.identity()
	if err != nil {
		return err
	}

	form := url.Values{"update_activity": {"true"}}
	if err := c.sendForm(ctx, opUpdateActivity, http.MethodPut, c.endpoint("api", "users", url.PathEscape(me)), token, form); err != nil {
		return err
	}
	c.log.DebugObj("activity updated", "user_id", me)
	return nil
}
