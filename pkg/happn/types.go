package happn

import (
	"encoding/json"
	"fmt"
	"math"
)

// Position is a latitude/longitude pair in degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate rejects non-finite or out-of-range coordinates.
func (p Position) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("invalid latitude %v", p.Latitude)
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("invalid longitude %v", p.Longitude)
	}
	return nil
}

// Rounded returns p with both coordinates rounded to seven decimal places.
func (p Position) Rounded() Position {
	return Position{
		Latitude:  roundCoordinate(p.Latitude),
		Longitude: roundCoordinate(p.Longitude),
	}
}

const coordinateScale = 1e7

func roundCoordinate(v float64) float64 {
	return math.Round(v*coordinateScale) / coordinateScale
}

// Session is the authenticated identity held by a Client.
type Session struct {
	Token    string
	UserID   string
	Position *Position
}

// Credentials identify this application to the token endpoint.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// DeviceProfile describes the handset registered with the remote service.
type DeviceProfile struct {
	DeviceID   string `json:"-" yaml:"device_id"`
	AppBuild   string `json:"app_build" yaml:"app_build"`
	CountryID  string `json:"country_id" yaml:"country_id"`
	GPSAdID    string `json:"gps_adid" yaml:"gps_adid"`
	IDFA       string `json:"idfa" yaml:"idfa"`
	LanguageID string `json:"language_id" yaml:"language_id"`
	OSVersion  string `json:"os_version" yaml:"os_version"`
	Token      string `json:"token" yaml:"token"`
	Type       string `json:"type" yaml:"type"`
}

// RemoteProfile is a user record exactly as returned by the remote service.
type RemoteProfile map[string]any

// ID returns the profile's "id" field as a string, or "" if absent.
func (p RemoteProfile) ID() string {
	switch v := p["id"].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Relation returns the profile's "my_relation" field.
func (p RemoteProfile) Relation() Relation {
	switch v := p["my_relation"].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return RelationNone
		}
		return Relation(n)
	case float64:
		return Relation(v)
	default:
		return RelationNone
	}
}

// Relation is how the session user relates to another profile.
type Relation int

const (
	RelationNone    Relation = 0
	RelationLiked   Relation = 1
	RelationMatched Relation = 4
)

func (r Relation) String() string {
	switch r {
	case RelationNone:
		return "none"
	case RelationLiked:
		return "liked"
	case RelationMatched:
		return "matched"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

// Page selects a window of a listing. Zero fields take the operation's default.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) withDefaults(limit int) (Page, error) {
	if p.Limit < 0 || p.Offset < 0 {
		return Page{}, fmt.Errorf("invalid page limit=%d offset=%d", p.Limit, p.Offset)
	}
	if p.Limit == 0 {
		p.Limit = limit
	}
	return p, nil
}
