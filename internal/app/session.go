package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/happn-client/internal/config"
	"github.com/samvad-hq/happn-client/internal/logger"
	"github.com/samvad-hq/happn-client/pkg/happn"
	"github.com/samvad-hq/happn-client/pkg/httpclient"
)

// Runtime wires configuration, transport and logging into an authenticated
// happn.Client.
type Runtime struct {
	cfg    *config.Config
	client *happn.Client
	log    logger.Logger
}

// NewRuntime builds an unauthenticated runtime from config. A nil transport
// uses resty with the configured timeout.
func NewRuntime(cfg *config.Config, transport httpclient.Client, log logger.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if transport == nil {
		transport = httpclient.NewRestyClient(cfg.RequestTimeout)
	}

	client, err := happn.New(happn.Config{
		BaseURL: cfg.APIBaseURL,
		Credentials: happn.Credentials{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		},
	}, transport, log)
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}

	log.InfoObj("client initialized", "client_config", map[string]any{
		"base_url":        cfg.APIBaseURL,
		"timeout_seconds": int(cfg.RequestTimeout.Seconds()),
	})

	return &Runtime{cfg: cfg, client: client, log: log}, nil
}

// Login authenticates with fbToken, falling back to the configured token, and
// publishes pos when it is non-nil.
func (r *Runtime) Login(ctx context.Context, fbToken string, pos *happn.Position) (*happn.Client, error) {
	if r == nil || r.client == nil {
		return nil, fmt.Errorf("runtime is not initialized")
	}
	if fbToken == "" {
		fbToken = r.cfg.FBToken
	}
	if fbToken == "" {
		return nil, fmt.Errorf("facebook access token is required (set FB_TOKEN or --fb-token)")
	}

	if err := r.client.Login(ctx, fbToken, pos); err != nil {
		r.log.ErrorObj("login failed", "error", err.Error())
		return nil, err
	}
	r.log.InfoObj("logged in", "session", map[string]any{
		"user_id":      r.client.Session().UserID,
		"has_position": pos != nil,
	})
	return r.client, nil
}

// Device returns the handset profile described by the configuration.
func (r *Runtime) Device() happn.DeviceProfile {
	d := r.cfg.Device
	return happn.DeviceProfile{
		DeviceID:   d.DeviceID,
		AppBuild:   d.AppBuild,
		CountryID:  d.CountryID,
		GPSAdID:    d.GPSAdID,
		IDFA:       d.IDFA,
		LanguageID: d.LanguageID,
		OSVersion:  d.OSVersion,
		Token:      d.GPSToken,
		Type:       d.Type,
	}
}

// Client returns the underlying client, authenticated or not.
func (r *Runtime) Client() *happn.Client { return r.client }
