package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.happn.fr" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.Device.LanguageID != "en" {
		t.Errorf("LanguageID = %q", cfg.Device.LanguageID)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CLIENT_ID", "cid")
	t.Setenv("CLIENT_SECRET", "secret")
	t.Setenv("DEVICE_ID", "dev-1")
	t.Setenv("GPS_TOKEN", "push")
	t.Setenv("TYPE", "android")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ClientID != "cid" || cfg.ClientSecret != "secret" {
		t.Errorf("credentials = %q/%q", cfg.ClientID, cfg.ClientSecret)
	}
	if cfg.Device.DeviceID != "dev-1" || cfg.Device.GPSToken != "push" || cfg.Device.Type != "android" {
		t.Errorf("device = %+v", cfg.Device)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")
	if _, err := load(viper.New()); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}

func TestRedacted(t *testing.T) {
	cfg := Config{ClientID: "cid", ClientSecret: "s", FBToken: "fb"}
	r := cfg.Redacted()
	if r.ClientSecret != "***" || r.FBToken != "***" || r.ClientID != "cid" {
		t.Fatalf("Redacted = %+v", r)
	}
	if cfg.ClientSecret != "s" {
		t.Fatal("Redacted must not modify the receiver")
	}
}
