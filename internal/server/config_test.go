package server

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Listen != "127.0.0.1:8000" {
		t.Errorf("listen = %q, want 127.0.0.1:8000", cfg.Server.Listen)
	}
	if cfg.Server.FrontendOrigin != "http://localhost:3000" {
		t.Errorf("frontend_origin = %q, want http://localhost:3000", cfg.Server.FrontendOrigin)
	}
	if cfg.AI.Model != "gemini-1.5-flash-latest" {
		t.Errorf("ai.model = %q, want gemini-1.5-flash-latest", cfg.AI.Model)
	}
	if cfg.Session.Timeout != 24*time.Hour {
		t.Errorf("session.timeout = %v, want 24h", cfg.Session.Timeout)
	}
}

func TestLoadConfigEnvBindings(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "cid")
	t.Setenv("GOOGLE_CLIENT_SECRET", "csecret")
	t.Setenv("REDIRECT_URI", "http://localhost:8000/api/auth/google/callback")
	t.Setenv("SECRET_KEY", "sk")
	t.Setenv("GEMINI_API_KEY", "gk")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Google.ClientID != "cid" {
		t.Errorf("client_id = %q, want cid", cfg.Google.ClientID)
	}
	if cfg.Google.ClientSecret != "csecret" {
		t.Errorf("client_secret = %q, want csecret", cfg.Google.ClientSecret)
	}
	if cfg.Google.RedirectURI == "" {
		t.Error("redirect_uri not bound from env")
	}
	if cfg.Session.Secret != "sk" {
		t.Errorf("session.secret = %q, want sk", cfg.Session.Secret)
	}
	if cfg.AI.APIKey != "gk" {
		t.Errorf("ai.api_key = %q, want gk", cfg.AI.APIKey)
	}

	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("ValidateForRun: %v", err)
	}
}

func TestValidateForRun(t *testing.T) {
	valid := Config{
		Google: GoogleConfig{
			ClientID:     "cid",
			ClientSecret: "csecret",
			RedirectURI:  "http://localhost:8000/cb",
		},
		Session: SessionConfig{Secret: "sk"},
	}
	valid.AI.APIKey = "gk"

	if err := ValidateForRun(valid); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	missing := valid
	missing.Google.ClientID = ""
	if err := ValidateForRun(missing); err == nil {
		t.Error("missing client_id accepted")
	}

	missing = valid
	missing.Session.Secret = ""
	if err := ValidateForRun(missing); err == nil {
		t.Error("missing session secret accepted")
	}

	missing = valid
	missing.AI.APIKey = ""
	if err := ValidateForRun(missing); err == nil {
		t.Error("missing AI key accepted")
	}
}
