package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co/")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("STATE_SECRET", "secret")
}

func TestParseDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SupabaseURL != "https://demo.supabase.co" {
		t.Fatalf("SupabaseURL = %q, want trailing slash trimmed", cfg.SupabaseURL)
	}
	if cfg.CallbackMode != CallbackAmbient {
		t.Fatalf("CallbackMode = %q, want %q", cfg.CallbackMode, CallbackAmbient)
	}
	if cfg.SessionBackend != SessionMemory {
		t.Fatalf("SessionBackend = %q, want %q", cfg.SessionBackend, SessionMemory)
	}
	if cfg.ProfileBackend != ProfileSupabase {
		t.Fatalf("ProfileBackend = %q, want %q", cfg.ProfileBackend, ProfileSupabase)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Fatalf("SessionTTL = %v, want 720h", cfg.SessionTTL)
	}
	if cfg.SupabaseTimeout != 10*time.Second {
		t.Fatalf("SupabaseTimeout = %v, want 10s", cfg.SupabaseTimeout)
	}
}

func TestParseTrimsCORSOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGINS", " https://a.test, ,https://b.test ")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.test" || cfg.CORSOrigins[1] != "https://b.test" {
		t.Fatalf("CORSOrigins = %#v", cfg.CORSOrigins)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing anon key", env: map[string]string{"SUPABASE_ANON_KEY": ""}, wantErr: "SUPABASE_ANON_KEY"},
		{name: "missing state secret", env: map[string]string{"STATE_SECRET": ""}, wantErr: "STATE_SECRET"},
		{name: "bad callback mode", env: map[string]string{"CALLBACK_MODE": "cookie"}, wantErr: "CALLBACK_MODE"},
		{name: "redis without url", env: map[string]string{"SESSION_BACKEND": "redis"}, wantErr: "REDIS_URL"},
		{name: "mongo without uri", env: map[string]string{"PROFILE_BACKEND": "mongo"}, wantErr: "MONGODB_URI"},
		{name: "unknown profile backend", env: map[string]string{"PROFILE_BACKEND": "sqlite"}, wantErr: "PROFILE_BACKEND"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			if err == nil {
				t.Fatalf("Parse() error = nil, want error mentioning %s", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Parse() error = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}

func TestCallbackURLPrefersBaseURL(t *testing.T) {
	t.Parallel()

	cfg := Config{BaseURL: "https://learn.example"}
	if got := cfg.CallbackURL("http://localhost:8080", "/auth/callback"); got != "https://learn.example/auth/callback" {
		t.Fatalf("CallbackURL = %q", got)
	}
	cfg.BaseURL = ""
	if got := cfg.CallbackURL("http://localhost:8080", "/auth/callback"); got != "http://localhost:8080/auth/callback" {
		t.Fatalf("CallbackURL = %q", got)
	}
}
