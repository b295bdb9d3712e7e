package auth

import (
	"errors"
	"testing"
	"time"

	"learnpath-web/internal/apperr"
)

func TestParseFragment(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      string
		wantErr  error
		wantAT   string
		wantRT   string
		wantExpy time.Time
	}{
		{name: "absent", raw: "", wantErr: apperr.ErrNoCallbackData},
		{name: "bare hash", raw: "#", wantErr: apperr.ErrNoCallbackData},
		{name: "access only", raw: "access_token=at&token_type=bearer", wantErr: apperr.ErrMissingToken},
		{name: "refresh only", raw: "#refresh_token=rt", wantErr: apperr.ErrMissingToken},
		{name: "provider error", raw: "error=access_denied&error_description=User+cancelled", wantErr: apperr.ErrMissingToken},
		{name: "expires_at", raw: "#access_token=at&refresh_token=rt&expires_at=1900000000", wantAT: "at", wantRT: "rt", wantExpy: time.Unix(1900000000, 0)},
		{name: "expires_in", raw: "access_token=at&refresh_token=rt&expires_in=3600", wantAT: "at", wantRT: "rt", wantExpy: now.Add(time.Hour)},
		{name: "no expiry", raw: "access_token=at&refresh_token=rt", wantAT: "at", wantRT: "rt"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tok, err := ParseFragment(tc.raw, now)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseFragment() error = %v, want %v", err, tc.wantErr)
				}
				if tok != nil {
					t.Fatalf("expected nil token on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFragment() error = %v", err)
			}
			if tok.AccessToken != tc.wantAT || tok.RefreshToken != tc.wantRT {
				t.Fatalf("token = %+v", tok)
			}
			if !tok.Expiry.Equal(tc.wantExpy) {
				t.Fatalf("Expiry = %v, want %v", tok.Expiry, tc.wantExpy)
			}
		})
	}
}
