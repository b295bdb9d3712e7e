package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

const testUserID = "6f1c2a64-3b0f-4a55-9d0c-2b7f0e5e9a11"

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "anon-key", 5*time.Second)
}

func TestAuthorizeURL(t *testing.T) {
	t.Parallel()

	c := NewClient("https://demo.supabase.co/", "anon", time.Second)

	got, err := c.AuthorizeURL("google", "https://app.test/auth/callback", "chal")
	if err != nil {
		t.Fatalf("AuthorizeURL() error = %v", err)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse %q: %v", got, err)
	}
	if u.Host != "demo.supabase.co" || u.Path != "/auth/v1/authorize" {
		t.Fatalf("url = %q", got)
	}
	q := u.Query()
	if q.Get("provider") != "google" || q.Get("redirect_to") != "https://app.test/auth/callback" {
		t.Fatalf("query = %v", q)
	}
	if q.Get("code_challenge") != "chal" || q.Get("code_challenge_method") != "s256" {
		t.Fatalf("pkce query = %v", q)
	}

	implicit, err := c.AuthorizeURL("google", "https://app.test/auth/callback", "")
	if err != nil {
		t.Fatalf("AuthorizeURL() error = %v", err)
	}
	if strings.Contains(implicit, "code_challenge") {
		t.Fatalf("implicit url carries pkce params: %q", implicit)
	}

	if _, err := c.AuthorizeURL("", "x", ""); err == nil {
		t.Fatalf("expected error for empty provider")
	}
	if _, err := NewClient("", "anon", time.Second).AuthorizeURL("google", "x", ""); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestExchangeCode(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/v1/token" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("grant_type") != "pkce" {
			t.Errorf("grant_type = %q", r.URL.Query().Get("grant_type"))
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("apikey header = %q", r.Header.Get("apikey"))
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["auth_code"] != "code-1" || body["code_verifier"] != "ver-1" {
			t.Errorf("body = %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"at","token_type":"bearer","expires_in":3600,"expires_at":1900000000,"refresh_token":"rt","user":{"id":"`+testUserID+`","email":"a@b.test"}}`)
	})

	tr, err := c.ExchangeCode(context.Background(), "code-1", "ver-1")
	if err != nil {
		t.Fatalf("ExchangeCode() error = %v", err)
	}
	if tr.User.ID != testUserID || tr.User.Email != "a@b.test" {
		t.Fatalf("user = %+v", tr.User)
	}
	tok := tr.Token()
	if tok.AccessToken != "at" || tok.RefreshToken != "rt" {
		t.Fatalf("token = %+v", tok)
	}
	if !tok.Expiry.Equal(time.Unix(1900000000, 0)) {
		t.Fatalf("expiry = %v", tok.Expiry)
	}
}

func TestRefreshSessionFailure(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "refresh_token" {
			t.Errorf("grant_type = %q", r.URL.Query().Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":400,"error_code":"refresh_token_not_found","msg":"Invalid Refresh Token"}`)
	})

	_, err := c.RefreshSession(context.Background(), "stale")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "refresh_token grant") {
		t.Fatalf("error = %v", err)
	}
}

func TestCanceledContextSkipsCall(t *testing.T) {
	t.Parallel()

	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ExchangeCode(ctx, "code", "ver"); err == nil {
		t.Fatalf("expected context error")
	}
	if err := c.Upsert(ctx, "user_profile", "user_id", map[string]any{}, "tok"); err == nil {
		t.Fatalf("expected context error")
	}
	if called {
		t.Fatalf("request sent despite canceled context")
	}
}

func TestGetUserAndLogoutSendBearer(t *testing.T) {
	t.Parallel()

	var logouts int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer user-token" {
			t.Errorf("%s Authorization = %q", r.URL.Path, got)
		}
		switch r.URL.Path {
		case "/auth/v1/user":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"`+testUserID+`","email":"z@y.test","role":"authenticated"}`)
		case "/auth/v1/logout":
			logouts++
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	u, err := c.GetUser(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if u.ID != testUserID || u.Role != "authenticated" {
		t.Fatalf("user = %+v", u)
	}
	if _, err := c.GetUser(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty token")
	}

	if err := c.Logout(context.Background(), "user-token"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if logouts != 1 {
		t.Fatalf("logouts = %d, want 1", logouts)
	}
}

func TestSelectOne(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/user_profile" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("apikey = %q", r.Header.Get("apikey"))
		}
		q := r.URL.Query()
		if q.Get("select") != "*" || q.Get("limit") != "1" {
			t.Errorf("query = %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		if q.Get("user_id") == "eq.missing" {
			_, _ = io.WriteString(w, `[]`)
			return
		}
		_, _ = io.WriteString(w, `[{"user_id":"u-1","completed_onboarding":true}]`)
	})

	var row struct {
		UserID    string `json:"user_id"`
		Completed bool   `json:"completed_onboarding"`
	}
	found, err := c.SelectOne(context.Background(), "user_profile", "user_id", "u-1", "tok", &row)
	if err != nil || !found {
		t.Fatalf("SelectOne() = %v, %v", found, err)
	}
	if row.UserID != "u-1" || !row.Completed {
		t.Fatalf("row = %+v", row)
	}

	found, err = c.SelectOne(context.Background(), "user_profile", "user_id", "missing", "tok", &row)
	if err != nil || found {
		t.Fatalf("SelectOne(missing) = %v, %v", found, err)
	}
}

func TestInsertAndUpsertPrefer(t *testing.T) {
	t.Parallel()

	var prefer, conflict string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		prefer = r.Header.Get("Prefer")
		conflict = r.URL.Query().Get("on_conflict")
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"user_id":"u-1"`) {
			t.Errorf("body = %s", body)
		}
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.Insert(context.Background(), "user_profile", map[string]any{"user_id": "u-1"}, "tok"); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if !strings.Contains(prefer, "return=minimal") || strings.Contains(prefer, "merge-duplicates") || conflict != "" {
		t.Fatalf("insert prefer=%q conflict=%q", prefer, conflict)
	}

	if err := c.Upsert(context.Background(), "user_profile", "user_id", map[string]any{"user_id": "u-1"}, "tok"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !strings.Contains(prefer, "resolution=merge-duplicates") || !strings.Contains(prefer, "return=minimal") || conflict != "user_id" {
		t.Fatalf("upsert prefer=%q conflict=%q", prefer, conflict)
	}
}

func TestUpsertPostgRESTError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"code":"42501","message":"new row violates row-level security policy"}`)
	})

	err := c.Upsert(context.Background(), "user_profile", "user_id", map[string]any{}, "tok")
	if err == nil || !strings.Contains(err.Error(), "upsert user_profile") {
		t.Fatalf("error = %v", err)
	}
}
