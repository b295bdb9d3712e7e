package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnpath-web/internal/flash"
)

func TestNewParsesEveryPage(t *testing.T) {
	t.Parallel()

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, page := range []string{"landing", "login", "callback", "onboarding", "home", "subjects", "subject", "topic", "error"} {
		if _, ok := r.pages[page]; !ok {
			t.Errorf("page %q not parsed", page)
		}
	}
	if _, ok := r.pages["layout"]; ok {
		t.Errorf("layout should not be a standalone page")
	}
}

func TestRenderWritesStatusAndNotice(t *testing.T) {
	t.Parallel()

	r := MustNew()
	rec := httptest.NewRecorder()
	n := flash.Error("Something broke")
	if err := r.Render(rec, http.StatusTeapot, "login", Page{Title: "Sign in", Notice: &n}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"Sign in with Google", "Something broke", `action="/auth/signin"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenderUnknownPage(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := MustNew().Render(rec, http.StatusOK, "nope", Page{}); err == nil {
		t.Fatalf("expected error for unknown page")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("nothing should be written on error")
	}
}

func TestCallbackRelayPostsFragment(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := MustNew().Render(rec, http.StatusOK, "callback", Page{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="fragment"`) || !strings.Contains(body, "window.location.hash") {
		t.Fatalf("relay page does not forward the fragment:\n%s", body)
	}
}
