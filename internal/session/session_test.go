package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestIssueAndResolve(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	m.SetCookie(w, token)

	id, ok := m.UserID(requestWithCookies(w.Result().Cookies()))
	if !ok {
		t.Fatalf("expected token to resolve")
	}
	if id != 42 {
		t.Fatalf("resolved user %d, want 42", id)
	}
}

func TestMissingCookieIsAnonymous(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	if _, ok := m.UserID(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatalf("request without cookie should be anonymous")
	}
}

func TestTamperedTokenIsAnonymous(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	token, err := other.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := requestWithCookies([]*http.Cookie{{Name: CookieName, Value: token}})
	if _, ok := m.UserID(req); ok {
		t.Fatalf("token signed with a different secret should not resolve")
	}

	req = requestWithCookies([]*http.Cookie{{Name: CookieName, Value: "not-a-token"}})
	if _, ok := m.UserID(req); ok {
		t.Fatalf("malformed token should not resolve")
	}
}

func TestExpiredTokenIsAnonymous(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := requestWithCookies([]*http.Cookie{{Name: CookieName, Value: token}})
	if _, ok := m.UserID(req); ok {
		t.Fatalf("expired token should not resolve")
	}
}

func TestClearCookie(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	w := httptest.NewRecorder()
	m.ClearCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Name != CookieName || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", cookies[0])
	}
}
