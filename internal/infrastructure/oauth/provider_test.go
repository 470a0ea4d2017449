package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestAuthorizeURL(t *testing.T) {
	p := NewProvider(Config{
		AuthURL:     "https://provider.test/authorize",
		ClientID:    "client-1",
		RedirectURL: "https://app.test/callback",
	})

	raw := p.AuthorizeURL("nonce-123")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse authorize url: %v", err)
	}
	q := u.Query()
	if got := q.Get("client_id"); got != "client-1" {
		t.Errorf("client_id = %q, want client-1", got)
	}
	if got := q.Get("state"); got != "nonce-123" {
		t.Errorf("state = %q, want nonce-123", got)
	}
	if got := q.Get("response_type"); got != "code" {
		t.Errorf("response_type = %q, want code", got)
	}
	if got := q.Get("redirect_uri"); got != "https://app.test/callback" {
		t.Errorf("redirect_uri = %q", got)
	}
}

func TestExchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token request method = %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("code"); got != "auth-code" {
			t.Errorf("code = %q, want auth-code", got)
		}
		if got := r.PostForm.Get("grant_type"); got != "authorization_code" {
			t.Errorf("grant_type = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer at-1" {
			t.Errorf("Authorization = %q, want Bearer at-1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"fb-42","email":"ana@example.com","name":"Ana"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewProvider(Config{
		TokenURL:     srv.URL + "/token",
		ProfileURL:   srv.URL + "/me",
		ClientID:     "client-1",
		ClientSecret: "secret",
		RedirectURL:  "https://app.test/callback",
	})

	profile, err := p.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if profile.OpenID != "fb-42" {
		t.Errorf("OpenID = %q, want fb-42", profile.OpenID)
	}
	if profile.Email != "ana@example.com" {
		t.Errorf("Email = %q", profile.Email)
	}
	if profile.Name != "Ana" {
		t.Errorf("Name = %q", profile.Name)
	}
}

func TestExchangeTokenEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewProvider(Config{TokenURL: srv.URL, ProfileURL: srv.URL})

	if _, err := p.Exchange(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected error for rejected code")
	} else if !strings.Contains(err.Error(), "code exchange") {
		t.Errorf("error = %v, want code exchange wrap", err)
	}
}

func TestExchangeMissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{TokenURL: srv.URL, ProfileURL: srv.URL})

	if _, err := p.Exchange(context.Background(), "auth-code"); err == nil {
		t.Fatal("expected error for empty token response")
	}
}
