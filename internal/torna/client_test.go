package torna

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClientNormalizesURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"bare host", "http://torna.example.com:7700", "http://torna.example.com:7700/api"},
		{"trailing slash", "http://torna.example.com:7700/", "http://torna.example.com:7700/api"},
		{"already api", "http://torna.example.com/api", "http://torna.example.com/api"},
		{"api trailing slash", "http://torna.example.com/api/", "http://torna.example.com/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.url, "")
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			if c.BaseURL() != tt.want {
				t.Errorf("base URL = %q, want %q", c.BaseURL(), tt.want)
			}
		})
	}
}

func TestNewClientMissingURL(t *testing.T) {
	_, err := NewClient("", "30s")
	if err == nil {
		t.Fatal("expected error for empty URL")
	}
	cerr := Classify(err)
	if cerr.Kind != KindConfig {
		t.Errorf("kind = %v, want %v", cerr.Kind, KindConfig)
	}
	if got := cerr.UserMessage(); got != "Configuration error: torna URL not configured" {
		t.Errorf("message = %q", got)
	}
}

func TestNewClientTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		want    time.Duration
	}{
		{"default", "", 30 * time.Second},
		{"explicit", "5s", 5 * time.Second},
		{"invalid falls back", "soon", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient("http://torna.example.com", tt.timeout)
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			if c.Timeout() != tt.want {
				t.Errorf("timeout = %v, want %v", c.Timeout(), tt.want)
			}
		})
	}
}

func TestClientDo(t *testing.T) {
	var gotEnv Envelope
	var gotPath, gotContentType, gotLocale string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotLocale = r.Header.Get("Accept-Language")
		if err := json.NewDecoder(r.Body).Decode(&gotEnv); err != nil {
			t.Errorf("request body is not an envelope: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"0","msg":"success","data":{"id":"d1"}}`))
	}))
	defer ts.Close()

	c, err := NewClient(ts.URL, "5s")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	env, err := Encode(NewDescriptor("doc.detail", map[string]any{"id": "d1"}), "tok-1234")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	resp, err := c.Do(context.Background(), env)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if gotPath != "/api" {
		t.Errorf("request path = %q, want /api", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotLocale != Locale {
		t.Errorf("accept-language = %q, want %q", gotLocale, Locale)
	}
	if gotEnv.Name != "doc.detail" || gotEnv.AccessToken != "tok-1234" {
		t.Errorf("envelope on the wire = %+v", gotEnv)
	}

	raw, err := DecodeData(gotEnv.Data)
	if err != nil {
		t.Fatalf("DecodeData failed: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["id"] != "d1" {
		t.Errorf("payload = %v", payload)
	}

	if !resp.Code.Success() {
		t.Errorf("code = %q, want success", resp.Code)
	}
	if resp.Msg != "success" {
		t.Errorf("msg = %q", resp.Msg)
	}
	if !strings.Contains(string(resp.Raw), `"id":"d1"`) {
		t.Errorf("raw = %s", resp.Raw)
	}
}

func TestClientDoStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
		msg    string
	}{
		{404, KindNotFound, "Error: Resource not found. Please check the ID is correct."},
		{403, KindForbidden, "Error: Permission denied. You don't have access to this resource."},
		{429, KindRateLimited, "Error: Rate limit exceeded. Please wait before making more requests."},
		{500, KindStatus, "Error: API request failed with status 500"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			c, err := NewClient(ts.URL, "5s")
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			env, _ := Encode(NewDescriptor("doc.detail", map[string]any{"id": "x"}), "tok")

			_, err = c.Do(context.Background(), env)
			if err == nil {
				t.Fatal("expected error")
			}
			cerr := Classify(err)
			if cerr.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", cerr.Kind, tt.kind)
			}
			if got := cerr.UserMessage(); got != tt.msg {
				t.Errorf("message = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestClientDoParseError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway</html>"))
	}))
	defer ts.Close()

	c, err := NewClient(ts.URL, "5s")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	env, _ := Encode(NewDescriptor("doc.list", map[string]any{}), "tok")

	_, err = c.Do(context.Background(), env)
	if err == nil {
		t.Fatal("expected error")
	}
	cerr := Classify(err)
	if cerr.Kind != KindParse {
		t.Errorf("kind = %v, want %v", cerr.Kind, KindParse)
	}
	if !strings.HasPrefix(cerr.UserMessage(), "Error: Failed to parse API response: ") {
		t.Errorf("message = %q", cerr.UserMessage())
	}
}

func TestClientDoTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"code":"0"}`))
	}))
	defer ts.Close()

	c, err := NewClient(ts.URL, "50ms")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	env, _ := Encode(NewDescriptor("doc.list", map[string]any{}), "tok")

	_, err = c.Do(context.Background(), env)
	if err == nil {
		t.Fatal("expected timeout")
	}
	cerr := Classify(err)
	if cerr.Kind != KindTimeout {
		t.Errorf("kind = %v, want %v", cerr.Kind, KindTimeout)
	}
	if got := cerr.UserMessage(); got != "Error: Request timed out. Please try again." {
		t.Errorf("message = %q", got)
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", "****"},
		{"abc", "****"},
		{"abcd", "****"},
		{"abcdefgh", "****efgh"},
	}

	for _, tt := range tests {
		if got := MaskToken(tt.token); got != tt.want {
			t.Errorf("MaskToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}
