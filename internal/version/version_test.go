package version

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseSemver(t *testing.T) {
	tests := []struct {
		in     string
		want   Semver
		wantOK bool
	}{
		{"1.2.3", Semver{1, 2, 3, ""}, true},
		{"v1.2.3", Semver{1, 2, 3, ""}, true},
		{"v2.0.0-rc.1", Semver{2, 0, 0, "rc.1"}, true},
		{"1.0.0+build.5", Semver{1, 0, 0, ""}, true},
		{"dev", Semver{}, false},
		{"", Semver{}, false},
		{"1.2", Semver{}, false},
		{"1.x.3", Semver{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSemver(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseSemver(%q) = %+v, %v; want %+v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSemver_Less(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.0.0", "1.0.0", false},
		{"1.0.0", "1.0.1", true},
		{"1.0.9", "1.1.0", true},
		{"1.9.9", "2.0.0", true},
		{"2.0.0", "1.0.0", false},
		{"2.0.0-rc.1", "2.0.0", true},
		{"2.0.0", "2.0.0-rc.1", false},
		{"2.0.0-rc.1", "2.0.0-rc.2", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+" < "+tt.b, func(t *testing.T) {
			a, _ := ParseSemver(tt.a)
			b, _ := ParseSemver(tt.b)
			if got := a.Less(b); got != tt.want {
				t.Errorf("%s.Less(%s) = %v, want %v", a, b, got, tt.want)
			}
		})
	}
}

func serveReleases(t *testing.T, releases []release) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(releases)
	}))
}

func TestChecker_CheckForUpdate(t *testing.T) {
	listing := []release{
		{TagName: "v1.3.0-rc.1", HTMLURL: "https://example.test/v1.3.0-rc.1", Prerelease: true},
		{TagName: "v1.4.0", HTMLURL: "https://example.test/v1.4.0", Draft: true},
		{TagName: "nightly", HTMLURL: "https://example.test/nightly"},
		{TagName: "v1.2.0", HTMLURL: "https://example.test/v1.2.0"},
		{TagName: "v1.1.5", HTMLURL: "https://example.test/v1.1.5"},
	}

	tests := []struct {
		name       string
		current    string
		wantUpdate bool
	}{
		{"older build", "v1.1.5", true},
		{"same as newest stable", "1.2.0", false},
		{"prerelease of newest stable", "v1.2.0-rc.2", true},
		{"ahead of stable", "v1.3.0-rc.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serveReleases(t, listing)
			defer server.Close()

			c := NewChecker(tt.current)
			c.url = server.URL

			info, err := c.CheckForUpdate(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.LatestVersion != "v1.2.0" || info.ReleaseURL != "https://example.test/v1.2.0" {
				t.Errorf("drafts, prereleases and non-semver tags should be skipped, got %+v", info)
			}
			if info.UpdateAvailable != tt.wantUpdate {
				t.Errorf("UpdateAvailable = %v, want %v", info.UpdateAvailable, tt.wantUpdate)
			}
		})
	}
}

func TestChecker_Failures(t *testing.T) {
	t.Run("no stable release", func(t *testing.T) {
		server := serveReleases(t, []release{{TagName: "v0.1.0-beta", Prerelease: true}})
		defer server.Close()

		c := NewChecker("v0.0.1")
		c.url = server.URL
		if _, err := c.CheckForUpdate(context.Background()); !errors.Is(err, ErrNoRelease) {
			t.Errorf("expected ErrNoRelease, got %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		c := NewChecker("v1.0.0")
		c.url = server.URL
		if _, err := c.CheckForUpdate(context.Background()); err == nil {
			t.Error("expected error for a failed listing")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		c := NewChecker("v1.0.0")
		c.url = server.URL
		if _, err := c.CheckForUpdate(context.Background()); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := serveReleases(t, nil)
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := NewChecker("v1.0.0")
		c.url = server.URL
		if _, err := c.CheckForUpdate(ctx); err == nil {
			t.Error("expected error for a cancelled context")
		}
	})
}

func TestChecker_DevBuildSkipsCheck(t *testing.T) {
	c := NewChecker("dev")
	c.url = "http://localhost:1"

	info, err := c.CheckForUpdate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Skipped || info.UpdateAvailable {
		t.Errorf("dev build should be skipped, got %+v", info)
	}
}

func TestChecker_CheckCmd(t *testing.T) {
	server := serveReleases(t, []release{{TagName: "v1.2.0"}})
	defer server.Close()

	c := NewChecker("v1.1.9")
	c.url = server.URL

	msg, ok := c.CheckCmd()().(UpdateCheckedMsg)
	if !ok {
		t.Fatal("expected UpdateCheckedMsg")
	}
	if msg.Err != nil || msg.Info == nil || !msg.Info.UpdateAvailable {
		t.Errorf("unexpected result %+v", msg)
	}
}
