// Package version compares the running build against published gitspatial-tui
// releases.
package version

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
)

const (
	releasesURL  = "https://api.github.com/repos/Elpulgo/gitspatial-tui/releases?per_page=20"
	checkTimeout = 5 * time.Second
)

// ErrNoRelease is returned when no stable release has been published.
var ErrNoRelease = errors.New("no stable release published")

// UpdateInfo is the result of comparing the running build with the newest
// stable release. Skipped is set for development builds, which are never
// compared.
type UpdateInfo struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
	Skipped         bool
}

// UpdateCheckedMsg carries the result of a background check to the TUI.
type UpdateCheckedMsg struct {
	Info *UpdateInfo
	Err  error
}

// release is one entry of the GitHub releases listing.
type release struct {
	TagName    string `json:"tag_name"`
	HTMLURL    string `json:"html_url"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// Checker looks up the newest stable release.
type Checker struct {
	current    string
	url        string
	httpClient *http.Client
}

// NewChecker creates a checker for the running build's version.
func NewChecker(current string) *Checker {
	return &Checker{
		current:    current,
		url:        releasesURL,
		httpClient: &http.Client{Timeout: checkTimeout},
	}
}

// CheckForUpdate reports whether a newer stable release than the running
// build exists. Drafts, prereleases and tags that are not semver are ignored.
func (c *Checker) CheckForUpdate(ctx context.Context) (*UpdateInfo, error) {
	info := &UpdateInfo{CurrentVersion: c.current}

	current, ok := ParseSemver(c.current)
	if !ok {
		info.Skipped = true
		return info, nil
	}

	releases, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	latest, ok := newestStable(releases)
	if !ok {
		return nil, ErrNoRelease
	}

	info.LatestVersion = latest.TagName
	info.ReleaseURL = latest.HTMLURL
	v, _ := ParseSemver(latest.TagName)
	info.UpdateAvailable = current.Less(v)
	return info, nil
}

// CheckCmd runs CheckForUpdate off the UI loop.
func (c *Checker) CheckCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		info, err := c.CheckForUpdate(ctx)
		return UpdateCheckedMsg{Info: info, Err: err}
	}
}

func (c *Checker) fetch(ctx context.Context) ([]release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "gitspatial-tui/"+c.current)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release listing returned status %d", resp.StatusCode)
	}

	var releases []release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to parse release listing: %w", err)
	}
	return releases, nil
}

func newestStable(releases []release) (release, bool) {
	var best release
	var bestVersion Semver
	found := false
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		v, ok := ParseSemver(r.TagName)
		if !ok || v.Pre != "" {
			continue
		}
		if !found || bestVersion.Less(v) {
			best, bestVersion, found = r, v, true
		}
	}
	return best, found
}

// Semver is a MAJOR.MINOR.PATCH version with an optional pre-release tag.
type Semver struct {
	Major, Minor, Patch int
	Pre                 string
}

// ParseSemver parses "v1.2.3" or "1.2.3-rc.1". Build metadata after "+" is
// dropped.
func ParseSemver(s string) (Semver, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, _, _ = strings.Cut(s, "+")
	core, pre, _ := strings.Cut(s, "-")

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Semver{}, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Semver{}, false
		}
		nums[i] = n
	}
	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2], Pre: pre}, true
}

// Less orders versions by precedence. A pre-release sorts before the release
// it precedes; pre-release tags are compared as plain strings.
func (v Semver) Less(o Semver) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	if v.Patch != o.Patch {
		return v.Patch < o.Patch
	}
	switch {
	case v.Pre == o.Pre:
		return false
	case v.Pre == "":
		return false
	case o.Pre == "":
		return true
	}
	return v.Pre < o.Pre
}

func (v Semver) String() string {
	s := fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}
