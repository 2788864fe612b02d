// Package selfupdate checks GitHub releases for newer versions and
// replaces the running binary in place.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL         = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
	releaseOwner           = "nikhilv"
	releaseRepo            = "quizstack"
)

// Checker talks to the GitHub releases API for one repository.
type Checker struct {
	baseURL         string
	downloadBaseURL string
	owner           string
	repo            string
	client          *http.Client
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Checker) { c.baseURL = url }
}

// WithDownloadBaseURL overrides the release asset base URL.
func WithDownloadBaseURL(url string) Option {
	return func(c *Checker) { c.downloadBaseURL = url }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// withExecPath overrides executable path resolution in tests.
func withExecPath(f func() (string, error)) Option {
	return func(c *Checker) { c.execPath = f }
}

// NewChecker creates a Checker with production defaults.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		baseURL:         defaultBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		owner:           releaseOwner,
		repo:            releaseRepo,
		client:          &http.Client{Timeout: 30 * time.Second},
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput is the current version to compare against.
type CheckInput struct {
	Version string
}

// CheckResult reports the latest published release.
type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	ReleaseURL      string
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release tag. An update is available when
// the published tag differs from the running version.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release response missing tag name")
	}

	return &CheckResult{
		UpdateAvailable: release.TagName != input.Version,
		LatestVersion:   release.TagName,
		ReleaseURL:      release.HTMLURL,
	}, nil
}
