// Package updater keeps the sidekick binary current from GitHub
// Releases: it decides when a check is due, compares the running
// version against the latest release tag, and swaps the binary in
// place.
package updater

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sidekick-io/sidekick/internal/buildinfo"
)

const releasesURL = "https://api.github.com/repos/sidekick-io/sidekick/releases/latest"

// ReleaseInfo is the subset of the GitHub release object we read.
type ReleaseInfo struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// UpdateResult is the outcome of an update check.
type UpdateResult struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
	Release        *ReleaseInfo
}

// fetchLatestRelease asks the GitHub API for the newest release.
// A nil release with nil error means the repository has no releases.
func fetchLatestRelease() (*ReleaseInfo, error) {
	req, err := http.NewRequest("GET", releasesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "sidekick/"+buildinfo.Version)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &release, nil
}

// CheckForUpdate compares the running version against the latest
// published release. A running version that does not parse as semver
// (a "dev" build) is always considered older.
func CheckForUpdate() (*UpdateResult, error) {
	release, err := fetchLatestRelease()
	if err != nil {
		return nil, err
	}
	if release == nil {
		return &UpdateResult{CurrentVersion: buildinfo.Version}, nil
	}

	result := &UpdateResult{
		CurrentVersion: buildinfo.Version,
		LatestVersion:  strings.TrimPrefix(release.TagName, "v"),
		ReleaseURL:     release.HTMLURL,
		Release:        release,
	}

	current, err := ParseSemver(buildinfo.Version)
	if err != nil {
		result.Available = true
		return result, nil
	}
	latest, err := ParseSemver(result.LatestVersion)
	if err != nil {
		return nil, fmt.Errorf("parse latest version %q: %w", result.LatestVersion, err)
	}
	result.Available = current.LessThan(latest)
	return result, nil
}

// CLIAssetName returns the release asset name for this platform.
func CLIAssetName() string {
	return fmt.Sprintf("sidekick-%s-%s", runtime.GOOS, runtime.GOARCH)
}

// FindAsset returns the named asset from a release, or nil.
func FindAsset(release *ReleaseInfo, name string) *Asset {
	for i := range release.Assets {
		if release.Assets[i].Name == name {
			return &release.Assets[i]
		}
	}
	return nil
}

// DownloadAsset downloads an asset to a temporary file, marks it
// executable, and returns its path. The caller removes the file.
func DownloadAsset(asset *Asset) (string, error) {
	resp, err := http.Get(asset.BrowserDownloadURL)
	if err != nil {
		return "", fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "sidekick-update-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr == nil {
		copyErr = os.Chmod(tmp.Name(), 0755)
	}
	if copyErr != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp file: %w", copyErr)
	}
	return tmp.Name(), nil
}

// ReplaceBinary swaps the binary at destPath for the one at newPath.
// The old binary is parked at destPath+".bak" during the swap and
// restored if the install rename fails.
func ReplaceBinary(destPath, newPath string) error {
	destPath, err := filepath.EvalSymlinks(destPath)
	if err != nil {
		return fmt.Errorf("resolve symlink: %w", err)
	}

	bakPath := destPath + ".bak"
	os.Remove(bakPath)

	if err := os.Rename(destPath, bakPath); err != nil {
		return fmt.Errorf("backup old binary: %w", err)
	}
	if err := os.Rename(newPath, destPath); err != nil {
		_ = os.Rename(bakPath, destPath)
		return fmt.Errorf("install new binary: %w", err)
	}
	os.Remove(bakPath)
	return nil
}
