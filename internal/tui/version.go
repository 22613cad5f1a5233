package tui

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const latestReleaseURL = "https://api.github.com/repos/openguild/guildhall/releases/latest"

// versionCheckMsg carries the result of the background release check.
type versionCheckMsg struct {
	latestVersion string
	hasUpdate     bool
}

// checkVersion asks GitHub for the newest release tag. The header notice is
// best-effort: any failure, and a dev build, resolve to a silent no-op.
func checkVersion(current string) tea.Cmd {
	if current == "" || current == "dev" {
		return nil
	}
	return func() tea.Msg {
		httpc := &http.Client{Timeout: 5 * time.Second}
		resp, err := httpc.Get(latestReleaseURL)
		if err != nil {
			return versionCheckMsg{}
		}
		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode != http.StatusOK {
			return versionCheckMsg{}
		}
		var release struct {
			TagName string `json:"tag_name"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
			return versionCheckMsg{}
		}
		latest := strings.TrimPrefix(release.TagName, "v")
		if !isNewerVersion(latest, current) {
			return versionCheckMsg{}
		}
		return versionCheckMsg{latestVersion: "v" + latest, hasUpdate: true}
	}
}

// semverParts splits a tag like "v1.4.2" into its numeric fields. Missing or
// malformed fields count as zero.
func semverParts(tag string) [3]int {
	var out [3]int
	for i, f := range strings.SplitN(strings.TrimPrefix(tag, "v"), ".", 3) {
		n, _ := strconv.Atoi(f) //nolint:errcheck
		out[i] = n
	}
	return out
}

// isNewerVersion reports whether latest sorts after current.
func isNewerVersion(latest, current string) bool {
	l, c := semverParts(latest), semverParts(current)
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}
