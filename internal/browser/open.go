// Package browser hands URLs off to the user's desktop browser, used for the
// web views of guilds and the legal pages.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open opens the URL in the default browser. The launch is fire-and-forget;
// the spawned process is not waited on.
func Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
