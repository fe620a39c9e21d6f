// Package browser opens URLs in the user's default browser.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a set of URLs.
type Opener func(urls []string) error

// Open starts the platform's URL handler once per URL without waiting for it.
func Open(urls []string) error {
	var errs []error
	for _, u := range urls {
		cmd, err := command(runtime.GOOS, u)
		if err != nil {
			return err
		}
		if err := cmd.Start(); err != nil {
			errs = append(errs, fmt.Errorf("open %s: %w", u, err))
			continue
		}
		// Reap the handler in the background.
		go func() { _ = cmd.Wait() }()
	}
	return errors.Join(errs...)
}

func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("opening urls is not supported on %s", goos)
	}
}
