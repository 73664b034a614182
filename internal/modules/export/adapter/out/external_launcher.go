package out

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	exportout "jadwal/internal/modules/export/port/out"
	apperrors "jadwal/internal/platform/errors"
)

// OSLauncher hands calendar links to the desktop's browser. $BROWSER wins
// over the platform opener when set.
type OSLauncher struct {
	goos    string
	browser string
	start   func(name string, args ...string) error
}

func NewOSLauncher() exportout.Launcher {
	return &OSLauncher{goos: runtime.GOOS, browser: os.Getenv("BROWSER"), start: startDetached}
}

func (l *OSLauncher) Open(ctx context.Context, target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("%w: empty link", apperrors.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	name, args, err := l.command(target)
	if err != nil {
		return err
	}
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	return nil
}

func (l *OSLauncher) command(target string) (string, []string, error) {
	if l.browser != "" {
		// $BROWSER may be a colon separated list; the first entry is used.
		first, _, _ := strings.Cut(l.browser, string(os.PathListSeparator))
		return first, []string{target}, nil
	}
	switch l.goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("opening links is not supported on %s", l.goos)
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
