package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"jadwal/internal/modules/reminder/domain"
	reminderout "jadwal/internal/modules/reminder/port/out"
	apperrors "jadwal/internal/platform/errors"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// DesktopNotifier shows reminders through the host's notification daemon:
// notify-send on Linux and osascript on macOS.
type DesktopNotifier struct {
	goos     string
	dismiss  time.Duration
	lookPath func(string) (string, error)
	run      commandRunner
}

func NewDesktopNotifier(dismiss time.Duration) reminderout.Notifier {
	return &DesktopNotifier{goos: runtime.GOOS, dismiss: dismiss, lookPath: exec.LookPath, run: runCommand}
}

func (n *DesktopNotifier) Name() string { return "desktop" }

func (n *DesktopNotifier) binary() (string, error) {
	switch n.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send", nil
	case "darwin":
		return "osascript", nil
	default:
		return "", fmt.Errorf("%w: desktop notifications unsupported on %s", apperrors.ErrNotificationUnavailable, n.goos)
	}
}

func (n *DesktopNotifier) Ready(_ context.Context) error {
	bin, err := n.binary()
	if err != nil {
		return err
	}
	if _, err := n.lookPath(bin); err != nil {
		return fmt.Errorf("%w: %s not found", apperrors.ErrNotificationUnavailable, bin)
	}
	return nil
}

func (n *DesktopNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	bin, err := n.binary()
	if err != nil {
		return err
	}
	if bin == "osascript" {
		script := fmt.Sprintf("display notification %s with title %s",
			appleScriptString(notification.Body), appleScriptString(notification.Title))
		return n.run(ctx, bin, "-e", script)
	}
	args := []string{"--app-name=jadwal", "--urgency=critical"}
	if n.dismiss > 0 {
		args = append(args, "-t", strconv.FormatInt(n.dismiss.Milliseconds(), 10))
	}
	args = append(args, notification.Title, notification.Body)
	return n.run(ctx, bin, args...)
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
