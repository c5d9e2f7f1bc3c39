package shell

import (
	"fmt"
	"os/exec"
	"runtime"

	"doneUI/internal/logger"

	"go.uber.org/zap"
)

var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenBrowser opens url in the system browser.
func OpenBrowser(url string) error {
	var err error
	switch runtime.GOOS {
	case "darwin":
		err = startCommand("open", url)
	case "windows":
		err = startCommand("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		err = startCommand("xdg-open", url)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
	if err != nil {
		return fmt.Errorf("открытие браузера: %w", err)
	}

	logger.Info("Shell: браузер открыт", zap.String("url", url))
	return nil
}
