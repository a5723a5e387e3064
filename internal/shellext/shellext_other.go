//go:build !linux && !windows

package shellext

import (
	"fmt"
	"runtime"
)

func install() error {
	return fmt.Errorf("context menu integration is not supported on %s", runtime.GOOS)
}

func uninstall() error {
	return fmt.Errorf("context menu integration is not supported on %s", runtime.GOOS)
}
