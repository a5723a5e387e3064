package shellext

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

const desktopEntry = `[Desktop Entry]
Type=Application
Name=NodeVis
Comment=Play SageMotion sensor recordings
Exec=%s %%f
MimeType=text/csv;text/plain;application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;
Terminal=false
Categories=Science;Viewer;
`

func desktopPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "applications", "nodevis.desktop"), nil
}

func install() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	path, err := desktopPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf(desktopEntry, exe)), 0o644); err != nil {
		return err
	}
	log.Printf("shellext: installed %s", path)
	return nil
}

func uninstall() error {
	path, err := desktopPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	log.Printf("shellext: removed %s", path)
	return nil
}
