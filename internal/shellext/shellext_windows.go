package shellext

import (
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/sys/windows/registry"
)

// Per-user keys under HKCU need no elevation.
const verbKeyFormat = `Software\Classes\SystemFileAssociations\%s\shell\NodeVis`

var extensions = []string{".csv", ".xlsx", ".sto"}

func install() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	for _, ext := range extensions {
		base := fmt.Sprintf(verbKeyFormat, ext)

		key, _, err := registry.CreateKey(registry.CURRENT_USER, base, registry.SET_VALUE)
		if err != nil {
			return fmt.Errorf("create verb key for %s: %w", ext, err)
		}
		err = key.SetStringValue("", "Play with NodeVis")
		key.Close()
		if err != nil {
			return fmt.Errorf("set verb label for %s: %w", ext, err)
		}

		cmd, _, err := registry.CreateKey(registry.CURRENT_USER, base+`\command`, registry.SET_VALUE)
		if err != nil {
			return fmt.Errorf("create command key for %s: %w", ext, err)
		}
		err = cmd.SetStringValue("", fmt.Sprintf(`"%s" "%%1"`, exe))
		cmd.Close()
		if err != nil {
			return fmt.Errorf("set command for %s: %w", ext, err)
		}
	}
	log.Println("shellext: installed context menu entries")
	return nil
}

func uninstall() error {
	for _, ext := range extensions {
		base := fmt.Sprintf(verbKeyFormat, ext)
		for _, key := range []string{base + `\command`, base} {
			if err := registry.DeleteKey(registry.CURRENT_USER, key); err != nil && !errors.Is(err, registry.ErrNotExist) {
				return fmt.Errorf("delete key for %s: %w", ext, err)
			}
		}
	}
	log.Println("shellext: removed context menu entries")
	return nil
}
