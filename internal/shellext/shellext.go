// Package shellext manages the file-manager integration that opens
// recordings in nodevis from the right-click menu.
package shellext

// Install registers the "Play with NodeVis" entry for supported recording
// types with the current user's file manager.
func Install() error {
	return install()
}

// Uninstall removes the entry again. Removing an entry that was never
// installed is not an error.
func Uninstall() error {
	return uninstall()
}
