package dashboard

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the current surface: the dialog
// bindings while the detail dialog is shown, the list bindings otherwise.
func HelpBindings(dialogShown bool) help.KeyMap {
	if dialogShown {
		return DialogKeyMap()
	}
	return ListKeyMap()
}
