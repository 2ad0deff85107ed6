//go:build windows

package tcell

// Windows consoles have no job control; suspend only restores the terminal.
func raiseStop() error {
	return nil
}
