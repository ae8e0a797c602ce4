package tui

import "github.com/atotto/clipboard"

// copyToClipboard puts a row's raw input on the system clipboard, verbatim.
func copyToClipboard(s string) error {
	return clipboard.WriteAll(s)
}
