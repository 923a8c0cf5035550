// Package outwriter renders ranking and metrics results as tables or JSON.
package outwriter

import (
	"os"

	"golang.org/x/term"
)

// getMaxTablePathWidth calculates the maximum width for project names in
// table output based on terminal width.
func getMaxTablePathWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		// Fallback to conservative default for narrow terminals and CI
		termWidth = 80
	}

	// Reserve space for the fixed numeric columns with borders/padding
	available := termWidth - 55
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
