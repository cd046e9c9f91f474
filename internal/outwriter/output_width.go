package outwriter

import (
	"os"

	"golang.org/x/term"
)

// getMaxDescriptionWidth calculates the maximum width for check descriptions
// in table output based on terminal width.
func getMaxDescriptionWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		// Fallback to conservative default for narrow terminals and CI
		termWidth = 80
	}

	// Reserve space for fixed columns: Check + Severity + Count + Total +
	// Percent, plus table borders, separators, and padding
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 20 {
		// Minimum reasonable description width
		return 20
	}
	if available > 80 {
		// Maximum description width to keep rows scannable
		return 80
	}
	return available
}
