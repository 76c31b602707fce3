package display

import (
	"fmt"
	"os"

	"refresher/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Green if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Green)
	}
	fmt.Fprint(os.Stdout, `╔═══════════════════════════════════════════════════╗
║             FILE RETENTION REFRESHER              ║
╚═══════════════════════════════════════════════════╝
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
