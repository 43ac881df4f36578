package config

import (
	"fmt"
	"os"
	"strings"
)

// Exitf reports a fatal startup problem on stderr and exits with code 1.
// CRM commands use it for failures before the logger exists, such as
// flag or environment parsing. A single trailing newline is ensured.
func Exitf(format string, args ...any) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(os.Stderr, message)
	os.Exit(1)
}
