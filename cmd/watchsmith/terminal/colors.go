// Package terminal provides ANSI color helpers for console output.
package terminal

import "os"

// colorsEnabled follows the NO_COLOR convention.
func colorsEnabled() bool {
	return os.Getenv("NO_COLOR") == ""
}

func code(c string) string {
	if !colorsEnabled() {
		return ""
	}
	return c
}

// Red returns the ANSI red color code, or empty string if NO_COLOR is set.
func Red() string { return code("\033[31m") }

// Green returns the ANSI green color code, or empty string if NO_COLOR is set.
func Green() string { return code("\033[32m") }

// Yellow returns the ANSI yellow color code, or empty string if NO_COLOR is set.
func Yellow() string { return code("\033[33m") }

// Gray returns the ANSI gray color code, or empty string if NO_COLOR is set.
func Gray() string { return code("\033[90m") }

// Bold returns the ANSI bold code, or empty string if NO_COLOR is set.
func Bold() string { return code("\033[1m") }

// Reset returns the ANSI reset code, or empty string if NO_COLOR is set.
func Reset() string { return code("\033[0m") }
