package ui

import "fmt"

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

func Bold(s string) string {
	return ColorBold + s + ColorReset
}

func Dim(s string) string {
	return ColorDim + s + ColorReset
}

func White(s string) string {
	return ColorWhite + s + ColorReset
}

func Cyan(s string) string {
	return ColorCyan + s + ColorReset
}

func Green(s string) string {
	return ColorGreen + s + ColorReset
}

func Yellow(s string) string {
	return ColorYellow + s + ColorReset
}

func Success(s string) string {
	return ColorGreen + s + ColorReset
}

func Error(s string) string {
	return ColorRed + s + ColorReset
}

// Field renders a bold label followed by a white value, as used in summaries
func Field(label string, value any) string {
	return fmt.Sprintf("%s %s", Bold(label+":"), White(fmt.Sprint(value)))
}

// Heading renders a section title for help and summary output
func Heading(s string) string {
	return ColorBold + ColorWhite + s + ColorReset
}
