package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Location points a diagnostic at a token in a source file. Line and Col
// are 1-indexed for presentation.
type Location struct {
	File string
	Line int
	Col  int
	Len  int
}

// FormatFatal renders a fatal script diagnostic: the die: prefix and
// message, with the source location beneath when one is attached.
func FormatFatal(message string, loc *Location) string {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s", red("die:"), message))
	if loc != nil {
		b.WriteString(fmt.Sprintf("\n  %s %s:%d:%d", dim("-->"), loc.File, loc.Line, loc.Col))
	}
	return b.String()
}

// FormatLoadError renders a program-load failure.
func FormatLoadError(path string, err error) string {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	return fmt.Sprintf("%s cannot load %s: %s", red("error:"), path, err)
}
