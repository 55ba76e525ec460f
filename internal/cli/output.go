package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func printSuccess(w io.Writer, format string, args ...interface{}) {
	successColor.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}

func printWarning(w io.Writer, msg string) {
	warningColor.Fprint(w, "⚠ ")
	fmt.Fprintln(w, msg)
}

func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "✗ ")
	fmt.Fprintf(w, "Error: %v\n", err)
}
