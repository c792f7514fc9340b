package workspace

import (
	"errors"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	okColor  = color.New(color.FgGreen)
	errColor = color.New(color.FgRed)
)

// PrintResult writes the summary line for a successful run.
func PrintResult(w io.Writer, res Result) {
	okColor.Fprintln(w, res.Message())
}

// PrintError writes the error and its underlying cause. The cause is left
// out when the error message already contains it.
func PrintError(w io.Writer, err error) {
	msg := err.Error()
	cause := ""
	if inner := errors.Unwrap(err); inner != nil && !strings.Contains(msg, inner.Error()) {
		cause = inner.Error()
	}
	errColor.Fprintf(w, "\n%s\n%s\n", msg, cause)
}

