package errors

import (
	"fmt"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	ge, ok := asGooseError(err)
	if !ok {
		ge = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", ge.Message))
	if ge.Cause != nil && ge.Cause.Error() != ge.Message {
		sb.WriteString(fmt.Sprintf("  Cause: %v\n", ge.Cause))
	}

	if ge.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", ge.Suggestion))
	}

	sb.WriteString(fmt.Sprintf("  Code: %s\n", ge.Code))

	return sb.String()
}

// FormatForStderr formats an error as a single line for the logger's
// failure reports, which must never span multiple lines.
func FormatForStderr(err error) string {
	if err == nil {
		return ""
	}
	ge, ok := asGooseError(err)
	if !ok {
		return "gooselib: " + err.Error()
	}

	line := "gooselib: " + ge.Error()
	if path, ok := ge.Details["path"]; ok {
		line += " (" + path + ")"
	}
	return line
}
