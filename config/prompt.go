package config

import (
	"fmt"
	"strings"
	"time"
)

// FormatPrompt expands the %datetime, %date, %time and %counter placeholders
// of an interactive prompt and guarantees a trailing space.
func FormatPrompt(str string, counter int, now time.Time) string {
	variables := map[string]string{
		"%datetime": now.Format("2006-01-02 15:04:05"),
		"%date":     now.Format("2006-01-02"),
		"%time":     now.Format("15:04:05"),
		"%counter":  fmt.Sprintf("%d", counter),
	}

	// Longest first so %datetime is not eaten by %date.
	for _, key := range []string{"%datetime", "%date", "%time", "%counter"} {
		str = strings.ReplaceAll(str, key, variables[key])
	}

	if str != "" && !strings.HasSuffix(str, " ") {
		str += " "
	}

	return strings.ReplaceAll(str, "\\n", "\n")
}
