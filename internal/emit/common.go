package emit

import (
	"strings"

	"github.com/sirkon/streamtrace/internal/dsl"
)

const indentUnit = "  "

func indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}

// joinLines joins rendered statements skipping the ones which rendered to nothing.
func joinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}

	return b.String()
}

// braces wraps an already rendered body into curly braces closed at the given depth.
func braces(body string, depth int) string {
	if body == "" {
		return "{\n" + indent(depth) + "}"
	}

	return "{\n" + body + "\n" + indent(depth) + "}"
}

func isEmpty(e dsl.Expression) bool {
	_, ok := e.(dsl.Empty)
	return ok
}
