package compiler

import (
	"fmt"
	"regexp"
	"strconv"
)

// logLinePattern matches the two driver compile-log line prefixes seen
// in practice: NVIDIA/Mesa's "0(42) : error ..." and the ARB-style
// "0:42(...)" / generic "0:42: error ...", capturing the line number
// from whichever group matched (spec §4.1's "Line-preserving
// diagnostics").
var logLinePattern = regexp.MustCompile(`^(?:\d+\((\d+)\)|\d+:(\d+))`)

// RewriteLog rewrites every line of a driver compile/link log, replacing
// a leading "<id>(<line>)" or "<id>:<line>" prefix with "<part
// name>(<local line>)" or "<part name>:<local line>" respectively (the
// driver's own separator is kept), where local line is the line number within the
// template part that owns that global line (TESTABLE PROPERTY 3). Lines
// that don't match a recognized prefix, or whose line number falls
// outside every known part's range, are passed through unchanged.
//
// counts must be the Template's LineCounts() at the time the source was
// compiled; line numbers are 1-based and assumed to start after any
// driver-inserted #version/#line directives, matching how
// program.Template joins parts.
func RewriteLog(log string, counts []PartLines) string {
	lines := splitLines(log)
	for i, line := range lines {
		m := logLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		// m[1] matched the paren form "id(line)", m[2] the colon form
		// "id:line" — re-emit whichever separator the driver used
		// instead of always normalizing to colon form.
		numStr, sep, closeParen := m[1], ":", ""
		if numStr == "" {
			numStr = m[2]
		} else {
			sep, closeParen = "(", ")"
		}
		globalLine, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}
		name, localLine, ok := locate(counts, globalLine)
		if !ok {
			continue
		}
		rest := line[len(m[0]):]
		lines[i] = fmt.Sprintf("%s%s%d%s%s", name, sep, localLine, closeParen, rest)
	}
	return joinLines(lines)
}

// locate finds which part owns global line n (1-based) and its line
// number relative to that part's own source (also 1-based).
func locate(counts []PartLines, n int) (name string, local int, ok bool) {
	base := 0
	for _, c := range counts {
		if n <= base+c.Lines {
			return c.Name, n - base, true
		}
		base += c.Lines
	}
	return "", 0, false
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func joinLines(lines []string) string {
	var out string
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
