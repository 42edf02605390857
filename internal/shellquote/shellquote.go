// Package shellquote quotes and tokenizes command-line arguments under
// the two quoting conventions we care about: POSIX sh (single-quote
// escaping) and Windows cmd (double-quote doubling). Arguments shown to
// the user or handed to a shell must survive a quote/split round trip
// unchanged, even when they contain spaces or quote characters.
package shellquote

import (
	"fmt"
	"runtime"
	"strings"
)

// safe characters never need quoting under either convention
const posixSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%+=:,./_-"

func isPosixSafe(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(posixSafe, r) {
			return false
		}
	}
	return true
}

// QuotePosix quotes a single argument for POSIX shells. A single quote
// inside the argument is rendered as '\'' so the literal survives.
func QuotePosix(s string) string {
	if isPosixSafe(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteWindows quotes a single argument for cmd.exe-style parsing.
// Embedded double quotes are doubled inside the quoted region.
func QuoteWindows(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Quote picks the convention for the current platform.
func Quote(s string) string {
	if runtime.GOOS == "windows" {
		return QuoteWindows(s)
	}
	return QuotePosix(s)
}

// Join renders a full command line for display on the current platform.
func Join(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}

// SplitPosix tokenizes a POSIX shell command line. It understands
// single quotes, double quotes, and backslash escapes; it does not
// perform expansion of any kind.
func SplitPosix(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inWord := false

	const (
		outside = iota
		inSingle
		inDouble
	)
	state := outside

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case outside:
			switch r {
			case ' ', '\t':
				if inWord {
					args = append(args, cur.String())
					cur.Reset()
					inWord = false
				}
			case '\'':
				state = inSingle
				inWord = true
			case '"':
				state = inDouble
				inWord = true
			case '\\':
				if i+1 >= len(runes) {
					return nil, fmt.Errorf("trailing backslash")
				}
				i++
				cur.WriteRune(runes[i])
				inWord = true
			default:
				cur.WriteRune(r)
				inWord = true
			}
		case inSingle:
			if r == '\'' {
				state = outside
			} else {
				cur.WriteRune(r)
			}
		case inDouble:
			switch r {
			case '"':
				state = outside
			case '\\':
				if i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\') {
					i++
					cur.WriteRune(runes[i])
				} else {
					cur.WriteRune(r)
				}
			default:
				cur.WriteRune(r)
			}
		}
	}
	if state != outside {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}

// SplitWindows tokenizes a cmd.exe-style command line where quoted
// regions use doubled double quotes for a literal quote character.
func SplitWindows(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inWord := false
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inQuotes {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					i++
					cur.WriteRune('"')
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteRune(r)
			}
			continue
		}
		switch r {
		case ' ', '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		case '"':
			inQuotes = true
			inWord = true
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
