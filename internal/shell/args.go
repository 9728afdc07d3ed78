// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shell

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// splitArgs splits a command line on whitespace. Double quotes group words
// and a backslash escapes the next rune.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inQuote bool
		escaped bool
		started bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			started = true
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}

// parseID reads a positive catalog id.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer: " + raw)
	}
	return id, nil
}

// keyValues splits trailing key=value arguments such as bg="Премиера".
func keyValues(args []string) map[string]string {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok {
			values[strings.ToLower(key)] = value
		}
	}
	return values
}
