package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks a decoded value; a non-nil error rejects it.
type Validator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in raw model output into T.
// Markdown fences, surrounding prose, comments and bare leading-dot numbers
// such as .5 are tolerated.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero, out T

	obj := firstObject(unfence(raw))
	if obj == "" {
		return zero, fmt.Errorf("%w: no JSON object in reply", ErrInvalidOutput)
	}
	if err := json.Unmarshal([]byte(sanitize(obj)), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(out); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// unfence returns the body of the first ``` block, or s unchanged.
func unfence(s string) string {
	open := strings.Index(s, "```")
	if open < 0 {
		return s
	}
	body := s[open+3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return body
}

// scan walks s calling fn for every byte with whether it sits inside a
// string literal. fn returns how many extra bytes to skip.
func scan(s string, fn func(i int, inString bool) int) {
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		wasInString := inString
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
			wasInString = true
		}
		i += fn(i, wasInString)
	}
}

// firstObject returns the first balanced {...} in s.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth, end := 0, -1
	scan(s[start:], func(i int, inString bool) int {
		if end >= 0 || inString {
			return 0
		}
		switch s[start+i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = start + i
			}
		}
		return 0
	})
	if end < 0 {
		return ""
	}
	return s[start : end+1]
}

// sanitize drops // and /* */ comments and rewrites .5 as 0.5, leaving
// string contents alone.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	scan(s, func(i int, inString bool) int {
		c := s[i]
		if inString {
			b.WriteByte(c)
			return 0
		}
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, "//"):
			if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
				return nl - 1
			}
			return len(rest) - 1
		case strings.HasPrefix(rest, "/*"):
			if end := strings.Index(rest[2:], "*/"); end >= 0 {
				return end + 3
			}
			return len(rest) - 1
		case c == '.' && len(rest) > 1 && isDigit(rest[1]) && startsNumber(s[:i]):
			b.WriteString("0.")
			return 0
		}
		b.WriteByte(c)
		return 0
	})
	return b.String()
}

// startsNumber reports whether a number may begin right after prefix.
func startsNumber(prefix string) bool {
	p := strings.TrimRight(prefix, " \t\r\n")
	if p == "" {
		return true
	}
	return strings.ContainsRune(":,[{-", rune(p[len(p)-1]))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
