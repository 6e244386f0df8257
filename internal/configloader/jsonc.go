package configloader

import (
	"encoding/json"
	"fmt"
)

// parseJSONC parses JSON that may carry JavaScript-style comments and
// trailing commas.
func parseJSONC(content []byte, target any) error {
	// Most .jsonc files are plain JSON; only fall back to cleaning when the
	// strict parse fails.
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	cleaned := stripTrailingCommas(stripJSONComments(content))
	if err := json.Unmarshal(cleaned, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

type jsonScanState int

const (
	scanCode jsonScanState = iota
	scanString
	scanLineComment
	scanBlockComment
)

// stripJSONComments removes // and /* */ comments, leaving string literals
// (including escaped quotes) untouched.
func stripJSONComments(content []byte) []byte {
	out := make([]byte, 0, len(content))
	state := scanCode

	for i := 0; i < len(content); i++ {
		c := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch state {
		case scanLineComment:
			if c == '\n' {
				state = scanCode
				out = append(out, c)
			}

		case scanBlockComment:
			if c == '*' && next == '/' {
				state = scanCode
				i++
			}

		case scanString:
			out = append(out, c)
			switch {
			case c == '\\' && i+1 < len(content):
				i++
				out = append(out, content[i])
			case c == '"':
				state = scanCode
			}

		case scanCode:
			switch {
			case c == '"':
				state = scanString
				out = append(out, c)
			case c == '/' && next == '/':
				state = scanLineComment
				i++
			case c == '/' && next == '*':
				state = scanBlockComment
				i++
			default:
				out = append(out, c)
			}
		}
	}

	return out
}

// stripTrailingCommas drops commas whose next non-whitespace byte closes an
// object or array. Run after comment stripping so a comment between the
// comma and the bracket cannot hide one.
func stripTrailingCommas(content []byte) []byte {
	out := make([]byte, 0, len(content))
	inString := false

	for i := 0; i < len(content); i++ {
		c := content[i]

		if inString {
			out = append(out, c)
			switch {
			case c == '\\' && i+1 < len(content):
				i++
				out = append(out, content[i])
			case c == '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
		case c == ',':
			j := i + 1
			for j < len(content) && isJSONSpace(content[j]) {
				j++
			}
			if j < len(content) && (content[j] == '}' || content[j] == ']') {
				continue
			}
		}
		out = append(out, c)
	}

	return out
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
