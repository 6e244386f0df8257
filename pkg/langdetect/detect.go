// Package langdetect guesses the language of code snippets so that
// unlabelled source blocks can be tagged. Detection is pattern-first,
// with go-enry's shebang and classifier support around it.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// fallbackLang tags content whose language cannot be established.
const fallbackLang = "text"

// classifierCandidates limits the enry classifier to languages that show up
// in documentation code blocks.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect names the language of a code snippet, falling back to "text"
// when nothing can be established with confidence.
func Detect(src []byte) string {
	if len(src) == 0 {
		return fallbackLang
	}

	// A shebang is the strongest signal.
	if lang, safe := enry.GetLanguageByShebang(src); safe {
		return toTag(lang)
	}

	if lang := byPattern(src); lang != "" {
		return lang
	}

	// The statistical classifier gets the last word, trusted only when it
	// reports a safe match.
	if lang, safe := enry.GetLanguageByClassifier(src, classifierCandidates); safe && lang != "" {
		return toTag(lang)
	}

	return fallbackLang
}

// Recognized reports whether name resolves to a known language. Aliases
// such as "golang" or "sh" count, and matching ignores case.
func Recognized(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	_, ok := enry.GetLanguageByAlias(name)
	return ok
}

// patternChecks run in specificity order; the first hit wins. Each
// predicate sees the snippet with surrounding whitespace trimmed (head)
// and as a plain string (body).
var patternChecks = []struct {
	lang string
	hit  func(head []byte, body string) bool
}{
	{"go", looksLikeGo},
	{"python", looksLikePython},
	{"html", looksLikeHTML},
	{"json", looksLikeJSON},
	{"dockerfile", looksLikeDockerfile},
	{"sql", looksLikeSQL},
	{"rust", looksLikeRust},
	{"javascript", looksLikeJavaScript},
	{"yaml", looksLikeYAML},
}

func byPattern(src []byte) string {
	head := bytes.TrimSpace(src)
	body := string(src)

	for _, pc := range patternChecks {
		if pc.hit(head, body) {
			return pc.lang
		}
	}
	return ""
}

func looksLikeGo(head []byte, _ string) bool {
	return bytes.HasPrefix(head, []byte("package "))
}

func looksLikePython(_ []byte, body string) bool {
	if strings.Contains(body, "def ") && strings.Contains(body, "):") {
		return true
	}
	// Import statements, excluding Go's grouped form.
	if strings.Contains(body, "import ") && !strings.Contains(body, "import (") {
		if strings.Contains(body, "from ") || strings.HasPrefix(strings.TrimSpace(body), "import ") {
			return true
		}
	}
	return strings.Contains(body, "__name__") || strings.Contains(body, "__main__")
}

func looksLikeHTML(head []byte, _ string) bool {
	lower := bytes.ToLower(head)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func looksLikeJSON(head []byte, _ string) bool {
	starts := bytes.HasPrefix(head, []byte("{")) || bytes.HasPrefix(head, []byte("["))
	return starts && bytes.Contains(head, []byte(`"`))
}

func looksLikeDockerfile(head []byte, body string) bool {
	switch {
	case bytes.HasPrefix(head, []byte("FROM ")):
	case strings.Contains(body, "\nFROM ") && strings.Contains(body, "\nRUN "):
	case strings.Contains(body, "WORKDIR ") && strings.Contains(body, "COPY "):
	default:
		return false
	}
	return true
}

func looksLikeSQL(_ []byte, body string) bool {
	upper := strings.ToUpper(strings.TrimSpace(body))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return true
		}
	}
	return false
}

func looksLikeRust(_ []byte, body string) bool {
	for _, marker := range []string{"fn main()", "println!", "let mut "} {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

func looksLikeJavaScript(_ []byte, body string) bool {
	for _, marker := range []string{"=>", "const ", "let ", "console.log"} {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

// looksLikeYAML scores key: value pairs and list items; a line holding
// both counts twice. Two or more hits reads as YAML.
func looksLikeYAML(_ []byte, body string) bool {
	hits := 0
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			hits++
		}
		if strings.Contains(line, ": ") &&
			!strings.ContainsAny(line, "({") &&
			!strings.HasPrefix(line, `"`) {
			hits++
		}
	}
	return hits >= 2
}

// toTag converts go-enry language names to fence tags.
func toTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
