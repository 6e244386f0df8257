package langdetect_test

import (
	"testing"

	"github.com/yaklabco/adoclint/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want string
	}{
		// Shebangs win before any content heuristics run; sh folds into bash.
		{name: "shebang bash", src: "#!/bin/bash\necho hello", want: "bash"},
		{name: "shebang sh", src: "#!/bin/sh\necho hello", want: "bash"},
		{name: "shebang python", src: "#!/usr/bin/env python3\nprint('hello')", want: "python"},

		{name: "python code", src: "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", want: "python"},
		{
			name: "go code",
			src:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			want: "go",
		},
		{
			name: "javascript code",
			src:  "const x = () => { return 42; };\nconsole.log(x());",
			want: "javascript",
		},
		{
			name: "json object",
			src:  `{"key": "value", "number": 123}`,
			want: "json",
		},
		{
			name: "yaml content",
			src:  "key: value\nother: 123\nlist:\n  - item1\n  - item2",
			want: "yaml",
		},
		{
			name: "rust code",
			src:  "fn main() {\n    println!(\"Hello, world!\");\n}",
			want: "rust",
		},
		{
			name: "sql query",
			src:  "SELECT * FROM users WHERE id = 1;",
			want: "sql",
		},
		{
			name: "html content",
			src:  "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n<body></body>\n</html>",
			want: "html",
		},
		{
			name: "dockerfile",
			src:  "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build",
			want: "dockerfile",
		},

		{name: "plain text fallback", src: "just some text without any code patterns", want: "text"},
		{name: "empty content fallback", src: "", want: "text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := langdetect.Detect([]byte(tc.src)); got != tc.want {
				t.Errorf("Detect() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDetectShebangPrecedence(t *testing.T) {
	t.Parallel()

	// The body looks like Python but the bash shebang decides.
	got := langdetect.Detect([]byte("#!/bin/bash\ndef foo():\n    pass"))
	if got != "bash" {
		t.Errorf("Detect() = %q, want %q (shebang should take precedence)", got, "bash")
	}
}

func TestRecognized(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		lang string
		want bool
	}{
		{name: "canonical name", lang: "python", want: true},
		{name: "alias golang", lang: "golang", want: true},
		{name: "alias sh", lang: "sh", want: true},
		{name: "mixed case", lang: "YAML", want: true},
		{name: "unknown language", lang: "klingon", want: false},
		{name: "empty string", lang: "", want: false},
		{name: "whitespace only", lang: "   ", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := langdetect.Recognized(tc.lang); got != tc.want {
				t.Errorf("Recognized(%q) = %v, want %v", tc.lang, got, tc.want)
			}
		})
	}
}
