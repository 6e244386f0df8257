package adoc

import (
	"path/filepath"
	"regexp"
	"strings"
)

// ContentType classifies a modular document by its declared
// :_mod-docs-content-type: attribute. The classification gates which rule
// set applies; it is always derived from content, never stored separately.
type ContentType string

const (
	TypeProcedure ContentType = "PROCEDURE"
	TypeConcept   ContentType = "CONCEPT"
	TypeReference ContentType = "REFERENCE"
	TypeAssembly  ContentType = "ASSEMBLY"

	// TypeTBD marks documents whose type could not be resolved and was
	// stubbed by the metadata fixer for a human to fill in.
	TypeTBD ContentType = "TBD"

	// TypeUnknown means no content-type signal was found at all.
	TypeUnknown ContentType = ""
)

var (
	// Content-type attribute presence, tolerant of legacy prefixed forms.
	reContentTypeAttr = regexp.MustCompile(`^:.*_mod-docs-content-type:`)

	// Content-type attribute with its declared value.
	reContentTypeValue = regexp.MustCompile(`:_mod-docs-content-type:\s*(\w+)`)
)

// filenamePrefixes maps module filename prefixes to content types. Both
// underscore and hyphen separators are recognized.
var filenamePrefixes = []struct {
	prefix string
	typ    ContentType
}{
	{"proc", TypeProcedure},
	{"con", TypeConcept},
	{"ref", TypeReference},
	{"assembly", TypeAssembly},
}

// Known reports whether t is one of the four recognized module types.
func (t ContentType) Known() bool {
	switch t {
	case TypeProcedure, TypeConcept, TypeReference, TypeAssembly:
		return true
	default:
		return false
	}
}

// String returns the attribute value form of the content type.
func (t ContentType) String() string {
	return string(t)
}

// IsContentTypeAttr reports whether the line declares a content-type
// attribute, including legacy variants of the attribute name.
func IsContentTypeAttr(line string) bool {
	return reContentTypeAttr.MatchString(line)
}

// ContentTypeValue extracts the declared content type from a line.
// The value is uppercased; unknown values are returned as-is so callers
// can distinguish "declared but unrecognized" from "absent".
func ContentTypeValue(line string) (ContentType, bool) {
	m := reContentTypeValue.FindStringSubmatch(line)
	if m == nil {
		return TypeUnknown, false
	}
	return ContentType(strings.ToUpper(m[1])), true
}

// DetectContentType scans the document for a content-type declaration and
// returns the first declared value. Absence is a silent TypeUnknown, never
// an error.
func DetectContentType(doc *Document) ContentType {
	for i := 1; i <= doc.LineCount(); i++ {
		if t, ok := ContentTypeValue(doc.LineText(i)); ok {
			return t
		}
	}
	return TypeUnknown
}

// ContentTypeFromFilename infers a content type from the module filename
// prefix (proc_, con-, ref_, assembly-, and so on). Returns TypeUnknown
// when no prefix matches.
func ContentTypeFromFilename(path string) ContentType {
	name := filepath.Base(path)
	for _, p := range filenamePrefixes {
		if strings.HasPrefix(name, p.prefix+"_") || strings.HasPrefix(name, p.prefix+"-") {
			return p.typ
		}
	}
	return TypeUnknown
}
