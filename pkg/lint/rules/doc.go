// Package rules provides the built-in lint rules for adoclint.
//
// # Rule Domains
//
// Rules are grouped by the module content types they serve:
//
//   - Metadata and layout (all module types):
//
//   - AD001: content-type-attr - Modules should declare a :_mod-docs-content-type: attribute
//
//   - AD002: topic-id - Modules should carry a topic ID anchor ending in _{context}
//
//   - AD003: single-title - Modules should have exactly one level zero title
//
//   - AD004: title-blank-line - The module title should be followed by a blank line
//
//   - AD005: short-intro - Modules should open with a short introductory paragraph
//
//   - AD006: image-alt-text - Block images should carry quoted alt text
//
//   - AD007: additional-resources-role - Additional resources sections should declare their role
//
//   - Procedure modules:
//
//   - AD101: procedure-structure - One .Procedure title, a step list, allowed trailing sections
//
//   - Concept and reference modules:
//
//   - AD201: no-instructions - No imperative instructions outside procedures
//
//   - AD202: no-procedure-block - No .Procedure or .Prerequisites block titles
//
//   - AD203: no-step-list - No dot-numbered step lists opening with imperative verbs
//
//   - AD204: no-deep-heading - No level 2 or deeper section titles
//
//   - AD205: block-title-allowlist - Block titles must introduce a structural block
//
//   - Assemblies:
//
//   - AD301: context-conditionals - Parent-context conditionals at the top and bottom
//
//   - AD302: context-attribute - A :context: attribute must be declared
//
//   - AD303: include-spacing - Blank lines between consecutive includes
//
//   - AD304: assembly-heading - No level 2 or deeper headings
//
//   - AD305: assembly-block-title - Subheadings instead of block titles
//
//   - Source blocks (all module types):
//
//   - AD401: source-language - Source blocks should declare a recognized language
//
// # Content-Type Gating
//
// Each rule reports the module types it applies to through ContentTypes().
// The engine resolves a document's type once per pass (attribute first,
// then filename prefix, with an optional command-line override) and skips
// rules whose gate excludes it. Ungated rules run for every document,
// including ones whose type could not be resolved.
//
// # Diagnostic Comments
//
// Most rules remediate by inserting a single "// TODO:" comment line into
// the document rather than rewriting content. The comment text doubles as
// an idempotence marker: a rule that finds its own comment already at the
// anchor does not report again, so repeated fix passes converge.
package rules
