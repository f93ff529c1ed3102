package matching

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FieldKind selects the normalization rule applied to a free-text field.
type FieldKind int

const (
	// FieldStoreName trims and lowercases only; store names keep their
	// punctuation because it carries meaning ("Toko H&M" vs "Toko HM").
	FieldStoreName FieldKind = iota
	// FieldAddress strips street-prefix and administrative-unit tokens in
	// addition to punctuation.
	FieldAddress
	// FieldCity strips punctuation and collapses whitespace.
	FieldCity
	// FieldRegion shares the city rule; used by callers to pre-filter the
	// master list by region equality.
	FieldRegion
)

var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)
	// Street/road prefixes (jl, jln, jalan) and the house-number marker
	// (no). Punctuation is stripped first, so "jl." and "jalan." reduce to
	// bare tokens before this runs.
	streetTokenRe = regexp.MustCompile(`\b(?:jl|jln|jalan|no)\b`)
	// Standalone neighborhood-unit markers (rukun tetangga / rukun warga).
	unitTokenRe  = regexp.MustCompile(`\brt\b|\brw\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a free-text field for comparison. It is a pure,
// total function: unknown kinds and empty input yield an empty string, and
// the result is idempotent under repeated application.
func Normalize(text string, kind FieldKind) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = strings.ToLower(text)

	switch kind {
	case FieldStoreName:
		return strings.TrimSpace(text)
	case FieldAddress:
		text = nonAlnumRe.ReplaceAllString(text, " ")
		text = streetTokenRe.ReplaceAllString(text, " ")
		text = unitTokenRe.ReplaceAllString(text, " ")
		text = whitespaceRe.ReplaceAllString(text, " ")
		return strings.TrimSpace(text)
	case FieldCity, FieldRegion:
		text = nonAlnumRe.ReplaceAllString(text, " ")
		text = whitespaceRe.ReplaceAllString(text, " ")
		return strings.TrimSpace(text)
	default:
		return ""
	}
}
