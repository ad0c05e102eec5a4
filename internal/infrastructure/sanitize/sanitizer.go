package sanitize

import "github.com/microcosm-cc/bluemonday"

// HTMLSanitizer strips unsafe markup from store-authored catalog text. The
// UGC policy keeps harmless formatting and drops scripts, event handlers and
// the like. bluemonday policies are idempotent, which the catalog contract
// requires.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{
		policy: bluemonday.UGCPolicy(),
	}
}

func (s *HTMLSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
