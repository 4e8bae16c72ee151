package domref

import "github.com/microcosm-cc/bluemonday"

// SanitizePolicy returns a bluemonday UGC policy that also keeps the
// reference and event attributes named by opts (defaults "ref" and "on").
// Use it with WithSanitizer when markup comes from untrusted input:
//
//	b := domref.New(nil, domref.WithSanitizer(domref.SanitizePolicy()))
//
// Sanitizing only applies to Markup and Component sources; ID and Element
// sources are already part of a trusted document.
func SanitizePolicy(opts ...Option) *bluemonday.Policy {
	cfg := resolve(DefaultConfig(), opts)
	p := bluemonday.UGCPolicy()
	p.AllowAttrs(cfg.RefAttr, cfg.EventAttr).Globally()
	return p
}
