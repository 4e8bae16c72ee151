package domref

import (
	"log/slog"
	"strings"

	"github.com/pthm/domref/lib/dom"
)

// extract wires event bindings and then collects references under root.
// Events go first so that stripping one attribute can never hide the
// other, and one element may carry both.
func extract(root *dom.Node, handler any, dest *Refs, cfg *Config) *Refs {
	wireEvents(root, handler, cfg)
	collectRefs(root, dest, cfg)
	return dest
}

func wireEvents(root *dom.Node, handler any, cfg *Config) {
	for _, el := range root.QueryAttr(cfg.EventAttr) {
		value, _ := el.GetAttribute(cfg.EventAttr)
		for _, token := range strings.Fields(value) {
			typ, method, bound := parseBinding(token)
			if bound {
				el.AddEventListener(typ, Method(handler, method))
			} else {
				el.AddEventListener(typ, handlerListener(handler))
			}
			cfg.Logger.Debug("domref: bound event",
				slog.String("tag", el.Tag),
				slog.String("type", typ),
				slog.String("method", method))
		}
		if !cfg.KeepEventAttr {
			el.RemoveAttribute(cfg.EventAttr)
		}
	}
}

func collectRefs(root *dom.Node, dest *Refs, cfg *Config) {
	for _, el := range root.QueryAttr(cfg.RefAttr) {
		value, _ := el.GetAttribute(cfg.RefAttr)
		name, array := parseRef(value)
		dest.put(name, array, el)
		cfg.Logger.Debug("domref: collected ref",
			slog.String("tag", el.Tag),
			slog.String("name", name),
			slog.Bool("array", array))
		if !cfg.KeepRefAttr {
			el.RemoveAttribute(cfg.RefAttr)
		}
	}
}

// parseBinding splits an event token on its first ':' into the event type
// and method name. A token without ':' or with an empty method ("click:")
// binds the handler itself. Tokens such as ":save" are not corrected: they
// bind the empty event type.
func parseBinding(token string) (typ, method string, bound bool) {
	typ, method, bound = strings.Cut(token, ":")
	return typ, method, bound && method != ""
}

// parseRef trims a reference value and strips a trailing ArrayMarker.
// No escaping exists; the marker test is purely on trailing characters.
func parseRef(value string) (name string, array bool) {
	name = strings.TrimSpace(value)
	if strings.HasSuffix(name, ArrayMarker) {
		return strings.TrimSuffix(name, ArrayMarker), true
	}
	return name, false
}
