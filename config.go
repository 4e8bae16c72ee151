package domref

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default attribute names.
const (
	DefaultRefAttr   = "ref"
	DefaultEventAttr = "on"
)

type assignMode uint8

const (
	assignNone assignMode = iota
	assignSelf
	assignKey
)

// Assign is the policy deciding where extracted references are stored.
//
// It has three forms: AssignNone (a fresh mapping, the default), AssignSelf
// (the handler's own mapping, see Target) and AssignTo(key) (a keyed
// sub-mapping of the handler, see KeyedTarget). Assign values are Options,
// so they double as the boolean and string shorthands:
//
//	domref.Bind(src, h, domref.AssignSelf)
//	domref.Bind(src, h, domref.AssignTo("refs"))
type Assign struct {
	mode assignMode
	key  string
}

var (
	// AssignNone returns a fresh mapping and leaves the handler untouched.
	AssignNone = Assign{}

	// AssignSelf stores references in the handler's own mapping.
	AssignSelf = Assign{mode: assignSelf}
)

// AssignTo stores references in the handler's sub-mapping named key,
// creating it if absent. An empty key means AssignNone.
func AssignTo(key string) Assign {
	if key == "" {
		return AssignNone
	}
	return Assign{mode: assignKey, key: key}
}

// Key returns the sub-mapping key for AssignTo policies.
func (a Assign) Key() string { return a.key }

// IsNone reports whether a leaves the handler untouched.
func (a Assign) IsNone() bool { return a.mode == assignNone }

// IsSelf reports whether a is AssignSelf.
func (a Assign) IsSelf() bool { return a.mode == assignSelf }

// String returns a readable form of the policy.
func (a Assign) String() string {
	switch a.mode {
	case assignSelf:
		return "self"
	case assignKey:
		return "key:" + a.key
	default:
		return "none"
	}
}

func (a Assign) apply(c *Config) { c.Assign = a }

// Sanitizer cleans untrusted markup before it is parsed.
// *bluemonday.Policy satisfies it; see SanitizePolicy.
type Sanitizer interface {
	Sanitize(s string) string
}

// Config is the canonical binding configuration. Every accepted
// configuration shape is resolved into a Config before any work starts.
type Config struct {
	// RefAttr names the reference attribute. Default "ref".
	RefAttr string

	// EventAttr names the event-binding attribute. Default "on".
	EventAttr string

	// KeepRefAttr leaves the reference attribute on elements. The zero
	// value strips it after it is read.
	KeepRefAttr bool

	// KeepEventAttr leaves the event attribute on elements. The zero value
	// strips it after it is read.
	KeepEventAttr bool

	// Assign decides where references are stored. Default AssignNone.
	Assign Assign

	// Logger receives debug records for each binding. Default discards.
	Logger *slog.Logger

	// Sanitizer, when set, cleans markup and component sources before
	// they are parsed.
	Sanitizer Sanitizer
}

// DefaultConfig returns the default configuration. A partial Config
// literal gets the same defaults for every field it leaves out.
func DefaultConfig() Config {
	return Config{
		RefAttr:   DefaultRefAttr,
		EventAttr: DefaultEventAttr,
	}
}

// apply replaces the whole configuration. Zero fields mean the defaults:
// empty attribute names fall back to "ref" and "on", both attributes are
// stripped, and a nil Logger or Sanitizer keeps the current one.
func (c Config) apply(dst *Config) {
	logger, sanitizer := dst.Logger, dst.Sanitizer
	*dst = c
	if dst.Logger == nil {
		dst.Logger = logger
	}
	if dst.Sanitizer == nil {
		dst.Sanitizer = sanitizer
	}
}

func (c Config) normalize() Config {
	if c.RefAttr == "" {
		c.RefAttr = DefaultRefAttr
	}
	if c.EventAttr == "" {
		c.EventAttr = DefaultEventAttr
	}
	if c.Logger == nil {
		c.Logger = discardLogger
	}
	return c
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option configures a binding. Config and Assign values are Options too.
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) apply(c *Config) { f(c) }

// WithRefAttr sets the reference attribute name.
func WithRefAttr(name string) Option {
	return optionFunc(func(c *Config) { c.RefAttr = name })
}

// WithEventAttr sets the event attribute name.
func WithEventAttr(name string) Option {
	return optionFunc(func(c *Config) { c.EventAttr = name })
}

// KeepRefAttr leaves the reference attribute on elements after extraction.
func KeepRefAttr() Option {
	return optionFunc(func(c *Config) { c.KeepRefAttr = true })
}

// KeepEventAttr leaves the event attribute on elements after wiring.
func KeepEventAttr() Option {
	return optionFunc(func(c *Config) { c.KeepEventAttr = true })
}

// WithLogger sets the logger for binding debug records.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *Config) { c.Logger = l })
}

// WithSanitizer cleans markup sources with s before parsing.
func WithSanitizer(s Sanitizer) Option {
	return optionFunc(func(c *Config) { c.Sanitizer = s })
}

func resolve(base Config, opts []Option) Config {
	for _, o := range opts {
		if o != nil {
			o.apply(&base)
		}
	}
	return base.normalize()
}

// ResolveConfig turns a loosely typed configuration value into a Config.
//
// Accepted shapes:
//   - nil: the defaults
//   - bool: true means AssignSelf, false the defaults
//   - string: AssignTo(s)
//   - Assign, Config or *Config
//   - map[string]any: a partial override of the defaults, as decoded from
//     YAML or JSON. Keys are matched ignoring case, '_' and '-', so
//     "removeRefAttribute" and "remove_ref_attribute" are equivalent.
//
// Map keys: refAttribute, eventAttribute, removeRefAttribute,
// removeEventAttribute and assign (bool or string, also accepted as
// assignToController).
func ResolveConfig(v any) (Config, error) {
	cfg := DefaultConfig()
	switch t := v.(type) {
	case nil:
	case bool:
		if t {
			cfg.Assign = AssignSelf
		}
	case string:
		cfg.Assign = AssignTo(t)
	case Assign:
		cfg.Assign = t
	case Config:
		t.apply(&cfg)
	case *Config:
		if t != nil {
			t.apply(&cfg)
		}
	case map[string]any:
		if err := applyMap(&cfg, t); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidConfig, v)
	}
	return cfg.normalize(), nil
}

func applyMap(cfg *Config, m map[string]any) error {
	for k, v := range m {
		key := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(k))
		var err error
		switch key {
		case "refattribute", "refattr":
			cfg.RefAttr, err = stringValue(k, v)
		case "eventattribute", "eventattr":
			cfg.EventAttr, err = stringValue(k, v)
		case "removerefattribute", "removerefattr":
			var remove bool
			remove, err = boolValue(k, v)
			cfg.KeepRefAttr = !remove
		case "removeeventattribute", "removeeventattr":
			var remove bool
			remove, err = boolValue(k, v)
			cfg.KeepEventAttr = !remove
		case "assign", "assigntocontroller":
			switch a := v.(type) {
			case nil:
				cfg.Assign = AssignNone
			case bool:
				cfg.Assign = AssignNone
				if a {
					cfg.Assign = AssignSelf
				}
			case string:
				cfg.Assign = AssignTo(a)
			default:
				err = fmt.Errorf("%w: %s must be a bool or string, got %T", ErrInvalidConfig, k, v)
			}
		default:
			err = fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func stringValue(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidConfig, key, v)
	}
	return s, nil
}

func boolValue(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a bool, got %T", ErrInvalidConfig, key, v)
	}
	return b, nil
}

// ParseConfig decodes a YAML configuration document. An empty document
// yields the defaults.
//
//	ref_attribute: data-ref
//	remove_event_attribute: false
//	assign: refs
func ParseConfig(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if m == nil {
		return ResolveConfig(nil)
	}
	return ResolveConfig(m)
}

// LoadConfig reads and decodes a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
