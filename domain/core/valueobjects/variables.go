package valueobjects

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"

	"atomcms/domain/config"
	pkgerrors "atomcms/pkg/errors"
)

// variable tags: word characters plus the separators editors actually
// use in existing content.
var tagPattern = regexp.MustCompile(`^[\w\-.,]+$`)

// signatureDomain separates variable-set hashes from any other SHA-256
// use in the system, so equal byte strings in different roles can never
// collide on a cache key.
const signatureDomain = "atomcms/varset/v1\x00"

// VariableSet is an immutable mapping of tag to substitution value for
// one tier (global, cacheable or uncacheable).
type VariableSet struct {
	values map[string]string
}

// EmptyVariableSet returns a set with no entries.
func EmptyVariableSet() VariableSet {
	return VariableSet{}
}

// NewVariableSet validates and normalizes a tag→value mapping. Tags
// arriving wrapped in braces are unwrapped rather than rejected, since
// editors habitually paste the placeholder form.
func NewVariableSet(values map[string]string) (VariableSet, error) {
	return NewVariableSetWithConfig(values, config.DefaultDomainConfig())
}

// NewVariableSetWithConfig validates a tag→value mapping against the
// given domain configuration.
func NewVariableSetWithConfig(values map[string]string, cfg *config.DomainConfig) (VariableSet, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if len(values) == 0 {
		return VariableSet{}, nil
	}

	normalized := make(map[string]string, len(values))
	for tag, value := range values {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimPrefix(tag, "{")
		tag = strings.TrimSuffix(tag, "}")
		if tag == "" {
			return VariableSet{}, pkgerrors.NewValidationError("variable tag cannot be empty")
		}
		if len(tag) > cfg.MaxTagLength {
			return VariableSet{}, pkgerrors.NewValidationError("variable tag too long: " + tag)
		}
		if !tagPattern.MatchString(tag) {
			return VariableSet{}, pkgerrors.NewValidationError("invalid variable tag: " + tag)
		}
		if len(value) > cfg.MaxVariableValueLength {
			return VariableSet{}, pkgerrors.NewValidationError("variable value too long for tag: " + tag)
		}
		normalized[tag] = value
	}
	return VariableSet{values: normalized}, nil
}

// Lookup returns the value for a tag and whether it is present.
func (s VariableSet) Lookup(tag string) (string, bool) {
	v, ok := s.values[tag]
	return v, ok
}

// Len returns the number of entries in the set.
func (s VariableSet) Len() int {
	return len(s.values)
}

// IsEmpty reports whether the set has no entries.
func (s VariableSet) IsEmpty() bool {
	return len(s.values) == 0
}

// Tags returns the tags in the set, sorted.
func (s VariableSet) Tags() []string {
	tags := make([]string, 0, len(s.values))
	for tag := range s.values {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Signature returns a stable hex digest of the set's contents. Two sets
// with equal entries always produce the same signature regardless of
// construction order, which is what lets the signature serve as the
// cacheable-tier component of a render cache key. The engine trusts the
// caller that the set really is stable per collection; it only
// guarantees that differing sets never share a signature.
func (s VariableSet) Signature() string {
	h := sha256.New()
	h.Write([]byte(signatureDomain))
	for _, tag := range s.Tags() {
		h.Write([]byte(tag))
		h.Write([]byte{0})
		h.Write([]byte(s.values[tag]))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LookupChain resolves a tag against an ordered list of tiers. The
// first tier holding the tag wins, so callers build the chain
// most-specific-first: uncacheable, then cacheable, then global.
type LookupChain struct {
	tiers []VariableSet
}

// NewLookupChain builds a chain from most-specific to least-specific tier.
func NewLookupChain(tiers ...VariableSet) LookupChain {
	return LookupChain{tiers: tiers}
}

// Lookup returns the value from the most specific tier defining the tag.
func (c LookupChain) Lookup(tag string) (string, bool) {
	for _, tier := range c.tiers {
		if v, ok := tier.Lookup(tag); ok {
			return v, ok
		}
	}
	return "", false
}

// IsEmpty reports whether no tier in the chain has any entries.
func (c LookupChain) IsEmpty() bool {
	for _, tier := range c.tiers {
		if !tier.IsEmpty() {
			return false
		}
	}
	return true
}
