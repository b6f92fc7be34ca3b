package services

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/domain/core/valueobjects"
)

// placeholderPattern matches a substitution slot in composed content.
// The tag grammar matches what variable sets accept, so anything else
// in braces is plain text.
var placeholderPattern = regexp.MustCompile(`\{([\w\-.,]+)\}`)

// VariableResolver substitutes the three variable tiers into composed
// content. Resolution runs in two passes: the stable pass (global plus
// cacheable, whose output the render cache stores) and the request pass
// (uncacheable, never cached).
type VariableResolver struct {
	variables ports.VariableRepository
	logger    *zap.Logger
}

// NewVariableResolver creates a resolver backed by the stored-variable
// repository for the global tier.
func NewVariableResolver(variables ports.VariableRepository, logger *zap.Logger) *VariableResolver {
	return &VariableResolver{
		variables: variables,
		logger:    logger,
	}
}

// ResolveGlobalAndCacheable applies the stable tiers to composed
// content. Tags named in reserved are left as literal placeholders even
// when a stable tier defines them; the request pass owns those tags, so
// an uncacheable value always wins over a cacheable or global one.
func (r *VariableResolver) ResolveGlobalAndCacheable(
	ctx context.Context,
	content string,
	clientID string,
	cacheable valueobjects.VariableSet,
	reserved []string,
) (string, error) {
	global, err := r.variables.GetAll(ctx, clientID)
	if err != nil {
		return "", err
	}

	chain := valueobjects.NewLookupChain(cacheable, global)
	if chain.IsEmpty() {
		return content, nil
	}

	reservedSet := make(map[string]struct{}, len(reserved))
	for _, tag := range reserved {
		reservedSet[tag] = struct{}{}
	}

	return r.substitute(content, chain, reservedSet), nil
}

// ResolveUncacheable applies the request tier to the stable pass
// result. Purely in-memory, never touches the store or the cache.
func (r *VariableResolver) ResolveUncacheable(content string, uncacheable valueobjects.VariableSet) string {
	if uncacheable.IsEmpty() {
		return content
	}
	return r.substitute(content, valueobjects.NewLookupChain(uncacheable), nil)
}

// substitute replaces every placeholder the chain can resolve. Tags no
// tier defines stay literal so later passes, or the reader, see them
// unchanged.
func (r *VariableResolver) substitute(content string, chain valueobjects.LookupChain, reserved map[string]struct{}) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		tag := match[1 : len(match)-1]
		if _, held := reserved[tag]; held {
			return match
		}
		if value, ok := chain.Lookup(tag); ok {
			return value
		}
		return match
	})
}
