package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
)

// RenderOutput is a finished render: the article that answered, the
// fully substituted content and the composed version it reflects.
type RenderOutput struct {
	ArticleID valueobjects.ArticleID
	Content   string
	Version   valueobjects.VersionToken
}

// RenderService runs the full pipeline: assemble, compose, apply the
// stable variable tiers through the render cache, then apply the
// request tier on the result.
type RenderService struct {
	assembler *Assembler
	composer  *Composer
	resolver  *VariableResolver
	cache     ports.RenderCache
	logger    *zap.Logger
}

// NewRenderService creates the render pipeline.
func NewRenderService(
	assembler *Assembler,
	composer *Composer,
	resolver *VariableResolver,
	cache ports.RenderCache,
	logger *zap.Logger,
) *RenderService {
	return &RenderService{
		assembler: assembler,
		composer:  composer,
		resolver:  resolver,
		cache:     cache,
		logger:    logger,
	}
}

// RenderByURL renders the article a collection serves at a url.
func (s *RenderService) RenderByURL(
	ctx context.Context,
	clientID, collectionName, url string,
	cacheable, uncacheable valueobjects.VariableSet,
) (*RenderOutput, error) {
	target, err := s.assembler.ResolveByURL(ctx, clientID, collectionName, url)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, clientID, target.Collection.ID(), target.Article, cacheable, uncacheable)
}

// RenderArticle renders an article addressed directly, outside any
// collection.
func (s *RenderService) RenderArticle(
	ctx context.Context,
	clientID string,
	articleID valueobjects.ArticleID,
	cacheable, uncacheable valueobjects.VariableSet,
) (*RenderOutput, error) {
	article, err := s.assembler.ResolveArticle(ctx, clientID, articleID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, clientID, "", article, cacheable, uncacheable)
}

// render is the shared tail of the pipeline. Composition always runs;
// it is what yields the version token the cache key needs. The stable
// substitution pass is the coalesced, cached step. The request pass
// runs last, per caller, on the shared stable result.
func (s *RenderService) render(
	ctx context.Context,
	clientID, collectionID string,
	article *entities.Article,
	cacheable, uncacheable valueobjects.VariableSet,
) (*RenderOutput, error) {
	composition, err := s.composer.Compose(ctx, article)
	if err != nil {
		return nil, err
	}

	reserved := uncacheable.Tags()
	key := renderKey(clientID, collectionID, article.ID(), composition.Version, cacheable, reserved)

	stable, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (string, error) {
		return s.resolver.ResolveGlobalAndCacheable(ctx, composition.Content, clientID, cacheable, reserved)
	})
	if err != nil {
		return nil, err
	}

	return &RenderOutput{
		ArticleID: article.ID(),
		Content:   s.resolver.ResolveUncacheable(stable, uncacheable),
		Version:   composition.Version,
	}, nil
}

// renderKey builds the cache key for one stable render. Besides the
// cacheable set's signature it folds in the uncacheable tag names:
// those tags are withheld from the stable pass, so two requests
// reserving different tags produce different stable content and must
// not share an entry. The values of the uncacheable tier never enter
// the key.
func renderKey(
	clientID, collectionID string,
	articleID valueobjects.ArticleID,
	version valueobjects.VersionToken,
	cacheable valueobjects.VariableSet,
	reserved []string,
) string {
	h := sha256.New()
	for _, tag := range reserved {
		h.Write([]byte(tag))
		h.Write([]byte{0})
	}
	reservedDigest := hex.EncodeToString(h.Sum(nil))

	return strings.Join([]string{
		clientID,
		collectionID,
		articleID.String(),
		version.String(),
		cacheable.Signature(),
		reservedDigest,
	}, "|")
}
