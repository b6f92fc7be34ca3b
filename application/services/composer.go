package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// Fragment is one atom's rendered contribution to a composition.
type Fragment struct {
	AtomID    valueobjects.AtomID
	Key       string
	TypeName  string
	SortOrder int
	Content   string
}

// Composition is the raw merged content of an article before any
// variable substitution. Version is the article's token merged with
// every included atom's token, so two compositions with equal versions
// are byte-identical.
type Composition struct {
	ArticleID valueobjects.ArticleID
	Content   string
	Version   valueobjects.VersionToken
	Fragments []Fragment
}

// Composer builds an article's raw content by rendering its atoms in
// composition order. Composition is read-only and performs no caching;
// determinism comes entirely from the ordering rule and the template
// renderer.
type Composer struct {
	atoms    ports.AtomRepository
	types    ports.AtomTypeRepository
	renderer *TemplateRenderer
	logger   *zap.Logger
}

// NewComposer creates a composer.
func NewComposer(
	atoms ports.AtomRepository,
	types ports.AtomTypeRepository,
	renderer *TemplateRenderer,
	logger *zap.Logger,
) *Composer {
	return &Composer{
		atoms:    atoms,
		types:    types,
		renderer: renderer,
		logger:   logger,
	}
}

// Compose renders every atom of the article, in sortorder with the atom
// ID breaking ties, and concatenates the fragments. A reference to a
// missing atom fails the whole composition with an integrity error;
// partial pages are worse than no page.
func (c *Composer) Compose(ctx context.Context, article *entities.Article) (*Composition, error) {
	return c.compose(ctx, article, false)
}

// ComposeRaw builds the same composition but carries each atom's stored
// JSON content instead of the templated fragment. Used by document
// consumers that apply their own presentation.
func (c *Composer) ComposeRaw(ctx context.Context, article *entities.Article) (*Composition, error) {
	return c.compose(ctx, article, true)
}

func (c *Composer) compose(ctx context.Context, article *entities.Article, raw bool) (*Composition, error) {
	refs := article.OrderedAtoms()
	version := article.Version()

	if len(refs) == 0 {
		return &Composition{
			ArticleID: article.ID(),
			Version:   version,
		}, nil
	}

	ids := make([]valueobjects.AtomID, len(refs))
	for i, ref := range refs {
		ids[i] = ref.AtomID
	}

	atoms, err := c.atoms.GetBatch(ctx, article.ClientID(), ids)
	if err != nil {
		return nil, err
	}

	typeCache := make(map[string]*entities.AtomType)
	fragments := make([]Fragment, 0, len(refs))
	var content strings.Builder

	for _, ref := range refs {
		atom, ok := atoms[ref.AtomID]
		if !ok {
			c.logger.Error("article references missing atom",
				zap.String("articleID", article.ID().String()),
				zap.String("atomID", ref.AtomID.String()),
			)
			return nil, pkgerrors.NewIntegrityError(
				"article "+article.ID().String(),
				"atom "+ref.AtomID.String(),
			)
		}

		atomType, ok := typeCache[atom.TypeID()]
		if !ok {
			atomType, err = c.types.GetByID(ctx, article.ClientID(), atom.TypeID())
			if err != nil {
				if pkgerrors.IsNotFound(err) {
					return nil, pkgerrors.NewIntegrityError(
						"atom "+atom.ID().String(),
						"type "+atom.TypeID(),
					)
				}
				return nil, err
			}
			typeCache[atom.TypeID()] = atomType
		}

		var rendered string
		if raw {
			rendered = atom.Content().Raw()
		} else {
			rendered, err = c.renderer.RenderAtom(atom, atomType)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "rendering atom %s", atom.ID().String())
			}
		}

		fragments = append(fragments, Fragment{
			AtomID:    atom.ID(),
			Key:       atom.Key(),
			TypeName:  atomType.Name(),
			SortOrder: ref.SortOrder,
			Content:   rendered,
		})

		// Fragments join with no separator; boundary whitespace is the
		// template's own business.
		content.WriteString(rendered)

		version = version.Merge(atom.Version())
	}

	return &Composition{
		ArticleID: article.ID(),
		Content:   content.String(),
		Version:   version,
		Fragments: fragments,
	}, nil
}
