package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// RootPlaceholder is the template slot a property-less schema renders
// its whole content document into.
const RootPlaceholder = "root"

// TemplateRenderer turns one atom into its content fragment by
// substituting the atom's fields into its type's template. Only fields
// the schema declares are substituted; any other {placeholder} in the
// template survives untouched for the variable passes.
type TemplateRenderer struct {
	markdown goldmark.Markdown
}

// NewTemplateRenderer creates a renderer with GFM markdown conversion.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// RenderAtom renders a single atom through its type's template.
func (r *TemplateRenderer) RenderAtom(atom *entities.Atom, atomType *entities.AtomType) (string, error) {
	schema, err := atomType.Schema()
	if err != nil {
		return "", err
	}

	template := atomType.Template()

	if !schema.HasProperties() {
		value, err := atom.Content().Decode()
		if err != nil {
			return "", err
		}
		rendered, err := r.renderValue(value, valueobjects.FieldSpec{Type: schema.Type})
		if err != nil {
			return "", err
		}
		return strings.ReplaceAll(template, "{"+RootPlaceholder+"}", rendered), nil
	}

	fields, err := atom.Content().Fields()
	if err != nil {
		return "", err
	}

	// One scan over the template. Substituted values are never
	// rescanned, so a field value that happens to contain another
	// field's placeholder stays literal content.
	var renderErr error
	result := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		spec, declared := schema.Properties[name]
		if !declared {
			// Not a schema field; the slot survives for the variable
			// passes.
			return match
		}
		value, ok := fields[name]
		if !ok {
			// Absent fields render as nothing rather than leaving the
			// placeholder, so variable resolution never picks them up.
			return ""
		}
		rendered, err := r.renderValue(value, spec)
		if err != nil {
			if renderErr == nil {
				renderErr = pkgerrors.Wrapf(err, "field %q of atom %s", name, atom.ID().String())
			}
			return ""
		}
		return rendered
	})
	if renderErr != nil {
		return "", renderErr
	}

	return result, nil
}

// renderValue converts one content value to its template form.
func (r *TemplateRenderer) renderValue(value interface{}, spec valueobjects.FieldSpec) (string, error) {
	switch v := value.(type) {
	case string:
		if spec.Markdown {
			return r.toHTML(v)
		}
		return v, nil
	case nil:
		return "", nil
	case float64:
		// JSON numbers decode as float64; re-encode them so integers
		// do not grow a trailing ".000000".
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	case bool:
		return fmt.Sprintf("%t", v), nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", pkgerrors.NewValidationError("content value is not renderable").WithCause(err)
		}
		return string(encoded), nil
	}
}

// toHTML converts a markdown-flagged field value to HTML.
func (r *TemplateRenderer) toHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", pkgerrors.NewInternalError("markdown conversion failed").WithCause(err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
