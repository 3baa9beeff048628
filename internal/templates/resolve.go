package templates

import (
	"fmt"

	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
)

// Set is the resolved collection of templates declared in the templates section.
type Set struct {
	ordered []*Template
	byID    map[string]*Template
}

// Resolve materializes every template record. Templates are built in dependency order, so a
// base template always exists before any template deriving from it. Among templates that
// don't depend on each other, document order is kept.
func Resolve(records []document.Template) (*Set, error) {
	index := make(map[string]int, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			continue
		}
		if _, ok := index[rec.ID]; ok {
			return nil, apperrors.Newf(apperrors.CodeDuplicateDefinition, "template id was defined multiple times: %s", rec.ID).
				With("template", rec.ID).At(fmt.Sprintf("templates[%d]", i))
		}
		index[rec.ID] = i
	}

	order, err := sortByBase(records, index)
	if err != nil {
		return nil, err
	}

	s := &Set{byID: make(map[string]*Template, len(index))}
	for _, i := range order {
		t, err := s.materialize(&records[i])
		if err != nil {
			return nil, apperrors.Locate(err, templateLocation(i, records[i].ID))
		}
		s.ordered = append(s.ordered, t)
		if t.ID != "" {
			s.byID[t.ID] = t
		}
	}
	return s, nil
}

const (
	unvisited = iota
	visiting
	done
)

// sortByBase returns record indices in topological order of the base relation, using a
// depth-first walk in document order.
func sortByBase(records []document.Template, index map[string]int) ([]int, error) {
	state := make([]int, len(records))
	order := make([]int, 0, len(records))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return apperrors.Newf(apperrors.CodeDependencyCycle, "template inheritance cycle: %q is its own ancestor", records[i].ID).
				With("template", records[i].ID).At(templateLocation(i, records[i].ID))
		}
		state[i] = visiting
		if base := records[i].Base; base != "" {
			j, ok := index[base]
			if !ok {
				return undefinedBase(base).At(templateLocation(i, records[i].ID))
			}
			if err := visit(j); err != nil {
				return err
			}
		}
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range records {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// materialize builds a template from its record, merging it over its base. The base must
// already be materialized.
func (s *Set) materialize(rec *document.Template) (*Template, error) {
	content, pieces, err := parseOwn(rec)
	if err != nil {
		return nil, err
	}
	t := &Template{ID: rec.ID, Base: rec.Base, Content: content, Pieces: pieces}
	if rec.Base == "" {
		return t, nil
	}
	base, ok := s.byID[rec.Base]
	if !ok {
		return nil, undefinedBase(rec.Base)
	}
	return merge(base, t), nil
}

// merge lays child over parent. Parent content and placeholders that the child redefines by
// name are dropped; everything the child declares follows what it inherits.
func merge(parent, child *Template) *Template {
	result := &Template{ID: child.ID, Base: child.Base}

	overridden := make(map[string]bool, len(child.Content))
	for _, c := range child.Content {
		overridden[c.Name] = true
	}
	for _, c := range parent.Content {
		if !overridden[c.Name] {
			result.Content = append(result.Content, c)
		}
	}
	result.Content = append(result.Content, child.Content...)

	replaced := make(map[string]bool)
	for _, p := range child.Pieces {
		if p.Kind == PiecePlaceholder {
			replaced[p.Name] = true
		}
	}
	for _, p := range parent.Pieces {
		if p.Kind == PiecePlaceholder && replaced[p.Name] {
			continue
		}
		result.Pieces = append(result.Pieces, p)
	}
	result.Pieces = append(result.Pieces, child.Pieces...)

	return result
}

// Templates returns the resolved templates in the order they were materialized.
func (s *Set) Templates() []*Template {
	out := make([]*Template, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Lookup returns the template with the given ID.
func (s *Set) Lookup(id string) (*Template, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// Len returns the number of resolved templates.
func (s *Set) Len() int {
	return len(s.ordered)
}

// Bind resolves the template a card record asks for, either an inline template or a
// reference to a template ID. It returns nil if the record names neither.
func (s *Set) Bind(b document.TemplateBinding) (*Template, error) {
	switch {
	case b.InlineTemplate != nil && b.Template != "":
		return nil, apperrors.Newf(apperrors.CodeConflictingTemplate,
			"both an inline template and a reference to template %q were supplied", b.Template).
			With("template", b.Template)
	case b.InlineTemplate != nil:
		if b.InlineTemplate.ID != "" {
			return nil, apperrors.Newf(apperrors.CodeSchemaViolation, "an inline template must not declare an id (got %q)", b.InlineTemplate.ID).
				At("inline_template")
		}
		t, err := s.materialize(b.InlineTemplate)
		if err != nil {
			return nil, apperrors.Locate(err, "inline_template")
		}
		return t, nil
	case b.Template != "":
		t, ok := s.byID[b.Template]
		if !ok {
			return nil, apperrors.Newf(apperrors.CodeUndefinedReference, "undefined template: %s", b.Template).
				With("template", b.Template)
		}
		return t, nil
	}
	return nil, nil
}

func undefinedBase(id string) *apperrors.Error {
	return apperrors.Newf(apperrors.CodeUndefinedReference, "undefined base template: %s", id).With("template", id)
}

func templateLocation(i int, id string) string {
	if id == "" {
		return fmt.Sprintf("templates[%d]", i)
	}
	return fmt.Sprintf("template %s", id)
}
