package resolver

import (
	"context"
	"unicode/utf8"

	"github.com/keshon/hive-resources/internal/label"
	"github.com/rs/zerolog/log"
)

// Field says which command option an autocomplete round is for.
type Field int

const (
	FieldCategory Field = iota
	FieldItem
)

// Choice is one autocomplete candidate.
type Choice struct {
	Name  string
	Value string
}

// Query is one autocomplete round: the focused field, what the user has typed
// into it, and the category field's current value.
type Query struct {
	Focused  Field
	Partial  string
	Category string
}

// Suggest runs the phase for q.Focused. It never fails: any error degrades to
// an empty list.
func (r *Resolver) Suggest(ctx context.Context, q Query) []Choice {
	var (
		choices []Choice
		err     error
	)
	switch q.Focused {
	case FieldCategory:
		choices, err = r.CategoryChoices(ctx, q.Partial)
	case FieldItem:
		choices, err = r.ItemChoices(ctx, q.Category, q.Partial)
	}
	if err != nil {
		log.Debug().Err(err).Str("catalog", r.catalog.Name()).Msg("autocomplete degraded to empty list")
		return []Choice{}
	}
	if choices == nil {
		choices = []Choice{}
	}
	return choices
}

// CategoryChoices lists display-form gamemodes containing partial.
func (r *Resolver) CategoryChoices(ctx context.Context, partial string) ([]Choice, error) {
	raws, err := r.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Choice, 0, r.opts.MaxChoices)
	for _, raw := range raws {
		display := label.ToDisplay(raw)
		if !label.Contains(display, partial) {
			continue
		}
		if c, ok := newChoice(display); ok {
			out = append(out, c)
			if len(out) == r.opts.MaxChoices {
				break
			}
		}
	}
	return out, nil
}

// ItemChoices lists items of the given display-form gamemode containing
// partial. With no gamemode chosen yet it returns nothing and fetches nothing.
func (r *Resolver) ItemChoices(ctx context.Context, category, partial string) ([]Choice, error) {
	if category == "" {
		return []Choice{}, nil
	}

	raw, err := r.backendCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	items, err := r.catalog.ListItems(ctx, raw)
	if err != nil {
		return nil, err
	}

	out := make([]Choice, 0, r.opts.MaxChoices)
	for _, it := range items {
		if !label.Contains(it.Name, partial) {
			continue
		}
		if c, ok := newChoice(it.Name); ok {
			out = append(out, c)
			if len(out) == r.opts.MaxChoices {
				break
			}
		}
	}
	return out, nil
}

// backendCategory maps a display gamemode to its raw label using a fresh
// category listing. Unknown labels pass through unchanged.
func (r *Resolver) backendCategory(ctx context.Context, display string) (string, error) {
	raws, err := r.catalog.ListCategories(ctx)
	if err != nil {
		return "", err
	}
	raw, ok := label.Lookup(display, raws)
	if !ok {
		log.Debug().Str("catalog", r.catalog.Name()).Str("gamemode", display).Msg("gamemode did not resolve, passing through")
	}
	return raw, nil
}

// newChoice drops values the platform would reject; a truncated value could
// never be looked up again.
func newChoice(value string) (Choice, bool) {
	if value == "" || utf8.RuneCountInString(value) > maxChoiceLen {
		return Choice{}, false
	}
	return Choice{Name: value, Value: value}, true
}
