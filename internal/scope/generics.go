package scope

import (
	"maps"
	"slices"
	"strings"
)

// Variant maps every declared type parameter to a concrete type name.
type Variant map[string]string

// keySep separates type names in a variant key so that distinct
// combinations such as (AB, C) and (A, BC) never share a key.
const keySep = ","

// Generics tracks the declared type parameters of one generic declaration
// and the concrete instantiations seen at its call sites.
type Generics struct {
	params   []string
	variants map[string]Variant
	order    []string
	active   string
	isActive bool
}

func NewGenerics(params []string) *Generics {
	return &Generics{
		params:   slices.Clone(params),
		variants: make(map[string]Variant),
	}
}

// Params returns the declared parameter names in order.
func (g *Generics) Params() []string { return slices.Clone(g.params) }

// Key builds the canonical key of v in declared parameter order. It reports
// false when the key set of v differs from the declared parameters.
func (g *Generics) Key(v Variant) (string, bool) {
	if len(v) != len(g.params) {
		return "", false
	}
	var sb strings.Builder
	for i, p := range g.params {
		val, ok := v[p]
		if !ok {
			return "", false
		}
		if i > 0 {
			sb.WriteString(keySep)
		}
		sb.WriteString(val)
	}
	return sb.String(), true
}

// AddVariant records v. Mismatched key sets and already known combinations
// are ignored; the result reports whether a new variant was stored.
func (g *Generics) AddVariant(v Variant) bool {
	key, ok := g.Key(v)
	if !ok {
		return false
	}
	if _, dup := g.variants[key]; dup {
		return false
	}
	g.variants[key] = maps.Clone(v)
	g.order = append(g.order, key)
	return true
}

// Resolve returns the substitution for ident under the active variant.
func (g *Generics) Resolve(ident string) (string, bool) {
	if !g.isActive {
		return "", false
	}
	val, ok := g.variants[g.active][ident]
	return val, ok
}

// Keys lists variant keys in registration order.
func (g *Generics) Keys() []string { return slices.Clone(g.order) }

func (g *Generics) Len() int { return len(g.order) }

func (g *Generics) Variant(key string) (Variant, bool) {
	v, ok := g.variants[key]
	if !ok {
		return nil, false
	}
	return maps.Clone(v), true
}

// Args returns the concrete types of a variant in parameter order.
func (g *Generics) Args(key string) []string {
	v, ok := g.variants[key]
	if !ok {
		return nil
	}
	out := make([]string, len(g.params))
	for i, p := range g.params {
		out[i] = v[p]
	}
	return out
}

// SetActive selects the variant used by Resolve.
func (g *Generics) SetActive(key string) bool {
	if _, ok := g.variants[key]; !ok {
		return false
	}
	g.active = key
	g.isActive = true
	return true
}

func (g *Generics) ClearActive() {
	g.active = ""
	g.isActive = false
}

func (g *Generics) Active() (string, bool) {
	return g.active, g.isActive
}
