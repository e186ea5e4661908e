package filter

import "regexp"

// Builder accumulates conditions and rules through a chained interface. It
// is a two-state machine: "between rules" (this type — Where/And/Or/
// AddCondition/Build) and "awaiting terminator" (RuleBuilder — the method
// verbs). Every terminator transitions back to Builder; Build is only
// callable from the Builder surface.
type Builder struct {
	filter ItemFilter
}

// NewBuilder starts a new filter builder with the default ALL match mode.
func NewBuilder() *Builder {
	return &Builder{filter: ItemFilter{Match: MatchAll}}
}

// Where starts a new condition (ALL-semantics) and begins its first rule.
func (b *Builder) Where(property Property) *RuleBuilder {
	b.filter.Conditions = append(b.filter.Conditions, Condition{Match: MatchAll})
	return &RuleBuilder{b: b, condIdx: len(b.filter.Conditions) - 1, property: property}
}

// And appends an additional rule to the current condition. If there is no
// current condition yet, it behaves exactly like Where.
func (b *Builder) And(property Property) *RuleBuilder {
	if len(b.filter.Conditions) == 0 {
		return b.Where(property)
	}
	return &RuleBuilder{b: b, condIdx: len(b.filter.Conditions) - 1, property: property}
}

// Or starts a new condition appended to the conditions sequence and sets
// the top-level match mode to ANY.
func (b *Builder) Or(property Property) *RuleBuilder {
	b.filter.Match = MatchAny
	return b.Where(property)
}

// AddCondition directly appends a pre-built condition.
func (b *Builder) AddCondition(c Condition) *Builder {
	b.filter.Conditions = append(b.filter.Conditions, c)
	return b
}

// SetMatch directly sets the top-level match mode.
func (b *Builder) SetMatch(mode MatchMode) *Builder {
	b.filter.Match = mode
	return b
}

// Build returns the accumulated filter tree value.
func (b *Builder) Build() ItemFilter {
	return b.filter
}

// RuleBuilder is the "awaiting terminator" state: a property is pinned and
// the next call must name the comparator that completes the rule.
type RuleBuilder struct {
	b        *Builder
	condIdx  int
	property Property
}

func (r *RuleBuilder) finish(method Method, value any) *Builder {
	cond := r.b.filter.Conditions[r.condIdx]
	cond.Rules = append(cond.Rules, Rule{Property: r.property, Method: method, Value: value})
	r.b.filter.Conditions[r.condIdx] = cond
	return r.b
}

func (r *RuleBuilder) Is(value any) *Builder          { return r.finish(MethodIs, value) }
func (r *RuleBuilder) IsNot(value any) *Builder       { return r.finish(MethodIsNot, value) }
func (r *RuleBuilder) Contains(value any) *Builder     { return r.finish(MethodContains, value) }
func (r *RuleBuilder) NotContains(value any) *Builder  { return r.finish(MethodNotContains, value) }
func (r *RuleBuilder) StartsWith(value any) *Builder   { return r.finish(MethodStartsWith, value) }
func (r *RuleBuilder) EndsWith(value any) *Builder     { return r.finish(MethodEndsWith, value) }
func (r *RuleBuilder) GT(value any) *Builder           { return r.finish(MethodGT, value) }
func (r *RuleBuilder) GTE(value any) *Builder          { return r.finish(MethodGTE, value) }
func (r *RuleBuilder) LT(value any) *Builder           { return r.finish(MethodLT, value) }
func (r *RuleBuilder) LTE(value any) *Builder          { return r.finish(MethodLTE, value) }
func (r *RuleBuilder) IsEmpty() *Builder               { return r.finish(MethodIsEmpty, nil) }
func (r *RuleBuilder) IsNotEmpty() *Builder            { return r.finish(MethodIsNotEmpty, nil) }
func (r *RuleBuilder) IncludesAny(values ...any) *Builder { return r.finish(MethodIncludesAny, values) }
func (r *RuleBuilder) IncludesAll(values ...any) *Builder { return r.finish(MethodIncludesAll, values) }
func (r *RuleBuilder) ExcludesAny(values ...any) *Builder { return r.finish(MethodExcludesAny, values) }
func (r *RuleBuilder) ExcludesAll(values ...any) *Builder { return r.finish(MethodExcludesAll, values) }

// Between stores min/max as a two-element ordered pair.
func (r *RuleBuilder) Between(min, max any) *Builder {
	return r.finish(MethodBetween, []any{min, max})
}

// Matches accepts either a compiled regex or a pattern string; a compiled
// regex is stored by its source pattern. Matching is always
// case-insensitive regardless of how the pattern was supplied.
func (r *RuleBuilder) Matches(pattern any) *Builder {
	switch v := pattern.(type) {
	case *regexp.Regexp:
		return r.finish(MethodMatches, v.String())
	case string:
		return r.finish(MethodMatches, v)
	default:
		return r.finish(MethodMatches, "")
	}
}
