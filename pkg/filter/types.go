// Package filter implements a declarative, serializable predicate DSL over
// item snapshots: a fluent builder, a JSON wire format, and a pure
// evaluator. Filters are plain data — they have no identity and round-trip
// losslessly through JSON.
package filter

// MatchMode is the top-level/condition-level combinator.
type MatchMode string

const (
	MatchAll MatchMode = "AND"
	MatchAny MatchMode = "OR"
)

// Property is the closed set of snapshot fields a rule may target.
type Property string

const (
	PropertyID         Property = "id"
	PropertyName       Property = "name"
	PropertyExt        Property = "ext"
	PropertyURL        Property = "url"
	PropertyAnnotation Property = "annotation"
	PropertyTags       Property = "tags"
	PropertyFolders    Property = "folders"
	PropertyStar       Property = "star"
	PropertyWidth      Property = "width"
	PropertyHeight     Property = "height"
	PropertySize       Property = "size"
	PropertyImportedAt Property = "importedAt"
	PropertyModifiedAt Property = "modifiedAt"
	PropertyIsDeleted  Property = "isDeleted"
)

// Method is the closed set of comparators a rule may use.
type Method string

const (
	MethodIs            Method = "is"
	MethodIsNot         Method = "isNot"
	MethodContains      Method = "contains"
	MethodNotContains   Method = "notContains"
	MethodStartsWith    Method = "startsWith"
	MethodEndsWith      Method = "endsWith"
	MethodMatches       Method = "matches"
	MethodGT            Method = "gt"
	MethodGTE           Method = "gte"
	MethodLT            Method = "lt"
	MethodLTE           Method = "lte"
	MethodBetween       Method = "between"
	MethodIsEmpty       Method = "isEmpty"
	MethodIsNotEmpty    Method = "isNotEmpty"
	MethodIncludesAny   Method = "includesAny"
	MethodIncludesAll   Method = "includesAll"
	MethodExcludesAny   Method = "excludesAny"
	MethodExcludesAll   Method = "excludesAll"
)

// Rule is a single (property, method, value?) triple. Value's admitted type
// depends on Method: nil for the emptiness methods, a scalar for
// comparisons, a two-element slice for Between, a slice for the
// includes/excludes family.
type Rule struct {
	Property Property `json:"property"`
	Method   Method   `json:"method"`
	Value    any      `json:"value,omitempty"`
}

// Condition is a match mode over an ordered sequence of rules. An empty
// Rules sequence matches everything.
type Condition struct {
	Match MatchMode `json:"match"`
	Rules []Rule    `json:"rules"`
}

// ItemFilter is the top-level match mode over an ordered sequence of
// conditions. An empty Conditions sequence matches everything.
type ItemFilter struct {
	Match      MatchMode   `json:"match"`
	Conditions []Condition `json:"conditions"`
}
