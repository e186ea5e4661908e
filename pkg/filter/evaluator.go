package filter

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/zackaryw/eaglecore/pkg/snapshot"
)

// Evaluate reports whether snap satisfies filter. An empty Conditions
// sequence matches everything. The evaluator is pure and allocates no more
// than the regex/automaton construction a given rule needs.
func Evaluate(snap snapshot.ItemSnapshot, f ItemFilter) bool {
	if len(f.Conditions) == 0 {
		return true
	}
	switch f.Match {
	case MatchAny:
		for _, cond := range f.Conditions {
			if evaluateCondition(snap, cond) {
				return true
			}
		}
		return false
	default: // MatchAll and anything unrecognized degrades to AND per spec's closed enum
		for _, cond := range f.Conditions {
			if !evaluateCondition(snap, cond) {
				return false
			}
		}
		return true
	}
}

// evaluateCondition reports whether snap satisfies a single condition. An
// empty Rules sequence matches everything.
func evaluateCondition(snap snapshot.ItemSnapshot, cond Condition) bool {
	if len(cond.Rules) == 0 {
		return true
	}
	switch cond.Match {
	case MatchAny:
		for _, rule := range cond.Rules {
			if evaluateRule(snap, rule) {
				return true
			}
		}
		return false
	default:
		for _, rule := range cond.Rules {
			if !evaluateRule(snap, rule) {
				return false
			}
		}
		return true
	}
}

// evaluateRule applies a single rule. Any method whose type preconditions
// are not satisfied returns false — there is no coercion, and an unknown
// method also yields false.
func evaluateRule(snap snapshot.ItemSnapshot, rule Rule) bool {
	v := propertyValue(snap, rule.Property)
	r := rule.Value

	switch rule.Method {
	case MethodIs:
		return equalPrimitive(v, r)
	case MethodIsNot:
		return !equalPrimitive(v, r)
	case MethodContains:
		s, sok := v.(string)
		rs, rok := stringify(r)
		return sok && rok && containsSubstring(s, rs)
	case MethodNotContains:
		s, sok := v.(string)
		rs, rok := stringify(r)
		return sok && rok && !containsSubstring(s, rs)
	case MethodStartsWith:
		s, sok := v.(string)
		rs, rok := stringify(r)
		return sok && rok && strings.HasPrefix(s, rs)
	case MethodEndsWith:
		s, sok := v.(string)
		rs, rok := stringify(r)
		return sok && rok && strings.HasSuffix(s, rs)
	case MethodMatches:
		s, sok := v.(string)
		pattern, rok := stringify(r)
		if !sok || !rok {
			return false
		}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return false
		}
		return re.MatchString(s)
	case MethodGT:
		a, aok := toFloat64(v)
		b, bok := toFloat64(r)
		return aok && bok && a > b
	case MethodGTE:
		a, aok := toFloat64(v)
		b, bok := toFloat64(r)
		return aok && bok && a >= b
	case MethodLT:
		a, aok := toFloat64(v)
		b, bok := toFloat64(r)
		return aok && bok && a < b
	case MethodLTE:
		a, aok := toFloat64(v)
		b, bok := toFloat64(r)
		return aok && bok && a <= b
	case MethodBetween:
		a, aok := toFloat64(v)
		lo, hi, bok := betweenBounds(r)
		return aok && bok && a >= lo && a <= hi
	case MethodIsEmpty:
		return isEmptyValue(v)
	case MethodIsNotEmpty:
		return !isEmptyValue(v)
	case MethodIncludesAny:
		vs, vok := toStringSlice(v)
		rs, rok := toStringSlice(r)
		if !vok || !rok {
			return false
		}
		for _, item := range rs {
			if containsString(vs, item) {
				return true
			}
		}
		return false
	case MethodIncludesAll:
		vs, vok := toStringSlice(v)
		rs, rok := toStringSlice(r)
		if !vok || !rok {
			return false
		}
		for _, item := range rs {
			if !containsString(vs, item) {
				return false
			}
		}
		return true
	case MethodExcludesAny:
		vs, vok := toStringSlice(v)
		rs, rok := toStringSlice(r)
		if !vok || !rok {
			return false
		}
		for _, item := range rs {
			if !containsString(vs, item) {
				return true
			}
		}
		return false
	case MethodExcludesAll:
		vs, vok := toStringSlice(v)
		rs, rok := toStringSlice(r)
		if !vok || !rok {
			return false
		}
		for _, item := range rs {
			if containsString(vs, item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func propertyValue(s snapshot.ItemSnapshot, p Property) any {
	switch p {
	case PropertyID:
		return s.ID
	case PropertyName:
		return s.Name
	case PropertyExt:
		return s.Ext
	case PropertyURL:
		return s.URL
	case PropertyAnnotation:
		return s.Annotation
	case PropertyTags:
		return s.Tags
	case PropertyFolders:
		return s.Folders
	case PropertyStar:
		if s.Star == nil {
			return nil
		}
		return *s.Star
	case PropertyWidth:
		return s.Width
	case PropertyHeight:
		return s.Height
	case PropertySize:
		return s.Size
	case PropertyImportedAt:
		return s.ImportedAt
	case PropertyModifiedAt:
		return s.ModifiedAt
	case PropertyIsDeleted:
		return s.IsDeleted
	default:
		return nil
	}
}

func equalPrimitive(a, b any) bool {
	if af, aok := toFloat64(a); aok {
		if bf, bok := toFloat64(b); bok {
			return af == bf
		}
		return false
	}
	if as, aok := a.(string); aok {
		bs, bok := b.(string)
		return bok && as == bs
	}
	if ab, aok := a.(bool); aok {
		bb, bok := b.(bool)
		return bok && ab == bb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func stringify(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	default:
		if f, ok := toFloat64(v); ok {
			return fmt.Sprint(f), true
		}
		return "", false
	}
}

func betweenBounds(v any) (lo, hi float64, ok bool) {
	switch pair := v.(type) {
	case []any:
		if len(pair) != 2 {
			return 0, 0, false
		}
		a, aok := toFloat64(pair[0])
		b, bok := toFloat64(pair[1])
		return a, b, aok && bok
	case [2]any:
		a, aok := toFloat64(pair[0])
		b, bok := toFloat64(pair[1])
		return a, b, aok && bok
	default:
		return 0, 0, false
	}
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len() == 0
		default:
			return false
		}
	}
}

func toStringSlice(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := stringify(item)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
