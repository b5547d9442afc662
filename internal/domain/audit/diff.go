package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// FieldChange is one differing field between two record versions
type FieldChange struct {
	Field string `json:"field"`
	From  any    `json:"from"`
	To    any    `json:"to"`
}

// DefaultMaxSummaryFields caps how many change clauses a summary spells out
const DefaultMaxSummaryFields = 4

// Bookkeeping timestamps change on every save and never carry audit value
var defaultIgnoredFields = map[string]struct{}{
	"updatedAt": {},
	"createdAt": {},
}

// DiffChanges computes the structural diff between two record
// snapshots. The union of both key sets is compared minus the default
// ignore set and any caller extras; equality takes a primitive fast
// path and falls back to serialize-and-compare for nested values.
func DiffChanges(before, after map[string]any, extraIgnore ...string) []FieldChange {
	ignored := make(map[string]struct{}, len(defaultIgnoredFields)+len(extraIgnore))
	for field := range defaultIgnoredFields {
		ignored[field] = struct{}{}
	}
	for _, field := range extraIgnore {
		ignored[field] = struct{}{}
	}

	keys := make([]string, 0, len(before)+len(after))
	seen := make(map[string]struct{}, len(before)+len(after))
	for _, m := range []map[string]any{before, after} {
		for k := range m {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var changes []FieldChange
	for _, key := range keys {
		if _, skip := ignored[key]; skip {
			continue
		}
		from, to := before[key], after[key]
		if !valuesEqual(from, to) {
			changes = append(changes, FieldChange{Field: key, From: from, To: to})
		}
	}
	return changes
}

func valuesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch a.(type) {
	case string, bool, float64, int, int64:
		if reflect.TypeOf(a) == reflect.TypeOf(b) {
			return a == b
		}
	}
	aJSON, errA := json.Marshal(a)
	bJSON, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aJSON, bJSON)
}

// FormatValue renders a field value for a one-line summary. The
// rendering is deliberately lossy: arrays collapse to an item count and
// nested objects to a placeholder. It is display text, not a
// round-trippable diff.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "—"
	case string:
		if val == "" {
			return `""`
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case map[string]any:
		return "[object]"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		if n == 1 {
			return "[1 item]"
		}
		return fmt.Sprintf("[%d items]", n)
	case reflect.Map:
		return "[object]"
	}
	return fmt.Sprintf("%v", v)
}

// PrettifyFieldName turns a record field name into summary prose:
// a trailing "Id" is stripped and camel-case boundaries become spaced
// lower-case words, so "suburbId" reads "suburb" and "overridePrice"
// reads "override price".
func PrettifyFieldName(field string) string {
	name := strings.TrimSuffix(field, "Id")
	if name == "" {
		name = field
	}

	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// SummariseChanges renders a diff as one human-readable line: up to
// maxFields "field from → to" clauses after the prefix, with a
// "+K more" suffix when truncated. maxFields <= 0 applies the default.
func SummariseChanges(prefix string, changes []FieldChange, maxFields int) string {
	if maxFields <= 0 {
		maxFields = DefaultMaxSummaryFields
	}
	if len(changes) == 0 {
		return prefix + ": no field changes"
	}

	shown := changes
	if len(shown) > maxFields {
		shown = shown[:maxFields]
	}
	clauses := make([]string, len(shown))
	for i, c := range shown {
		clauses[i] = fmt.Sprintf("%s %s → %s", PrettifyFieldName(c.Field), FormatValue(c.From), FormatValue(c.To))
	}

	summary := prefix + ": " + strings.Join(clauses, ", ")
	if remaining := len(changes) - maxFields; remaining > 0 {
		summary += fmt.Sprintf(" +%d more", remaining)
	}
	return summary
}
