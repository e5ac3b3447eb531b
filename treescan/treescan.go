// Package treescan provides a breadth-first scanner for arbitrarily nested
// decoded JSON trees (map[string]any / []any). Every distinct container node
// is visited at most once, tracked by identity, so aliased or cyclic
// structures cannot loop the traversal. Nodes of unexpected shape contribute
// nothing instead of failing.
package treescan

import (
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// KeyMatcher reports whether a map key is of interest.
type KeyMatcher func(key string) bool

// Exact matches any of the given keys, case-insensitively.
func Exact(keys ...string) KeyMatcher {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}
	return func(key string) bool {
		_, ok := set[strings.ToLower(key)]
		return ok
	}
}

// Contains matches keys containing any of the given substrings,
// case-insensitively.
func Contains(subs ...string) KeyMatcher {
	lowered := make([]string, len(subs))
	for i, s := range subs {
		lowered[i] = strings.ToLower(s)
	}
	return func(key string) bool {
		k := strings.ToLower(key)
		for _, s := range lowered {
			if strings.Contains(k, s) {
				return true
			}
		}
		return false
	}
}

// Pattern matches keys against a regular expression.
func Pattern(re *regexp.Regexp) KeyMatcher {
	return func(key string) bool { return re.MatchString(key) }
}

// First walks the tree breadth-first and returns the first non-empty value
// stored under any of the given keys. Within a single object the keys are
// checked in the order given, so earlier keys take priority.
func First(root any, keys ...string) (any, bool) {
	var found any
	ok := false
	walk(root, func(obj map[string]any) bool {
		for _, want := range keys {
			for k, v := range obj {
				if strings.EqualFold(k, want) && !isEmpty(v) {
					found, ok = v, true
					return false
				}
			}
		}
		return true
	})
	return found, ok
}

// FirstMatch returns the first non-empty value under a key accepted by the
// matcher. Keys within an object are checked in sorted order so the result
// does not depend on map iteration order.
func FirstMatch(root any, match KeyMatcher) (any, bool) {
	var found any
	ok := false
	walk(root, func(obj map[string]any) bool {
		for _, k := range sortedKeys(obj) {
			if match(k) && !isEmpty(obj[k]) {
				found, ok = obj[k], true
				return false
			}
		}
		return true
	})
	return found, ok
}

// All returns every non-empty value stored under a matching key, in
// breadth-first order with keys sorted within each object.
func All(root any, match KeyMatcher) []any {
	var out []any
	walk(root, func(obj map[string]any) bool {
		for _, k := range sortedKeys(obj) {
			if match(k) && !isEmpty(obj[k]) {
				out = append(out, obj[k])
			}
		}
		return true
	})
	return out
}

// EachObject visits every object node once in breadth-first order.
// Returning false from the callback stops the walk.
func EachObject(root any, visit func(obj map[string]any) bool) {
	walk(root, visit)
}

// Strings collects every string leaf anywhere in the tree for which pred
// returns true, in breadth-first order.
func Strings(root any, pred func(s string) bool) []string {
	var out []string
	queue := []any{root}
	seen := make(map[uintptr]struct{})
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if id, ok := nodeID(cur); ok {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		switch n := cur.(type) {
		case map[string]any:
			for _, k := range sortedKeys(n) {
				switch v := n[k].(type) {
				case map[string]any, []any:
					queue = append(queue, v)
				case string:
					if pred(v) {
						out = append(out, v)
					}
				}
			}
		case []any:
			for _, v := range n {
				switch v := v.(type) {
				case map[string]any, []any:
					queue = append(queue, v)
				case string:
					if pred(v) {
						out = append(out, v)
					}
				}
			}
		}
	}
	return out
}

// Text renders a scalar tree value as a string. JSON numbers come back as
// float64; they are formatted without exponent notation so digit extraction
// downstream keeps working.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// walk is the shared BFS. The callback receives each object node once;
// returning false stops the walk.
func walk(root any, visit func(obj map[string]any) bool) {
	queue := []any{root}
	seen := make(map[uintptr]struct{})
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if id, ok := nodeID(cur); ok {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		switch n := cur.(type) {
		case map[string]any:
			if !visit(n) {
				return
			}
			for _, k := range sortedKeys(n) {
				switch v := n[k].(type) {
				case map[string]any, []any:
					queue = append(queue, v)
				}
			}
		case []any:
			for _, v := range n {
				switch v := v.(type) {
				case map[string]any, []any:
					queue = append(queue, v)
				}
			}
		}
	}
}

// nodeID returns an identity for container nodes so aliases are visited once.
func nodeID(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	}
	return 0, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isEmpty mirrors the "no useful value" rule: nil, empty string, empty
// container, numeric zero and false all count as absent.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case bool:
		return !t
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
