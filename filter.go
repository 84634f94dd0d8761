package collator

import "strings"

// FilterTerm restricts one entity attribute to an ordered list of accepted values.
type FilterTerm struct {
	Attribute string
	Values    []string
}

// FilterSpec is a server-side restriction on which entities the catalog
// returns. A nil or empty spec means no filtering.
type FilterSpec []FilterTerm

// KindFilter builds a FilterSpec that restricts results to the given kinds,
// preserving their order.
func KindFilter(kinds ...string) FilterSpec {
	if len(kinds) == 0 {
		return nil
	}
	return FilterSpec{{Attribute: "kind", Values: kinds}}
}

// Encode serializes the spec into the catalog's filter query-parameter
// format: each (attribute, value) pair becomes attribute=value, joined by
// commas in input order, e.g. "kind=Component,kind=API". Terms without
// values contribute nothing. An empty spec encodes to "".
func (f FilterSpec) Encode() string {
	var pairs []string
	for _, term := range f {
		if term.Attribute == "" {
			continue
		}
		for _, v := range term.Values {
			pairs = append(pairs, term.Attribute+"="+v)
		}
	}
	return strings.Join(pairs, ",")
}
