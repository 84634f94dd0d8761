package collator

import "strings"

// DefaultLocationTemplate is the location template used when no override is
// configured.
const DefaultLocationTemplate = "/catalog/:namespace/:kind/:name"

// ExpandLocation substitutes :namespace, :kind and :name tokens in template
// in a single left-to-right pass. Substituted values are never re-scanned,
// and unrecognized tokens are left untouched so that templates may carry
// placeholders this collator does not know about.
func ExpandLocation(template, namespace, kind, name string) string {
	values := map[string]string{
		"namespace": namespace,
		"kind":      kind,
		"name":      name,
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		if template[i] != ':' {
			b.WriteByte(template[i])
			i++
			continue
		}
		j := i + 1
		for j < len(template) && isTokenChar(template[j]) {
			j++
		}
		if v, ok := values[template[i+1:j]]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(template[i:j])
		}
		i = j
	}

	return b.String()
}

func isTokenChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
