package collator

import "strings"

// CatalogDocument is the flat, indexable record produced for one entity.
// Optional spec-sourced fields are omitted entirely when the source field is
// absent; downstream indexing treats absence and emptiness as distinct.
type CatalogDocument struct {
	Title         string `json:"title"`
	Location      string `json:"location"`
	Text          string `json:"text"`
	Namespace     string `json:"namespace"`
	ComponentType string `json:"componentType,omitempty"`
	Lifecycle     string `json:"lifecycle,omitempty"`
	Owner         string `json:"owner,omitempty"`
}

// ToDocument converts one entity into one document, substituting the entity's
// coordinates into the location template. The transformation is pure: it
// never mutates the entity and produces the same document for the same input.
func ToDocument(e *Entity, template string) (CatalogDocument, error) {
	namespace := resolveNamespace(e.Metadata.Namespace)

	// Entities from a well-formed catalog always carry a name. The mapper
	// must not fabricate one.
	if e.Metadata.Name == "" {
		return CatalogDocument{}, &MappingError{
			Kind:      e.Kind,
			Namespace: namespace,
			Reason:    "metadata.name is required",
		}
	}

	doc := CatalogDocument{
		Title:     resolveTitle(e.Metadata.Title, e.Metadata.Name),
		Location:  ExpandLocation(template, namespace, strings.ToLower(e.Kind), e.Metadata.Name),
		Text:      e.Metadata.Description,
		Namespace: namespace,
	}
	if e.Spec != nil {
		doc.ComponentType = e.Spec.Type
		doc.Lifecycle = e.Spec.Lifecycle
		doc.Owner = e.Spec.Owner
	}
	return doc, nil
}

// resolveNamespace falls back to the default namespace for entities without one.
func resolveNamespace(namespace string) string {
	if namespace == "" {
		return DefaultNamespace
	}
	return namespace
}

// resolveTitle prefers the display title and falls back to the entity name.
func resolveTitle(title, name string) string {
	if title != "" {
		return title
	}
	return name
}
