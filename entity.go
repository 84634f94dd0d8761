package collator

// Entity types are broadly compatible with backstage.io's software catalog
// descriptor format:
// https://backstage.io/docs/features/software-catalog/descriptor-format

// DefaultNamespace is assumed for entities that carry no explicit namespace.
const DefaultNamespace = "default"

// Metadata identifies and describes an entity.
type Metadata struct {
	// Name must be unique within the catalog for any given namespace + kind pair.
	// [required]
	Name string `json:"name"`
	// Namespace the entity belongs to. Empty means the default namespace.
	// [optional]
	Namespace string `json:"namespace,omitempty"`
	// Title is a display name shown in UIs instead of Name, when available.
	// [optional]
	Title string `json:"title,omitempty"`
	// Description is a short, one-line description of the entity.
	// [optional]
	Description string `json:"description,omitempty"`
	// Labels are key/value pairs of identifying information.
	// [optional]
	Labels map[string]string `json:"labels,omitempty"`
	// Annotations are key/value pairs of non-identifying auxiliary information.
	// [optional]
	Annotations map[string]string `json:"annotations,omitempty"`
	// Tags classify the entity in various ways.
	// [optional]
	Tags []string `json:"tags,omitempty"`
}

// EntitySpec carries the kind-dependent fields the collator cares about.
// All fields are optional; unknown spec fields are ignored on decode.
type EntitySpec struct {
	Type      string `json:"type,omitempty"`
	Lifecycle string `json:"lifecycle,omitempty"`
	Owner     string `json:"owner,omitempty"`
}

// Entity is one record returned by the catalog's entity-listing endpoint.
// Consumed read-only; the collator never mutates or stores entities.
type Entity struct {
	APIVersion string      `json:"apiVersion"`
	Kind       string      `json:"kind"`
	Metadata   Metadata    `json:"metadata"`
	Spec       *EntitySpec `json:"spec,omitempty"`
}
