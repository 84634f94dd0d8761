package collator

import (
	"errors"
	"testing"
)

func testEntity() Entity {
	return Entity{
		APIVersion: "backstage.io/v1alpha1",
		Kind:       "Component",
		Metadata: Metadata{
			Name:        "test-entity",
			Description: "The expected description",
		},
		Spec: &EntitySpec{
			Type:      "some-type",
			Lifecycle: "experimental",
			Owner:     "someone",
		},
	}
}

func TestToDocument_FullEntity(t *testing.T) {
	e := testEntity()
	doc, err := ToDocument(&e, DefaultLocationTemplate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := CatalogDocument{
		Title:         "test-entity",
		Location:      "/catalog/default/component/test-entity",
		Text:          "The expected description",
		Namespace:     "default",
		ComponentType: "some-type",
		Lifecycle:     "experimental",
		Owner:         "someone",
	}
	if doc != want {
		t.Errorf("ToDocument = %+v, want %+v", doc, want)
	}
}

func TestToDocument_TitleFallsBackToName(t *testing.T) {
	e := testEntity()
	doc, err := ToDocument(&e, DefaultLocationTemplate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "test-entity" {
		t.Errorf("Title = %q, want %q", doc.Title, "test-entity")
	}
}

func TestToDocument_TitlePreferred(t *testing.T) {
	e := testEntity()
	e.Metadata.Title = "Test Entity"

	doc, err := ToDocument(&e, DefaultLocationTemplate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Test Entity" {
		t.Errorf("Title = %q, want %q", doc.Title, "Test Entity")
	}
	// Location is derived from the name, never the title.
	if doc.Location != "/catalog/default/component/test-entity" {
		t.Errorf("Location = %q, want %q", doc.Location, "/catalog/default/component/test-entity")
	}
}

func TestToDocument_CustomTemplate(t *testing.T) {
	e := testEntity()
	doc, err := ToDocument(&e, "/software/:name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Location != "/software/test-entity" {
		t.Errorf("Location = %q, want %q", doc.Location, "/software/test-entity")
	}
}

func TestToDocument_NamespaceDefaulted(t *testing.T) {
	e := testEntity()
	e.Metadata.Namespace = ""

	doc, err := ToDocument(&e, DefaultLocationTemplate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Namespace != DefaultNamespace {
		t.Errorf("Namespace = %q, want %q", doc.Namespace, DefaultNamespace)
	}
}

func TestToDocument_ExplicitNamespace(t *testing.T) {
	e := testEntity()
	e.Metadata.Namespace = "payments"

	doc, err := ToDocument(&e, DefaultLocationTemplate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Namespace != "payments" {
		t.Errorf("Namespace = %q, want %q", doc.Namespace, "payments")
	}
	if doc.Location != "/catalog/payments/component/test-entity" {
		t.Errorf("Location = %q", doc.Location)
	}
}

func TestToDocument_KindLowercasedInLocation(t *testing.T) {
	e := testEntity()
	e.Kind = "API"

	doc, err := ToDocument(&e, DefaultLocationTemplate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Location != "/catalog/default/api/test-entity" {
		t.Errorf("Location = %q, want lower-cased kind", doc.Location)
	}
}

func TestToDocument_NoSpec(t *testing.T) {
	e := testEntity()
	e.Spec = nil

	doc, err := ToDocument(&e, DefaultLocationTemplate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ComponentType != "" || doc.Lifecycle != "" || doc.Owner != "" {
		t.Errorf("spec fields should be absent, got %+v", doc)
	}
}

func TestToDocument_MissingDescription(t *testing.T) {
	e := testEntity()
	e.Metadata.Description = ""

	doc, err := ToDocument(&e, DefaultLocationTemplate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("Text = %q, want empty", doc.Text)
	}
}

func TestToDocument_MissingName(t *testing.T) {
	e := testEntity()
	e.Metadata.Name = ""

	_, err := ToDocument(&e, DefaultLocationTemplate)
	if err == nil {
		t.Fatal("expected error for missing name")
	}
	if !errors.Is(err, ErrMapping) {
		t.Errorf("expected ErrMapping, got %v", err)
	}
	var me *MappingError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MappingError, got %T", err)
	}
	if me.Kind != "Component" {
		t.Errorf("MappingError.Kind = %q, want Component", me.Kind)
	}
}
