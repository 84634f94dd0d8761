package collator

import "testing"

func TestFilterSpec_EncodeKinds(t *testing.T) {
	f := KindFilter("Foo", "Bar")
	if got := f.Encode(); got != "kind=Foo,kind=Bar" {
		t.Errorf("Encode = %q, want %q", got, "kind=Foo,kind=Bar")
	}
}

func TestFilterSpec_EncodeSingleValue(t *testing.T) {
	f := KindFilter("Component")
	if got := f.Encode(); got != "kind=Component" {
		t.Errorf("Encode = %q, want %q", got, "kind=Component")
	}
}

func TestFilterSpec_EncodePreservesOrder(t *testing.T) {
	f := KindFilter("Z", "A", "M")
	if got := f.Encode(); got != "kind=Z,kind=A,kind=M" {
		t.Errorf("Encode = %q, want %q", got, "kind=Z,kind=A,kind=M")
	}
}

func TestFilterSpec_EncodeMultipleAttributes(t *testing.T) {
	f := FilterSpec{
		{Attribute: "kind", Values: []string{"Component"}},
		{Attribute: "spec.type", Values: []string{"service", "library"}},
	}
	want := "kind=Component,spec.type=service,spec.type=library"
	if got := f.Encode(); got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestFilterSpec_EncodeEmpty(t *testing.T) {
	var f FilterSpec
	if got := f.Encode(); got != "" {
		t.Errorf("Encode = %q, want empty", got)
	}
	if got := KindFilter().Encode(); got != "" {
		t.Errorf("KindFilter().Encode = %q, want empty", got)
	}
}

func TestFilterSpec_EncodeSkipsEmptyTerms(t *testing.T) {
	f := FilterSpec{
		{Attribute: "", Values: []string{"ignored"}},
		{Attribute: "kind", Values: nil},
		{Attribute: "kind", Values: []string{"API"}},
	}
	if got := f.Encode(); got != "kind=API" {
		t.Errorf("Encode = %q, want %q", got, "kind=API")
	}
}
