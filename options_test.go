package collator

import (
	"net/http"
	"testing"
	"time"
)

func TestMergeOptions_ExplicitWins(t *testing.T) {
	explicit := Options{
		ServiceName:      "catalog-staging",
		Filter:           KindFilter("Component"),
		LocationTemplate: "/software/:name",
		Timeout:          5 * time.Second,
	}
	defaults := Options{
		ServiceName:      "catalog",
		Filter:           KindFilter("API"),
		LocationTemplate: DefaultLocationTemplate,
		Timeout:          30 * time.Second,
	}

	merged := MergeOptions(explicit, defaults)
	if merged.ServiceName != "catalog-staging" {
		t.Errorf("ServiceName = %q", merged.ServiceName)
	}
	if merged.Filter.Encode() != "kind=Component" {
		t.Errorf("Filter = %q", merged.Filter.Encode())
	}
	if merged.LocationTemplate != "/software/:name" {
		t.Errorf("LocationTemplate = %q", merged.LocationTemplate)
	}
	if merged.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", merged.Timeout)
	}
}

func TestMergeOptions_DefaultsFillUnsetFields(t *testing.T) {
	client := &http.Client{}
	defaults := Options{
		ServiceName:      "catalog",
		LocationTemplate: DefaultLocationTemplate,
		HTTPClient:       client,
		Timeout:          15 * time.Second,
	}

	merged := MergeOptions(Options{}, defaults)
	if merged.ServiceName != "catalog" {
		t.Errorf("ServiceName = %q", merged.ServiceName)
	}
	if merged.LocationTemplate != DefaultLocationTemplate {
		t.Errorf("LocationTemplate = %q", merged.LocationTemplate)
	}
	if merged.HTTPClient != client {
		t.Error("HTTPClient not taken from defaults")
	}
	if merged.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", merged.Timeout)
	}
}

func TestMergeOptions_FieldByField(t *testing.T) {
	// A partially set explicit struct keeps its own fields and borrows the rest.
	explicit := Options{Filter: KindFilter("System")}
	defaults := Options{ServiceName: "catalog", LocationTemplate: "/x/:name"}

	merged := MergeOptions(explicit, defaults)
	if merged.Filter.Encode() != "kind=System" {
		t.Errorf("Filter = %q", merged.Filter.Encode())
	}
	if merged.ServiceName != "catalog" {
		t.Errorf("ServiceName = %q", merged.ServiceName)
	}
	if merged.LocationTemplate != "/x/:name" {
		t.Errorf("LocationTemplate = %q", merged.LocationTemplate)
	}
}

func TestMergeOptions_PureInputsUntouched(t *testing.T) {
	explicit := Options{}
	defaults := Options{ServiceName: "catalog"}

	_ = MergeOptions(explicit, defaults)
	if explicit.ServiceName != "" {
		t.Error("explicit options were mutated")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.ServiceName != DefaultServiceName {
		t.Errorf("ServiceName = %q", opts.ServiceName)
	}
	if opts.LocationTemplate != DefaultLocationTemplate {
		t.Errorf("LocationTemplate = %q", opts.LocationTemplate)
	}
	if opts.Timeout != defaultRequestTimeout {
		t.Errorf("Timeout = %v", opts.Timeout)
	}
	if opts.Filter != nil {
		t.Errorf("Filter = %v, want nil", opts.Filter)
	}
}
