package fields_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ipetkov/conch-runtime-go/fields"
)

// cmp.Diff gives a readable failure for the whole Variant+Values shape at
// once, which is the point of Fields as a representation: a mismatch in
// provenance (e.g. Split vs Star) is as much a bug as a mismatch in values.
func TestOfCollapsesEmptyToZero(t *testing.T) {
	got := fields.Of[string](fields.Split, nil)
	want := fields.Empty[string]()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Of(Split, nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestOfPreservesVariantAndValues(t *testing.T) {
	got := fields.Of(fields.At, []string{"a", "b", "c"})
	want := fields.Fields[string]{Variant: fields.At, Values: []string{"a", "b", "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Of(At, ...) mismatch (-want +got):\n%s", diff)
	}
}

func TestOneIsSingleVariant(t *testing.T) {
	got := fields.One("x")
	want := fields.Fields[string]{Variant: fields.Single, Values: []string{"x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("One mismatch (-want +got):\n%s", diff)
	}
}
