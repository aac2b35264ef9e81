package resolve

import (
	"reflect"
	"testing"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		inferred string
		want     string
	}{
		{"both valid, declared higher", "2.0.0", "1.5.0", "2.0.0"},
		{"both valid, inferred higher", "1.20.0", "1.26.0", "1.26.0"},
		{"equal", "1.0.0", "1.0.0", "1.0.0"},
		{"declared invalid", "not-a-version", "1.2.3", "1.2.3"},
		{"inferred is latest sentinel", "1.2.3", "latest", "latest"},
		{"both invalid", "garbage", "also-garbage", "latest"},
		{"declared latest, inferred valid", "latest", "1.2.3", "1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reconcile(tt.declared, tt.inferred); got != tt.want {
				t.Errorf("Reconcile(%q, %q) = %q, want %q", tt.declared, tt.inferred, got, tt.want)
			}
		})
	}
}

func TestVersionBelow(t *testing.T) {
	tests := []struct {
		version, cutoff string
		want            bool
	}{
		{"1.15.0", "2.0.0", true},
		{"2.0.0", "2.0.0", false},
		{"2.1.0", "2.0.0", false},
		{"latest", "2.0.0", false},
		{"garbage", "2.0.0", false},
	}
	for _, tt := range tests {
		if got := versionBelow(tt.version, tt.cutoff); got != tt.want {
			t.Errorf("versionBelow(%q, %q) = %v, want %v", tt.version, tt.cutoff, got, tt.want)
		}
	}
}

func TestDependencyMapOrder(t *testing.T) {
	m := NewDependencyMap()
	m.Set("b", "1.0.0")
	m.Set("a", "2.0.0")
	m.Set("c", "3.0.0")

	if got := m.Names(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("Names() = %v, want insertion order", got)
	}
	if got := m.Sorted(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Sorted() = %v", got)
	}
}

func TestDependencyMapInsertReconciles(t *testing.T) {
	m := NewDependencyMap()

	if _, conflicted := m.Insert("numpy", "1.20.0"); conflicted {
		t.Error("first insert should not conflict")
	}
	prev, conflicted := m.Insert("numpy", "1.26.0")
	if !conflicted || prev != "1.20.0" {
		t.Errorf("Insert dup = (%q, %v), want (1.20.0, true)", prev, conflicted)
	}
	if v, _ := m.Get("numpy"); v != "1.26.0" {
		t.Errorf("reconciled version = %q, want 1.26.0", v)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}

	// Same version again is not a conflict.
	if _, conflicted := m.Insert("numpy", "1.26.0"); conflicted {
		t.Error("equal re-insert should not conflict")
	}
}
