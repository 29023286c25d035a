package depot

import (
	"errors"
	"testing"
)

type Gravity struct {
	Y float64
}

type TickCount struct {
	Value uint64
}

// TestResourcesRoundTrip tests that inserted values are returned intact
func TestResourcesRoundTrip(t *testing.T) {
	resources := Factory.NewResources()

	InsertResource(resources, Gravity{Y: -9.81})
	InsertResource(resources, TickCount{Value: 7})

	gravity := GetResource[Gravity](resources)
	if gravity.Get().Y != -9.81 {
		t.Errorf("Gravity.Y = %v, want -9.81", gravity.Get().Y)
	}
	gravity.Release()

	ticks := GetResource[TickCount](resources)
	if ticks.Get().Value != 7 {
		t.Errorf("TickCount.Value = %d, want 7", ticks.Get().Value)
	}
	ticks.Release()
}

// TestResourcesInsertReplaces tests that inserting under an existing type
// replaces the entry and its borrow state
func TestResourcesInsertReplaces(t *testing.T) {
	resources := Factory.NewResources()

	InsertResource(resources, TickCount{Value: 1})

	// Leave a shared borrow dangling on the old entry, then replace it
	stale := GetResource[TickCount](resources)
	InsertResource(resources, TickCount{Value: 2})
	stale.Release()

	mut, err := TryGetResourceMut[TickCount](resources)
	if err != nil {
		t.Fatalf("exclusive borrow of replaced entry failed: %v", err)
	}
	if mut.Get().Value != 2 {
		t.Errorf("replaced value: %d, want 2", mut.Get().Value)
	}
	mut.Release()
}

// TestResourcesNotFound tests lookups of types never inserted
func TestResourcesNotFound(t *testing.T) {
	resources := Factory.NewResources()
	InsertResource(resources, Gravity{})

	if _, err := TryGetResource[TickCount](resources); err == nil {
		t.Error("TryGetResource of absent type succeeded")
	} else {
		var notFound NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("error type: %T, want NotFoundError", err)
		}
	}

	if _, err := TryGetResourceMut[TickCount](resources); err == nil {
		t.Error("TryGetResourceMut of absent type succeeded")
	}

	defer func() {
		if recover() == nil {
			t.Error("GetResource of absent type did not panic")
		}
	}()
	GetResource[TickCount](resources)
}

// TestResourcesBorrowExclusivity tests borrow conflicts across accessors of
// one type key
func TestResourcesBorrowExclusivity(t *testing.T) {
	resources := Factory.NewResources()
	InsertResource(resources, Gravity{Y: -9.81})

	ref1, err := TryGetResource[Gravity](resources)
	if err != nil {
		t.Fatalf("first shared borrow failed: %v", err)
	}
	ref2, err := TryGetResource[Gravity](resources)
	if err != nil {
		t.Fatalf("second shared borrow failed: %v", err)
	}

	if _, err := TryGetResourceMut[Gravity](resources); err == nil {
		t.Error("exclusive borrow succeeded with shared borrows outstanding")
	}

	ref1.Release()
	ref2.Release()

	mut, err := TryGetResourceMut[Gravity](resources)
	if err != nil {
		t.Fatalf("exclusive borrow after releases failed: %v", err)
	}

	if _, err := TryGetResource[Gravity](resources); err == nil {
		t.Error("shared borrow succeeded with an exclusive borrow outstanding")
	}
	if _, err := TryGetResourceMut[Gravity](resources); err == nil {
		t.Error("second exclusive borrow succeeded")
	}

	// Borrows of other types are unaffected
	InsertResource(resources, TickCount{Value: 3})
	other := GetResourceMut[TickCount](resources)
	other.Release()

	mut.Release()

	again := GetResourceMut[Gravity](resources)
	again.Release()
}

// TestAliasedResources tests alias-first lookup with fallthrough to the
// inner container
func TestAliasedResources(t *testing.T) {
	inner := Factory.NewResources()
	InsertResource(inner, Gravity{Y: -9.81})
	InsertResource(inner, TickCount{Value: 1})

	// Shadow TickCount with an externally owned value for this scope
	scoped := TickCount{Value: 99}
	aliased := Factory.NewAliasedResources(inner, AliasOf(&scoped))

	t.Run("alias shadows inner entry", func(t *testing.T) {
		ticks := GetResource[TickCount](aliased)
		defer ticks.Release()
		if ticks.Get().Value != 99 {
			t.Errorf("TickCount.Value = %d, want 99", ticks.Get().Value)
		}
	})

	t.Run("miss falls through to inner", func(t *testing.T) {
		gravity := GetResource[Gravity](aliased)
		defer gravity.Release()
		if gravity.Get().Y != -9.81 {
			t.Errorf("Gravity.Y = %v, want -9.81", gravity.Get().Y)
		}
	})

	t.Run("mutation lands on the external value", func(t *testing.T) {
		ticks := GetResourceMut[TickCount](aliased)
		ticks.Get().Value = 100
		ticks.Release()
		if scoped.Value != 100 {
			t.Errorf("external value: %d, want 100", scoped.Value)
		}
	})

	t.Run("inner entry untouched by shadowing", func(t *testing.T) {
		ticks := GetResource[TickCount](inner)
		defer ticks.Release()
		if ticks.Get().Value != 1 {
			t.Errorf("inner TickCount.Value = %d, want 1", ticks.Get().Value)
		}
	})

	t.Run("conflict on alias entry is reported", func(t *testing.T) {
		mut := GetResourceMut[TickCount](aliased)
		defer mut.Release()
		if _, err := TryGetResource[TickCount](aliased); err == nil {
			t.Error("shared borrow of conflicted alias entry succeeded")
		}
	})

	t.Run("absent everywhere is NotFound", func(t *testing.T) {
		type never struct{}
		_, err := TryGetResource[never](aliased)
		var notFound NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("error: %v, want NotFoundError", err)
		}
	})
}

// TestResourceAccessViews tests typed lookups through the dynamic view
func TestResourceAccessViews(t *testing.T) {
	inner := Factory.NewResources()
	InsertResource(inner, Gravity{Y: -1})

	scoped := TickCount{Value: 5}
	aliased := Factory.NewAliasedResources(inner, AliasOf(&scoped))

	views := []struct {
		name   string
		access ResourceAccess
	}{
		{"owned", inner},
		{"aliased", aliased},
		{"nested view", ResourceAccess(aliased)},
	}

	for _, v := range views {
		t.Run(v.name, func(t *testing.T) {
			gravity, err := TryGetResource[Gravity](v.access)
			if err != nil {
				t.Fatalf("lookup through %s view failed: %v", v.name, err)
			}
			defer gravity.Release()
			if gravity.Get().Y != -1 {
				t.Errorf("Gravity.Y = %v, want -1", gravity.Get().Y)
			}
		})
	}
}
