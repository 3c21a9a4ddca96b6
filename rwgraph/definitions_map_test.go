package rwgraph

import (
	"testing"

	"github.com/dg-go/memssa/offset"
)

func valuesEqual(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	seen := make(map[string]bool, len(got))
	for _, g := range got {
		seen[g] = true
	}
	for _, w := range want {
		if !seen[w] {
			t.Fatalf("got %v missing %q", got, w)
		}
	}
}

func TestDefinitionsMapUpdateStrong(t *testing.T) {
	m := NewDefinitionsMap[string]()
	obj := &Object{Name: "t"}

	m.Update(Site(obj, 0, 4), "n1")
	valuesEqual(t, m.Get(Site(obj, 0, 4)), "n1")

	// A later strong update on an overlapping sub-range should kill n1
	// entirely for the overlapped bytes.
	m.Update(Site(obj, 2, 2), "n2")
	valuesEqual(t, m.Get(Site(obj, 0, 2)), "n1")
	valuesEqual(t, m.Get(Site(obj, 2, 2)), "n2")
	valuesEqual(t, m.Get(Site(obj, 0, 4)), "n1", "n2")
}

func TestDefinitionsMapUpdateSplitsNeighbor(t *testing.T) {
	m := NewDefinitionsMap[string]()
	obj := &Object{Name: "t"}

	m.Update(Site(obj, 0, 8), "n1")
	m.Update(Site(obj, 2, 2), "n2")

	valuesEqual(t, m.Get(Site(obj, 0, 2)), "n1")
	valuesEqual(t, m.Get(Site(obj, 2, 2)), "n2")
	valuesEqual(t, m.Get(Site(obj, 4, 4)), "n1")
}

func TestDefinitionsMapAddWeak(t *testing.T) {
	m := NewDefinitionsMap[string]()
	obj := &Object{Name: "t"}

	m.Update(Site(obj, 0, 4), "n1")
	m.Add(Site(obj, 0, 4), "n2")
	valuesEqual(t, m.Get(Site(obj, 0, 4)), "n1", "n2")
}

func TestDefinitionsMapAddAll(t *testing.T) {
	m := NewDefinitionsMap[string]()
	t1 := &Object{Name: "t1"}
	t2 := &Object{Name: "t2"}

	m.Update(Site(t1, 0, 4), "n1")
	m.Update(Site(t2, 0, 4), "n2")
	m.AddAll("nU")

	valuesEqual(t, m.Get(Site(t1, 0, 4)), "n1", "nU")
	valuesEqual(t, m.Get(Site(t2, 0, 4)), "n2", "nU")
}

func TestDefinitionsMapUndefinedIntervals(t *testing.T) {
	m := NewDefinitionsMap[string]()
	obj := &Object{Name: "t"}

	m.Update(Site(obj, 2, 2), "n1")
	got := m.UndefinedIntervals(Site(obj, 0, 8))
	want := []offset.Interval{offset.Make(0, 2), offset.Make(4, 4)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDefinitionsMapDefinesTarget(t *testing.T) {
	m := NewDefinitionsMap[string]()
	obj := &Object{Name: "t"}
	if m.DefinesTarget(obj) {
		t.Fatal("empty map should not define any target")
	}
	m.Update(Site(obj, 0, 4), "n1")
	if !m.DefinesTarget(obj) {
		t.Fatal("map should define t after Update")
	}
}

func TestDefinitionsMapCloneIndependent(t *testing.T) {
	m := NewDefinitionsMap[string]()
	obj := &Object{Name: "t"}
	m.Update(Site(obj, 0, 4), "n1")

	clone := m.Clone()
	clone.Update(Site(obj, 0, 4), "n2")

	valuesEqual(t, m.Get(Site(obj, 0, 4)), "n1")
	valuesEqual(t, clone.Get(Site(obj, 0, 4)), "n2")
}

func TestDefinitionsMapMaxIntervalsPerTargetPanics(t *testing.T) {
	m := NewDefinitionsMap[string]()
	m.MaxIntervalsPerTarget = 1
	obj := &Object{Name: "t"}

	m.Update(Site(obj, 0, 1), "n1")

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic once the interval ceiling is exceeded")
		}
	}()
	m.Update(Site(obj, 4, 1), "n2")
}

func TestDefinitionsMapEachDeterministicOrder(t *testing.T) {
	m := NewDefinitionsMap[string]()
	t1 := &Object{Name: "t1"}
	t2 := &Object{Name: "t2"}

	m.Update(Site(t2, 0, 4), "a")
	m.Update(Site(t1, 0, 4), "b")

	var order []*Object
	m.Each(func(t *Object, iv offset.Interval, values []string) {
		order = append(order, t)
	})
	if len(order) != 2 || order[0] != t2 || order[1] != t1 {
		t.Fatalf("Each should iterate targets in first-insertion order, got %v", order)
	}
}
