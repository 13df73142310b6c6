package history

import (
	"reflect"
	"testing"

	"github.com/odvcencio/furry-ref/keypath"
)

type item struct {
	ID    string
	Value int
}

var itemValue = keypath.Field(func(i *item) *int { return &i.Value })

func TestCollection_SwapAndSafeElem(t *testing.T) {
	array := []item{{ID: "a"}, {ID: "b"}}
	r := New(array)
	items := Root(r)

	Swap(items, 0, 1)
	ThenOptional(SafeElem(items, 0), itemValue).Set(ptr(1))

	array = []item{{ID: "b", Value: 1}, {ID: "a"}}
	assertItems(t, r, array)

	r.Undo()
	array[0].Value = 0
	assertItems(t, r, array)

	r.Undo()
	array[0], array[1] = array[1], array[0]
	assertItems(t, r, array)

	r.Redo()
	array[0], array[1] = array[1], array[0]
	assertItems(t, r, array)

	ThenOptional(SafeElem(items, 0), itemValue).Set(ptr(2))
	r.Redo().Redo()
	array[0].Value = 2
	assertItems(t, r, array)
}

func TestCollection_SafeElemOutOfRange(t *testing.T) {
	r := New([]item{{ID: "a"}})
	items := Root(r)

	ThenOptional(SafeElem(items, 5), itemValue).Set(ptr(9))
	assertItems(t, r, []item{{ID: "a"}})
	if r.Len() != 1 {
		t.Fatalf("expected no-op mutation to be recorded, got %d", r.Len())
	}

	r.Undo()
	assertItems(t, r, []item{{ID: "a"}})
	if r.Position() != 0 {
		t.Fatalf("expected position 0 after undoing no-op, got %d", r.Position())
	}
}

func TestCollection_Elem(t *testing.T) {
	r := New([]int{1, 2, 3})
	Elem(Root(r), 1).Modify(func(v *int) { *v *= 10 })
	if !reflect.DeepEqual(r.Value(), []int{1, 20, 3}) {
		t.Fatalf("unexpected slice %v", r.Value())
	}
	r.Undo()
	if !reflect.DeepEqual(r.Value(), []int{1, 2, 3}) {
		t.Fatalf("unexpected slice after undo %v", r.Value())
	}
}

func TestCollection_SwapDoesNotAliasPublishedValues(t *testing.T) {
	r := New([]int{1, 2})
	before := r.Value()
	Swap(Root(r), 0, 1)

	if !reflect.DeepEqual(before, []int{1, 2}) {
		t.Fatalf("expected earlier value untouched, got %v", before)
	}
	Swap(Root(r), 0, 9)
	if !reflect.DeepEqual(r.Value(), []int{2, 1}) {
		t.Fatalf("expected out-of-range swap to be a no-op, got %v", r.Value())
	}
}

func TestCollection_AppendInsertRemove(t *testing.T) {
	type doc struct {
		Tags []string
	}
	r := New(doc{Tags: []string{"a"}})
	tags := At(r, keypath.Field(func(d *doc) *[]string { return &d.Tags }))

	Append(tags, "b", "c")
	Insert(tags, 0, "z")
	RemoveAt(tags, 2)
	RemoveAt(tags, 10)

	if !reflect.DeepEqual(tags.Read(), []string{"z", "a", "c"}) {
		t.Fatalf("unexpected tags %v", tags.Read())
	}

	r.Undo()
	r.Undo()
	if !reflect.DeepEqual(tags.Read(), []string{"z", "a", "b", "c"}) {
		t.Fatalf("unexpected tags after undoing removes %v", tags.Read())
	}
	r.Undo()
	if !reflect.DeepEqual(tags.Read(), []string{"a", "b", "c"}) {
		t.Fatalf("unexpected tags after undoing insert %v", tags.Read())
	}
	r.Undo()
	if !reflect.DeepEqual(tags.Read(), []string{"a"}) {
		t.Fatalf("unexpected tags after undoing append %v", tags.Read())
	}
	r.Restore()
	if !reflect.DeepEqual(tags.Read(), []string{"z", "a", "c"}) {
		t.Fatalf("unexpected tags after restore %v", tags.Read())
	}
}

func ptr[T any](v T) *T {
	return &v
}

func assertItems(t *testing.T, r *Resettable[[]item], want []item) {
	t.Helper()
	if got := r.Value(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
