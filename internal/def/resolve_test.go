package def

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveFixture builds a two-level tree:
//
//	outer
//	  inner
//	    a (var out, param in)
//	    b (var out, param in)
//	  c (var out, param in)
//
// inner re-exports "signal" -> a.out and fans "feed" out to a.in + b.in;
// outer re-exports "signal" -> inner.signal and fans "feed" out to
// inner.feed + c.in.
func resolveFixture(t *testing.T) *ComponentDef {
	t.Helper()

	newLeaf := func(name string) *ComponentDef {
		leaf := NewLeaf(name, ComponentKind{Module: "t", Name: "k"})
		require.NoError(t, leaf.AddVariable(&VariableDef{Name: "out"}))
		require.NoError(t, leaf.AddParameter(&ParameterDef{Name: "in"}))
		return leaf
	}

	inner := NewComposite("inner")
	require.NoError(t, inner.AddChild(newLeaf("a")))
	require.NoError(t, inner.AddChild(newLeaf("b")))
	require.NoError(t, inner.AddVariable(&VariableDef{
		Name: "signal",
		Refs: []DatumRef{{Child: "a", Datum: "out"}},
	}))
	require.NoError(t, inner.AddParameter(&ParameterDef{
		Name: "feed",
		Refs: []DatumRef{{Child: "a", Datum: "in"}, {Child: "b", Datum: "in"}},
	}))

	outer := NewComposite("outer")
	require.NoError(t, outer.AddChild(inner))
	require.NoError(t, outer.AddChild(newLeaf("c")))
	require.NoError(t, outer.AddVariable(&VariableDef{
		Name: "signal",
		Refs: []DatumRef{{Child: "inner", Datum: "signal"}},
	}))
	require.NoError(t, outer.AddParameter(&ParameterDef{
		Name: "feed",
		Refs: []DatumRef{{Child: "inner", Datum: "feed"}, {Child: "c", Datum: "in"}},
	}))
	return outer
}

func TestResolveDatum_LeafBaseCase(t *testing.T) {
	t.Parallel()

	leaf := NewLeaf("a", ComponentKind{Module: "t", Name: "k"})
	require.NoError(t, leaf.AddVariable(&VariableDef{Name: "out"}))
	require.NoError(t, leaf.AddParameter(&ParameterDef{Name: "in"}))

	binds, err := ResolveDatum(leaf, "out", DatumVariable)
	require.NoError(t, err)
	assert.Equal(t, []Binding{{Name: "out"}}, binds)

	binds, err = ResolveDatum(leaf, "in", DatumParameter)
	require.NoError(t, err)
	assert.Equal(t, []Binding{{Name: "in"}}, binds)

	_, err = ResolveDatum(leaf, "missing", DatumVariable)
	var uerr *UnresolvableReferenceError
	assert.ErrorAs(t, err, &uerr)
}

func TestResolveDatum_VariableThroughNestedReexports(t *testing.T) {
	t.Parallel()

	outer := resolveFixture(t)

	binds, err := ResolveDatum(outer, "signal", DatumVariable)
	require.NoError(t, err)

	want := []Binding{{Path: Path{"inner", "a"}, Name: "out"}}
	assert.Empty(t, cmp.Diff(want, binds))
}

func TestResolveDatum_ParameterFanOut(t *testing.T) {
	t.Parallel()

	outer := resolveFixture(t)

	binds, err := ResolveDatum(outer, "feed", DatumParameter)
	require.NoError(t, err)

	// Three leaf slots, in declaration order, each with the child names
	// prepended level by level.
	want := []Binding{
		{Path: Path{"inner", "a"}, Name: "in"},
		{Path: Path{"inner", "b"}, Name: "in"},
		{Path: Path{"c"}, Name: "in"},
	}
	assert.Empty(t, cmp.Diff(want, binds))
}

func TestResolveDatum_Errors(t *testing.T) {
	t.Parallel()

	t.Run("variable re-export without a target", func(t *testing.T) {
		comp := NewComposite("grp")
		require.NoError(t, comp.AddVariable(&VariableDef{Name: "out"}))

		_, err := ResolveDatum(comp, "out", DatumVariable)
		var serr *StructuralError
		assert.ErrorAs(t, err, &serr)
	})

	t.Run("parameter re-export without targets", func(t *testing.T) {
		comp := NewComposite("grp")
		require.NoError(t, comp.AddParameter(&ParameterDef{Name: "in"}))

		_, err := ResolveDatum(comp, "in", DatumParameter)
		var serr *StructuralError
		assert.ErrorAs(t, err, &serr)
	})

	t.Run("ref naming a missing child", func(t *testing.T) {
		comp := NewComposite("grp")
		require.NoError(t, comp.AddVariable(&VariableDef{
			Name: "out",
			Refs: []DatumRef{{Child: "ghost", Datum: "x"}},
		}))

		_, err := ResolveDatum(comp, "out", DatumVariable)
		var uerr *UnresolvableReferenceError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, Path{"ghost"}, uerr.Path)
	})

	t.Run("deep failure reports the absolute path", func(t *testing.T) {
		inner := NewComposite("inner")
		leaf := NewLeaf("a", ComponentKind{Module: "t", Name: "k"})
		require.NoError(t, inner.AddChild(leaf))
		require.NoError(t, inner.AddVariable(&VariableDef{
			Name: "signal",
			Refs: []DatumRef{{Child: "a", Datum: "missing"}},
		}))

		outer := NewComposite("outer")
		require.NoError(t, outer.AddChild(inner))
		require.NoError(t, outer.AddVariable(&VariableDef{
			Name: "signal",
			Refs: []DatumRef{{Child: "inner", Datum: "signal"}},
		}))

		_, err := ResolveDatum(outer, "signal", DatumVariable)
		var uerr *UnresolvableReferenceError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, Path{"inner", "a"}, uerr.Path)
		assert.Equal(t, "missing", uerr.Datum)
	})
}
