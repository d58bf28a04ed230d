package marginal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/registry"
	"github.com/vk/stepmill/internal/schedule"
	"github.com/vk/stepmill/modules/linear"
)

// gainModel wires a single y = 2x stage fed by the external value "xval".
func gainModel(t *testing.T) (*def.ModelDefinition, *registry.Registry) {
	t.Helper()

	reg := registry.New()
	(&linear.Module{}).Register(reg)

	sched, err := schedule.NewFixed(2000, 5, 2020)
	require.NoError(t, err)
	m := def.NewModel("gain", sched)

	lin, err := reg.LeafDef("lin", def.ComponentKind{Module: "core", Name: "linear"})
	require.NoError(t, err)
	require.NoError(t, m.Root().AddChild(lin))

	require.NoError(t, m.Root().SetExternalValue("xval", def.ScalarOf(5)))
	require.NoError(t, m.Root().SetExternalValue("g", def.ScalarOf(2)))
	require.NoError(t, m.Root().ConnectExternal(def.Path{"lin"}, "x", "xval"))
	require.NoError(t, m.Root().ConnectExternal(def.Path{"lin"}, "gain", "g"))
	return m, reg
}

func TestMarginal_FiniteDifference(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base, reg := gainModel(t)
	mm := New(base, 1.0)

	// The modified side is a duplicate, never a re-declaration; perturbing it
	// must leave the base untouched.
	require.NoError(t, mm.Modified.Root().SetExternalValue("xval", def.ScalarOf(6)))

	inst, err := mm.Build(ctx, reg)
	require.NoError(t, err)
	require.NoError(t, inst.Run(ctx, base.Schedule().Len()))

	// y = 2x, so dy/dx == 2 at every timestep.
	sens, err := inst.Value(def.Path{"lin"}, "y")
	require.NoError(t, err)
	require.Len(t, sens.Data, 5)
	for pos, row := range sens.Data {
		assert.InDelta(t, 2.0, row[0], 1e-12, "position %d", pos)
	}

	// The base tree still computes the unperturbed values.
	baseY, err := inst.Base().Value(def.Path{"lin"}, "y")
	require.NoError(t, err)
	assert.Equal(t, 10.0, baseY.Data[0][0])

	modY, err := inst.Modified().Value(def.Path{"lin"}, "y")
	require.NoError(t, err)
	assert.Equal(t, 12.0, modY.Data[0][0])
}

func TestMarginal_ZeroDeltaIsRejected(t *testing.T) {
	t.Parallel()

	base, reg := gainModel(t)
	mm := New(base, 0)

	_, err := mm.Build(context.Background(), reg)
	assert.ErrorContains(t, err, "delta must be non-zero")
}

func TestMarginal_StructuralPerturbation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base, reg := gainModel(t)
	mm := New(base, 0.5)

	// Changing the gain on the modified copy: y moves from 2x to 3x, so the
	// finite difference is x * (3-2) / delta = 5 / 0.5 = 10.
	require.NoError(t, mm.Modified.Root().SetExternalValue("g", def.ScalarOf(3)))

	inst, err := mm.Build(ctx, reg)
	require.NoError(t, err)
	require.NoError(t, inst.Run(ctx, base.Schedule().Len()))

	sens, err := inst.Value(def.Path{"lin"}, "y")
	require.NoError(t, err)
	for pos, row := range sens.Data {
		assert.InDelta(t, 10.0, row[0], 1e-12, "position %d", pos)
	}
}
