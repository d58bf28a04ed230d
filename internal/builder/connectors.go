package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
	"github.com/vk/stepmill/internal/registry"
)

// connectorKind identifies the hidden two-input merge leaf the builder
// synthesizes for every connection that declares a backup. It is owned by
// the builder and never appears in a user registry.
var connectorKind = def.ComponentKind{Module: "builtin", Name: "connector"}

// connectorImpl returns the merge logic: per column, the primary input wins
// whenever it has a value at the current time, otherwise the backup value is
// passed through.
func connectorImpl() *registry.ComponentImpl {
	return &registry.ComponentImpl{
		Step: func(ctx context.Context, sc *instance.StepContext) error {
			cols := sc.Cols("output")
			for col := 0; col < cols; col++ {
				if v, ok := sc.ParamCol("input1", col); ok {
					sc.SetVarCol("output", col, v)
				} else if v, ok := sc.ParamCol("input2", col); ok {
					sc.SetVarCol("output", col, v)
				}
			}
			return nil
		},
	}
}

// insertConnectors rewrites every backup-carrying internal connection into
// three pieces: source -> connector.input1 (keeping the declared offset),
// backup external value -> connector.input2, and connector.output -> the
// original destination. This gives every optionally-backed parameter a
// uniform two-input merge point.
func (b *builder) insertConnectors() error {
	return walkComposites(nil, b.model.Root(), func(prefix def.Path, c *def.ComponentDef) error {
		for _, conn := range c.InternalConnections() {
			if conn.Backup == "" {
				continue
			}

			// The connector's datum shapes mirror the destination
			// parameter, so fan-out columns line up.
			dstBinds, err := resolveEndpoint(c, conn.DstPath, conn.DstName, def.DatumParameter)
			if err != nil {
				return err
			}
			dstLeaf, err := c.Descend(dstBinds[0].Path)
			if err != nil {
				return err
			}
			pdef, ok := dstLeaf.Parameter(dstBinds[0].Name)
			if !ok {
				return &def.UnresolvableReferenceError{Path: prefix.Join(dstBinds[0].Path), Datum: dstBinds[0].Name}
			}

			name := connectorName(c, conn)
			leaf := def.NewLeaf(name, connectorKind)
			varDims := append([]string(nil), pdef.Dims...)
			if err := leaf.AddVariable(&def.VariableDef{Name: "output", Unit: pdef.Unit, Dims: varDims}); err != nil {
				return err
			}
			if err := leaf.AddParameter(&def.ParameterDef{Name: "input1", Unit: pdef.Unit, Dims: varDims}); err != nil {
				return err
			}
			if err := leaf.AddParameter(&def.ParameterDef{Name: "input2", Unit: pdef.Unit, Dims: varDims}); err != nil {
				return err
			}
			if err := c.AddChild(leaf); err != nil {
				return err
			}

			// Primary feed, keeping the original lag and unit policy.
			if err := c.ConnectInternal(&def.InternalConnection{
				SrcPath:     conn.SrcPath,
				SrcName:     conn.SrcName,
				DstPath:     def.Path{name},
				DstName:     "input1",
				IgnoreUnits: conn.IgnoreUnits,
				Offset:      conn.Offset,
			}); err != nil {
				return err
			}

			// Backup feed from the composite's external table.
			if err := c.ConnectExternal(def.Path{name}, "input2", conn.Backup); err != nil {
				return err
			}

			// Redirect the original connection through the merge point.
			conn.SrcPath = def.Path{name}
			conn.SrcName = "output"
			conn.Backup = ""
			conn.Offset = 0
			conn.IgnoreUnits = false
		}
		return nil
	})
}

func connectorName(c *def.ComponentDef, conn *def.InternalConnection) string {
	base := "connector_" + strings.Join(append(append([]string(nil), conn.DstPath...), conn.DstName), "_")
	name := base
	for i := 2; ; i++ {
		if _, taken := c.Child(name); !taken {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}
