package builder

import (
	"github.com/vk/stepmill/internal/def"
)

// checkComplete enumerates every leaf parameter with no bound source —
// internal connection, external connection, or declared default — and fails
// with the full list if any exist.
func (b *builder) checkComplete() error {
	bound := make(map[string]bool)

	err := walkComposites(nil, b.model.Root(), func(prefix def.Path, c *def.ComponentDef) error {
		for _, conn := range c.InternalConnections() {
			binds, err := resolveEndpoint(c, conn.DstPath, conn.DstName, def.DatumParameter)
			if err != nil {
				return prefixUnresolvable(err, prefix)
			}
			for _, bnd := range binds {
				bound[bindKey(prefix.Join(bnd.Path), bnd.Name)] = true
			}
		}
		for _, conn := range c.ExternalConnections() {
			binds, err := resolveEndpoint(c, conn.DstPath, conn.DstName, def.DatumParameter)
			if err != nil {
				return prefixUnresolvable(err, prefix)
			}
			for _, bnd := range binds {
				bound[bindKey(prefix.Join(bnd.Path), bnd.Name)] = true
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var unbound []def.Binding
	seen := make(map[string]bool)
	for _, entry := range b.model.Leaves() {
		for _, p := range entry.Def.Parameters() {
			key := bindKey(entry.Path, p.Name)
			if bound[key] || p.Default != nil || seen[key] {
				continue
			}
			seen[key] = true
			unbound = append(unbound, def.Binding{Path: entry.Path, Name: p.Name})
		}
	}
	if len(unbound) > 0 {
		return &def.IncompleteModelError{Unbound: unbound}
	}
	return nil
}

func prefixUnresolvable(err error, prefix def.Path) error {
	if u, ok := err.(*def.UnresolvableReferenceError); ok {
		return &def.UnresolvableReferenceError{Path: prefix.Join(u.Path), Datum: u.Datum}
	}
	return err
}
