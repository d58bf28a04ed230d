/*
Package def holds the declarative specification graph a user builds up before
compilation: leaf and composite component definitions, connections, external
parameter values, and the model definition that roots the tree.

Definitions are freely mutable until they are handed to the builder, which
always operates on a private deep copy (Copy), so edits made after a build
never affect an already-built instance.

The leaf/composite distinction is a tagged variant on ComponentDef, not a
type hierarchy: composites carry children, connections, and an external
parameter table; leaves carry a component-kind identifier that locates their
init/step logic in the registry.

ResolveDatum implements path resolution: given a composite-level datum name
it recursively expands re-export entries down to the ordered list of leaf
(path, name) bindings the datum actually denotes. A variable re-export has
exactly one target; a parameter re-export may fan out to several children.
*/
package def
