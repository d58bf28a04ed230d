/*
Package builder compiles a model definition into a runnable instance tree.
It acts as the bridge between the declarative specification graph (the 'def'
package) and the executable instance hierarchy (the 'instance' package).

The build is a deterministic, single pass over a private deep copy of the
definition tree:

 1. Connector insertion: every connection carrying a backup gets a hidden
    two-input merge leaf, so primary-vs-backup selection needs no special
    casing anywhere else.

 2. Completeness check: every leaf parameter must have exactly one bound
    source — internal connection, external connection, or declared default.
    The failure report names every still-unbound parameter, never just the
    first. This is the only validation gate inside the build; later passes
    assume an internally consistent definition and abort immediately on an
    unresolvable path or datum.

 3. Variable allocation: one storage object per declared leaf variable — a
    scalar cell for dimension-less datums, a time-indexed array sized by the
    Cartesian product of the non-time dimensions, or a plain array when
    there is no time axis.

 4. Connection expansion and parameter binding: composite-level endpoints
    are resolved through re-exports down to leaf bindings; every destination
    of a fan-out aliases the same source storage object.

 5. Backup binding: each synthesized connector's second input is wired to
    its backup's external value.

 6. Bottom-up instantiation: leaves first, then composites wrapping their
    already-built children in dependency-sorted order, with effective
    validity bounds propagated into components that did not declare their
    own.

Either the build yields a fully-bound, runnable instance, or no instance is
produced; there is no partial commit.
*/
package builder
