/*
Package instance holds the runnable counterpart of a model definition: the
leaf/composite instance tree the builder produces, the step context handed to
component hooks, and the run loop that advances clocks and invokes step
functions in dependency order.

The tree is immutable in shape after build; only the leaf storage contents
change as the clock advances. A leaf's variable storage has exactly one
writer (the leaf's own step hook) and any number of readers (every parameter
binding that aliases it).
*/
package instance
