package depot

import "reflect"

// World is the externally defined store of entities and components. Depot
// passes it through to systems and handlers without examining it.
type World any

// ResourceAccess is a dynamic view over a resource container. Both
// *OwnedResources and *AliasedResources satisfy it, so callers invoked
// through non-generic interfaces can still perform typed lookups via the
// package-level accessor functions.
type ResourceAccess interface {
	lookup(rt reflect.Type) *resourceEntry
}

// System is a unit of per-tick logic. Systems are run in registration order,
// one at a time, by Engine.Execute. Events emitted into ctx are dispatched
// after the system returns.
type System interface {
	Run(access ResourceAccess, world World, engine *Engine, ctx *Context)
}

// SystemFunc adapts an ordinary function to the System interface.
type SystemFunc func(access ResourceAccess, world World, engine *Engine, ctx *Context)

func (f SystemFunc) Run(access ResourceAccess, world World, engine *Engine, ctx *Context) {
	f(access, world, engine, ctx)
}

// HandlerFunc consumes a batch of events of type E in emission order. Events
// it emits into ctx are fully dispatched before the enclosing drain proceeds.
type HandlerFunc[E any] func(events []E, access ResourceAccess, world World, engine *Engine, ctx *Context)
