/*
Package depot provides the state-access kernel for Entity-Component-System (ECS) runtimes.

Depot manages singleton "resources" shared by every system during a run. Access is
borrow checked at run time through atomic flags, so conflicting access fails
immediately instead of corrupting state. On top of the containers sits an engine that
runs systems in order and routes the events they emit to registered handlers.

Core Concepts:

  - Resource: A singleton value of a given type, borrow checked per type.
  - Cell: The interior-mutability primitive backing resource access.
  - System: A unit of per-tick logic run against resources and the world.
  - Handler: Logic invoked with a batch of events of a matching type.
  - Context: A per-run scratch area systems emit events into; pooled across runs.

Basic Usage:

	// Create the resource container
	resources := depot.Factory.NewResources()
	depot.InsertResource(resources, Score{})

	// Register systems and handlers once at startup
	engine := depot.Factory.NewEngine()
	engine.RegisterSystem(depot.SystemFunc(func(
		access depot.ResourceAccess, world depot.World, eng *depot.Engine, ctx *depot.Context,
	) {
		depot.EmitEvent(ctx, PointsScored{Amount: 10})
	}))
	depot.RegisterHandler(engine, func(
		events []PointsScored, access depot.ResourceAccess, world depot.World,
		eng *depot.Engine, ctx *depot.Context,
	) {
		score := depot.GetResourceMut[Score](access)
		defer score.Release()
		for _, e := range events {
			score.Get().Total += e.Amount
		}
	})

	// Run once per tick
	engine.Execute(resources, world)

Depot is the scheduling and resource kernel for the Bappa Framework but also works
as a standalone library. Component storage and query iteration live in their own
libraries; depot passes the world through without examining it.
*/
package depot
