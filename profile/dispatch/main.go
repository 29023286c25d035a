// Profiling:
// go build ./profile/dispatch
// go tool pprof -http=":8000" -nodefraction=0.001 ./dispatch mem.pprof

package main

import (
	"github.com/TheBitDrifter/depot"
	"github.com/pkg/profile"
)

type frameTime struct {
	Tick  uint64
	Delta float64
}

type impact struct {
	Source depot.Entity
	Amount int
}

type knockback struct {
	Target depot.Entity
}

func main() {
	ticks := 100000
	events := 128
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(ticks, events)
	p.Stop()
}

func run(ticks, events int) {
	engine := depot.Factory.NewEngine()
	resources := depot.Factory.NewResources()
	depot.InsertResource(resources, frameTime{Delta: 1.0 / 60.0})

	engine.RegisterSystem(depot.SystemFunc(func(
		access depot.ResourceAccess, world depot.World, eng *depot.Engine, ctx *depot.Context,
	) {
		time := depot.GetResourceMut[frameTime](access)
		time.Get().Tick++
		time.Release()

		for i := 0; i < events; i++ {
			depot.EmitEvent(ctx, impact{Amount: i})
		}
	}))

	depot.RegisterHandler(engine, func(
		batch []impact, access depot.ResourceAccess, world depot.World,
		eng *depot.Engine, ctx *depot.Context,
	) {
		for _, e := range batch {
			if e.Amount%16 == 0 {
				depot.EmitEvent(ctx, knockback{Target: e.Source})
			}
		}
	})
	depot.RegisterHandler(engine, func(
		batch []knockback, access depot.ResourceAccess, world depot.World,
		eng *depot.Engine, ctx *depot.Context,
	) {
		_ = batch
	})

	for i := 0; i < ticks; i++ {
		engine.Execute(resources, nil)
	}
}
