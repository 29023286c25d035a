package depot

import (
	"iter"
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// Context is the per-run scratch area a system or handler emits events into.
// Each event type gets one ErasedBuffer; the occupied mask marks buckets
// with queued values so empty contexts are skipped cheaply. Contexts are
// pooled by the engine and must not be retained after the run that supplied
// them.
type Context struct {
	engine   *Engine
	buffers  map[reflect.Type]*ErasedBuffer
	occupied mask.Mask
}

func newContext(engine *Engine) *Context {
	return &Context{
		engine:  engine,
		buffers: make(map[reflect.Type]*ErasedBuffer),
	}
}

// EmitEvent queues one event for dispatch after the current system or
// handler returns.
func EmitEvent[E any](ctx *Context, event E) {
	BufferPush(contextBuffer[E](ctx), event)
}

// EmitEvents queues a batch of events in order.
func EmitEvents[E any](ctx *Context, events []E) {
	if len(events) == 0 {
		return
	}
	BufferExtend(contextBuffer[E](ctx), events)
}

func contextBuffer[E any](ctx *Context) *ErasedBuffer {
	rt := reflect.TypeFor[E]()
	buf, ok := ctx.buffers[rt]
	if !ok {
		buf = FactoryNewErasedBuffer[E]()
		ctx.buffers[rt] = buf
	}
	ctx.occupied.Mark(ctx.engine.eventBit(rt))
	return buf
}

// pendingTypes yields the event types with queued values, in no particular
// order.
func (ctx *Context) pendingTypes() iter.Seq[reflect.Type] {
	return func(yield func(reflect.Type) bool) {
		for rt, buf := range ctx.buffers {
			if buf.Len() == 0 {
				continue
			}
			if !yield(rt) {
				return
			}
		}
	}
}

// reset clears every bucket for reuse. Buffer memory is kept.
func (ctx *Context) reset() {
	for _, buf := range ctx.buffers {
		buf.Clear()
	}
	ctx.occupied = mask.Mask{}
}
