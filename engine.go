package depot

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

// maxEventTypes caps the number of distinct event types an engine can route.
// It tracks the width of the built mask so every assigned bit is markable on
// the occupied masks.
const maxEventTypes = mask.MaxBits

// erasedHandler dispatches a type-erased event batch to one registered
// handler. The closure restores the element type it was registered with.
type erasedHandler func(batch *ErasedBuffer, access ResourceAccess, world World, engine *Engine, ctx *Context)

// Engine runs systems in registration order and routes the events they emit
// to handlers, depth-first. One Execute call drives everything from a single
// goroutine; the context pool alone is safe for concurrent checkout, so an
// embedding application may run independent engines or share the resource
// containers across goroutines, relying on the borrow flags for safety.
//
// Register all systems and handlers before the first Execute call.
type Engine struct {
	systems  []System
	handlers map[reflect.Type][]erasedHandler

	// handled marks event types with at least one handler.
	handled mask.Mask

	bitsMu    sync.Mutex
	eventBits map[reflect.Type]uint32
	nextBit   uint32

	pool sync.Pool
}

func newEngine() *Engine {
	e := &Engine{
		handlers:  make(map[reflect.Type][]erasedHandler),
		eventBits: make(map[reflect.Type]uint32),
	}
	e.pool.New = func() any {
		return newContext(e)
	}
	return e
}

// RegisterSystem appends a system to the run order.
func (e *Engine) RegisterSystem(system System) {
	e.systems = append(e.systems, system)
}

// NumSystems returns the number of registered systems.
func (e *Engine) NumSystems() int {
	return len(e.systems)
}

// RegisterHandler appends a handler for events of type E. Handlers for one
// type run in registration order and always receive the full batch a single
// context queued for that type.
func RegisterHandler[E any](e *Engine, handler HandlerFunc[E]) {
	rt := reflect.TypeFor[E]()
	e.handled.Mark(e.eventBit(rt))
	e.handlers[rt] = append(e.handlers[rt], func(
		batch *ErasedBuffer, access ResourceAccess, world World, engine *Engine, ctx *Context,
	) {
		handler(BufferValues[E](batch), access, world, engine, ctx)
	})
}

// eventBit returns the mask bit for an event type, assigning one on first
// sight. Safe for concurrent callers since types may first appear during
// emission.
func (e *Engine) eventBit(rt reflect.Type) uint32 {
	e.bitsMu.Lock()
	defer e.bitsMu.Unlock()
	if bit, ok := e.eventBits[rt]; ok {
		return bit
	}
	if e.nextBit >= maxEventTypes {
		panic(fmt.Sprintf("too many event types (max %d): %v", maxEventTypes, rt))
	}
	bit := e.nextBit
	e.nextBit++
	e.eventBits[rt] = bit
	return bit
}

// Execute runs every registered system once, in order. After each system
// returns, the events it queued are drained: every handler registered for a
// queued type receives the batch along with a fresh context, and events the
// handler emits are fully drained before the outer drain proceeds.
func (e *Engine) Execute(access ResourceAccess, world World) {
	for _, system := range e.systems {
		ctx := e.checkout()
		system.Run(access, world, e, ctx)
		e.drain(ctx, access, world)
		e.release(ctx)
	}
}

// TriggerEvent dispatches a single event immediately, outside any system
// run, reusing the pooled-context drain path.
func TriggerEvent[E any](e *Engine, access ResourceAccess, world World, event E) {
	ctx := e.checkout()
	EmitEvent(ctx, event)
	e.drain(ctx, access, world)
	e.release(ctx)
}

func (e *Engine) drain(ctx *Context, access ResourceAccess, world World) {
	if ctx.occupied == (mask.Mask{}) {
		return
	}
	if !e.handled.ContainsAny(ctx.occupied) {
		return
	}
	// Snapshot the occupied types: handler emissions land in child
	// contexts, never back in ctx.
	pending := iter_util.Collect(ctx.pendingTypes())
	for _, rt := range pending {
		batch := ctx.buffers[rt]
		for _, handler := range e.handlers[rt] {
			child := e.checkout()
			handler(batch, access, world, e, child)
			e.drain(child, access, world)
			e.release(child)
		}
		batch.Clear()
		ctx.occupied.Unmark(e.eventBit(rt))
	}
}

func (e *Engine) checkout() *Context {
	return e.pool.Get().(*Context)
}

func (e *Engine) release(ctx *Context) {
	ctx.reset()
	e.pool.Put(ctx)
}
