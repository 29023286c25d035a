package depot

import "reflect"

type factory struct{}

var Factory factory

func (f factory) NewEngine() *Engine {
	return newEngine()
}

func (f factory) NewResources() *OwnedResources {
	return newOwnedResources()
}

func (f factory) NewAliasedResources(inner *OwnedResources, aliases ...Alias) *AliasedResources {
	return newAliasedResources(inner, aliases...)
}

func (f factory) NewIndexAllocator() *IndexAllocator {
	return &IndexAllocator{}
}

func FactoryNewCell[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

func FactoryNewErasedBuffer[T any]() *ErasedBuffer {
	rt := reflect.TypeFor[T]()
	return &ErasedBuffer{
		elemSize: rt.Size(),
		elemType: rt,
	}
}
