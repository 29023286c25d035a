package depot

import "reflect"

var (
	_ ResourceAccess = &OwnedResources{}
	_ ResourceAccess = &AliasedResources{}
)

// resourceEntry pairs a stored value with its borrow flag. The value is
// always a pointer to the resource (*T stored as any), whether the container
// owns the resource or merely aliases one owned elsewhere.
type resourceEntry struct {
	flag  borrowFlag
	value any
}

// OwnedResources stores one value per type, each borrow checked at run time.
// Exactly one flag guards each type: many shared borrows or one exclusive
// borrow of that type at a time, process-wide. The flags are atomic, so a
// populated container may be shared across goroutines; Insert itself is not
// synchronized and belongs in startup code.
type OwnedResources struct {
	types map[reflect.Type]*resourceEntry
}

func newOwnedResources() *OwnedResources {
	return &OwnedResources{types: make(map[reflect.Type]*resourceEntry)}
}

func (r *OwnedResources) lookup(rt reflect.Type) *resourceEntry {
	return r.types[rt]
}

// InsertResource stores value under its type, replacing any existing entry
// of the same type along with that entry's borrow state.
func InsertResource[T any](r *OwnedResources, value T) {
	r.types[reflect.TypeFor[T]()] = &resourceEntry{value: &value}
}

// Alias is a temporary entry for a value owned outside the container.
type Alias struct {
	typ   reflect.Type
	entry *resourceEntry
}

// AliasOf wraps an externally owned value for insertion into an
// AliasedResources. The pointer must outlive the AliasedResources it is
// placed in; this is a structural contract, not checked at run time.
func AliasOf[T any](value *T) Alias {
	return Alias{typ: reflect.TypeFor[T](), entry: &resourceEntry{value: value}}
}

// AliasedResources layers a small set of externally owned values over an
// inner OwnedResources. Lookups probe the aliases first and fall through to
// the inner container only when the type is absent from the alias set; the
// inner entries are never copied. Borrow conflicts on an alias entry are
// reported, not resolved against the inner container.
type AliasedResources struct {
	inner   *OwnedResources
	aliases []Alias
}

func newAliasedResources(inner *OwnedResources, aliases ...Alias) *AliasedResources {
	r := &AliasedResources{
		inner:   inner,
		aliases: make([]Alias, 0, 4),
	}
	r.aliases = append(r.aliases, aliases...)
	return r
}

func (r *AliasedResources) lookup(rt reflect.Type) *resourceEntry {
	for i := range r.aliases {
		if r.aliases[i].typ == rt {
			return r.aliases[i].entry
		}
	}
	return r.inner.lookup(rt)
}

// GetResource acquires a shared borrow of the resource of type T, panicking
// if the resource is absent or exclusively borrowed. Release the returned
// guard when done, typically with defer.
func GetResource[T any](access ResourceAccess) Ref[T] {
	ref, err := TryGetResource[T](access)
	if err != nil {
		panic(err)
	}
	return ref
}

// TryGetResource acquires a shared borrow of the resource of type T. It
// fails with NotFoundError if no such resource exists, or
// AlreadyExclusiveError if an exclusive borrow is outstanding.
func TryGetResource[T any](access ResourceAccess) (Ref[T], error) {
	rt := reflect.TypeFor[T]()
	entry := access.lookup(rt)
	if entry == nil {
		return Ref[T]{}, NotFoundError{Type: rt}
	}
	if !entry.flag.acquireShared() {
		return Ref[T]{}, AlreadyExclusiveError{Type: rt}
	}
	return Ref[T]{flag: &entry.flag, value: entry.value.(*T)}, nil
}

// GetResourceMut acquires an exclusive borrow of the resource of type T,
// panicking if the resource is absent or borrowed. Release the returned
// guard when done, typically with defer.
func GetResourceMut[T any](access ResourceAccess) RefMut[T] {
	ref, err := TryGetResourceMut[T](access)
	if err != nil {
		panic(err)
	}
	return ref
}

// TryGetResourceMut acquires an exclusive borrow of the resource of type T.
// It fails with NotFoundError if no such resource exists, or
// AlreadySharedError if any borrow is outstanding.
func TryGetResourceMut[T any](access ResourceAccess) (RefMut[T], error) {
	rt := reflect.TypeFor[T]()
	entry := access.lookup(rt)
	if entry == nil {
		return RefMut[T]{}, NotFoundError{Type: rt}
	}
	if !entry.flag.acquireExclusive() {
		return RefMut[T]{}, AlreadySharedError{Type: rt}
	}
	return RefMut[T]{flag: &entry.flag, value: entry.value.(*T)}, nil
}
