package reactive

// Wrap is the generic reactive(x) entry point for the dynamic escape-hatch
// family (§9): it dispatches on x's concrete Go type and returns the
// matching wrapper. Already-wrapped input of any flavor is returned
// unchanged (§8 property: reactive(reactive(x)) === reactive(x)), and a
// value previously passed to MarkRaw is returned unchanged too.
//
// Typed callers that already know their shape should prefer the direct
// constructors (NewObject, NewArray, NewReactive, NewMap, NewSet) instead —
// Wrap exists for code that only has an any in hand.
func Wrap(x any) any {
	if IsProxy(x) {
		return x
	}

	switch t := x.(type) {
	case map[string]any:
		if isSkipped(t) {
			return x
		}
		return NewObject(t)
	case []any:
		if isSkipped(t) {
			return x
		}
		return NewArray(t)
	default:
		return x
	}
}

// Readonly builds a readonly view over x. x may be a raw map[string]any/
// []any (wrapped first) or an already-reactive Object/Array[any] — wrapping
// a mutable reactive proxy produces a readonly proxy for which IsReactive
// reports true (§9 open question), while wrapping a raw value produces a
// readonly proxy for which IsReactive reports false. Typed *Reactive[T]/
// *Map[K,V]/*Set[T] values pass through unchanged — use
// ReadonlyReactive/ReadonlyMap/ReadonlySet directly for those, since Go
// generics can't let a single function dispatch on their instantiated type.
func Readonly(x any) any {
	wasReactive := IsReactive(x)

	switch v := Wrap(x).(type) {
	case *Object:
		ro := ReadonlyObject(v)
		ro.sourceReactive = wasReactive
		return ro
	case *Array[any]:
		ro := ReadonlyArray(v)
		ro.sourceReactive = wasReactive
		return ro
	default:
		return v
	}
}
