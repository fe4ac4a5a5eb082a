package ecs

import "github.com/milk9111/robotgrabber/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	v := value
	return w.AddComponent(e, handle.Kind(), &v)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.Kind())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.Kind())
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	ptr, ok := GetPtr(w, e, handle)
	if !ok {
		return zero, false
	}
	return *ptr, true
}

// GetPtr returns the stored component so callers can mutate it in place.
func GetPtr[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	value, ok := w.GetComponent(e, handle.Kind())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok || cast == nil {
		return nil, false
	}
	return cast, true
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, value *T)) {
	for _, e := range w.Query(kind) {
		value, ok := w.GetComponent(e, kind)
		if !ok {
			continue
		}
		if cast, ok := value.(*T); ok && cast != nil {
			fn(e, cast)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	for _, e := range w.Query(ka, kb) {
		va, _ := w.GetComponent(e, ka)
		vb, _ := w.GetComponent(e, kb)
		a, okA := va.(*A)
		b, okB := vb.(*B)
		if okA && okB && a != nil && b != nil {
			fn(e, a, b)
		}
	}
}
