package env

import "sync/atomic"

// box is a copy-on-write cell: SubEnv hands out more references to the same
// box (marking it shared), and the next write through any of those
// references clones the value before mutating it. This gives "cheap clone,
// clone-on-first-write" semantics (§3 Lifecycle) without deep-copying on
// every sub_env() call.
//
// The shared flag is a one-way latch: once any reference has been shared,
// every holder re-clones on its next write, even after the other holders
// have gone out of scope. That is a conservative approximation of true
// refcounting, traded for simplicity — still cheap, never incorrect.
type box[T any] struct {
	val    T
	shared *atomic.Bool
}

func newBox[T any](v T) *box[T] {
	return &box[T]{val: v, shared: new(atomic.Bool)}
}

// fork returns a new reference to the same value, marking it shared.
func (b *box[T]) fork() *box[T] {
	b.shared.Store(true)
	return &box[T]{val: b.val, shared: b.shared}
}

// forWrite returns a box safe to mutate in place: itself, if not shared, or
// a fresh exclusively-owned clone otherwise.
func (b *box[T]) forWrite(clone func(T) T) *box[T] {
	if b.shared.Load() {
		return newBox(clone(b.val))
	}
	return b
}
