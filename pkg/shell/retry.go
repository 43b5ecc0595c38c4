package shell

import "reflect"

// RetryOpts tunes one Retry call.
type RetryOpts[T any] struct {
	// Check decides whether a task result counts as success. Nil means
	// truthiness: any non-zero, non-empty, non-nil result passes.
	Check func(T) bool
	// Wait runs between failed attempts with the 0-based index of the
	// attempt that just failed, typically to sleep or clean up. It is never
	// called after the final attempt.
	Wait func(attempt int)
}

// Retry calls task up to retries times and returns the first result Check
// accepts. When every attempt fails it returns the zero value and a
// *RetryError naming the attempt budget. Retry knows nothing about process
// execution; the task may be any retriable operation.
func Retry[T any](retries int, task func() T, opts RetryOpts[T]) (T, error) {
	check := opts.Check
	if check == nil {
		check = truthy[T]
	}
	for attempt := 0; attempt < retries; attempt++ {
		ret := task()
		if check(ret) {
			return ret, nil
		}
		if attempt < retries-1 && opts.Wait != nil {
			opts.Wait(attempt)
		}
	}
	var zero T
	return zero, &RetryError{Attempts: retries}
}

// truthy mirrors boolean conversion: zero values, nils and empty containers
// fail, everything else passes.
func truthy[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array:
		return rv.Len() > 0
	default:
		return !rv.IsZero()
	}
}
