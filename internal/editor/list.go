// Package editor implements indexed CRUD over ordered list fields and the
// text conversions used by multi-line form controls.
//
// All helpers are copy-on-write: the input slice is never modified, so a
// caller can keep the previous value for rollback.
package editor

// Setter is implemented by list items whose string fields can be edited by name.
type Setter[T any] interface {
	*T
	Set(field, value string) bool
}

// InsertFront prepends a zero-valued item. The new item is always at index 0.
func InsertFront[T any](list []T) []T {
	var zero T
	out := make([]T, 0, len(list)+1)
	out = append(out, zero)
	return append(out, list...)
}

// UpdateAt applies fn to the item at index. Out-of-range index is a no-op.
func UpdateAt[T any](list []T, index int, fn func(*T)) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	out := make([]T, len(list))
	copy(out, list)
	fn(&out[index])
	return out
}

// UpdateField replaces one named field of the item at index.
// Unknown fields and out-of-range indexes leave the list unchanged.
func UpdateField[T any, PT Setter[T]](list []T, index int, field, value string) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	item := list[index]
	if !PT(&item).Set(field, value) {
		return list
	}
	out := make([]T, len(list))
	copy(out, list)
	out[index] = item
	return out
}

// RemoveAt drops the item at index and shifts the rest down.
// Removing from an empty list or with an out-of-range index is a no-op.
func RemoveAt[T any](list []T, index int) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}

// SetAt replaces the whole item at index.
func SetAt[T any](list []T, index int, item T) []T {
	return UpdateAt(list, index, func(p *T) { *p = item })
}
