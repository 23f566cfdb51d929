package ordering

// Reorder moves the dragged item so that it takes the target's position:
// the dragged item is removed, then inserted immediately before the target
// in the reduced list. Every other item keeps its relative order. Keys are
// re-assigned 1..N on the result.
//
// Unknown ids and self-drops return the input unchanged with moved=false.
// The input slice is never mutated.
func Reorder[T any](list []Item[T], draggedID, targetID string) ([]Item[T], bool) {
	if draggedID == "" || targetID == "" || draggedID == targetID {
		return list, false
	}

	from := Index(list, draggedID)
	if from < 0 || Index(list, targetID) < 0 {
		return list, false
	}

	dragged := list[from]

	out := make([]Item[T], 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	to := Index(out, targetID)
	out = append(out, Item[T]{})
	copy(out[to+1:], out[to:])
	out[to] = dragged

	rekey(out)
	return out, true
}

// ResolveTarget walks a drop event's containment path, innermost element
// first, and returns the first id that names an item of list. Empty entries
// are elements without an item marker.
func ResolveTarget[T any](list []Item[T], path []string) (string, bool) {
	for _, id := range path {
		if id == "" {
			continue
		}
		if Index(list, id) >= 0 {
			return id, true
		}
	}
	return "", false
}
