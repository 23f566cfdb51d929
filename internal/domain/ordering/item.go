// Package ordering implements drag-and-drop reorderable lists whose order is
// persisted as a dense 1-based integer key on each item.
package ordering

// Item is one entry of an ordered list. ID is assigned by the data service;
// OrderKey is 1-based and dense within a list at rest.
type Item[T any] struct {
	ID       string `json:"id"`
	OrderKey int    `json:"order_key"`
	Payload  T      `json:"payload"`
}

// RawItem is an item as fetched from storage. A nil OrderKey means the item
// has never been ordered.
type RawItem[T any] struct {
	ID       string
	OrderKey *int
	Payload  T
}

// OrderUpdate is the new key of one item, as sent to the data service.
type OrderUpdate struct {
	ID       string `json:"id"`
	OrderKey int    `json:"order_key"`
}

// Updates lists the current key of every item in list order.
func Updates[T any](items []Item[T]) []OrderUpdate {
	out := make([]OrderUpdate, 0, len(items))
	for _, it := range items {
		out = append(out, OrderUpdate{ID: it.ID, OrderKey: it.OrderKey})
	}
	return out
}

// IDs returns the item ids in list order.
func IDs[T any](items []Item[T]) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// Index returns the position of id in items, or -1.
func Index[T any](items []Item[T], id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
