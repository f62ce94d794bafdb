// Package pagination slices ordered collections into fixed size pages.
package pagination

// DefaultSize is the number of entries shown per page.
const DefaultSize = 3

// Result is one page of items and the navigation it allows.
type Result[T any] struct {
	Visible []T
	Index   int
	HasPrev bool
	HasNext bool
}

// Page returns items[index*size : index*size+size]. The index is not clamped: a page
// past the end is empty. Visible is a copy, items is never modified.
func Page[T any](items []T, index, size int) Result[T] {
	if size <= 0 {
		size = DefaultSize
	}
	res := Result[T]{
		Index:   index,
		HasPrev: index > 0,
		HasNext: (index+1)*size < len(items),
	}
	start := index * size
	if index < 0 || start >= len(items) {
		res.Visible = []T{}
		return res
	}
	end := min(start+size, len(items))
	res.Visible = append(make([]T, 0, end-start), items[start:end]...)
	return res
}
