package storage

// NextID returns 1 for an empty collection, otherwise the highest id + 1.
func NextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
