package yelp

// PageSize is the fixed result-page size used by both the search and the
// review-feed endpoints.
const PageSize = 10

// SearchOffsets returns the offsets of the search pages remaining after the
// first, in increasing order: multiples of PageSize strictly below total.
func SearchOffsets(total int) []int {
	var offsets []int
	for offset := PageSize; offset < total; offset += PageSize {
		offsets = append(offsets, offset)
	}
	return offsets
}

// ReviewOffsets returns the offsets of the review-feed pages remaining after
// the first: multiples of PageSize up to and including total. The upper
// bound intentionally differs from SearchOffsets; the live review feed
// serves one more page than the search endpoint does for the same total,
// so the two bounds must not be unified.
func ReviewOffsets(total int) []int {
	var offsets []int
	for offset := PageSize; offset < total+PageSize; offset += PageSize {
		offsets = append(offsets, offset)
	}
	return offsets
}
