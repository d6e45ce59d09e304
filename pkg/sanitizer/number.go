package sanitizer

// NormalizePage clamps a zero-based page index and a page size. A size of
// zero or less falls back to defaultSize; anything above maxSize is capped.
func NormalizePage(page, size, defaultSize, maxSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}
