package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithoutIndexes makes every filter a linear scan over the list. Results are
// identical; it exists to compare both paths.
func WithoutIndexes() Option {
	return func(s *MemoryStore) {
		s.indexed = false
	}
}
