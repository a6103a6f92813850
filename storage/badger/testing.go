package badger

// NewMemoryRepository creates an in-memory backend and repository for tests.
// The returned backend owns the database; close it to release resources.
func NewMemoryRepository() (*Backend, *FragmentRepository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewFragmentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return backend, repo, nil
}
