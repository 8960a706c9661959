package system

import (
	"io"
	"sync"
)

// MockFileSystem is a mock of the FileSystem for testing purposes.
// It captures written files and created trees in memory and implements
// FileSystemManager.
type MockFileSystem struct {
	mu sync.Mutex

	// WrittenFiles maps destination path to the content streamed into it.
	WrittenFiles map[string][]byte
	// WrittenPending maps destination path to the pending metadata passed
	// alongside the write.
	WrittenPending map[string]Pending
	// EnsuredTrees records EnsureTree calls in order.
	EnsuredTrees []string
	// EnsuredOwners maps ensured directory to the requested ownership.
	EnsuredOwners map[string]Ownership
	// ExistingDirs lists directories DirectoryExists reports as present.
	ExistingDirs map[string]bool

	// WriteErr, when set, is returned by WriteFileAtomic after consuming src.
	WriteErr error
	// EnsureErr, when set, is returned by EnsureTree.
	EnsureErr error
}

var _ FileSystemManager = (*MockFileSystem)(nil)

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		WrittenFiles:   make(map[string][]byte),
		WrittenPending: make(map[string]Pending),
		EnsuredOwners:  make(map[string]Ownership),
		ExistingDirs:   make(map[string]bool),
	}
}

// WriteFileAtomic captures the content that would be written to dest.
func (m *MockFileSystem) WriteFileAtomic(src io.Reader, dest string, pending Pending) error {
	content, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.WrittenFiles[dest] = content
	m.WrittenPending[dest] = pending
	return nil
}

// EnsureTree records the directory tree that would be created.
func (m *MockFileSystem) EnsureTree(dir string, owner Ownership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EnsureErr != nil {
		return m.EnsureErr
	}
	m.EnsuredTrees = append(m.EnsuredTrees, dir)
	m.EnsuredOwners[dir] = owner
	return nil
}

// DirectoryExists consults the configured ExistingDirs map.
func (m *MockFileSystem) DirectoryExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ExistingDirs[path], nil
}
