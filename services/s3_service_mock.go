package services

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// MockS3Service is a mock implementation of S3Service for testing
type MockS3Service struct {
	objects map[string][]byte // map of S3 key to object content
	mu      sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// PutObject stores an object in mock storage (for test setup)
func (m *MockS3Service) PutObject(key string, content []byte) {
	m.mu.Lock()
	m.objects[key] = content
	m.mu.Unlock()
}

// DownloadObject simulates streaming an object from S3
func (m *MockS3Service) DownloadObject(key string) (io.ReadCloser, error) {
	m.mu.RLock()
	content, exists := m.objects[key]
	m.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("object not found in mock S3: %s", key)
	}

	return io.NopCloser(bytes.NewReader(content)), nil
}

// ObjectURL returns a mock s3:// identity for an object
func (m *MockS3Service) ObjectURL(key string) string {
	return fmt.Sprintf("s3://test-bucket/%s", key)
}

// ObjectExists checks if an object exists in mock storage
func (m *MockS3Service) ObjectExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.objects[key]
	return exists
}

// Clear removes all objects from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.objects = make(map[string][]byte)
	m.mu.Unlock()
}
