package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cineasta-server/internal/imagegen"
	"cineasta-server/internal/service"
	"cineasta-server/internal/storage"
	"cineasta-server/internal/transcribe"
)

// MockScriptGenerator is a mock type for the ScriptGenerator type
type MockScriptGenerator struct {
	mock.Mock
}

func (_m *MockScriptGenerator) GenerateScript(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ret := _m.Called(ctx, systemPrompt, userPrompt)
	return ret.String(0), ret.Error(1)
}

// NewMockScriptGenerator creates a new instance of MockScriptGenerator.
func NewMockScriptGenerator(t interface {
	mock.TestingT
	Helper()
}) *MockScriptGenerator {
	m := &MockScriptGenerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.ScriptGenerator = (*MockScriptGenerator)(nil)

// MockObjectStorage is a mock type for the ObjectStorage type
type MockObjectStorage struct {
	mock.Mock
}

func (_m *MockObjectStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	ret := _m.Called(ctx, key, data)
	return ret.String(0), ret.Error(1)
}

func (_m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

func (_m *MockObjectStorage) PublicURL(key string) string {
	ret := _m.Called(key)
	return ret.String(0)
}

// NewMockObjectStorage creates a new instance of MockObjectStorage.
func NewMockObjectStorage(t interface {
	mock.TestingT
	Helper()
}) *MockObjectStorage {
	m := &MockObjectStorage{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ storage.ObjectStorage = (*MockObjectStorage)(nil)

// MockImageGenerator is a mock type for the imagegen.Generator type
type MockImageGenerator struct {
	mock.Mock
}

func (_m *MockImageGenerator) Generate(ctx context.Context, prompt, referenceImageURL string) ([]byte, error) {
	ret := _m.Called(ctx, prompt, referenceImageURL)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// NewMockImageGenerator creates a new instance of MockImageGenerator.
func NewMockImageGenerator(t interface {
	mock.TestingT
	Helper()
}) *MockImageGenerator {
	m := &MockImageGenerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ imagegen.Generator = (*MockImageGenerator)(nil)

// MockTranscriber is a mock type for the Transcriber type
type MockTranscriber struct {
	mock.Mock
}

func (_m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	ret := _m.Called(ctx, audio, language)
	return ret.String(0), ret.Error(1)
}

// NewMockTranscriber creates a new instance of MockTranscriber.
func NewMockTranscriber(t interface {
	mock.TestingT
	Helper()
}) *MockTranscriber {
	m := &MockTranscriber{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ transcribe.Transcriber = (*MockTranscriber)(nil)
