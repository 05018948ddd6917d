package factory

import (
	"time"

	"github.com/quizlive/quizlive/internal/dependencies/mocks"
	"github.com/quizlive/quizlive/internal/storage/memory"
	"github.com/quizlive/quizlive/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIdent *mocks.MockIDGenerator
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIdent := mocks.NewMockIDGenerator()

	app := newWithDependencies(store, mockClock, mockIdent, Config{}, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIdent: mockIdent,
	}
}
