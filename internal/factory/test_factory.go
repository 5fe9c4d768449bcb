package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/wordsnpics/wordsnpics/internal/dependencies/mocks"
	"github.com/wordsnpics/wordsnpics/internal/services/auth"
	"github.com/wordsnpics/wordsnpics/internal/storage/memory"
)

// TestApp bundles an App with its mocked dependencies for tests
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewForTesting creates an App backed by in-memory storage and mocked
// clock/random, so tests can control time and randomness
func NewForTesting(now time.Time) *TestApp {
	store := memory.New()
	clk := mocks.NewMockClock(now)
	rnd := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, clk, rnd, auth.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  clk,
		MockRandom: rnd,
	}
}
