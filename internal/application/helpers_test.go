package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// sequenceIDs hands out id-1, id-2, ... in call order.
type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (s *sequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

func intPtr(v int) *int {
	return &v
}

func mockAnyContext() interface{} {
	return mock.Anything
}
