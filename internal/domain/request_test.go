package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequest_IsIdle(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	timeout := 20 * time.Minute

	fresh := &Request{UpdatedAt: now.Add(-5 * time.Minute)}
	assert.False(t, fresh.IsIdle(now, timeout))

	stale := &Request{UpdatedAt: now.Add(-30 * time.Minute)}
	assert.True(t, stale.IsIdle(now, timeout))

	// Ровно на границе таймаута - ещё не брошен
	edge := &Request{UpdatedAt: now.Add(-timeout)}
	assert.False(t, edge.IsIdle(now, timeout))

	// Завершённые запросы не считаются брошенными
	complete := &Request{UpdatedAt: now.Add(-time.Hour), Complete: true}
	assert.False(t, complete.IsIdle(now, timeout))
}
