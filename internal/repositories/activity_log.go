package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"leadflow/internal/models"
)

// ActivityLogSize is how many recent entries the feed retains.
const ActivityLogSize = 5

// ActivityLog keeps the most recent activity entries, newest first.
type ActivityLog struct {
	mu      sync.RWMutex
	entries []models.Activity
	now     func() time.Time
}

func NewActivityLog(now func() time.Time) *ActivityLog {
	if now == nil {
		now = time.Now
	}
	return &ActivityLog{now: now}
}

// Append records a completed entry and evicts anything past ActivityLogSize.
func (a *ActivityLog) Append(typ models.ActivityType, description string) models.Activity {
	entry := models.Activity{
		ID:          uuid.NewString(),
		Type:        typ,
		Description: description,
		CreatedAt:   a.now(),
		Status:      models.ActivityCompleted,
	}
	a.Seed(entry)
	return entry
}

// Seed inserts a prepared entry, e.g. demo data with a non-completed status.
func (a *ActivityLog) Seed(entry models.Activity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	keep := len(a.entries)
	if keep > ActivityLogSize-1 {
		keep = ActivityLogSize - 1
	}
	next := make([]models.Activity, 0, ActivityLogSize)
	next = append(next, entry)
	next = append(next, a.entries[:keep]...)
	a.entries = next
}

func (a *ActivityLog) Recent() []models.Activity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]models.Activity, len(a.entries))
	copy(out, a.entries)
	return out
}

func (a *ActivityLog) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}
