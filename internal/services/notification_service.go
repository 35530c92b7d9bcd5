package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"leadflow/internal/models"
)

// Notifier is the user-facing notification surface.
type Notifier interface {
	Notify(message string, kind models.NotificationKind)
}

// Subscriber receives every notification as it is pushed.
type Subscriber interface {
	Publish(n models.Notification)
}

// NotificationCenter keeps a stack of notifications that expire after TTL or
// when dismissed. There is no limit on how many are active at once.
type NotificationCenter struct {
	mu    sync.Mutex
	items []models.Notification
	ttl   time.Duration
	now   func() time.Time
	subs  []Subscriber
	log   *logrus.Logger
}

func NewNotificationCenter(ttl time.Duration, now func() time.Time, log *logrus.Logger) *NotificationCenter {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotificationCenter{ttl: ttl, now: now, log: log}
}

func (c *NotificationCenter) Subscribe(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, s)
}

// Notify implements Notifier.
func (c *NotificationCenter) Notify(message string, kind models.NotificationKind) {
	c.Push(message, kind)
}

func (c *NotificationCenter) Push(message string, kind models.NotificationKind) models.Notification {
	if kind != models.NotifyError {
		kind = models.NotifySuccess
	}
	now := c.now()
	n := models.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	c.pruneLocked(now)
	c.items = append(c.items, n)
	subs := append([]Subscriber(nil), c.subs...)
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"kind": kind, "notification_id": n.ID}).Info(message)
	for _, s := range subs {
		s.Publish(n)
	}
	return n
}

// Active returns the notifications that have neither expired nor been
// dismissed, oldest first.
func (c *NotificationCenter) Active() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(c.now())
	out := make([]models.Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *NotificationCenter) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *NotificationCenter) pruneLocked(now time.Time) {
	kept := c.items[:0]
	for _, n := range c.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	c.items = kept
}
