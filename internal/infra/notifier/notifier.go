// Package notifier delivers user notifications produced by visit and reservation
// use cases: into the notifications table, onto NATS, or both.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// Notifier sends one notification to one user
type Notifier interface {
	Notify(ctx context.Context, userID int64, title, message string, category domain.NotificationCategory) error
}

// NotificationRepository persists in-app notifications
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// Logger printf-style logger
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Store writes notifications to the notifications table
type Store struct {
	repo NotificationRepository
}

// NewStore creates a table-backed notifier
func NewStore(repo NotificationRepository) *Store {
	return &Store{repo: repo}
}

// Notify implements Notifier
func (s *Store) Notify(ctx context.Context, userID int64, title, message string, category domain.NotificationCategory) error {
	_, err := s.repo.Create(ctx, &domain.Notification{
		UserID:   userID,
		Title:    domain.TruncateTitle(title),
		Message:  message,
		Category: category,
	})
	if err != nil {
		return fmt.Errorf("notifier: store: %w", err)
	}
	return nil
}

// Publisher is the part of *nats.Conn the notifier uses
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event NATS payload
type Event struct {
	UserID   int64     `json:"user_id"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Category string    `json:"category"`
	SentAt   time.Time `json:"sent_at"`
}

// NATS publishes notifications to "<prefix>.<category>", e.g. notifications.reservation
type NATS struct {
	pub    Publisher
	prefix string
	now    func() time.Time
}

// NewNATS creates a NATS-backed notifier over an existing connection
func NewNATS(pub Publisher, subjectPrefix string) *NATS {
	return &NATS{pub: pub, prefix: subjectPrefix, now: time.Now}
}

// Connect dials the NATS server
func Connect(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name(name), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("notifier: connect to NATS: %w", err)
	}
	return conn, nil
}

// Subject for a category
func (n *NATS) Subject(category domain.NotificationCategory) string {
	return n.prefix + "." + strings.ToLower(string(category))
}

// Notify implements Notifier
func (n *NATS) Notify(_ context.Context, userID int64, title, message string, category domain.NotificationCategory) error {
	payload, err := json.Marshal(Event{
		UserID:   userID,
		Title:    domain.TruncateTitle(title),
		Message:  message,
		Category: string(category),
		SentAt:   n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("notifier: marshal event: %w", err)
	}

	if err := n.pub.Publish(n.Subject(category), payload); err != nil {
		return fmt.Errorf("notifier: publish: %w", err)
	}
	return nil
}

// Fanout sends to every target; a failed target does not stop the others
type Fanout struct {
	targets []Notifier
	logger  Logger
}

// NewFanout combines notifiers
func NewFanout(logger Logger, targets ...Notifier) *Fanout {
	return &Fanout{targets: targets, logger: logger}
}

// Notify implements Notifier; returns the joined errors of failed targets
func (f *Fanout) Notify(ctx context.Context, userID int64, title, message string, category domain.NotificationCategory) error {
	var errs []error
	for _, target := range f.targets {
		if err := target.Notify(ctx, userID, title, message, category); err != nil {
			f.logger.Warn("Notify: user=%d category=%s: %v", userID, category, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop discards notifications
type Noop struct{}

// Notify implements Notifier
func (Noop) Notify(context.Context, int64, string, string, domain.NotificationCategory) error {
	return nil
}
