package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/fittrack-be/internal/database"
	"github.com/isdelr/fittrack-be/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	defaultEventLimit = 20
	maxEventLimit     = 100
)

// EventPublisher delivers a message to the live connections of one user.
type EventPublisher interface {
	PublishToUser(userID int64, message []byte)
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, userID int64, eventType, message string) error
	GetRecentEvents(ctx context.Context, userID int64, limit int) ([]models.Event, error)
}

// EventService records activity events and pushes them to connected clients.
type EventService struct {
	db        *sql.DB
	publisher EventPublisher
}

// NewEventService creates a new EventService. publisher may be nil.
func NewEventService(db *sql.DB, publisher EventPublisher) *EventService {
	return &EventService{db: db, publisher: publisher}
}

// CreateEvent logs a new event to the database and publishes it.
func (s *EventService) CreateEvent(ctx context.Context, userID int64, eventType, message string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, "INSERT INTO events (id, user_id, type, message) VALUES (?, ?, ?, ?)", id, userID, eventType, message)
	if err != nil {
		if database.IsConstraintViolation(err) {
			return fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
		}
		return err
	}

	if s.publisher != nil {
		event, err := s.getEvent(ctx, id)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(struct {
			Action  string       `json:"action"`
			Payload models.Event `json:"payload"`
		}{Action: "event", Payload: event})
		if err != nil {
			return err
		}
		s.publisher.PublishToUser(userID, payload)
	}
	return nil
}

// GetRecentEvents retrieves the most recent events of a user.
func (s *EventService) GetRecentEvents(ctx context.Context, userID int64, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, message, created_at FROM events
		WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *EventService) getEvent(ctx context.Context, id string) (models.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, user_id, type, message, created_at FROM events WHERE id = ?", id)
	return scanEvent(row)
}

func scanEvent(scanner rowScanner) (models.Event, error) {
	var event models.Event
	err := scanner.Scan(&event.ID, &event.UserID, &event.Type, &event.Message, &event.CreatedAt)
	return event, err
}

// recordEvent stores an event and logs, rather than returns, any failure.
// The triggering write has already succeeded at this point.
func recordEvent(ctx context.Context, events EventServiceProvider, userID int64, eventType, message string) {
	if events == nil {
		return
	}
	if err := events.CreateEvent(ctx, userID, eventType, message); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Str("type", eventType).Msg("Failed to record event")
	}
}
