package events

import (
	"context"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/google/uuid"
)

// expansionHorizon bounds recurrence expansion when the filter has no end.
const expansionHorizon = 366 * 24 * time.Hour

type Service struct {
	db               database.PGX
	eventsRepository eventsRepository
	newID            func() string
	now              func() time.Time
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error)
	GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
	CancelEvent(ctx context.Context, q database.Queryable, id string, reason string) error
	DeleteEvent(ctx context.Context, q database.Queryable, id string) error
}

func NewService(db database.PGX, repo eventsRepository) *Service {
	return &Service{
		db:               db,
		eventsRepository: repo,
		newID:            uuid.NewString,
		now:              time.Now,
	}
}
