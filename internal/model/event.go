package model

import "time"

type EventCreate struct {
	CompanyID   string
	Type        EventType
	Title       string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	RepeatType  RepeatType
}

type Event struct {
	ID           string
	RepeatRule   string
	Exceptions   map[int64]struct{}
	Until        *time.Time
	IsActive     bool
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	EventCreate
}

type EventUpdate struct {
	CompanyID   string
	Type        EventType
	Title       string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
}

type EventType string

const (
	EventTypeWedding    EventType = "wedding"
	EventTypeEngagement EventType = "engagement"
	EventTypeHenna      EventType = "henna"
	EventTypeOther      EventType = "other"
)

var EventTypes = []EventType{
	EventTypeWedding,
	EventTypeEngagement,
	EventTypeHenna,
	EventTypeOther,
}

func (t EventType) Valid() bool {
	for _, et := range EventTypes {
		if t == et {
			return true
		}
	}
	return false
}

type RepeatType int

const (
	RepeatTypeNone RepeatType = iota
	RepeatTypeEveryDay
	RepeatTypeEveryWeek
	RepeatTypeEveryMonth
	RepeatTypeEveryYear
)

type EventsFilter struct {
	From       time.Time
	To         time.Time
	CompanyIDs []string
	ActiveOnly bool
}
