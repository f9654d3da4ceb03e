package event

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrNoSessions       = errors.New("at least one session is required")
	ErrInvalidTimeRange = errors.New("session start must be before end")
	ErrInvalidCapacity  = errors.New("session capacity must be at least 1")
)

var slugStrip = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugSpaces = regexp.MustCompile(`\s+`)
var slugDashes = regexp.MustCompile(`-+`)

// Event is a bookable happening at the café (tasting, launch party, ...)
// made up of one or more time-slot sessions.
type Event struct {
	id          uuid.UUID
	slug        string
	title       string
	description string
	isTicketed  bool
	sessions    []Session
}

// Session is a single time slot of an Event with a fixed seat capacity.
// The reserved counter lives in the database and is mutated only through
// atomic conditional updates; a freshly authored session always starts at 0.
type Session struct {
	ID       uuid.UUID
	Start    time.Time
	End      time.Time
	Capacity int32
}

type SessionInput struct {
	Start    time.Time
	End      time.Time
	Capacity int32
}

func NewEvent(title, description string, isTicketed bool, sessions []SessionInput) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}

	built := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		sess, err := newSession(s)
		if err != nil {
			return nil, err
		}
		built = append(built, sess)
	}

	return &Event{
		id:          uuid.New(),
		slug:        Slugify(title),
		title:       title,
		description: description,
		isTicketed:  isTicketed,
		sessions:    built,
	}, nil
}

func newSession(in SessionInput) (Session, error) {
	if !in.Start.Before(in.End) {
		return Session{}, ErrInvalidTimeRange
	}
	if in.Capacity < 1 {
		return Session{}, ErrInvalidCapacity
	}
	return Session{
		ID:       uuid.New(),
		Start:    in.Start,
		End:      in.End,
		Capacity: in.Capacity,
	}, nil
}

// NewSessions validates and builds replacement sessions for an existing event.
func NewSessions(inputs []SessionInput) ([]Session, error) {
	if len(inputs) == 0 {
		return nil, ErrNoSessions
	}
	out := make([]Session, 0, len(inputs))
	for _, in := range inputs {
		s, err := newSession(in)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Slugify derives a URL-safe identifier from an event title.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (e *Event) ID() uuid.UUID       { return e.id }
func (e *Event) Slug() string        { return e.slug }
func (e *Event) Title() string       { return e.title }
func (e *Event) Description() string { return e.description }
func (e *Event) IsTicketed() bool    { return e.isTicketed }
func (e *Event) Sessions() []Session { return e.sessions }
