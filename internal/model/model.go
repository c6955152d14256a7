package model

import "time"

// Feed event types.
const (
	EventLike   = "LIKE"
	EventReview = "REVIEW"
	EventFriend = "FRIEND"
)

// Feed operations.
const (
	OpAdd    = "ADD"
	OpUpdate = "UPDATE"
	OpRemove = "REMOVE"
)

// Friendship edge statuses.
const (
	FriendshipPending   = "PENDING"
	FriendshipConfirmed = "CONFIRMED"
)

// EarliestReleaseDate is the date of the first public film screening; films
// cannot predate it.
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MpaRating struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Film struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate Date       `json:"release_date"`
	Duration    int        `json:"duration"`
	Mpa         MpaRating  `json:"mpa"`
	Genres      []Genre    `json:"genres"`
	Directors   []Director `json:"directors"`
}

// Review carries a derived usefulness counter; it changes only through the
// vote transitions, never by direct client writes.
type Review struct {
	ReviewID   int64  `json:"review_id"`
	Content    string `json:"content"`
	IsPositive bool   `json:"is_positive"`
	UserID     int64  `json:"user_id"`
	FilmID     int64  `json:"film_id"`
	Useful     int    `json:"useful"`
}

// FeedEvent is one immutable record of a user-visible action. Timestamp is
// epoch millis captured at append time; EventID is assigned by the store in
// insertion order and breaks timestamp ties.
type FeedEvent struct {
	EventID   int64  `json:"event_id"`
	Timestamp int64  `json:"timestamp"`
	UserID    int64  `json:"user_id"`
	EventType string `json:"event_type"`
	Operation string `json:"operation"`
	EntityID  int64  `json:"entity_id"`
}
