package ranking

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidEventID = crerr.New("invalid scoring event id")
	ErrNotPardonable  = crerr.New("scoring event cannot be pardoned")
)

// Category groups scoring events on the leaderboard breakdown.
type Category string

const (
	CategoryAttendance Category = "asistencia"
	CategoryFinance    Category = "finanzas"
	CategoryLogistics  Category = "logistica"
)

var AllCategories = []Category{CategoryAttendance, CategoryFinance, CategoryLogistics}

// Source is the table a scoring event was derived from.
type Source string

const (
	SourceAttendance Source = "attendance"
	SourcePayment    Source = "payments"
	SourceMissing    Source = "missing"
)

// Event is a signed point contribution derived from a stored fact.
// Events are never persisted; they are rebuilt from their source rows on read.
type Event struct {
	ID          string
	PlayerID    string
	Source      Source
	SourceID    string
	Category    Category
	Points      int
	Description string
	EventDate   time.Time
	IsPardoned  bool
}

// Counts reports whether the event contributes to totals.
func (e Event) Counts() bool {
	return !e.IsPardoned
}

// Ref locates the source row behind an event id.
type Ref struct {
	Source   Source
	SourceID string
	Kind     string
}

func EventID(source Source, sourceID, kind string) string {
	return string(source) + ":" + sourceID + ":" + kind
}

// ParseEventID splits an event id. Events without a source row are rejected
// with ErrNotPardonable.
func ParseEventID(raw string) (Ref, error) {
	value := strings.TrimSpace(raw)
	parts := strings.SplitN(value, ":", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return Ref{}, crerr.Wrapf(ErrInvalidEventID, "%q", raw)
	}

	ref := Ref{Source: Source(parts[0]), SourceID: parts[1], Kind: parts[2]}
	switch ref.Source {
	case SourceAttendance, SourcePayment:
		return ref, nil
	case SourceMissing:
		return Ref{}, crerr.Wrapf(ErrNotPardonable, "%q has no source record", raw)
	default:
		return Ref{}, crerr.Wrapf(ErrInvalidEventID, "unknown source %q", parts[0])
	}
}
