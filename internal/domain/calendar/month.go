package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrInvalidMonth = crerr.New("invalid month")

const (
	minYear = 1000
	maxYear = 9999
)

// Month identifies a calendar month. Ordering is lexicographic on (Year, Month).
type Month struct {
	Year  int
	Month time.Month
}

func New(year int, month int) (Month, error) {
	m := Month{Year: year, Month: time.Month(month)}
	if err := m.Validate(); err != nil {
		return Month{}, err
	}
	return m, nil
}

// Of returns the month containing t.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Parse reads the "YYYY-MM" form.
func Parse(raw string) (Month, error) {
	value := strings.TrimSpace(raw)
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 {
		return Month{}, crerr.Wrapf(ErrInvalidMonth, "%q: expected YYYY-MM", raw)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, crerr.Wrapf(ErrInvalidMonth, "%q: year is not a number", raw)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Month{}, crerr.Wrapf(ErrInvalidMonth, "%q: month is not a number", raw)
	}
	return New(year, month)
}

func (m Month) Validate() error {
	if m.Month < time.January || m.Month > time.December {
		return crerr.Wrapf(ErrInvalidMonth, "month %d out of range 1-12", int(m.Month))
	}
	if m.Year < minYear || m.Year > maxYear {
		return crerr.Wrapf(ErrInvalidMonth, "year %d must have four digits", m.Year)
	}
	return nil
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) After(other Month) bool {
	return other.Before(m)
}

// Index is a monotonic ordinal usable as a sort key.
func (m Month) Index() int {
	return m.Year*12 + int(m.Month) - 1
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Between returns the inclusive range from..to, capped at limit entries.
// An empty slice is returned when from is after to.
func Between(from, to Month, limit int) []Month {
	if from.After(to) || limit <= 0 {
		return nil
	}
	out := make([]Month, 0, min(limit, to.Index()-from.Index()+1))
	for cur := from; !cur.After(to) && len(out) < limit; cur = cur.Next() {
		out = append(out, cur)
	}
	return out
}
