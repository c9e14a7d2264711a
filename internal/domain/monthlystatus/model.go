package monthlystatus

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/player"
)

var ErrValidation = crerr.New("monthly status validation failed")

// Entry overrides a player's membership category for a single month.
type Entry struct {
	ID       string
	PlayerID string
	Month    calendar.Month
	Status   player.Status
}

func (e Entry) Validate() error {
	if e.PlayerID == "" {
		return crerr.Wrap(ErrValidation, "player id is required")
	}
	if err := e.Month.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if _, ok := player.AllStatuses[e.Status]; !ok {
		return crerr.Wrapf(ErrValidation, "invalid status %q", string(e.Status))
	}
	return nil
}
