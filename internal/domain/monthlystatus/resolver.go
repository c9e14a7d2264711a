package monthlystatus

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/player"
)

type overrideKey struct {
	playerID string
	month    int
}

// Resolver picks the fee category a player is charged under in a month.
type Resolver struct {
	overrides map[overrideKey]player.Status
}

func NewResolver(entries []Entry) *Resolver {
	overrides := make(map[overrideKey]player.Status, len(entries))
	for _, e := range entries {
		overrides[overrideKey{playerID: e.PlayerID, month: e.Month.Index()}] = e.Status
	}
	return &Resolver{overrides: overrides}
}

// Resolve applies the fallback chain: the override for that exact month,
// then the player's default status, then activo when no status is set.
// An unknown status is a validation error.
func (r *Resolver) Resolve(p player.Player, month calendar.Month) (fee.Category, error) {
	if err := month.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	status := p.Status
	if r != nil {
		if override, ok := r.overrides[overrideKey{playerID: p.ID, month: month.Index()}]; ok {
			status = override
		}
	}
	if status == "" {
		return fee.CategoryActive, nil
	}
	category, ok := fee.FromStatus(status)
	if !ok {
		return "", crerr.Wrapf(ErrValidation, "player %s has unknown status %q", p.ID, string(status))
	}
	return category, nil
}
