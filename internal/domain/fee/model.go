package fee

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/player"
)

var ErrValidation = crerr.New("fee validation failed")

// Category is the bucket a fee is charged under.
type Category string

const (
	CategoryActive     Category = "activo"
	CategorySemiActive Category = "semiactivo"
	CategoryPassive    Category = "pasivo"
	CategoryDirector   Category = "dt"
)

var AllCategories = []Category{
	CategoryActive,
	CategorySemiActive,
	CategoryPassive,
	CategoryDirector,
}

// FromStatus maps a membership status to its fee category.
func FromStatus(s player.Status) (Category, bool) {
	switch s {
	case player.StatusActive:
		return CategoryActive, true
	case player.StatusSemiActive:
		return CategorySemiActive, true
	case player.StatusPassive:
		return CategoryPassive, true
	default:
		return "", false
	}
}

func (c Category) Validate() error {
	for _, known := range AllCategories {
		if c == known {
			return nil
		}
	}
	return crerr.Wrapf(ErrValidation, "unknown fee category %q", string(c))
}

// Entry is the configured fee of one category for one month.
type Entry struct {
	ID       string
	Category Category
	Month    calendar.Month
	Amount   decimal.Decimal
}

func (e Entry) Validate() error {
	if err := e.Category.Validate(); err != nil {
		return err
	}
	if err := e.Month.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if e.Amount.IsNegative() {
		return crerr.Wrapf(ErrValidation, "fee amount must be >= 0, got %s", e.Amount)
	}
	return nil
}

// MonthlySetting holds per-month switches configured alongside the fees.
type MonthlySetting struct {
	Month          calendar.Month
	IsGroupPayment bool
}
