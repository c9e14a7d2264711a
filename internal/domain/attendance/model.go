package attendance

import (
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrNotFound = crerr.New("attendance record not found")

// DefaultPardonReason is stored when a pardon arrives without a reason.
const DefaultPardonReason = "Indultado por el DT"

// Type records how a player showed up to a match.
type Type string

const (
	TypePresent     Type = "present"
	TypeLateFirst   Type = "late_1st_half"
	TypeLateSecond  Type = "late_2nd_half"
	TypeAbsent      Type = "absent"
	TypeNotRecorded Type = ""
)

type Confirmation string

const (
	ConfirmationPending   Confirmation = "pending"
	ConfirmationConfirmed Confirmation = "confirmed"
	ConfirmationDeclined  Confirmation = "declined"
)

// Record is one player's attendance for a match, including jersey duties.
type Record struct {
	ID             string
	MatchID        string
	MatchDate      time.Time
	Opponent       string
	PlayerID       string
	Confirmation   Confirmation
	Type           Type
	ForgotJerseys  bool
	WashedJerseys  bool
	StaysForSocial bool
	IsPardoned     bool
	PardonReason   string
}

func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("attendance id is required")
	}
	if r.PlayerID == "" {
		return fmt.Errorf("attendance player id is required")
	}
	switch r.Type {
	case TypePresent, TypeLateFirst, TypeLateSecond, TypeAbsent, TypeNotRecorded:
	default:
		return fmt.Errorf("invalid attendance type: %s", r.Type)
	}
	switch r.Confirmation {
	case ConfirmationPending, ConfirmationConfirmed, ConfirmationDeclined, "":
	default:
		return fmt.Errorf("invalid confirmation status: %s", r.Confirmation)
	}
	return nil
}
