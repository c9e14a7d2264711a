package player

import "fmt"

// Role controls what a member may do inside the club.
type Role string

const (
	RolePlayer   Role = "player"
	RoleDirector Role = "dt"
	RoleAdmin    Role = "admin"
)

// Status is the membership category a player defaults to when no monthly override exists.
type Status string

const (
	StatusActive     Status = "activo"
	StatusSemiActive Status = "semiactivo"
	StatusPassive    Status = "pasivo"
)

var AllStatuses = map[Status]struct{}{
	StatusActive:     {},
	StatusSemiActive: {},
	StatusPassive:    {},
}

var AllRoles = map[Role]struct{}{
	RolePlayer:   {},
	RoleDirector: {},
	RoleAdmin:    {},
}

// Player is a club member.
type Player struct {
	ID           string
	FullName     string
	Nickname     string
	JerseyNumber *int
	Role         Role
	Status       Status
	AvatarURL    string
}

// IsDirector reports whether the player owes the director surcharge.
func (p Player) IsDirector() bool {
	return p.Role == RoleDirector
}

// CanPardon reports whether the player may pardon negative scoring events.
func (p Player) CanPardon() bool {
	return p.Role == RoleDirector || p.Role == RoleAdmin
}

// DisplayName prefers the nickname.
func (p Player) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.FullName
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.FullName == "" {
		return fmt.Errorf("player full name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if p.Status != "" {
		if _, ok := AllStatuses[p.Status]; !ok {
			return fmt.Errorf("invalid player status: %s", p.Status)
		}
	}

	return nil
}
