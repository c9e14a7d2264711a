package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	ID           string        `db:"id"`
	FullName     string        `db:"full_name"`
	Nickname     string        `db:"nickname"`
	JerseyNumber sql.NullInt64 `db:"jersey_number"`
	Role         string        `db:"role"`
	Status       string        `db:"status"`
	AvatarURL    string        `db:"avatar_url"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
	DeletedAt    *time.Time    `db:"deleted_at"`
}
