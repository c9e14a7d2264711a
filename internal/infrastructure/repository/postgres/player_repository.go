package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/outletfc/club-treasury/internal/domain/player"
	qb "github.com/outletfc/club-treasury/internal/platform/querybuilder"
)

// PlayerRepository reads the profiles table. Profiles are managed by the
// auth backend; this service never writes them.
type PlayerRepository struct {
	db *sqlx.DB
}

var profileSelectColumns = []string{
	"id",
	"full_name",
	"nickname",
	"jersey_number",
	"role",
	"status",
	"avatar_url",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(profileSelectColumns...).From("profiles").
		Where(qb.IsNull("deleted_at")).
		OrderBy("full_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select profiles: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(profileSelectColumns...).From("profiles").
		Where(
			qb.Eq("id", playerID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select profile by id query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get profile by id: %w", err)
	}

	return profileFromRow(row), true, nil
}

func profileFromRow(row profileTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		FullName:     row.FullName,
		Nickname:     row.Nickname,
		JerseyNumber: nullInt64ToIntPtr(row.JerseyNumber),
		Role:         player.Role(row.Role),
		Status:       player.Status(row.Status),
		AvatarURL:    row.AvatarURL,
	}
}
