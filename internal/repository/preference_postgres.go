package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/personalab/chat-backend/internal/entity"
)

// PreferenceRepository defines the interface for the per-user
// preference aggregates
type PreferenceRepository interface {
	UpsertPreference(ctx context.Context, userEmail, persona, purpose string) (*entity.PreferenceAggregate, error)
	GetPreference(ctx context.Context, userEmail, persona, purpose string) (*entity.PreferenceAggregate, error)
	ListPreferencesByUser(ctx context.Context, userEmail string) ([]*entity.PreferenceAggregate, error)
}

var _ PreferenceRepository = &PreferencePostgres{}

// PreferencePostgres implements PreferenceRepository using PostgreSQL
type PreferencePostgres struct {
	db *pgxpool.Pool
}

func NewPreferencePostgres(db *pgxpool.Pool) *PreferencePostgres {
	return &PreferencePostgres{db: db}
}

// UpsertPreference creates the aggregate row for the (user, persona,
// purpose) triple with total_conversations = 1, or increments the
// existing row. The unique index on the triple keeps this to exactly
// one row even under concurrent submissions.
func (r *PreferencePostgres) UpsertPreference(ctx context.Context, userEmail, persona, purpose string) (*entity.PreferenceAggregate, error) {
	var pref entity.PreferenceAggregate
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_preferences (user_email, preferred_persona, preferred_purpose, total_conversations, updated_at)
		VALUES ($1, $2, $3, 1, now())
		ON CONFLICT (user_email, preferred_persona, preferred_purpose)
		DO UPDATE SET
			total_conversations = user_preferences.total_conversations + 1,
			updated_at = now()
		RETURNING user_email, preferred_persona, preferred_purpose, total_conversations, updated_at`,
		userEmail, persona, purpose,
	).Scan(&pref.UserEmail, &pref.Persona, &pref.Purpose, &pref.TotalConversations, &pref.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert preference: %w", err)
	}

	return &pref, nil
}

func (r *PreferencePostgres) GetPreference(ctx context.Context, userEmail, persona, purpose string) (*entity.PreferenceAggregate, error) {
	var pref entity.PreferenceAggregate
	err := r.db.QueryRow(ctx, `
		SELECT user_email, preferred_persona, preferred_purpose, total_conversations, updated_at
		FROM user_preferences
		WHERE user_email = $1 AND preferred_persona = $2 AND preferred_purpose = $3`,
		userEmail, persona, purpose,
	).Scan(&pref.UserEmail, &pref.Persona, &pref.Purpose, &pref.TotalConversations, &pref.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preference: %w", err)
	}

	return &pref, nil
}

func (r *PreferencePostgres) ListPreferencesByUser(ctx context.Context, userEmail string) ([]*entity.PreferenceAggregate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_email, preferred_persona, preferred_purpose, total_conversations, updated_at
		FROM user_preferences
		WHERE user_email = $1
		ORDER BY updated_at DESC`,
		userEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*entity.PreferenceAggregate
	for rows.Next() {
		var pref entity.PreferenceAggregate
		if err := rows.Scan(&pref.UserEmail, &pref.Persona, &pref.Purpose, &pref.TotalConversations, &pref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		prefs = append(prefs, &pref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}

	return prefs, nil
}
