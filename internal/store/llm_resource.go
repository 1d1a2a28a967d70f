package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LLMResourceStore persists provider LLM resources so ones left without an
// agent can be found and cleaned up on the provider side.
type LLMResourceStore struct {
	db *pgxpool.Pool
}

func NewLLMResourceStore(db *pgxpool.Pool) *LLMResourceStore {
	return &LLMResourceStore{db: db}
}

func (s *LLMResourceStore) Record(ctx context.Context, rec *domain.LLMRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO llm_resources (llm_id, version, provider, agent_name, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.LLMID, rec.Version, string(rec.Provider), rec.AgentName, rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *LLMResourceStore) MarkAttached(ctx context.Context, llmID, agentID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE llm_resources SET agent_id = $2, attached_at = now() WHERE llm_id = $1`,
		llmID, agentID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUnattached returns LLM resources no agent ever referenced, oldest first.
func (s *LLMResourceStore) ListUnattached(ctx context.Context, limit int) ([]domain.LLMRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT llm_id, version, provider, agent_name, created_at
		 FROM llm_resources WHERE agent_id IS NULL
		 ORDER BY created_at ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LLMRecord, error) {
		var rec domain.LLMRecord
		var provider string
		err := row.Scan(&rec.LLMID, &rec.Version, &provider, &rec.AgentName, &rec.CreatedAt)
		rec.Provider = domain.Provider(provider)
		return rec, err
	})
}
