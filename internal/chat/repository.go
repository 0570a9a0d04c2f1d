package chat

import (
	"context"
	"database/sql"
)

// Repository persists session transcripts for later review. Conversation
// state itself is never stored; losing the database only loses the log.
type Repository interface {
	SaveMessage(ctx context.Context, sessionID string, role MessageRole, content string) error
	Transcript(ctx context.Context, sessionID string) ([]Message, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) SaveMessage(ctx context.Context, sessionID string, role MessageRole, content string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content) VALUES ($1, $2, $3)`,
		sessionID, role, content,
	)
	return err
}

func (r *postgresRepo) Transcript(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, created_at
         FROM messages
         WHERE session_id = $1
         ORDER BY created_at ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
