package database

import (
	"context"

	"github.com/google/uuid"
)

const createChatSession = `-- name: CreateChatSession :exec
INSERT INTO chat_sessions (
id, analysis_id, candidate_email, status)
VALUES ( $1, $2, $3, $4)
`

type CreateChatSessionParams struct {
	ID             uuid.UUID
	AnalysisID     uuid.NullUUID
	CandidateEmail string
	Status         string
}

func (q *Queries) CreateChatSession(ctx context.Context, arg CreateChatSessionParams) error {
	_, err := q.db.ExecContext(ctx, createChatSession,
		arg.ID,
		arg.AnalysisID,
		arg.CandidateEmail,
		arg.Status,
	)
	return err
}

const updateChatSessionStatus = `-- name: UpdateChatSessionStatus :exec
UPDATE chat_sessions
SET status=$1, updated_at=CURRENT_TIMESTAMP
WHERE id=$2
`

type UpdateChatSessionStatusParams struct {
	Status string
	ID     uuid.UUID
}

func (q *Queries) UpdateChatSessionStatus(ctx context.Context, arg UpdateChatSessionStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateChatSessionStatus, arg.Status, arg.ID)
	return err
}
