package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createAnalysis = `-- name: CreateAnalysis :exec
INSERT INTO analyses (
id, candidate_email, resume_source, match_percentage, position_level, acceptance_probability, parse_source, result)
VALUES ( $1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateAnalysisParams struct {
	ID                    uuid.UUID
	CandidateEmail        string
	ResumeSource          string
	MatchPercentage       float64
	PositionLevel         string
	AcceptanceProbability string
	ParseSource           string
	Result                json.RawMessage
}

func (q *Queries) CreateAnalysis(ctx context.Context, arg CreateAnalysisParams) error {
	_, err := q.db.ExecContext(ctx, createAnalysis,
		arg.ID,
		arg.CandidateEmail,
		arg.ResumeSource,
		arg.MatchPercentage,
		arg.PositionLevel,
		arg.AcceptanceProbability,
		arg.ParseSource,
		arg.Result,
	)
	return err
}

const listAnalysesByEmail = `-- name: ListAnalysesByEmail :many
SELECT id, candidate_email, resume_source, match_percentage, position_level, acceptance_probability, parse_source, result, created_at FROM analyses
WHERE candidate_email=$1
ORDER BY created_at DESC
LIMIT $2
`

type ListAnalysesByEmailParams struct {
	CandidateEmail string
	Limit          int32
}

func (q *Queries) ListAnalysesByEmail(ctx context.Context, arg ListAnalysesByEmailParams) ([]Analysis, error) {
	rows, err := q.db.QueryContext(ctx, listAnalysesByEmail, arg.CandidateEmail, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Analysis
	for rows.Next() {
		var i Analysis
		if err := rows.Scan(
			&i.ID,
			&i.CandidateEmail,
			&i.ResumeSource,
			&i.MatchPercentage,
			&i.PositionLevel,
			&i.AcceptanceProbability,
			&i.ParseSource,
			&i.Result,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
