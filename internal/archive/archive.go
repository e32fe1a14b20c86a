// Package archive records analyses and chat session status in Postgres.
package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
	"github.com/muhammadolammi/hrworkflow/internal/conversation"
	"github.com/muhammadolammi/hrworkflow/internal/database"
)

const StatusActive = "active"

// Querier is the subset of database.Queries the store uses.
type Querier interface {
	CreateAnalysis(ctx context.Context, arg database.CreateAnalysisParams) error
	ListAnalysesByEmail(ctx context.Context, arg database.ListAnalysesByEmailParams) ([]database.Analysis, error)
	CreateChatSession(ctx context.Context, arg database.CreateChatSessionParams) error
	UpdateChatSessionStatus(ctx context.Context, arg database.UpdateChatSessionStatusParams) error
}

// Store implements conversation.Notifier by tracking session status.
type Store struct {
	q Querier
}

func New(q Querier) *Store {
	return &Store{q: q}
}

// SaveAnalysis stores an analysis and returns its id.
func (s *Store) SaveAnalysis(ctx context.Context, resumeSource string, a analysis.CandidateAnalysis) (uuid.UUID, error) {
	result, err := json.Marshal(a)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	id := uuid.New()
	err = s.q.CreateAnalysis(ctx, database.CreateAnalysisParams{
		ID:                    id,
		CandidateEmail:        a.CandidateEmail,
		ResumeSource:          resumeSource,
		MatchPercentage:       a.MatchPercentage,
		PositionLevel:         string(a.PositionLevel),
		AcceptanceProbability: string(a.AcceptanceProbability),
		ParseSource:           string(a.Source),
		Result:                result,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("error saving analysis: %w", err)
	}
	return id, nil
}

// History returns up to limit stored analyses for a candidate, newest first.
func (s *Store) History(ctx context.Context, email string, limit int32) ([]analysis.CandidateAnalysis, error) {
	rows, err := s.q.ListAnalysesByEmail(ctx, database.ListAnalysesByEmailParams{
		CandidateEmail: email,
		Limit:          limit,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing analyses for %s: %w", email, err)
	}
	out := make([]analysis.CandidateAnalysis, 0, len(rows))
	for _, row := range rows {
		var a analysis.CandidateAnalysis
		if err := json.Unmarshal(row.Result, &a); err != nil {
			return nil, fmt.Errorf("failed to decode analysis %s: %w", row.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// StartSession records a new chat session. analysisID may be uuid.Nil.
func (s *Store) StartSession(ctx context.Context, sess *conversation.Session, analysisID uuid.UUID) error {
	err := s.q.CreateChatSession(ctx, database.CreateChatSessionParams{
		ID:             sess.ID,
		AnalysisID:     uuid.NullUUID{UUID: analysisID, Valid: analysisID != uuid.Nil},
		CandidateEmail: sess.CandidateEmail,
		Status:         StatusActive,
	})
	if err != nil {
		return fmt.Errorf("error creating chat session: %w", err)
	}
	return nil
}

// Notify implements conversation.Notifier.
func (s *Store) Notify(ctx context.Context, e conversation.Event) error {
	return s.q.UpdateChatSessionStatus(ctx, database.UpdateChatSessionStatusParams{
		Status: string(e.Type),
		ID:     e.SessionID,
	})
}
