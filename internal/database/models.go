package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID                    uuid.UUID
	CandidateEmail        string
	ResumeSource          string
	MatchPercentage       float64
	PositionLevel         string
	AcceptanceProbability string
	ParseSource           string
	Result                json.RawMessage
	CreatedAt             time.Time
}

type ChatSession struct {
	ID             uuid.UUID
	AnalysisID     uuid.NullUUID
	CandidateEmail string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
