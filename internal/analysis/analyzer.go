// Package analysis scores a resume against a job description with an LLM and
// recovers a usable result even when the model ignores the JSON contract.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/hrworkflow/internal/llm"
	"github.com/muhammadolammi/hrworkflow/internal/logging"
)

// Error is returned when the model call fails for any reason other than no
// provider being available. Reason has secrets redacted.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return "failed to analyze resume: " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Analyzer runs the resume analysis.
type Analyzer struct {
	models   llm.Source
	redactor *logging.Redactor
	logger   logrus.FieldLogger
}

// NewAnalyzer returns an Analyzer. redactor and logger may be nil.
func NewAnalyzer(models llm.Source, redactor *logging.Redactor, logger logrus.FieldLogger) *Analyzer {
	return &Analyzer{
		models:   models,
		redactor: redactor,
		logger:   logging.OrDiscard(logger),
	}
}

// Analyze scores resumeText against jobDescription with a single model call.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (CandidateAnalysis, error) {
	email, _ := ExtractEmail(resumeText)

	model, err := a.models.Model(ctx)
	if err != nil {
		if errors.Is(err, llm.ErrNoProviderAvailable) {
			return CandidateAnalysis{}, fmt.Errorf("failed to analyze resume: %w", err)
		}
		return CandidateAnalysis{}, a.fail(err)
	}

	raw, err := llm.InvokePrompt(ctx, model, analysisPrompt(resumeText, jobDescription))
	if err != nil {
		return CandidateAnalysis{}, a.fail(err)
	}

	result := ParseResponse(raw)
	if result.Source == SourceManual {
		a.logger.Warn("failed to parse JSON response, extracted fields manually")
	}
	result.CandidateEmail = email
	result.ResumeText = resumeText

	a.logger.WithFields(logrus.Fields{
		"match_percentage": result.MatchPercentage,
		"position_level":   result.PositionLevel,
		"email_found":      result.HasEmail(),
		"source":           result.Source,
	}).Info("resume analyzed")

	return result, nil
}

func (a *Analyzer) fail(err error) error {
	reason := a.redactor.Redact(err.Error())
	a.logger.WithField("reason", reason).Error("error during resume analysis")
	return &Error{Reason: reason, Err: err}
}
