// Package worker consumes queued resume analysis jobs.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
	"github.com/muhammadolammi/hrworkflow/internal/conversation"
	"github.com/muhammadolammi/hrworkflow/internal/logging"
)

const Queue = "analysis_requests"

const (
	EventAnalysisStarted   conversation.EventType = "analysis_started"
	EventAnalysisCompleted conversation.EventType = "analysis_completed"
	EventAnalysisFailed    conversation.EventType = "analysis_failed"
)

// Job is one queued analysis request.
type Job struct {
	ID             uuid.UUID `json:"id"`
	ResumeSource   string    `json:"resume_source"`
	JobDescription string    `json:"job_description"`
}

// Loader turns a resume source into text.
type Loader func(ctx context.Context, source string) (string, error)

// Analyzer scores a resume.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (analysis.CandidateAnalysis, error)
}

// Archive stores a finished analysis.
type Archive interface {
	SaveAnalysis(ctx context.Context, resumeSource string, a analysis.CandidateAnalysis) (uuid.UUID, error)
}

// Worker processes jobs. Archive and Notifier are optional.
type Worker struct {
	Load     Loader
	Analyzer Analyzer
	Archive  Archive
	Notifier conversation.Notifier
	Logger   logrus.FieldLogger
}

// Handle decodes and runs one delivery body.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		w.publish(ctx, conversation.Event{Type: EventAnalysisFailed, SessionID: job.ID, Error: "invalid job"})
		return fmt.Errorf("error unmarshalling message body: %w", err)
	}
	logger := w.log().WithField("session_id", job.ID)
	logger.WithField("resume", job.ResumeSource).Info("processing analysis job")
	w.publish(ctx, conversation.Event{Type: EventAnalysisStarted, SessionID: job.ID})

	result, err := w.run(ctx, job)
	if err != nil {
		logger.WithError(err).Error("analysis job failed")
		w.publish(ctx, conversation.Event{Type: EventAnalysisFailed, SessionID: job.ID, Error: err.Error()})
		return err
	}
	logger.WithField("match_percentage", result.MatchPercentage).Info("analysis job completed")
	w.publish(ctx, conversation.Event{Type: EventAnalysisCompleted, SessionID: job.ID, Recipient: result.CandidateEmail})
	return nil
}

func (w *Worker) run(ctx context.Context, job Job) (analysis.CandidateAnalysis, error) {
	resumeText, err := w.Load(ctx, job.ResumeSource)
	if err != nil {
		return analysis.CandidateAnalysis{}, fmt.Errorf("text extraction error: %w", err)
	}
	result, err := w.Analyzer.Analyze(ctx, resumeText, job.JobDescription)
	if err != nil {
		return analysis.CandidateAnalysis{}, err
	}
	if w.Archive != nil {
		if _, err := w.Archive.SaveAnalysis(ctx, job.ResumeSource, result); err != nil {
			return analysis.CandidateAnalysis{}, fmt.Errorf("failed to save analysis: %w", err)
		}
	}
	return result, nil
}

func (w *Worker) publish(ctx context.Context, e conversation.Event) {
	if w.Notifier == nil {
		return
	}
	if err := w.Notifier.Notify(ctx, e); err != nil {
		w.log().WithError(err).Warn("failed to publish update")
	}
}

func (w *Worker) log() logrus.FieldLogger {
	return logging.OrDiscard(w.Logger)
}

// StartPool runs numWorkers consumers on Queue, one connection each, and
// blocks until every delivery channel closes or ctx is done.
func (w *Worker) StartPool(ctx context.Context, url string, numWorkers int) error {
	var wg sync.WaitGroup
	errs := make(chan error, numWorkers)
	for i := range numWorkers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := w.consume(ctx, url, id); err != nil {
				errs <- err
			}
		}(i + 1)
	}
	wg.Wait()
	close(errs)
	return <-errs
}

func (w *Worker) consume(ctx context.Context, url string, id int) error {
	logger := w.log().WithField("worker", id)
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		Queue, // queue name
		true,  // durable (survives broker restarts)
		false, // auto-delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	msgs, err := ch.Consume(
		Queue, // queue name
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq message: %w", err)
	}

	logger.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.Handle(ctx, msg.Body); err != nil {
				logger.WithError(err).Warn("job not completed")
			}
			if err := msg.Ack(false); err != nil {
				logger.WithError(err).Warn("failed to ack message")
			}
		}
	}
}
