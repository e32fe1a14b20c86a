package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
	"github.com/muhammadolammi/hrworkflow/internal/archive"
	"github.com/muhammadolammi/hrworkflow/internal/config"
	"github.com/muhammadolammi/hrworkflow/internal/conversation"
	"github.com/muhammadolammi/hrworkflow/internal/database"
	"github.com/muhammadolammi/hrworkflow/internal/events"
	"github.com/muhammadolammi/hrworkflow/internal/llm"
	"github.com/muhammadolammi/hrworkflow/internal/logging"
	"github.com/muhammadolammi/hrworkflow/internal/mail"
	"github.com/muhammadolammi/hrworkflow/internal/storage"
)

// appConfig holds everything the commands share. Archive, Events and Storage
// are nil when their settings are absent.
type appConfig struct {
	Config   config.Config
	Logger   *logrus.Logger
	Redactor *logging.Redactor
	Models   llm.Source

	DB      *sql.DB
	Archive *archive.Store
	Events  *events.Publisher
	Storage *storage.R2
}

// newApp builds the shared dependencies. flagSecrets are credentials passed on
// the command line; they are redacted alongside the configured ones.
func newApp(ctx context.Context, cfg config.Config, verbose bool, flagSecrets ...string) (*appConfig, error) {
	secrets := append(cfg.Secrets(), flagSecrets...)
	logger := logging.New(verbose, secrets...)
	app := &appConfig{
		Config:   cfg,
		Logger:   logger,
		Redactor: logging.NewRedactor(secrets...),
		Models: llm.NewCached(&llm.Resolver{
			Providers: providerChain(cfg),
			Logger:    logger,
		}),
	}

	if cfg.DBURL != "" {
		db, err := sql.Open("postgres", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("error opening db: %w", err)
		}
		app.DB = db
		app.Archive = archive.New(database.New(db))
	}

	if cfg.RabbitMQURL != "" {
		pub, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.WithError(err).Warn("session events disabled")
		} else {
			app.Events = pub
		}
	}

	if cfg.R2.Enabled() {
		r2, err := storage.NewR2(ctx, cfg.R2)
		if err != nil {
			return nil, err
		}
		app.Storage = r2
	}
	return app, nil
}

// Close releases the optional connections.
func (a *appConfig) Close() {
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			a.Logger.WithError(err).Warn("error closing RabbitMQ connection")
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.WithError(err).Warn("error closing db")
		}
	}
}

func (a *appConfig) smtpDefaults() mail.Credentials {
	return mail.Credentials{
		Account: a.Config.SMTP.Username,
		Secret:  a.Config.SMTP.Password,
		Host:    a.Config.SMTP.Server,
		Port:    a.Config.SMTP.Port,
	}
}

func (a *appConfig) imapCredentials() mail.Credentials {
	return mail.Credentials{
		Account: a.Config.IMAP.Username,
		Secret:  a.Config.IMAP.Password,
		Host:    a.Config.IMAP.Server,
		Port:    a.Config.IMAP.Port,
	}
}

func (a *appConfig) sender() *mail.SMTPSender {
	return &mail.SMTPSender{Timeout: a.Config.NetworkTimeout, Logger: a.Logger}
}

// archiveAnalysis stores result when an archive is configured and returns its
// id, or uuid.Nil when nothing was stored.
func (a *appConfig) archiveAnalysis(ctx context.Context, resumeSource string, result analysis.CandidateAnalysis) uuid.UUID {
	if a.Archive == nil {
		return uuid.Nil
	}
	id, err := a.Archive.SaveAnalysis(ctx, resumeSource, result)
	if err != nil {
		a.Logger.WithError(err).Warn("analysis not archived")
		return uuid.Nil
	}
	return id
}

// recordSession links a new chat session to its archived analysis.
func (a *appConfig) recordSession(ctx context.Context, sess *conversation.Session, analysisID uuid.UUID) {
	if a.Archive == nil {
		return
	}
	if err := a.Archive.StartSession(ctx, sess, analysisID); err != nil {
		a.Logger.WithError(err).Warn("chat session not recorded")
	}
}

// notifier fans session events out to every configured sink.
func (a *appConfig) notifier() conversation.Notifier {
	var n notifiers
	if a.Archive != nil {
		n = append(n, a.Archive)
	}
	if a.Events != nil {
		n = append(n, a.Events)
	}
	if len(n) == 0 {
		return nil
	}
	return n
}

type notifiers []conversation.Notifier

func (n notifiers) Notify(ctx context.Context, e conversation.Event) error {
	var errs []error
	for _, sink := range n {
		if err := sink.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
