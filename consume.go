package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
	"github.com/muhammadolammi/hrworkflow/internal/worker"
)

//nolint:gochecknoglobals // Cobra boilerplate
var numWorkers int

//nolint:gochecknoglobals // Cobra boilerplate
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume queued analysis jobs from RabbitMQ",
	Long: `worker runs a pool of consumers on the analysis_requests queue. Each job
names a resume source and a job description; results are archived when
DB_URL is set and status updates go to the session_updates exchange.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if app.Config.RabbitMQURL == "" {
			return errors.New("empty RABBITMQ_URL in environment")
		}

		w := &worker.Worker{
			Load:     app.loader(),
			Analyzer: analysis.NewAnalyzer(app.Models, app.Redactor, app.Logger),
			Logger:   app.Logger,
		}
		if app.Archive != nil {
			w.Archive = app.Archive
		}
		if app.Events != nil {
			w.Notifier = app.Events
		}

		app.Logger.WithField("workers", numWorkers).Info("starting consumer worker pool")
		return w.StartPool(cmd.Context(), app.Config.RabbitMQURL, numWorkers)
	},
}
