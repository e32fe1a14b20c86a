package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muhammadolammi/hrworkflow/internal/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "hrworkflow",
	Short: "Analyze resumes, chat about candidates and manage HR email",
	Long: `hrworkflow scores a resume against a job description with an LLM,
lets you ask follow-up questions about the candidate, drafts and sends email
to them over SMTP and triages the HR inbox over IMAP.

Providers are tried in order: Gemini, DeepSeek, Anthropic.`,
	SilenceUsage: true,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// setup loads configuration and builds the shared dependencies.
func setup(cmd *cobra.Command) (*appConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg, verbose, smtpFlags.Secret)
}
