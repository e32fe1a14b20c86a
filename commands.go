package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
	"github.com/muhammadolammi/hrworkflow/internal/export"
	"github.com/muhammadolammi/hrworkflow/internal/inbox"
	"github.com/muhammadolammi/hrworkflow/internal/mail"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	resumeSource string
	jdSource     string
	jdText       string
	xlsxPath     string
	jsonOutput   bool
	maxEmails    int
	draftReplies bool
	composeTo    string
	composeSend  bool
	hrName       string
	smtpFlags    mail.Credentials
	historyEmail string
	historyLimit int32
)

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Example: `  hrworkflow analyze --resume ./cv.pdf --jd ./job.docx
  hrworkflow analyze --resume r2://resumes/cv.pdf --jd-text "Senior Go engineer" --xlsx report.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		run, err := analyzeResume(cmd, app)
		if err != nil {
			return err
		}
		result := run.Result

		if xlsxPath != "" {
			path, err := export.WriteAnalysis(result, resumeSource, xlsxPath)
			if err != nil {
				return err
			}
			app.Logger.WithField("path", path).Info("report written")
		}
		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printAnalysis(cmd.OutOrStdout(), result)
		return nil
	},
}

//nolint:gochecknoglobals // Cobra boilerplate
var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Fetch, summarize and classify recent inbox messages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		fetcher := &mail.IMAPFetcher{Timeout: app.Config.NetworkTimeout, Logger: app.Logger}
		emails, err := fetcher.Fetch(cmd.Context(), app.imapCredentials(), maxEmails)
		if err != nil {
			return err
		}
		assistant := &inbox.Assistant{Models: app.Models, Logger: app.Logger}
		out := cmd.OutOrStdout()
		for _, e := range emails {
			summary, err := assistant.Summarize(cmd.Context(), e)
			if err != nil {
				return err
			}
			category, err := assistant.Classify(cmd.Context(), e)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "[%s] %s\nFrom: %s\nCategory: %s\nSummary: %s\n", e.ID, e.Subject, e.From, category, summary)
			if draftReplies && category != inbox.CategorySpam {
				reply, err := assistant.Reply(cmd.Context(), e, summary, senderName(e.From), app.Config.HRName)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nSuggested reply:\n%s\n", reply)
			}
			fmt.Fprintln(out, strings.Repeat("-", 40))
		}
		return nil
	},
}

//nolint:gochecknoglobals // Cobra boilerplate
var composeCmd = &cobra.Command{
	Use:   "compose <instruction>",
	Short: "Write a free-form email and optionally send it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		req := inbox.ComposeRequest{Instruction: strings.Join(args, " ")}
		if resumeSource != "" {
			run, err := analyzeResume(cmd, app)
			if err != nil {
				return err
			}
			req.Candidate, req.JobDescription = &run.Result, run.JobDescription
			if composeTo == "" {
				composeTo = run.Result.CandidateEmail
			}
		}

		assistant := &inbox.Assistant{Models: app.Models, Logger: app.Logger}
		composed, err := assistant.Compose(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", composed.Subject, composed.Body)
		if !composeSend {
			return nil
		}
		if composeTo == "" {
			return errors.New("no recipient: pass --to")
		}
		creds := smtpFlags.Resolve(app.smtpDefaults())
		if err := app.sender().Send(cmd.Context(), creds, mail.Message{To: composeTo, Subject: composed.Subject, Body: composed.Body}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Email sent successfully to %s!\n", composeTo)
		return nil
	},
}

//nolint:gochecknoglobals // Cobra boilerplate
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived analyses for a candidate email",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if app.Archive == nil {
			return errors.New("empty DB_URL in environment")
		}
		results, err := app.Archive.History(cmd.Context(), historyEmail, historyLimit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No analyses archived for %s\n", historyEmail)
			return nil
		}
		for _, r := range results {
			printAnalysis(cmd.OutOrStdout(), r)
			fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 40))
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	for _, c := range []*cobra.Command{analyzeCmd, chatCmd, composeCmd} {
		c.Flags().StringVar(&resumeSource, "resume", "", "resume file (pdf, docx, txt) or r2://<key>")
		c.Flags().StringVar(&jdSource, "jd", "", "job description file or r2://<key>")
		c.Flags().StringVar(&jdText, "jd-text", "", "job description text")
	}
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = chatCmd.MarkFlagRequired("resume")
	analyzeCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an Excel report to this path")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the analysis as JSON")

	for _, c := range []*cobra.Command{chatCmd, composeCmd} {
		c.Flags().StringVar(&smtpFlags.Account, "smtp-user", "", "SMTP username (default EMAIL_USERNAME)")
		c.Flags().StringVar(&smtpFlags.Secret, "smtp-password", "", "SMTP password (default EMAIL_PASSWORD)")
		c.Flags().StringVar(&smtpFlags.Host, "smtp-host", "", "SMTP server (default EMAIL_SERVER)")
		c.Flags().IntVar(&smtpFlags.Port, "smtp-port", 0, "SMTP port (default EMAIL_PORT)")
	}
	chatCmd.Flags().StringVar(&hrName, "hr-name", "", "signature for email previews (default HR_NAME)")

	inboxCmd.Flags().IntVar(&maxEmails, "max", 10, "maximum number of messages to fetch")
	inboxCmd.Flags().BoolVar(&draftReplies, "reply", false, "draft a reply for each non-spam message")

	composeCmd.Flags().StringVar(&composeTo, "to", "", "recipient (default: the candidate from --resume)")
	composeCmd.Flags().BoolVar(&composeSend, "send", false, "send the composed email")

	workerCmd.Flags().IntVar(&numWorkers, "workers", 3, "number of consumers")

	historyCmd.Flags().StringVar(&historyEmail, "email", "", "candidate email")
	historyCmd.Flags().Int32Var(&historyLimit, "limit", 10, "maximum number of analyses")
	_ = historyCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(analyzeCmd, chatCmd, inboxCmd, composeCmd, historyCmd, workerCmd)
}

// analyzed is one scored resume. ArchiveID is uuid.Nil when the analysis was
// not archived.
type analyzed struct {
	Result         analysis.CandidateAnalysis
	JobDescription string
	ArchiveID      uuid.UUID
}

// analyzeResume loads both documents, runs the analysis and archives it.
func analyzeResume(cmd *cobra.Command, app *appConfig) (analyzed, error) {
	ctx := cmd.Context()
	jd, err := jobDescription(cmd, app)
	if err != nil {
		return analyzed{}, err
	}
	resumeText, err := app.loader()(ctx, resumeSource)
	if err != nil {
		return analyzed{}, err
	}

	analyzer := analysis.NewAnalyzer(app.Models, app.Redactor, app.Logger)
	result, err := analyzer.Analyze(ctx, resumeText, jd)
	if err != nil {
		return analyzed{}, err
	}
	return analyzed{
		Result:         result,
		JobDescription: jd,
		ArchiveID:      app.archiveAnalysis(ctx, resumeSource, result),
	}, nil
}

func jobDescription(cmd *cobra.Command, app *appConfig) (string, error) {
	switch {
	case jdText != "":
		return jdText, nil
	case jdSource != "":
		return app.loader()(cmd.Context(), jdSource)
	}
	return "", errors.New("a job description is required: pass --jd or --jd-text")
}

func printAnalysis(w io.Writer, a analysis.CandidateAnalysis) {
	email := a.CandidateEmail
	if email == "" {
		email = "not found"
	}
	fmt.Fprintf(w, "Candidate Email: %s\n", email)
	fmt.Fprintf(w, "Match: %v%%\n", a.MatchPercentage)
	fmt.Fprintf(w, "Position Level: %s\n", a.PositionLevel)
	fmt.Fprintf(w, "Acceptance Probability: %s\n", a.AcceptanceProbability)
	if a.AcceptanceReasoning != "" {
		fmt.Fprintf(w, "Reasoning: %s\n", a.AcceptanceReasoning)
	}
	if len(a.KeyStrengths) > 0 {
		fmt.Fprintf(w, "Key Strengths: %s\n", strings.Join(a.KeyStrengths, ", "))
	}
	if len(a.KeyGaps) > 0 {
		fmt.Fprintf(w, "Key Gaps: %s\n", strings.Join(a.KeyGaps, ", "))
	}
	if a.Recommendation != "" {
		fmt.Fprintf(w, "Recommendation: %s\n", a.Recommendation)
	}
	fmt.Fprintf(w, "\n%s\n", a.DetailedAnalysis)
}

// senderName returns the display name of a From header, or its address.
func senderName(from string) string {
	if i := strings.Index(from, "<"); i > 0 {
		return strings.Trim(strings.TrimSpace(from[:i]), `"`)
	}
	return strings.Trim(strings.TrimSpace(from), "<>")
}
