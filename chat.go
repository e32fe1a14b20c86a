package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muhammadolammi/hrworkflow/internal/conversation"
	"github.com/muhammadolammi/hrworkflow/internal/mail"
)

//nolint:gochecknoglobals // Cobra boilerplate
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about a candidate, then draft and send them email",
	Long: `chat analyzes the resume once and opens a conversation about the candidate.

  "draft email inviting them to interview, subject: Interview"  generates a draft
  "send it"                                                    sends the last draft
  "summary"                                                    prints the candidate summary
  "exit"                                                       ends the session`,
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
		name := hrName
		if name == "" {
			name = app.Config.HRName
		}
		sess := conversation.NewSession(run.Result, run.JobDescription, "", name)
		app.recordSession(cmd.Context(), sess, run.ArchiveID)

		agent := &conversation.Agent{
			Models:   app.Models,
			Sender:   app.sender(),
			Defaults: app.smtpDefaults(),
			Notifier: app.notifier(),
			Logger:   app.Logger,
		}
		return runChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), agent, sess, smtpFlags)
	},
}

// runChat reads one utterance per line until EOF or "exit".
func runChat(ctx context.Context, in io.Reader, out io.Writer, agent *conversation.Agent, sess *conversation.Session, overrides mail.Credentials) error {
	fmt.Fprintf(out, "%s\n\nAsk about the candidate, or type 'exit' to quit.\n", sess.Summary())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "summary":
			fmt.Fprintln(out, sess.Summary())
			continue
		}

		reply, err := agent.Handle(ctx, sess, line, overrides)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, reply.Text)
	}
}
