package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chasingbytes/resume/backend/internal/config"
	"github.com/chasingbytes/resume/backend/internal/model/profile"
	"github.com/chasingbytes/resume/backend/internal/service/ai"
	"github.com/chasingbytes/resume/backend/internal/service/assistant"
)

type options struct {
	timeout     time.Duration
	policy      string
	profilePath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "asker [question...]",
		Short: "Ask the résumé assistant questions from the terminal",
		Long: `Ask the résumé assistant questions from the terminal.

With arguments, the joined arguments are asked as a single question.
Without arguments, questions are read one per line from stdin; when stdin
is a terminal an interactive prompt is shown. Type "exit" to leave.

Configuration is read from the environment and .env, as for the server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Completion timeout (default from AI_TIMEOUT_SECONDS)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "Concurrency policy: queue or reject (default from ASSISTANT_CONCURRENCY)")
	cmd.Flags().StringVar(&opts.profilePath, "profile", "", "Profile YAML file (default from PROFILE_FILE, else built-in)")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	log.SetOutput(cmd.ErrOrStderr())
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	profilePath := cfg.Content.ProfileFile
	if opts.profilePath != "" {
		profilePath = opts.profilePath
	}
	resume, err := profile.Load(profilePath)
	if err != nil {
		return err
	}

	policy := cfg.Assistant.Policy
	if opts.policy != "" {
		if policy, err = assistant.ParsePolicy(opts.policy); err != nil {
			return err
		}
	}

	// The flag bounds both the session wait and the client's own transport timeout.
	if opts.timeout > 0 {
		cfg.AI.Timeout = opts.timeout
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	completer, err := ai.NewCompleter(ctx, cfg.AI)
	if err != nil {
		return err
	}

	session := assistant.NewSession("cli", ai.BuildPersonaDescriptor(resume), completer, assistant.Options{
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
		Policy:  policy,
	})

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		return askOnce(ctx, session, strings.Join(args, " "), out, resume.AssistantName)
	}

	interactive := false
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return askLines(ctx, session, cmd.InOrStdin(), out, resume.AssistantName, interactive)
}

func askOnce(ctx context.Context, session *assistant.Session, question string, out io.Writer, assistantName string) error {
	entry, err := session.SubmitQuery(ctx, question)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintln(out, renderEntry(entry, assistantName))
	return nil
}

// askLines asks every non-blank input line in turn. Failures are reported and
// the loop continues; the transcript is printed at the end when not interactive.
func askLines(ctx context.Context, session *assistant.Session, in io.Reader, out io.Writer, assistantName string, interactive bool) error {
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, promptStyle.Render("ask> "))
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		entry, err := session.SubmitQuery(ctx, line)
		if err != nil {
			fmt.Fprintln(out, renderError(describe(err)))
			continue
		}
		if interactive {
			fmt.Fprintln(out, renderEntry(entry, assistantName))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if !interactive {
		fmt.Fprint(out, renderTranscript(session.Transcript(), assistantName))
	}
	return nil
}

func describe(err error) error {
	var completionErr *assistant.CompletionError
	switch {
	case errors.As(err, &completionErr) && errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("the assistant took too long to answer: %w", err)
	case errors.As(err, &completionErr):
		return fmt.Errorf("the assistant could not answer: %w", err)
	default:
		return err
	}
}
