package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"ffwizard/internal/config"
)

const (
	ExitOK             = 0
	ExitCLIError       = 1
	ExitMissingDep     = 2
	ExitTranscodeError = 4
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

type ctxKey string

const settingsKey ctxKey = "settings"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ffwizard",
		Short: "Build and run ffmpeg commands from a few questions",
		Long: "ffwizard asks which video to transcode, the output size, codec, CPU or NVIDIA GPU encoder and a quality level, " +
			"then assembles the matching ffmpeg command and runs it. Run it without a subcommand for the interactive session.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: loadSettings,
		RunE:              runInteractive,
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newPlanCmd())
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.Load(cmd.Root())
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	cmd.SetContext(context.WithValue(cmd.Context(), settingsKey, s))
	return nil
}

func settingsFrom(cmd *cobra.Command) config.Settings {
	if s, ok := cmd.Context().Value(settingsKey).(config.Settings); ok {
		return s
	}
	return config.Settings{Dir: "."}
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}
