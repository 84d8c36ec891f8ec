// Package pipeline resolves selections into ffmpeg commands and drives the
// interactive session.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"ffwizard/internal/encoder"
	"ffwizard/internal/model"
	"ffwizard/internal/progress"
	"ffwizard/internal/util"
	"ffwizard/internal/util/format"
)

var (
	// ErrNoCandidateInput means the scan found nothing to transcode.
	ErrNoCandidateInput = errors.New("no candidate input files")
	// ErrAborted is returned by a Prompter when the user cancels a prompt.
	ErrAborted = errors.New("aborted")
	// ErrExecutor matches every ffmpeg launch or exit failure.
	ErrExecutor = errors.New("encoding failed")
)

// NoCandidateLabel is the only choice offered when the scan comes back empty.
const NoCandidateLabel = "There's no video .mp4 or .mkv in this directory"

// Prompt messages, in the order they are asked.
const (
	MsgInput      = "Select the video you want to process"
	MsgResolution = "Select the output resolution"
	MsgCodec      = "Select the video codec you want"
	MsgDevice     = "Select if you want to use CPU or GPU"
	MsgQuality    = "Select the video quality you want"
	MsgName       = "Choose the filename?"
	MsgDate       = "Do you want to include today's date in the filename ?"
	MsgAgain      = "Do you want to process another file ?"
)

// Prompter asks the user one question at a time. Select must return one of
// choices; a cancelled prompt returns ErrAborted.
type Prompter interface {
	Select(ctx context.Context, message string, choices []string, def string) (string, error)
	Input(ctx context.Context, message, def string) (string, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

// Scanner lists candidate inputs in dir.
type Scanner func(dir string) ([]string, error)

// Defaults pre-select prompt answers.
type Defaults struct {
	Resolution  model.Resolution
	Codec       model.CodecFamily
	Device      model.DeviceClass
	Quality     model.QualityTier
	IncludeDate bool
	Continue    bool // pre-selected answer to MsgAgain
}

// DefaultDefaults returns the built-in prompt defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Resolution:  model.Resolution{Width: 1920, Height: 1080},
		Codec:       model.CodecH264,
		Device:      model.DeviceSoftware,
		Quality:     model.QualityHigh,
		IncludeDate: true,
	}
}

// State of the session loop.
type State int

const (
	StateAwaitingInput State = iota
	StateDone
)

func (s State) String() string {
	if s == StateDone {
		return "done"
	}
	return "awaiting-input"
}

// ExecutorError reports a failed ffmpeg run. It matches ErrExecutor.
type ExecutorError struct {
	OutputPath string
	Err        error
}

func (e *ExecutorError) Error() string { return e.Err.Error() }
func (e *ExecutorError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrExecutor) true.
func (e *ExecutorError) Is(target error) bool { return target == ErrExecutor }

// Session runs the prompt → plan → encode → continue loop.
type Session struct {
	prompter   Prompter
	scan       Scanner
	runner     util.CmdRunner
	now        func() time.Time
	reporter   progress.Reporter
	ffmpegPath string
	workDir    string
	exts       []string
	defaults   Defaults
	verbose    bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	state State
}

// Option configures a Session.
type Option func(*Session)

// WithPrompter sets the interactive prompter. Required.
func WithPrompter(p Prompter) Option {
	return func(s *Session) {
		s.prompter = p
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Session) {
		s.runner = r
	}
}

// WithScanner replaces the directory scan.
func WithScanner(fn Scanner) Option {
	return func(s *Session) {
		s.scan = fn
	}
}

// WithExtensions sets the extensions the default scanner accepts.
func WithExtensions(exts []string) Option {
	return func(s *Session) {
		s.exts = exts
	}
}

// WithClock sets the time source for the date suffix.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithReporter attaches a progress reporter.
func WithReporter(rp progress.Reporter) Option {
	return func(s *Session) {
		s.reporter = rp
	}
}

// WithFFmpegPath sets the ffmpeg binary path.
func WithFFmpegPath(p string) Option {
	return func(s *Session) {
		s.ffmpegPath = p
	}
}

// WithWorkDir sets the directory that is scanned and that ffmpeg runs in.
func WithWorkDir(dir string) Option {
	return func(s *Session) {
		s.workDir = dir
	}
}

// WithDefaults sets the pre-selected prompt answers.
func WithDefaults(d Defaults) Option {
	return func(s *Session) {
		s.defaults = d
	}
}

// WithVerbose echoes each ffmpeg command line before it runs.
func WithVerbose(v bool) Option {
	return func(s *Session) {
		s.verbose = v
	}
}

// WithStdio sets the streams handed to ffmpeg.
func WithStdio(in io.Reader, out, errw io.Writer) Option {
	return func(s *Session) {
		s.stdin = in
		s.stdout = out
		s.stderr = errw
	}
}

// NewSession constructs a Session, filling in defaults for missing
// collaborators.
func NewSession(opts ...Option) *Session {
	s := &Session{
		defaults: DefaultDefaults(),
		workDir:  ".",
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = util.NewDefaultRunner()
	}
	if s.scan == nil {
		exts := s.exts
		s.scan = func(dir string) ([]string, error) {
			return util.ScanCandidates(dir, exts)
		}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.reporter == nil {
		s.reporter = progress.Nop{}
	}
	if s.ffmpegPath == "" {
		s.ffmpegPath = "ffmpeg"
	}
	return s
}

// State returns the current loop state.
func (s *Session) State() State { return s.state }

// Run loops until the user declines to continue, picks the "nothing found"
// entry, or cancels a prompt. Encoding failures are reported and do not stop
// the loop.
func (s *Session) Run(ctx context.Context) error {
	if s.prompter == nil {
		return errors.New("pipeline: no prompter configured")
	}
	s.state = StateAwaitingInput
	for s.state == StateAwaitingInput {
		next, err := s.iterate(ctx)
		if errors.Is(err, ErrNoCandidateInput) {
			s.state = StateDone
			return nil
		}
		if err != nil {
			s.state = StateDone
			return err
		}
		s.state = next
	}
	return nil
}

func (s *Session) iterate(ctx context.Context) (State, error) {
	sel, err := s.collect(ctx)
	if err != nil {
		return StateDone, err
	}

	pl, err := BuildPlan(sel, s.now())
	if err != nil {
		return StateDone, err
	}
	s.execute(ctx, pl)

	again, err := s.prompter.Confirm(ctx, MsgAgain, s.defaults.Continue)
	if err != nil {
		return StateDone, err
	}
	if !again {
		return StateDone, nil
	}
	return StateAwaitingInput, nil
}

// collect asks every question in order and returns a valid Selection.
func (s *Session) collect(ctx context.Context) (model.Selection, error) {
	var sel model.Selection

	s.reporter.Update(progress.Update{Stage: progress.StageScanning, Message: "Scanning " + s.workDir})
	files, err := s.scan(s.workDir)
	if err != nil {
		return sel, errors.Wrap(err, "scan candidates")
	}
	choices := files
	if len(choices) == 0 {
		choices = []string{NoCandidateLabel}
	}
	in, err := s.selectOne(ctx, MsgInput, choices, "")
	if err != nil {
		return sel, err
	}
	if len(files) == 0 {
		return sel, ErrNoCandidateInput
	}
	sel.Input = model.InputSource(in)

	resChoices := model.ResolutionChoices()
	labels := make([]string, len(resChoices))
	for i, r := range resChoices {
		labels[i] = r.String()
	}
	ans, err := s.selectOne(ctx, MsgResolution, labels, s.defaults.Resolution.String())
	if err != nil {
		return sel, err
	}
	if sel.Resolution, err = model.ParseResolution(ans); err != nil {
		return sel, err
	}

	if ans, err = s.selectOne(ctx, MsgCodec, labelsOf(model.Codecs()), s.defaults.Codec.String()); err != nil {
		return sel, err
	}
	if sel.Codec, err = model.ParseCodec(ans); err != nil {
		return sel, err
	}

	if ans, err = s.selectOne(ctx, MsgDevice, labelsOf(model.Devices()), s.defaults.Device.String()); err != nil {
		return sel, err
	}
	if sel.Device, err = model.ParseDevice(ans); err != nil {
		return sel, err
	}

	if ans, err = s.selectOne(ctx, MsgQuality, labelsOf(model.Qualities()), s.defaults.Quality.String()); err != nil {
		return sel, err
	}
	if sel.Quality, err = model.ParseQuality(ans); err != nil {
		return sel, err
	}

	for {
		name, err := s.prompter.Input(ctx, MsgName, "")
		if err != nil {
			return sel, err
		}
		sel.Output.Base = name
		if sel.Output.Valid() {
			break
		}
		s.reporter.Update(progress.Update{Stage: progress.StageError, Message: model.ErrInvalidOutputName.Error()})
	}

	if sel.Output.IncludeDate, err = s.prompter.Confirm(ctx, MsgDate, s.defaults.IncludeDate); err != nil {
		return sel, err
	}
	return sel, nil
}

// selectOne wraps Prompter.Select and rejects answers outside choices.
func (s *Session) selectOne(ctx context.Context, msg string, choices []string, def string) (string, error) {
	ans, err := s.prompter.Select(ctx, msg, choices, def)
	if err != nil {
		return "", err
	}
	for _, c := range choices {
		if c == ans {
			return ans, nil
		}
	}
	return "", errors.Errorf("prompt %q returned %q, which is not an offered choice", msg, ans)
}

// execute runs ffmpeg for the plan and reports the outcome. Failures are
// reported, never returned.
func (s *Session) execute(ctx context.Context, pl Plan) {
	s.reporter.Update(progress.Update{
		Stage:   progress.StageEncoding,
		Message: fmt.Sprintf("Encoding %s → %s", pl.Input, pl.OutputPath),
		Command: pl.CommandLine(s.ffmpegPath),
	})

	out, err := encoder.Encode(ctx, pl.Args, encoder.Options{
		FFmpegPath: s.ffmpegPath,
		WorkDir:    s.workDir,
		Verbose:    s.verbose,
		Runner:     s.runner,
		Stdin:      s.stdin,
		Stdout:     s.stdout,
		Stderr:     s.stderr,
		Echo:       s.stderr,
	})
	if err != nil {
		xerr := &ExecutorError{OutputPath: pl.OutputPath, Err: err}
		s.reporter.Update(progress.Update{Stage: progress.StageError, Message: xerr.Error()})
		s.reporter.Result(progress.Result{OutputPath: pl.OutputPath, Err: xerr})
		return
	}

	s.reporter.Update(progress.Update{
		Stage:   progress.StageCompleted,
		Message: fmt.Sprintf("Saved: %s (%s)", filepath.Base(out.OutputPath), format.HumanizeBytes(out.Bytes)),
	})
	s.reporter.Result(progress.Result{OutputPath: out.OutputPath, Bytes: out.Bytes})
}

func labelsOf[T fmt.Stringer](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}
