package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"ffwizard/internal/progress"
	"ffwizard/internal/util"
)

type recordingReporter struct {
	updates []progress.Update
	results []progress.Result
}

func (r *recordingReporter) Update(u progress.Update) {
	r.updates = append(r.updates, u)
}
func (r *recordingReporter) Result(res progress.Result) {
	r.results = append(r.results, res)
}

// step is one expected prompt and the scripted answer.
type step struct {
	msg     string
	answer  string // Select/Input
	confirm bool   // Confirm
	err     error
}

type scriptedPrompter struct {
	t     *testing.T
	steps []step
	asked []string
	// offered records the choices of each Select call, keyed by message.
	offered map[string][]string
	defs    map[string]string
	// confirmDefs records the default of each Confirm call, keyed by message.
	confirmDefs map[string]bool
}

func (p *scriptedPrompter) next(msg string) step {
	p.t.Helper()
	p.asked = append(p.asked, msg)
	if len(p.steps) == 0 {
		p.t.Fatalf("unexpected prompt %q", msg)
	}
	s := p.steps[0]
	p.steps = p.steps[1:]
	if s.msg != msg {
		p.t.Fatalf("prompt = %q, want %q", msg, s.msg)
	}
	return s
}

func (p *scriptedPrompter) Select(_ context.Context, msg string, choices []string, def string) (string, error) {
	if p.offered == nil {
		p.offered = map[string][]string{}
		p.defs = map[string]string{}
	}
	p.offered[msg] = choices
	p.defs[msg] = def
	s := p.next(msg)
	return s.answer, s.err
}

func (p *scriptedPrompter) Input(_ context.Context, msg, _ string) (string, error) {
	s := p.next(msg)
	return s.answer, s.err
}

func (p *scriptedPrompter) Confirm(_ context.Context, msg string, def bool) (bool, error) {
	if p.confirmDefs == nil {
		p.confirmDefs = map[string]bool{}
	}
	p.confirmDefs[msg] = def
	s := p.next(msg)
	return s.confirm, s.err
}

type fakeRunner struct {
	calls    []util.CmdSpec
	failures map[int]error // call index -> error
}

func (f *fakeRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, spec)
	if err := f.failures[idx]; err != nil {
		return util.CmdResult{Code: 1, Err: err}, err
	}
	out := filepath.Join(spec.Dir, spec.Args[len(spec.Args)-1])
	if err := os.WriteFile(out, make([]byte, 1536), 0o644); err != nil {
		return util.CmdResult{Code: -1}, err
	}
	return util.CmdResult{}, nil
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
}

func oneIteration(input, name string, date, again bool) []step {
	return []step{
		{msg: MsgInput, answer: input},
		{msg: MsgResolution, answer: "1920x1080"},
		{msg: MsgCodec, answer: "H265"},
		{msg: MsgDevice, answer: "CPU"},
		{msg: MsgQuality, answer: "High"},
		{msg: MsgName, answer: name},
		{msg: MsgDate, confirm: date},
		{msg: MsgAgain, confirm: again},
	}
}

func newTestSession(t *testing.T, p *scriptedPrompter, r *fakeRunner, rep *recordingReporter, files ...string) *Session {
	dir := t.TempDir()
	return NewSession(
		WithPrompter(p),
		WithRunner(r),
		WithReporter(rep),
		WithClock(fixedClock),
		WithWorkDir(dir),
		WithFFmpegPath("ffmpeg"),
		WithScanner(func(string) ([]string, error) { return files, nil }),
		WithStdio(strings.NewReader(""), io.Discard, io.Discard),
	)
}

func TestSessionSingleIteration(t *testing.T) {
	p := &scriptedPrompter{t: t, steps: oneIteration("clip.mkv", "out", false, false)}
	r := &fakeRunner{}
	rep := &recordingReporter{}
	s := newTestSession(t, p, r, rep, "a.mp4", "clip.mkv")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected err: %v", err)
	}
	if s.State() != StateDone {
		t.Errorf("State() = %s, want done", s.State())
	}
	if len(r.calls) != 1 {
		t.Fatalf("runner calls = %d, want 1", len(r.calls))
	}
	want := []string{"-i", "clip.mkv", "-c:v", "libx265", "-crf", "19", "-preset", "slow", "-s", "1920x1080", "out.mp4"}
	if !reflect.DeepEqual(r.calls[0].Args, want) {
		t.Errorf("args = %v, want %v", r.calls[0].Args, want)
	}
	if r.calls[0].Path != "ffmpeg" {
		t.Errorf("path = %q, want ffmpeg", r.calls[0].Path)
	}

	if got := p.offered[MsgInput]; !reflect.DeepEqual(got, []string{"a.mp4", "clip.mkv"}) {
		t.Errorf("input choices = %v", got)
	}
	if got := p.defs[MsgResolution]; got != "1920x1080" {
		t.Errorf("resolution default = %q, want 1920x1080", got)
	}
	if got := p.defs[MsgQuality]; got != "High" {
		t.Errorf("quality default = %q, want High", got)
	}

	if len(rep.results) != 1 || rep.results[0].Err != nil || rep.results[0].Bytes != 1536 {
		t.Fatalf("results = %+v, want one successful 1536-byte result", rep.results)
	}
	last := rep.updates[len(rep.updates)-1]
	if last.Stage != progress.StageCompleted || last.Message != "Saved: out.mp4 (1.5 KB)" {
		t.Errorf("last update = %+v", last)
	}
}

func TestSessionConfirmDefaults(t *testing.T) {
	tests := []struct {
		name     string
		date     bool
		again    bool
		wantDate bool
		wantCont bool
	}{
		{name: "built-in", date: true, again: false, wantDate: true, wantCont: false},
		{name: "configured continue", date: false, again: true, wantDate: false, wantCont: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := DefaultDefaults()
			def.IncludeDate = tt.date
			def.Continue = tt.again
			p := &scriptedPrompter{t: t, steps: oneIteration("clip.mkv", "out", false, false)}
			s := NewSession(
				WithPrompter(p),
				WithRunner(&fakeRunner{}),
				WithReporter(&recordingReporter{}),
				WithClock(fixedClock),
				WithWorkDir(t.TempDir()),
				WithDefaults(def),
				WithScanner(func(string) ([]string, error) { return []string{"clip.mkv"}, nil }),
				WithStdio(strings.NewReader(""), io.Discard, io.Discard),
			)
			if err := s.Run(context.Background()); err != nil {
				t.Fatalf("Run() unexpected err: %v", err)
			}
			if got := p.confirmDefs[MsgDate]; got != tt.wantDate {
				t.Errorf("date default = %v, want %v", got, tt.wantDate)
			}
			if got := p.confirmDefs[MsgAgain]; got != tt.wantCont {
				t.Errorf("continue default = %v, want %v", got, tt.wantCont)
			}
		})
	}
}

func TestSessionTwoIterationsThenDone(t *testing.T) {
	steps := append(oneIteration("a.mp4", "first", true, true), oneIteration("b.mkv", "second", false, false)...)
	p := &scriptedPrompter{t: t, steps: steps}
	r := &fakeRunner{}
	s := newTestSession(t, p, r, &recordingReporter{}, "a.mp4", "b.mkv")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected err: %v", err)
	}
	if len(r.calls) != 2 {
		t.Fatalf("runner calls = %d, want 2", len(r.calls))
	}
	if got := r.calls[0].Args[len(r.calls[0].Args)-1]; got != "first-2024-03-05.mp4" {
		t.Errorf("first output = %q", got)
	}
	if got := r.calls[1].Args[len(r.calls[1].Args)-1]; got != "second.mp4" {
		t.Errorf("second output = %q", got)
	}
	if len(p.steps) != 0 {
		t.Errorf("%d prompts never asked", len(p.steps))
	}
}

func TestSessionRepromptsInvalidName(t *testing.T) {
	steps := oneIteration("a.mp4", "   ", false, false)
	// Insert two more name prompts after the blank one.
	steps = append(steps[:6], append([]step{{msg: MsgName, answer: ""}, {msg: MsgName, answer: "good"}}, steps[6:]...)...)
	p := &scriptedPrompter{t: t, steps: steps}
	r := &fakeRunner{}
	rep := &recordingReporter{}
	s := newTestSession(t, p, r, rep, "a.mp4")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected err: %v", err)
	}
	if len(r.calls) != 1 || r.calls[0].Args[len(r.calls[0].Args)-1] != "good.mp4" {
		t.Fatalf("calls = %+v, want one run writing good.mp4", r.calls)
	}
	errUpdates := 0
	for _, u := range rep.updates {
		if u.Stage == progress.StageError {
			errUpdates++
		}
	}
	if errUpdates != 2 {
		t.Errorf("error updates = %d, want 2", errUpdates)
	}
}

func TestSessionNoCandidates(t *testing.T) {
	p := &scriptedPrompter{t: t, steps: []step{{msg: MsgInput, answer: NoCandidateLabel}}}
	r := &fakeRunner{}
	s := newTestSession(t, p, r, &recordingReporter{})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() err = %v, want graceful nil", err)
	}
	if got := p.offered[MsgInput]; !reflect.DeepEqual(got, []string{NoCandidateLabel}) {
		t.Errorf("choices = %v, want only the nothing-found entry", got)
	}
	if len(r.calls) != 0 {
		t.Errorf("runner called %d times, want 0", len(r.calls))
	}
	if s.State() != StateDone {
		t.Errorf("State() = %s, want done", s.State())
	}
}

func TestSessionContinuesAfterExecutorFailure(t *testing.T) {
	steps := append(oneIteration("a.mp4", "broken", false, true), oneIteration("a.mp4", "fine", false, false)...)
	p := &scriptedPrompter{t: t, steps: steps}
	boom := fmt.Errorf("exit status 1")
	r := &fakeRunner{failures: map[int]error{0: boom}}
	rep := &recordingReporter{}
	s := newTestSession(t, p, r, rep, "a.mp4")

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected err: %v", err)
	}
	if len(r.calls) != 2 {
		t.Fatalf("runner calls = %d, want 2", len(r.calls))
	}
	if len(rep.results) != 2 {
		t.Fatalf("results = %d, want 2", len(rep.results))
	}
	failed := rep.results[0]
	if !errors.Is(failed.Err, ErrExecutor) || !errors.Is(failed.Err, boom) {
		t.Errorf("first result err = %v, want ErrExecutor wrapping %v", failed.Err, boom)
	}
	if failed.OutputPath != "broken.mp4" {
		t.Errorf("failed OutputPath = %q", failed.OutputPath)
	}
	if rep.results[1].Err != nil {
		t.Errorf("second result err = %v, want nil", rep.results[1].Err)
	}
}

func TestSessionAbort(t *testing.T) {
	p := &scriptedPrompter{t: t, steps: []step{
		{msg: MsgInput, answer: "a.mp4"},
		{msg: MsgResolution, err: ErrAborted},
	}}
	r := &fakeRunner{}
	s := newTestSession(t, p, r, &recordingReporter{}, "a.mp4")

	if err := s.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() err = %v, want ErrAborted", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("runner called %d times, want 0", len(r.calls))
	}
}

func TestSessionRejectsUnofferedChoice(t *testing.T) {
	p := &scriptedPrompter{t: t, steps: []step{{msg: MsgInput, answer: "elsewhere.mp4"}}}
	s := newTestSession(t, p, &fakeRunner{}, &recordingReporter{}, "a.mp4")

	if err := s.Run(context.Background()); err == nil {
		t.Fatal("Run() = nil error, want unoffered-choice error")
	}
}

func TestSessionScanError(t *testing.T) {
	p := &scriptedPrompter{t: t}
	s := NewSession(
		WithPrompter(p),
		WithScanner(func(string) ([]string, error) { return nil, errors.New("permission denied") }),
	)
	err := s.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("Run() err = %v, want scan error", err)
	}
}
