package encoder

import (
	"context"
	"io"
	"path/filepath"

	"github.com/pkg/errors"

	"ffwizard/internal/model"
	"ffwizard/internal/util"
)

// Options control ffmpeg execution.
type Options struct {
	FFmpegPath string
	WorkDir    string // Directory ffmpeg runs in; relative input/output paths resolve here.
	Verbose    bool

	Runner util.CmdRunner // nil means util.NewDefaultRunner()

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Echo   io.Writer
}

// Encode runs ffmpeg with the synthesized args and reports the produced file.
// A failed run leaves whatever ffmpeg wrote in place.
func Encode(ctx context.Context, args []string, opts Options) (model.OutputVideo, error) {
	if opts.FFmpegPath == "" {
		return model.OutputVideo{}, errors.New("ffmpeg path is required")
	}
	if len(args) == 0 {
		return model.OutputVideo{}, errors.New("no ffmpeg arguments")
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}

	_, runErr := runner.Run(ctx, util.CmdSpec{
		Path:    opts.FFmpegPath,
		Args:    args,
		Dir:     opts.WorkDir,
		Verbose: opts.Verbose,
		Stdin:   opts.Stdin,
		Stdout:  opts.Stdout,
		Stderr:  opts.Stderr,
		Echo:    opts.Echo,
	})
	if runErr != nil {
		return model.OutputVideo{}, errors.Wrap(runErr, "ffmpeg failed")
	}

	out := OutputPath(args)
	statPath := out
	if !filepath.IsAbs(out) && opts.WorkDir != "" {
		statPath = filepath.Join(opts.WorkDir, out)
	}
	return model.OutputVideo{
		OutputPath: out,
		Bytes:      util.FileSize(statPath),
		Args:       args,
	}, nil
}
