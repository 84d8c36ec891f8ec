package deps

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"ffwizard/internal/util"
)

// FindFFmpeg returns the path to ffmpeg. If customPath is non-empty, it tries
// that path or looks it up in PATH.
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		if fi, err := os.Stat(customPath); err == nil && !fi.IsDir() {
			return customPath, nil
		}
		if p, err := exec.LookPath(customPath); err == nil {
			return p, nil
		}
		return "", errors.Errorf("could not find ffmpeg at %q", customPath)
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", errors.New("could not find ffmpeg in PATH. Please install ffmpeg.")
}

// ListEncoders asks ffmpeg for its encoder list.
func ListEncoders(ctx context.Context, runner util.CmdRunner, ffmpegPath string) (map[string]bool, error) {
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	res, err := runner.Run(ctx, util.CmdSpec{
		Path: ffmpegPath,
		Args: []string{"-hide_banner", "-encoders"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "ffmpeg -encoders")
	}
	return ParseEncoders(string(res.Stdout)), nil
}

// ParseEncoders extracts encoder names from `ffmpeg -encoders` output. Each
// entry line is a six-letter flag column followed by the name.
func ParseEncoders(out string) map[string]bool {
	names := map[string]bool{}
	sc := bufio.NewScanner(strings.NewReader(out))
	pastHeader := false
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 1 && fields[0] == "------" {
			pastHeader = true
			continue
		}
		if len(fields) < 2 || !pastHeader || len(fields[0]) != 6 {
			continue
		}
		names[fields[1]] = true
	}
	return names
}
