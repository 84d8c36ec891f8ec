package encoder

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"ffwizard/internal/model"
	"ffwizard/internal/profile"
	"ffwizard/internal/util/media"
)

// ErrEmptyInput is returned when no input path was provided.
var ErrEmptyInput = errors.New("input path is required")

// Synthesize constructs the ffmpeg arguments (program name excluded):
//
//	-i <input> -c:v <encoder> [-crf <n> -preset <p> | -preset <p>] [-s <WxH>] <output>
//
// The resolution flag is omitted for the default resolution. today supplies
// the date suffix when the output name asks for one. Output names starting
// with "-" are written as "./<name>".
func Synthesize(input model.InputSource, res model.Resolution, p profile.EncodingProfile, out model.OutputName, today time.Time) ([]string, error) {
	outputPath, err := media.OutputFilename(out, today)
	if err != nil {
		return nil, err
	}
	if !input.Valid() {
		return nil, ErrEmptyInput
	}

	args := []string{
		"-i", string(input),
		"-c:v", p.EncoderID,
	}
	if p.RateControl != nil {
		args = append(args, p.RateControl.Args()...)
	}
	if !res.IsDefault() {
		args = append(args, "-s", res.String())
	}

	// A leading dash would make ffmpeg read the output as an option.
	if strings.HasPrefix(outputPath, "-") {
		outputPath = "./" + outputPath
	}
	args = append(args, outputPath)
	return args, nil
}

// OutputPath returns the last argument, which is always the output file.
func OutputPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}
