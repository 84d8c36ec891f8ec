// Package cli holds flag handling shared by the non-interactive commands.
package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"ffwizard/internal/model"
	"ffwizard/internal/pipeline"
)

// BindSelectionFlags declares the flags that describe one transcode.
func BindSelectionFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", "", "Input video, relative to --dir")
	fs.StringP("resolution", "r", "", "Output size: default, 3840x2160, 2560x1440, 1920x1080, 1280x720, 854x480, 640x360")
	fs.StringP("codec", "c", "", "Codec family: h264, h265")
	fs.String("device", "", "Encoder device: cpu, gpu")
	fs.StringP("quality", "q", "", "Quality: very-low, low, medium, high, very-high")
	fs.StringP("name", "n", "", "Output file name without extension")
	fs.Bool("date", false, "Append today's date to the output name (when omitted: defaults.include_date, true unless configured)")
}

// ParseSelection reads the selection flags. Flags left unset take the
// configured defaults; input and name have none.
func ParseSelection(fs *pflag.FlagSet, def pipeline.Defaults) (model.Selection, error) {
	var sel model.Selection

	input, _ := fs.GetString("input")
	if input == "" {
		return sel, errors.New("--input is required")
	}
	sel.Input = model.InputSource(input)

	sel.Resolution = def.Resolution
	sel.Codec = def.Codec
	sel.Device = def.Device
	sel.Quality = def.Quality
	sel.Output.IncludeDate = def.IncludeDate

	var err error
	if s, _ := fs.GetString("resolution"); fs.Changed("resolution") {
		if sel.Resolution, err = model.ParseResolution(s); err != nil {
			return sel, err
		}
	}
	if s, _ := fs.GetString("codec"); s != "" {
		if sel.Codec, err = model.ParseCodec(s); err != nil {
			return sel, err
		}
	}
	if s, _ := fs.GetString("device"); s != "" {
		if sel.Device, err = model.ParseDevice(s); err != nil {
			return sel, err
		}
	}
	if s, _ := fs.GetString("quality"); s != "" {
		if sel.Quality, err = model.ParseQuality(s); err != nil {
			return sel, err
		}
	}
	if fs.Changed("date") {
		sel.Output.IncludeDate, _ = fs.GetBool("date")
	}
	sel.Output.Base, _ = fs.GetString("name")

	return sel, sel.Validate()
}
