package pipeline

import (
	"time"

	"ffwizard/internal/encoder"
	"ffwizard/internal/model"
	"ffwizard/internal/profile"
	"ffwizard/internal/util"
)

// Plan is the fully resolved command for one selection.
type Plan struct {
	Input      string   `yaml:"input" json:"input"`
	Resolution string   `yaml:"resolution" json:"resolution"`
	Codec      string   `yaml:"codec" json:"codec"`
	Device     string   `yaml:"device" json:"device"`
	Quality    string   `yaml:"quality" json:"quality"`
	Encoder    string   `yaml:"encoder" json:"encoder"`
	CRF        int      `yaml:"crf,omitempty" json:"crf,omitempty"` // 0 when the encoder takes a preset only
	Preset     string   `yaml:"preset" json:"preset"`
	OutputPath string   `yaml:"output" json:"output"`
	Args       []string `yaml:"args" json:"args"`
}

// BuildPlan resolves the encoding profile and synthesizes the ffmpeg args.
func BuildPlan(sel model.Selection, today time.Time) (Plan, error) {
	if err := sel.Validate(); err != nil {
		return Plan{}, err
	}
	p := profile.Resolve(sel.Device, sel.Codec, sel.Quality)
	args, err := encoder.Synthesize(sel.Input, sel.Resolution, p, sel.Output, today)
	if err != nil {
		return Plan{}, err
	}

	pl := Plan{
		Input:      string(sel.Input),
		Resolution: sel.Resolution.String(),
		Codec:      sel.Codec.String(),
		Device:     sel.Device.String(),
		Quality:    sel.Quality.String(),
		Encoder:    p.EncoderID,
		OutputPath: encoder.OutputPath(args),
		Args:       args,
	}
	switch rc := p.RateControl.(type) {
	case profile.ConstantQuality:
		pl.CRF = rc.CRF
		pl.Preset = rc.Preset
	case profile.SinglePreset:
		pl.Preset = rc.Preset
	}
	return pl, nil
}

// CommandLine renders the plan as a copy-pasteable shell command.
func (p Plan) CommandLine(program string) string {
	if program == "" {
		program = "ffmpeg"
	}
	return util.ShellQuote(program, p.Args)
}
