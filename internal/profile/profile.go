// Package profile maps device, codec and quality choices to concrete encoder
// settings.
package profile

import (
	"strconv"

	"ffwizard/internal/model"
)

// Encoder identifiers as ffmpeg expects them after -c:v.
const (
	EncoderX264      = "libx264"
	EncoderX265      = "libx265"
	EncoderH264NVENC = "h264_nvenc"
	EncoderHEVCNVENC = "hevc_nvenc"
)

// RateControl is either ConstantQuality or SinglePreset.
type RateControl interface {
	// Args returns the rate-control flags in command-line order.
	Args() []string
	rateControl()
}

// ConstantQuality is CRF-based rate control used by the software encoders.
// Lower CRF means higher quality and larger files.
type ConstantQuality struct {
	CRF    int
	Preset string
}

// SinglePreset is the preset-only rate control used by NVENC.
type SinglePreset struct {
	Preset string
}

func (ConstantQuality) rateControl() {}
func (SinglePreset) rateControl()    {}

// Args returns -crf then -preset.
func (c ConstantQuality) Args() []string {
	return []string{"-crf", strconv.Itoa(c.CRF), "-preset", c.Preset}
}

// Args returns -preset only.
func (p SinglePreset) Args() []string {
	return []string{"-preset", p.Preset}
}

// EncodingProfile is the resolved encoder and its rate control.
type EncodingProfile struct {
	EncoderID   string
	RateControl RateControl
}

var encoderIDs = [model.NumCodecs][model.NumDevices]string{
	model.CodecH264: {
		model.DeviceSoftware: EncoderX264,
		model.DeviceGPU:      EncoderH264NVENC,
	},
	model.CodecH265: {
		model.DeviceSoftware: EncoderX265,
		model.DeviceGPU:      EncoderHEVCNVENC,
	},
}

// Intentionally inverted against the tier order: higher tiers get lower CRF.
var softwareRates = [model.NumQualities]ConstantQuality{
	model.QualityVeryLow:  {CRF: 35, Preset: "faster"},
	model.QualityLow:      {CRF: 29, Preset: "fast"},
	model.QualityMedium:   {CRF: 23, Preset: "medium"},
	model.QualityHigh:     {CRF: 19, Preset: "slow"},
	model.QualityVeryHigh: {CRF: 16, Preset: "slower"},
}

// NVENC accepts both its p1..p7 names and the generic speed words.
var gpuRates = [model.NumQualities]SinglePreset{
	model.QualityVeryLow:  {Preset: "p2"},
	model.QualityLow:      {Preset: "fast"},
	model.QualityMedium:   {Preset: "medium"},
	model.QualityHigh:     {Preset: "slow"},
	model.QualityVeryHigh: {Preset: "p7"},
}

// EncoderID returns the ffmpeg encoder name for a codec on a device.
func EncoderID(codec model.CodecFamily, device model.DeviceClass) string {
	return encoderIDs[codec][device]
}

// Rate returns the rate control for a quality tier on a device.
func Rate(device model.DeviceClass, quality model.QualityTier) RateControl {
	if device == model.DeviceGPU {
		return gpuRates[quality]
	}
	return softwareRates[quality]
}

// Resolve is total over valid enumeration values; values rejected by their
// Valid method cause an index panic.
func Resolve(device model.DeviceClass, codec model.CodecFamily, quality model.QualityTier) EncodingProfile {
	return EncodingProfile{
		EncoderID:   EncoderID(codec, device),
		RateControl: Rate(device, quality),
	}
}
