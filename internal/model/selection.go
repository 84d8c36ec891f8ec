package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidOutputName is returned when the output base name is empty after trimming.
var ErrInvalidOutputName = errors.New("output name must not be empty")

// DeviceClass selects where encoding runs.
type DeviceClass int

const (
	DeviceSoftware DeviceClass = iota
	DeviceGPU

	numDevices
)

// NumDevices is the number of declared device classes.
const NumDevices = int(numDevices)

var deviceLabels = [numDevices]string{
	DeviceSoftware: "CPU",
	DeviceGPU:      "Nvidia GPU",
}

// Devices returns all device classes in prompt order.
func Devices() []DeviceClass {
	return []DeviceClass{DeviceSoftware, DeviceGPU}
}

// Valid reports whether d is one of the declared device classes.
func (d DeviceClass) Valid() bool { return d >= 0 && d < numDevices }

func (d DeviceClass) String() string {
	if !d.Valid() {
		return "DeviceClass(" + strconv.Itoa(int(d)) + ")"
	}
	return deviceLabels[d]
}

// ParseDevice accepts a display label or a short alias (cpu, software, gpu, nvenc).
func ParseDevice(s string) (DeviceClass, error) {
	switch normalize(s) {
	case "cpu", "software", "sw", "x26x":
		return DeviceSoftware, nil
	case "nvidiagpu", "gpu", "nvidia", "nvenc", "hw":
		return DeviceGPU, nil
	}
	return 0, fmt.Errorf("invalid device: %q (valid: cpu|gpu)", s)
}

// CodecFamily is the video compression standard.
type CodecFamily int

const (
	CodecH264 CodecFamily = iota
	CodecH265

	numCodecs
)

// NumCodecs is the number of declared codec families.
const NumCodecs = int(numCodecs)

var codecLabels = [numCodecs]string{
	CodecH264: "H264",
	CodecH265: "H265",
}

// Codecs returns all codec families in prompt order.
func Codecs() []CodecFamily {
	return []CodecFamily{CodecH264, CodecH265}
}

// Valid reports whether c is one of the declared codec families.
func (c CodecFamily) Valid() bool { return c >= 0 && c < numCodecs }

func (c CodecFamily) String() string {
	if !c.Valid() {
		return "CodecFamily(" + strconv.Itoa(int(c)) + ")"
	}
	return codecLabels[c]
}

// ParseCodec accepts H264/H265 and the common aliases avc and hevc.
func ParseCodec(s string) (CodecFamily, error) {
	switch normalize(s) {
	case "h264", "avc", "x264":
		return CodecH264, nil
	case "h265", "hevc", "x265":
		return CodecH265, nil
	}
	return 0, fmt.Errorf("invalid codec: %q (valid: h264|h265)", s)
}

// QualityTier is ordered from lowest to highest fidelity.
type QualityTier int

const (
	QualityVeryLow QualityTier = iota
	QualityLow
	QualityMedium
	QualityHigh
	QualityVeryHigh

	numQualities
)

// NumQualities is the number of declared quality tiers.
const NumQualities = int(numQualities)

var qualityLabels = [numQualities]string{
	QualityVeryLow:  "Very Low",
	QualityLow:      "Low",
	QualityMedium:   "Medium",
	QualityHigh:     "High",
	QualityVeryHigh: "Very High",
}

// Qualities returns all tiers from lowest to highest.
func Qualities() []QualityTier {
	return []QualityTier{QualityVeryLow, QualityLow, QualityMedium, QualityHigh, QualityVeryHigh}
}

// Valid reports whether q is one of the declared tiers.
func (q QualityTier) Valid() bool { return q >= 0 && q < numQualities }

func (q QualityTier) String() string {
	if !q.Valid() {
		return "QualityTier(" + strconv.Itoa(int(q)) + ")"
	}
	return qualityLabels[q]
}

// ParseQuality accepts "Very Low", "very-low", "verylow", "very_low" and so on.
func ParseQuality(s string) (QualityTier, error) {
	n := normalize(s)
	for _, q := range Qualities() {
		if n == normalize(qualityLabels[q]) {
			return q, nil
		}
	}
	return 0, fmt.Errorf("invalid quality: %q (valid: very-low|low|medium|high|very-high)", s)
}

// Resolution is either Default (the zero value, source resolution is kept)
// or one of the standard sizes returned by Resolutions.
type Resolution struct {
	Width  int
	Height int
}

// DefaultResolution leaves the output size to the encoder.
var DefaultResolution = Resolution{}

const defaultResolutionLabel = "default"

var standardResolutions = []Resolution{
	{3840, 2160}, // 4K
	{2560, 1440}, // QHD
	{1920, 1080}, // FHD
	{1280, 720},  // HD
	{854, 480},
	{640, 360},
}

// Resolutions returns the allow-listed concrete sizes, largest first.
func Resolutions() []Resolution {
	out := make([]Resolution, len(standardResolutions))
	copy(out, standardResolutions)
	return out
}

// ResolutionChoices returns the prompt menu: the two largest sizes, then
// Default, then the rest.
func ResolutionChoices() []Resolution {
	out := make([]Resolution, 0, len(standardResolutions)+1)
	out = append(out, standardResolutions[:2]...)
	out = append(out, DefaultResolution)
	return append(out, standardResolutions[2:]...)
}

// IsDefault reports whether r means "keep the source resolution".
func (r Resolution) IsDefault() bool { return r == DefaultResolution }

// Valid reports whether r is Default or an allow-listed size.
func (r Resolution) Valid() bool {
	if r.IsDefault() {
		return true
	}
	for _, s := range standardResolutions {
		if r == s {
			return true
		}
	}
	return false
}

func (r Resolution) String() string {
	if r.IsDefault() {
		return defaultResolutionLabel
	}
	return strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)
}

// ParseResolution accepts "default" or a WxH pair from the allow-list.
func ParseResolution(s string) (Resolution, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" || t == defaultResolutionLabel {
		return DefaultResolution, nil
	}
	w, h, ok := strings.Cut(t, "x")
	if ok {
		wi, werr := strconv.Atoi(w)
		hi, herr := strconv.Atoi(h)
		if werr == nil && herr == nil {
			r := Resolution{Width: wi, Height: hi}
			if r.Valid() {
				return r, nil
			}
		}
	}
	labels := make([]string, 0, len(standardResolutions)+1)
	labels = append(labels, defaultResolutionLabel)
	for _, r := range standardResolutions {
		labels = append(labels, r.String())
	}
	return DefaultResolution, fmt.Errorf("invalid resolution: %q (valid: %s)", s, strings.Join(labels, "|"))
}

// OutputName is the user-chosen file name without extension.
type OutputName struct {
	Base        string
	IncludeDate bool
}

// Valid reports whether the trimmed base name is non-empty.
func (o OutputName) Valid() bool { return strings.TrimSpace(o.Base) != "" }

// InputSource is the path of the file to transcode.
type InputSource string

// Valid reports whether the path is non-empty.
func (i InputSource) Valid() bool { return strings.TrimSpace(string(i)) != "" }

// Selection is one complete set of user choices.
type Selection struct {
	Input      InputSource
	Resolution Resolution
	Codec      CodecFamily
	Device     DeviceClass
	Quality    QualityTier
	Output     OutputName
}

// Validate checks every field and returns the first problem found.
func (s Selection) Validate() error {
	switch {
	case !s.Input.Valid():
		return errors.New("input path must not be empty")
	case !s.Resolution.Valid():
		return errors.Errorf("resolution %s is not supported", s.Resolution)
	case !s.Codec.Valid():
		return errors.Errorf("unknown codec %s", s.Codec)
	case !s.Device.Valid():
		return errors.Errorf("unknown device %s", s.Device)
	case !s.Quality.Valid():
		return errors.Errorf("unknown quality %s", s.Quality)
	case !s.Output.Valid():
		return ErrInvalidOutputName
	}
	return nil
}

// normalize lowercases and strips separators so "Very Low", "very-low" and
// "very_low" compare equal.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "", ".", "").Replace(s)
}
