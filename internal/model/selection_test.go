package model

import (
	"errors"
	"testing"
)

func TestParseDevice(t *testing.T) {
	tests := []struct {
		in      string
		want    DeviceClass
		wantErr bool
	}{
		{in: "CPU", want: DeviceSoftware},
		{in: "software", want: DeviceSoftware},
		{in: "Nvidia GPU", want: DeviceGPU},
		{in: "nvenc", want: DeviceGPU},
		{in: " gpu ", want: DeviceGPU},
		{in: "amf", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDevice(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDevice(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDevice(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		in      string
		want    CodecFamily
		wantErr bool
	}{
		{in: "H264", want: CodecH264},
		{in: "h.264", want: CodecH264},
		{in: "avc", want: CodecH264},
		{in: "H265", want: CodecH265},
		{in: "HEVC", want: CodecH265},
		{in: "av1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCodec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCodec(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCodec(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in      string
		want    QualityTier
		wantErr bool
	}{
		{in: "Very Low", want: QualityVeryLow},
		{in: "very-low", want: QualityVeryLow},
		{in: "low", want: QualityLow},
		{in: "Medium", want: QualityMedium},
		{in: "HIGH", want: QualityHigh},
		{in: "very_high", want: QualityVeryHigh},
		{in: "veryhigh", want: QualityVeryHigh},
		{in: "ultra", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuality(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuality(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseQuality(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQualityLabelsRoundTrip(t *testing.T) {
	for _, q := range Qualities() {
		got, err := ParseQuality(q.String())
		if err != nil || got != q {
			t.Errorf("ParseQuality(%q) = %v, %v; want %v", q.String(), got, err, q)
		}
	}
	if len(Qualities()) != NumQualities {
		t.Errorf("Qualities() has %d tiers, want %d", len(Qualities()), NumQualities)
	}
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in      string
		want    Resolution
		wantErr bool
	}{
		{in: "default", want: DefaultResolution},
		{in: "", want: DefaultResolution},
		{in: "1920x1080", want: Resolution{1920, 1080}},
		{in: "3840X2160", want: Resolution{3840, 2160}},
		{in: "640x360", want: Resolution{640, 360}},
		{in: "1000x1000", wantErr: true},
		{in: "1920", wantErr: true},
		{in: "axb", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResolution(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResolution(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseResolution(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolutionString(t *testing.T) {
	if got := DefaultResolution.String(); got != "default" {
		t.Errorf("DefaultResolution.String() = %q, want %q", got, "default")
	}
	if got := (Resolution{854, 480}).String(); got != "854x480" {
		t.Errorf("String() = %q, want %q", got, "854x480")
	}
	if len(Resolutions()) != 6 {
		t.Errorf("Resolutions() has %d entries, want 6", len(Resolutions()))
	}
}

func TestEnumValid(t *testing.T) {
	if DeviceClass(7).Valid() || CodecFamily(-1).Valid() || QualityTier(5).Valid() {
		t.Error("out-of-range enumeration values reported valid")
	}
	if (Resolution{1000, 1000}).Valid() {
		t.Error("non allow-listed resolution reported valid")
	}
}

func TestSelectionValidate(t *testing.T) {
	ok := Selection{
		Input:      "clip.mkv",
		Resolution: Resolution{1920, 1080},
		Codec:      CodecH265,
		Device:     DeviceSoftware,
		Quality:    QualityHigh,
		Output:     OutputName{Base: "out"},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	blank := ok
	blank.Output.Base = "   "
	if err := blank.Validate(); !errors.Is(err, ErrInvalidOutputName) {
		t.Errorf("Validate() = %v, want ErrInvalidOutputName", err)
	}

	noInput := ok
	noInput.Input = ""
	if err := noInput.Validate(); err == nil {
		t.Error("Validate() with empty input = nil, want error")
	}
}

func TestResolutionChoicesOrder(t *testing.T) {
	want := []string{"3840x2160", "2560x1440", "default", "1920x1080", "1280x720", "854x480", "640x360"}
	got := ResolutionChoices()
	if len(got) != len(want) {
		t.Fatalf("ResolutionChoices() len = %d, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.String() != want[i] {
			t.Errorf("ResolutionChoices()[%d] = %s, want %s", i, r, want[i])
		}
	}
}
