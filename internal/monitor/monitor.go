// Package monitor reports what this host can encode with.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"ffwizard/internal/model"
	"ffwizard/internal/profile"
	"ffwizard/internal/util"
	"ffwizard/internal/util/deps"
)

// HostStats is a point-in-time view of CPU and memory.
type HostStats struct {
	CPUModel       string
	PhysicalCores  int
	LogicalCores   int
	CPUPercent     float64
	MemTotal       uint64
	MemAvailable   uint64
	MemUsedPercent float64
}

// EncoderStatus says whether ffmpeg offers the encoder a profile would pick.
type EncoderStatus struct {
	Codec     model.CodecFamily
	Device    model.DeviceClass
	EncoderID string
	Available bool
}

// SystemMonitor caches the encoder listing; the ffmpeg build does not change
// while we run.
type SystemMonitor struct {
	ffmpegPath string
	runner     util.CmdRunner

	once     sync.Once
	encoders map[string]bool
	listErr error
}

func NewSystemMonitor(ffmpegPath string, runner util.CmdRunner) *SystemMonitor {
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	return &SystemMonitor{ffmpegPath: ffmpegPath, runner: runner}
}

// Encoders reports, for every codec and device, whether ffmpeg has the
// matching encoder.
func (m *SystemMonitor) Encoders(ctx context.Context) ([]EncoderStatus, error) {
	m.once.Do(func() {
		m.encoders, m.listErr = deps.ListEncoders(ctx, m.runner, m.ffmpegPath)
	})
	if m.listErr != nil {
		return nil, m.listErr
	}

	var out []EncoderStatus
	for _, c := range model.Codecs() {
		for _, d := range model.Devices() {
			id := profile.EncoderID(c, d)
			out = append(out, EncoderStatus{Codec: c, Device: d, EncoderID: id, Available: m.encoders[id]})
		}
	}
	return out, nil
}

// GPUReady reports whether every NVENC encoder is present.
func (m *SystemMonitor) GPUReady(ctx context.Context) (bool, error) {
	st, err := m.Encoders(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range st {
		if s.Device == model.DeviceGPU && !s.Available {
			return false, nil
		}
	}
	return true, nil
}

// Stats gathers CPU and RAM figures. CPU usage is sampled over 200ms.
func (m *SystemMonitor) Stats(ctx context.Context) (HostStats, error) {
	var st HostStats

	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return st, errors.Wrap(err, "failed to get mem stats")
	}
	st.MemTotal = v.Total
	st.MemAvailable = v.Available
	st.MemUsedPercent = v.UsedPercent

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		st.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		st.PhysicalCores = n
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		st.LogicalCores = n
	}

	pct, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false)
	if err != nil {
		return st, errors.Wrap(err, "failed to get cpu stats")
	}
	if len(pct) > 0 {
		st.CPUPercent = pct[0]
	}
	return st, nil
}
