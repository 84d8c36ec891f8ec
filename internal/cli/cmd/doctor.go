package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffwizard/internal/model"
	"ffwizard/internal/monitor"
	"ffwizard/internal/ui"
	"ffwizard/internal/util/deps"
	"ffwizard/internal/util/format"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Check ffmpeg, its H.264/H.265 encoders and host resources",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := settingsFrom(cmd)
			ff, err := deps.FindFFmpeg(s.FFmpeg)
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}
			out := cmd.OutOrStdout()
			st := ui.DefaultStyles()
			fmt.Fprintf(out, "FFmpeg:   %s\n", ff)
			if s.ConfigFile != "" {
				fmt.Fprintf(out, "Config:   %s\n", s.ConfigFile)
			}

			mon := monitor.NewSystemMonitor(ff, nil)
			encoders, err := mon.Encoders(cmd.Context())
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}
			fmt.Fprintln(out, "Encoders:")
			missing := 0
			for _, e := range encoders {
				mark := st.Success.Render("✓")
				if !e.Available {
					mark = st.Error.Render("✗")
					missing++
				}
				fmt.Fprintf(out, "  %s %-11s %s / %s\n", mark, e.EncoderID, e.Codec, e.Device)
			}

			if hs, err := mon.Stats(cmd.Context()); err == nil {
				fmt.Fprintf(out, "CPU:      %s (%d cores, %d threads, %.0f%% busy)\n",
					hs.CPUModel, hs.PhysicalCores, hs.LogicalCores, hs.CPUPercent)
				fmt.Fprintf(out, "Memory:   %s free of %s\n",
					format.HumanizeUint(hs.MemAvailable), format.HumanizeUint(hs.MemTotal))
			} else if s.Verbose {
				fmt.Fprintln(out, st.Warning.Render("host stats unavailable: "+err.Error()))
			}

			if missing > 0 {
				fmt.Fprintln(out, st.Warning.Render(fmt.Sprintf("%d encoder(s) missing; choices using them will fail", missing)))
			}
			if gpu, err := mon.GPUReady(cmd.Context()); err == nil && !gpu {
				fmt.Fprintln(out, st.Warning.Render(fmt.Sprintf("NVENC unavailable; %q device choices will fail", model.DeviceGPU.String())))
			}
			return nil
		},
	}
}
