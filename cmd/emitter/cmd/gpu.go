package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var probeSize int

var gpuCmd = &cobra.Command{
	Use:   "gpu",
	Short: "Inspect the graphics backend",
}

var gpuProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Acquire a device and write a test uniform",
	Long: `Acquire a device from the backend selected by EMITTER_GPU_BACKEND and, when
one is available, write a counting byte pattern of --size bytes into a new
uniform buffer.

Examples:
  emitter gpu probe
  emitter gpu probe --size 64
  EMITTER_GPU_BACKEND=none emitter gpu probe`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if probeSize < 0 {
			return fmt.Errorf("size must not be negative, got %d", probeSize)
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		uniform := make([]byte, probeSize)
		for i := range uniform {
			uniform[i] = byte(i)
		}

		result, err := a.ProbeGPU(cmd.Context(), uniform)
		if err != nil {
			return fmt.Errorf("probe failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Backend:   %s\n", result.Status.Backend)
		if !result.Status.Available {
			fmt.Fprintln(out, "Device:    unavailable")
			return nil
		}
		fmt.Fprintln(out, "Device:    acquired")
		if result.Buffer != nil {
			fmt.Fprintf(out, "Buffer:    %d bytes\n", len(result.Buffer))
			fmt.Fprintf(out, "Contents:  %x\n", result.Buffer)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gpuCmd)
	gpuCmd.AddCommand(gpuProbeCmd)

	gpuProbeCmd.Flags().IntVarP(&probeSize, "size", "n", 16, "Number of uniform bytes to write")
}
