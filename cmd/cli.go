// Package cmd parses the command line into a runtime configuration.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"visualizer/internal/config"
	"visualizer/pkg/build"
)

// ParseArgs builds the CLI, executes it against os.Args, and returns the
// resolved configuration. Precedence is defaults < config file < env <
// flags; the config file and env are folded in by config.Load before flag
// defaults are bound, so an unset flag keeps the loaded value.
func ParseArgs() (*config.Config, error) {
	info := build.GetInfo()

	options, err := config.Load(configPathFromArgs(os.Args[1:]))
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           info.Name + " [audio file]",
		Short:         "Audio-reactive radial visualizer",
		Version:       info.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				options.FilePath = args[0]
			}
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	var pick bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio devices",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "list"
			if pick {
				options.Command = "pick"
			}
		},
	}
	listCmd.Flags().BoolVarP(&pick, "pick", "p", false,
		"Choose a capture device interactively")
	rootCmd.AddCommand(listCmd)

	// The config flag is consumed by configPathFromArgs before cobra runs;
	// it is registered here so it parses cleanly and shows in help.
	var configPath string
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file")

	// Audio device configuration.
	rootCmd.PersistentFlags().IntVarP(&options.DeviceID, "device", "d", options.DeviceID,
		"Input device ID. Use the 'list' command to see available devices.")
	rootCmd.PersistentFlags().IntVarP(&options.Channels, "channels", "c", options.Channels,
		"Number of capture channels (1=mono, 2=stereo)")
	rootCmd.PersistentFlags().Float64VarP(&options.SampleRate, "sample-rate", "s", options.SampleRate,
		"Sample rate, measured in Hertz (Hz)")
	rootCmd.PersistentFlags().IntVarP(&options.FramesPerBuffer, "frames-per-buffer", "b", options.FramesPerBuffer,
		"Analysis window size in frames; must be a power of two")
	rootCmd.PersistentFlags().BoolVarP(&options.LowLatency, "low-latency", "l", options.LowLatency,
		"Use low latency mode for real-time capture")
	rootCmd.PersistentFlags().StringVarP(&options.FFTWindow, "window", "w", options.FFTWindow,
		"Analysis window function (hann, hamming, blackman, ...)")

	// Recording.
	rootCmd.PersistentFlags().BoolVarP(&options.Record, "record", "r", options.Record,
		"Record captured audio to a WAV file")
	rootCmd.PersistentFlags().StringVarP(&options.OutputFile, "output", "o", options.OutputFile,
		"Recording file name. Default is recording-DD-MM-YYYY-HHMMSS.wav")

	// Frame broadcasting.
	rootCmd.PersistentFlags().StringVar(&options.ServeAddr, "serve", options.ServeAddr,
		"Serve frame payloads to WebSocket clients on this address, e.g. :8080")
	rootCmd.PersistentFlags().StringVar(&options.UDPAddr, "udp", options.UDPAddr,
		"Publish frame payloads as UDP JSON datagrams to this address")

	// Surface and scene.
	rootCmd.PersistentFlags().IntVar(&options.WindowWidth, "width", options.WindowWidth,
		"Initial window width in pixels")
	rootCmd.PersistentFlags().IntVar(&options.WindowHeight, "height", options.WindowHeight,
		"Initial window height in pixels")
	rootCmd.PersistentFlags().Int64Var(&options.ParticleSeed, "seed", options.ParticleSeed,
		"Particle layout seed; 0 uses a time-based seed")

	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", options.Verbose,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	// Flags can break invariants the loader already checked.
	if err := options.Validate(); err != nil {
		return nil, err
	}

	return options, nil
}

// configPathFromArgs extracts the --config value ahead of cobra parsing,
// so the file can seed flag defaults.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}
