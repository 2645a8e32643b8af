package config

// Core configuration constants that define the boundaries and defaults
// for the audio capture/playback side of the visualizer.
const (
	DefaultDeviceID        = MinDeviceID // System default device
	DefaultChannels        = 2           // Stereo capture, mixed to mono
	DefaultSampleRate      = 44100       // CD-quality audio
	DefaultFramesPerBuffer = 2048        // Analysis window; must be a power of 2
	DefaultLowLatency      = false
	DefaultFFTWindow       = "hann"
	DefaultServeAddr       = ""   // WebSocket frame broadcast disabled
	DefaultUDPAddr         = ""   // UDP frame publishing disabled
	DefaultWindowWidth     = 960  // Initial surface size (device pixels)
	DefaultWindowHeight    = 640

	// Hardware and processing limits.
	MinDeviceID     = -1     // -1 selects the system default device
	MinSampleRate   = 8000   // Minimum usable sample rate (Hz)
	MaxSampleRate   = 192000 // Maximum supported sample rate (Hz)
	MaxBufferFrames = 8192   // Maximum frames per analysis buffer

	// TapRingSize is the mono ring buffer between the audio callback and
	// the analyzer. Must hold at least one full analysis window.
	TapRingSize = 8192
)

// Config holds all runtime options. Values come from built-in defaults,
// then an optional YAML file, then environment overrides, then CLI flags.
type Config struct {
	// Audio device settings.
	DeviceID        int     `yaml:"device"`
	OutputDeviceID  int     `yaml:"output_device"`
	Channels        int     `yaml:"channels"`
	SampleRate      float64 `yaml:"sample_rate"`
	FramesPerBuffer int     `yaml:"frames_per_buffer"`
	LowLatency      bool    `yaml:"low_latency"`
	FFTWindow       string  `yaml:"fft_window"`

	// Playback source. Empty means capture from the input device;
	// the app may also pick a file interactively.
	FilePath string `yaml:"file,omitempty"`

	// Recording of captured input.
	Record     bool   `yaml:"record"`
	OutputFile string `yaml:"output_file,omitempty"`

	// Frame broadcasting.
	ServeAddr string `yaml:"serve_addr,omitempty"` // e.g. ":8080" for WebSocket clients
	UDPAddr   string `yaml:"udp_addr,omitempty"`   // e.g. "127.0.0.1:9090"

	// Surface.
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`

	// Seed for the particle field's random source. 0 keeps the
	// time-seeded default; fixed seeds give reproducible layouts.
	ParticleSeed int64 `yaml:"particle_seed,omitempty"`

	// Debug options.
	Verbose bool   `yaml:"verbose"`
	Command string `yaml:"-"` // One-off command ("list"), never persisted
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		DeviceID:        DefaultDeviceID,
		OutputDeviceID:  DefaultDeviceID,
		Channels:        DefaultChannels,
		SampleRate:      DefaultSampleRate,
		FramesPerBuffer: DefaultFramesPerBuffer,
		LowLatency:      DefaultLowLatency,
		FFTWindow:       DefaultFFTWindow,
		ServeAddr:       DefaultServeAddr,
		UDPAddr:         DefaultUDPAddr,
		WindowWidth:     DefaultWindowWidth,
		WindowHeight:    DefaultWindowHeight,
	}
}
