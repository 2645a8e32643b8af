// SPDX-License-Identifier: MIT
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"
	mp3 "github.com/hajimehoshi/go-mp3"

	"visualizer/internal/config"
	"visualizer/internal/log"
)

// FileSource plays a decoded audio file through a PortAudio output stream
// and tees the played samples into its Tap. The whole file is decoded up
// front into a mono buffer; the playback callback only copies.
type FileSource struct {
	path       string
	samples    []float64
	sampleRate float64

	cfg     *config.Config
	device  *portaudio.DeviceInfo
	latency time.Duration
	stream  *portaudio.Stream
	tap     *Tap

	// pos is written by the output callback and read by the UI thread
	// through Progress, so it is atomic like paused and finished.
	pos      atomic.Int64
	paused   atomic.Bool
	finished atomic.Bool

	monoBuf []float64 // pre-sized tee buffer for the callback
}

// NewFileSource decodes the file at path (WAV or MP3) and prepares a
// playback source. The output stream is not opened until Start.
func NewFileSource(path string, cfg *config.Config) (*FileSource, error) {
	samples, sampleRate, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio data in %s", path)
	}

	device, err := OutputDevice(cfg.OutputDeviceID)
	if err != nil {
		return nil, err
	}

	s := &FileSource{
		path:       path,
		samples:    samples,
		sampleRate: float64(sampleRate),
		cfg:        cfg,
		device:     device,
		tap:        NewTap(config.TapRingSize),
		monoBuf:    make([]float64, cfg.FramesPerBuffer),
	}
	if cfg.LowLatency {
		s.latency = device.DefaultLowOutputLatency
	} else {
		s.latency = device.DefaultHighOutputLatency
	}

	log.Infof("audio: decoded %s (%.1fs at %d Hz)",
		filepath.Base(path), float64(len(samples))/float64(sampleRate), sampleRate)
	return s, nil
}

func (s *FileSource) Start() error {
	if s.stream != nil {
		return fmt.Errorf("playback already started")
	}

	params := portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   s.device,
			Channels: 1,
			Latency:  s.latency,
		},
		FramesPerBuffer: s.cfg.FramesPerBuffer,
		SampleRate:      s.sampleRate,
	}

	stream, err := portaudio.OpenStream(params, s.process)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	s.stream = stream
	return nil
}

// Stop halts playback and closes the stream. Idempotent.
func (s *FileSource) Stop() error {
	if s.stream == nil {
		return nil
	}
	if err := s.stream.Stop(); err != nil {
		return err
	}
	if err := s.stream.Close(); err != nil {
		return err
	}
	s.stream = nil
	return nil
}

func (s *FileSource) SampleRate() float64 { return s.sampleRate }
func (s *FileSource) Tap() *Tap           { return s.tap }

func (s *FileSource) Describe() string {
	return fmt.Sprintf("file:%s", filepath.Base(s.path))
}

// TogglePause flips the pause state and returns the new value. While
// paused the callback emits silence without advancing, so the tap goes
// stale and the visuals settle.
func (s *FileSource) TogglePause() bool {
	paused := !s.paused.Load()
	s.paused.Store(paused)
	return paused
}

func (s *FileSource) Paused() bool   { return s.paused.Load() }
func (s *FileSource) Finished() bool { return s.finished.Load() }

// Progress returns playback position in [0, 1].
func (s *FileSource) Progress() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return float64(s.pos.Load()) / float64(len(s.samples))
}

// process is the real-time output callback.
func (s *FileSource) process(out []float32) {
	pos := int(s.pos.Load())
	if s.paused.Load() || pos >= len(s.samples) {
		for i := range out {
			out[i] = 0
		}
		if pos >= len(s.samples) {
			s.finished.Store(true)
		}
		return
	}

	n := len(s.samples) - pos
	if n > len(out) {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		v := s.samples[pos+i]
		out[i] = float32(v)
		s.monoBuf[i] = v
	}
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
	s.pos.Store(int64(pos + n))

	s.tap.PushMono(s.monoBuf[:n])
}

// decodeFile loads the file into a mono float64 buffer in [-1, 1] and
// returns it with its sample rate.
func decodeFile(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	default:
		return nil, 0, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func decodeWAV(f *os.File) ([]float64, int, error) {
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode WAV: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := 1.0 / float64(int(1)<<(d.BitDepth-1))
	frames := len(buf.Data) / channels

	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var mono float64
		for c := 0; c < channels; c++ {
			mono += float64(buf.Data[i*channels+c])
		}
		samples[i] = mono / float64(channels) * scale
	}
	return samples, buf.Format.SampleRate, nil
}

func decodeMP3(f *os.File) ([]float64, int, error) {
	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode MP3: %w", err)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read MP3 stream: %w", err)
	}

	// go-mp3 always yields 16-bit little-endian stereo.
	frames := len(raw) / 4
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left := int16(binary.LittleEndian.Uint16(raw[i*4:]))
		right := int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
		samples[i] = (float64(left) + float64(right)) / 2 / 32768
	}
	return samples, d.SampleRate(), nil
}
