package audio

import (
	"fmt"
	"os"
	"sync/atomic"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"visualizer/internal/log"
)

const recordBitDepth = 16

// recorder writes captured input to a WAV file. The active flag is atomic
// so the audio callback can check it without locking; start/stop run on the
// control path only.
type recorder struct {
	active    atomic.Bool
	file      *os.File
	encoder   *wav.Encoder
	sampleBuf *goaudio.IntBuffer
}

func (r *recorder) start(path string, sampleRate, channels, framesPerBuffer int) error {
	if r.active.Load() {
		return fmt.Errorf("already recording")
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	r.file = file
	r.encoder = wav.NewEncoder(file, sampleRate, recordBitDepth, channels, 1)
	r.sampleBuf = &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data: make([]int, framesPerBuffer*channels),
	}

	r.active.Store(true)
	return nil
}

func (r *recorder) stop() error {
	if !r.active.Load() {
		return nil
	}
	r.active.Store(false)

	if r.encoder != nil {
		if err := r.encoder.Close(); err != nil {
			return err
		}
		r.encoder = nil
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			return err
		}
		r.file = nil
	}
	return nil
}

// write converts the float32 callback buffer to 16-bit samples and appends
// them to the encoder. Called from the audio callback; no allocations.
func (r *recorder) write(in []float32) {
	if !r.active.Load() || r.encoder == nil {
		return
	}

	data := r.sampleBuf.Data[:cap(r.sampleBuf.Data)]
	n := len(in)
	if n > len(data) {
		n = len(data)
	}
	for i := 0; i < n; i++ {
		data[i] = int(in[i] * 32767)
	}
	r.sampleBuf.Data = data[:n]

	if err := r.encoder.Write(r.sampleBuf); err != nil {
		log.Errorf("audio: writing WAV frame: %v", err)
	}
}

// StartRecording begins writing captured input to path.
func (s *CaptureSource) StartRecording(path string) error {
	return s.rec.start(path, int(s.cfg.SampleRate), s.cfg.Channels, s.cfg.FramesPerBuffer)
}

// StopRecording finalizes the WAV file. Safe to call when not recording.
func (s *CaptureSource) StopRecording() error {
	return s.rec.stop()
}

// Recording reports whether input is currently being written to disk.
func (s *CaptureSource) Recording() bool {
	return s.rec.active.Load()
}
