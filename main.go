// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"visualizer/cmd"
	"visualizer/internal/app"
	"visualizer/internal/audio"
	"visualizer/internal/config"
	applog "visualizer/internal/log"
	"visualizer/internal/pipeline"
	"visualizer/internal/transport"
	"visualizer/internal/tui"
	"visualizer/pkg/build"
)

// main runs in three phases: startup (build metadata, PortAudio, flags,
// one-off commands), the display loop (the Ebitengine game owns the
// thread until quit), and shutdown (detach the pipeline, close the
// transport, terminate PortAudio).
func main() {
	build.Initialize()

	cfg, err := cmd.ParseArgs()
	if err != nil {
		applog.Fatalf("parse args: %v", err)
	}
	if cfg.Verbose {
		applog.SetLevel(applog.LevelDebug)
	}

	if err := audio.Initialize(); err != nil {
		applog.Fatalf("%v", err)
	}
	defer audio.Terminate()

	switch cfg.Command {
	case "list":
		if err := audio.ListDevices(); err != nil {
			applog.Fatalf("list devices: %v", err)
		}
		return
	case "pick":
		device, err := tui.PickDevice()
		if err != nil {
			applog.Fatalf("device picker: %v", err)
		}
		if device != nil {
			fmt.Printf("Selected [%d] %s\n", device.ID, device.Name)
			fmt.Printf("Run with: %s --device %d\n", "visualizer", device.ID)
		}
		return
	}

	sink, err := buildTransport(cfg.ServeAddr, cfg.UDPAddr, cfg.Verbose)
	if err != nil {
		applog.Fatalf("%v", err)
	}
	if sink != nil {
		defer sink.Close()
	}

	clock := pipeline.NewManualClock()
	pipe := pipeline.New(clock, sink, pipeline.Options{
		FFTSize: cfg.FramesPerBuffer,
		Window:  cfg.FFTWindow,
		Seed:    cfg.ParticleSeed,
	})
	defer pipe.Detach()

	src, err := buildSource(cfg)
	if err != nil {
		applog.Fatalf("%v", err)
	}
	if err := pipe.Attach(src, cfg.WindowWidth, cfg.WindowHeight); err != nil {
		applog.Fatalf("attach: %v", err)
	}

	if cfg.Record {
		if capture, ok := src.(*audio.CaptureSource); ok {
			if err := capture.StartRecording(cfg.OutputFile); err != nil {
				applog.Fatalf("start recording: %v", err)
			}
			defer capture.StopRecording()
		} else {
			applog.Warnf("--record only applies to live capture, ignoring")
		}
	}

	game := app.NewGame(cfg, pipe, clock)
	if err := app.Run(game); err != nil {
		applog.Fatalf("%v", err)
	}
}

// buildTransport resolves the frame sink from the flags. WebSocket wins
// over UDP when both are set; verbose mode without a network sink gets
// the debug logging sink.
func buildTransport(serveAddr, udpAddr string, verbose bool) (transport.Transport, error) {
	switch {
	case serveAddr != "":
		return transport.NewWebSocketTransport(serveAddr), nil
	case udpAddr != "":
		return transport.NewUDPTransport(udpAddr)
	case verbose:
		return transport.NewLoggingTransport(), nil
	default:
		return nil, nil
	}
}

// buildSource opens the audio source: a decoded file when a path was
// given, otherwise live capture from the configured device.
func buildSource(cfg *config.Config) (audio.Source, error) {
	if cfg.FilePath != "" {
		return audio.NewFileSource(cfg.FilePath, cfg)
	}
	return audio.NewCaptureSource(cfg)
}
