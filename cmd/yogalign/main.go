// Command yogalign runs a live pose comparison session: it captures
// camera frames, sends them to the pose service, renders the feedback
// overlay, speaks cues, and serves the web dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yogalign/yogalign/internal/config"
	"github.com/yogalign/yogalign/internal/log"
	"github.com/yogalign/yogalign/pkg/announce"
	"github.com/yogalign/yogalign/pkg/capture"
	"github.com/yogalign/yogalign/pkg/engine"
	"github.com/yogalign/yogalign/pkg/overlay"
	"github.com/yogalign/yogalign/pkg/poseapi"
	"github.com/yogalign/yogalign/pkg/speech"
	"github.com/yogalign/yogalign/pkg/web"
)

func main() {
	serverURL := flag.String("server", config.ServerURL(config.DefaultServerURL), "Pose service base URL")
	asana := flag.String("asana", "", "Asana name to practice")
	poseNumber := flag.Int("pose", 1, "Reference pose number within the asana")
	tolerance := flag.Float64("tolerance", 20, "Angle tolerance in percent (5-50)")
	continuous := flag.Bool("continuous", false, "Start in continuous comparison mode")
	interval := flag.Duration("interval", 1300*time.Millisecond, "Rest between continuous cycles")
	device := flag.Int("device", config.CameraDevice(0), "Camera device ID")
	dashboardPort := flag.String("port", config.DashboardPort(), "Dashboard HTTP port")
	noAudio := flag.Bool("no-audio", false, "Disable spoken feedback cues")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	if *asana == "" {
		fmt.Fprintln(os.Stderr, "Error: -asana is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	client := poseapi.NewClient(poseapi.WithBaseURL(*serverURL))

	// List the available asanas so a typo fails fast with suggestions.
	if names, err := client.Asanas(ctx); err == nil {
		log.Info("service reachable", "asanas", len(names))
		known := false
		for _, name := range names {
			if name == *asana {
				known = true
				break
			}
		}
		if !known {
			log.Warn("asana not in service catalog", "asana", *asana, "available", names)
		}
	} else {
		log.Warn("could not list asanas, continuing anyway", "error", err)
	}

	camera, err := capture.Open(capture.WithDeviceID(*device))
	if err != nil {
		log.Error("camera open failed", "device", *device, "error", err)
		os.Exit(1)
	}
	defer camera.Close()
	width, height := camera.Resolution()
	log.Info("camera ready", "device", *device, "width", width, "height", height)

	eng := engine.New(camera, client, engine.WithInterval(*interval))
	defer eng.Close()

	if err := eng.SetParams(poseapi.SessionParameters{
		AsanaName:           *asana,
		ReferencePoseNumber: *poseNumber,
		Tolerance:           *tolerance,
	}); err != nil {
		log.Error("invalid session parameters", "error", err)
		os.Exit(1)
	}

	var dispatcher *announce.Dispatcher
	if !*noAudio {
		if provider, err := speech.NewLocal(); err == nil {
			dispatcher = announce.NewDispatcher(provider)
			defer func() {
				dispatcher.Close()
				provider.Close()
			}()
			eng.SetAnnouncer(dispatcher)
		} else {
			log.Warn("no speech backend found, audio cues disabled", "error", err)
		}
	}

	srv := web.NewServer(*dashboardPort, eng)
	srv.OnRunOnce = func() error {
		return eng.RunOnce(context.Background())
	}
	srv.OnContinuousChange = func(enabled bool) error {
		if enabled {
			eng.StartContinuous()
		} else {
			eng.Stop()
		}
		if dispatcher != nil {
			dispatcher.Reset()
		}
		return nil
	}
	srv.StartAsync()
	defer srv.Shutdown()

	renderer := overlay.New(eng.Store(), srv.SendOverlayFrame)
	renderer.SetSurfaceSize(width, height)
	defer renderer.Close()
	go renderer.Run(ctx)

	// Push status to dashboard clients at a human rate.
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.PushStatus()
			}
		}
	}()

	if *continuous {
		eng.StartContinuous()
		log.Info("continuous comparison started", "asana", *asana, "pose", *poseNumber)
	} else {
		log.Info("ready", "asana", *asana, "pose", *poseNumber,
			"hint", "POST /api/session/run or /api/session/continuous")
	}

	<-ctx.Done()
	eng.Stop()
	log.Info("session ended", "session_id", eng.ID())
}
