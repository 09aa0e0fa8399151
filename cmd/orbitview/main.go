package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/orbitcontrols/common"
	"github.com/Carmen-Shannon/orbitcontrols/engine"
	"github.com/Carmen-Shannon/orbitcontrols/engine/camera"
	"github.com/Carmen-Shannon/orbitcontrols/engine/renderer"
	"github.com/Carmen-Shannon/orbitcontrols/engine/window"
	"github.com/Carmen-Shannon/orbitcontrols/internal/config"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	ortho      bool
	profile    bool
	verbose    bool
	vsync      bool
	software   bool
	width      int
	height     int
	tickRate   float64
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "orbitview",
	Short: "Orbit, pan and dolly a camera around a target",
	Long: `orbitview opens a window with an orbit-controlled camera.

Left drag rotates, middle drag or the wheel dollies, right drag pans when panning
is enabled. Hold ctrl, shift or super to swap rotate and pan. Arrow keys pan,
Home resets the view and Esc quits.`,
	Version:      "0.1.0",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "controls configuration JSON file")
	f.BoolVar(&opts.ortho, "ortho", false, "use an orthographic camera")
	f.BoolVar(&opts.profile, "profile", false, "log frame rate and memory statistics every second")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log gesture start and end")
	f.BoolVar(&opts.vsync, "vsync", true, "wait for vertical blank when presenting")
	f.BoolVar(&opts.software, "software", false, "force the software (fallback) GPU adapter")
	f.IntVar(&opts.width, "width", 1280, "window width in pixels")
	f.IntVar(&opts.height, "height", 720, "window height in pixels")
	f.Float64Var(&opts.tickRate, "tick-rate", 60, "controller updates per second")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", opts.width, opts.height)
	}

	var controlOpts []camera.OrbitControlsOption
	if opts.configPath != "" {
		cfg, err := config.LoadControlsConfig(opts.configPath)
		if err != nil {
			return fmt.Errorf("load controls config: %w", err)
		}
		controlOpts = cfg.Options()
	}

	w := window.NewWindow(
		window.WithTitle("orbitview"),
		window.WithSize(opts.width, opts.height),
	)
	defer w.Close()

	presentMode := renderer.PresentModeUncapped
	if opts.vsync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(opts.software),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithTickRate(opts.tickRate),
		engine.WithProfiling(opts.profile),
	)

	cam := newCamera(w.Width(), w.Height(), opts.ortho)
	controls := camera.NewOrbitControls(cam, eng.Viewport(), controlOpts...)
	defer controls.Dispose()
	eng.AttachControls(controls)
	eng.Input().Subscribe(resetOnHome(controls))

	if opts.verbose {
		logGestures(controls)
	}

	log.Printf("[orbitview] %dx%d %s camera", w.Width(), w.Height(), cam.Projection())
	eng.Run()
	log.Printf("[orbitview] rendered %d frames", r.Frames())
	return nil
}

// newCamera builds a camera for a framebuffer of the given size, looking at the origin from slightly above.
func newCamera(width, height int, ortho bool) camera.Camera {
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}
	cameraOpts := []camera.CameraBuilderOption{
		camera.WithPosition(0, 3, 10),
		camera.WithNear(0.1),
		camera.WithFar(1000),
	}
	if ortho {
		const halfHeight = 5
		cameraOpts = append(cameraOpts, camera.WithOrthographic(-halfHeight*aspect, halfHeight*aspect, halfHeight, -halfHeight))
	} else {
		cameraOpts = append(cameraOpts, camera.WithAspect(aspect))
	}
	return camera.NewCamera(cameraOpts...)
}

// resetOnHome returns an input handler that restores the saved view when Home is pressed.
// It runs on the engine tick goroutine alongside the controls.
func resetOnHome(controls camera.OrbitControls) func(camera.InputEvent) bool {
	return func(ev camera.InputEvent) bool {
		if k, ok := ev.(camera.KeyDownEvent); ok && k.KeyCode == common.KeyHome {
			controls.Reset()
			return true
		}
		return false
	}
}

func logGestures(controls camera.OrbitControls) {
	controls.AddListener(camera.EventStart, func(kind camera.EventKind) {
		log.Printf("[orbitview] %s %s", kind, controls.State())
	})
	controls.AddListener(camera.EventEnd, func(kind camera.EventKind) {
		log.Printf("[orbitview] %s (polar %.3f, azimuth %.3f)", kind, controls.PolarAngle(), controls.AzimuthalAngle())
	})
}
