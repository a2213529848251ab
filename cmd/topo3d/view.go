package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/topo3d/app"
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/config"
	"github.com/Carmen-Shannon/topo3d/engine"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/renderer"
	"github.com/Carmen-Shannon/topo3d/engine/renderer/mesh"
	"github.com/Carmen-Shannon/topo3d/engine/window"
	"github.com/Carmen-Shannon/topo3d/topology"
	"github.com/spf13/cobra"
)

var viewFlags struct {
	config      string
	watch       bool
	feed        string
	firstPerson bool
	profile     bool
	software    bool
	fpsLimit    float64
}

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open an interactive 3D view of a topology",
	Long: `Open a window showing the topology in file. Drag the background to orbit and the
wheel to zoom. Clicking a node attaches the transform gizmo: W, E and R switch between
translate, rotate and scale, Q toggles world and local space, + and - resize the gizmo,
and Home resets the camera.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	f := viewCmd.Flags()
	f.StringVarP(&viewFlags.config, "config", "c", "", "configuration file (.toml, .yaml or .yml)")
	f.BoolVarP(&viewFlags.watch, "watch", "w", false, "reload the topology file when it changes")
	f.StringVar(&viewFlags.feed, "feed", "", "websocket URL streaming topology snapshots")
	f.BoolVar(&viewFlags.firstPerson, "first-person", false, "fly the camera with WASD and the mouse instead of orbiting")
	f.BoolVar(&viewFlags.profile, "profile", false, "log loop and frame statistics every second")
	f.BoolVar(&viewFlags.software, "software", false, "force the software GPU adapter")
	f.Float64Var(&viewFlags.fpsLimit, "fps", 0, "maximum frames per second (0 = uncapped)")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && viewFlags.feed == "" {
		return errors.New("either a topology file or --feed is required")
	}
	if viewFlags.watch && len(args) == 0 {
		return errors.New("--watch needs a topology file")
	}

	cfg, err := config.Load(viewFlags.config)
	if err != nil {
		return err
	}

	var initial *topology.Topology
	if len(args) == 1 {
		if initial, err = topology.Load(args[0]); err != nil {
			return err
		}
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}

	cam := camera.NewCamera(cfg.CameraOptions(float32(win.Width()) / float32(max(win.Height(), 1)))...)

	rend, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithClearColor(common.HexColor(cfg.Window.Background)),
		renderer.WithForceSoftwareRenderer(viewFlags.software),
	)
	if err != nil {
		win.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer rend.Release()

	viewer := app.NewViewer(cam, win, app.WithConfig(cfg), app.WithFirstPerson(viewFlags.firstPerson))
	defer viewer.Dispose()
	if initial != nil {
		if err := viewer.Load(initial); err != nil {
			return err
		}
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(rend),
		engine.WithScene(0, viewer.Scene()),
		engine.WithProfiling(viewFlags.profile),
		engine.WithRenderFrameLimit(viewFlags.fpsLimit),
	)

	var batch mesh.Batch
	title := ""
	eng.SetTickCallback(func(dt float32) {
		if viewer.Tick(dt) {
			eng.RequestRedraw()
		}
		if s := viewer.Status(); s != title {
			title = s
			win.SetTitle(s)
		}
	})
	eng.SetRenderCallback(func(float32) {
		viewer.Draw(&batch)
		if err := rend.Render(cam, &batch); err != nil {
			log.Printf("[View] render failed: %v", err)
		}
	})
	eng.SetResizeCallback(func(int, int) {
		viewer.HandleResize()
	})

	// Updates arrive on watcher and feed goroutines and are applied on the window thread.
	post := func(u topology.Update) {
		ok := eng.Post(func() {
			if u.Err != nil {
				log.Printf("[View] topology update rejected: %v", u.Err)
				return
			}
			if err := viewer.Load(u.Topology); err != nil {
				log.Printf("[View] topology update rejected: %v", err)
				return
			}
			eng.RequestRedraw()
		})
		if !ok {
			log.Printf("[View] topology update dropped")
		}
	}

	if viewFlags.watch {
		w, err := topology.Watch(args[0], topology.WithDebounce(cfg.Debounce()))
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			for u := range w.Updates() {
				post(u)
			}
		}()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if viewFlags.feed != "" {
		go func() {
			if err := topology.Stream(ctx, viewFlags.feed, post); err != nil {
				log.Printf("[View] %v", err)
			}
		}()
	}

	eng.Run()
	return nil
}
