// Command panzoom-view shows an image in a pan/zoom viewer window.
//
// Usage:
//
//	panzoom-view [image] [flags]
//
// Without an image a generated checkerboard is shown. Configuration is read
// from the --config YAML file, then overridden by PANZOOM_* environment
// variables, then by flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath   string
	width        int
	height       int
	keepInBounds bool
	logFile      string
	logLevel     string
	script       string
	title        string
	showFPS      bool
	debug        bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "panzoom-view [image]",
		Short: "Pan and zoom an image with kinetic scrolling",
		Long: `Shows an image (PNG or JPEG) in a resizable window.

Drag to pan, release to fling. Scroll or pinch to zoom, double-click to
zoom in one level.

Examples:
  panzoom-view map.png                          # View an image
  panzoom-view --keep-in-bounds map.png         # Keep the image inside the frame
  panzoom-view --script smoke.json              # Replay a scripted session`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var imagePath string
			if len(args) == 1 {
				imagePath = args[0]
			}
			return run(cmd, o, imagePath)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML config file")
	f.IntVar(&o.width, "width", 960, "window width")
	f.IntVar(&o.height, "height", 640, "window height")
	f.BoolVar(&o.keepInBounds, "keep-in-bounds", false, "keep the content inside the frame")
	f.StringVar(&o.logFile, "log-file", "", "also write JSON logs to this file (rotated)")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.StringVar(&o.script, "script", "", "JSON test script to replay; exits when done")
	f.StringVar(&o.title, "title", "panzoom", "window title")
	f.BoolVar(&o.showFPS, "fps", false, "show FPS overlay")
	f.BoolVar(&o.debug, "debug", false, "log per-animation stats")
	return cmd
}
