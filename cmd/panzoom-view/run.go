package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/panzoom"
)

const envPrefix = "PANZOOM"

func run(cmd *cobra.Command, o options, imagePath string) error {
	logger := newLogger(o.logLevel, o.logFile)
	slog.SetDefault(logger)

	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}

	img, err := loadImage(imagePath)
	if err != nil {
		return err
	}

	frame := panzoom.Size{Width: float64(o.width), Height: float64(o.height)}
	v, err := panzoom.NewViewer(cfg, img, frame, panzoom.WithLogger(logger.With(slog.String("component", "panzoom"))))
	if err != nil {
		return err
	}
	v.Engine().SetDebugMode(o.debug)

	if o.script != "" {
		data, err := os.ReadFile(o.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := panzoom.LoadTestScript(data)
		if err != nil {
			return err
		}
		v.SetTestRunner(runner)
		v.ExitWhenScriptDone = true
	}

	b := img.Bounds()
	logger.Info("starting viewer",
		slog.String("image", imagePath),
		slog.Int("contentWidth", b.Dx()),
		slog.Int("contentHeight", b.Dy()),
		slog.Bool("keepInBounds", cfg.KeepInBounds))

	return panzoom.Run(v, panzoom.RunConfig{
		Title:   o.title,
		Width:   o.width,
		Height:  o.height,
		ShowFPS: o.showFPS,
	})
}

// loadConfig layers the config file, the environment and explicit flags over
// the defaults, in that order.
func loadConfig(cmd *cobra.Command, o options) (panzoom.Config, error) {
	cfg := panzoom.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = panzoom.LoadConfigFile(o.configPath); err != nil {
			return cfg, err
		}
	}
	if err := panzoom.ApplyEnv(envPrefix, &cfg); err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("keep-in-bounds") {
		cfg.KeepInBounds = o.keepInBounds
	}
	return cfg, cfg.Validate()
}

func loadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return ebiten.NewImageFromImage(checkerboard(1024, 768, 64)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(src), nil
}

// checkerboard generates a w x h test image with cells of the given size.
func checkerboard(w, h, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	light := color.RGBA{0xdd, 0xe4, 0xee, 0xff}
	dark := color.RGBA{0x50, 0xb4, 0xff, 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
