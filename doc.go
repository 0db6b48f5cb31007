// Package panzoom is a pan/zoom transform and animation engine, with an
// optional viewer for [Ebitengine].
//
// The engine keeps a zoom level and a pan offset for some content shown
// inside a fixed frame and turns them into a [Transform] (scale, then
// translate) that a host applies to its drawing. It handles zooming around
// an anchor point, animated zoom/pan, kinetic panning after a drag is
// released and an optional rubber-band "keep in bounds" behaviour.
//
// # Quick start
//
// The simplest way to get started is [Run], which shows an image in a
// window and wires mouse, wheel and touch input for you:
//
//	v, err := panzoom.NewViewer(panzoom.DefaultConfig(), img, panzoom.Size{Width: 960, Height: 640})
//	if err != nil {
//		log.Fatal(err)
//	}
//	panzoom.Run(v, panzoom.RunConfig{Title: "Viewer", Width: 960, Height: 640})
//
// For full control, create an [Engine] with your own [Surface] and
// [Scheduler] and feed it gestures directly:
//
//	clock := panzoom.NewFrameClock()
//	e, err := panzoom.New(cfg, panzoom.SurfaceFunc(func(t panzoom.Transform) {
//		geoM = t.GeoM()
//	}), frame, content, panzoom.WithScheduler(clock))
//
//	// every frame:
//	clock.Advance(time.Second / 60)
//
// # Zoom levels
//
// Zoom is expressed in levels. Level [Config.NeutralZoomLevel] renders at
// scale 1 and every level multiplies the scale by
// [Config.ScalePerZoomLevel]. Levels are clamped to 0..ZoomLevels-1, or to
// the neutral level and above when [Config.KeepInBounds] is set.
//
// # Settled and rendered state
//
// The engine tracks two states. [Engine.Base] is where the view will rest
// once the current animation finishes; [Engine.Model] is what is rendered
// right now. Operations that are relative to the current view (PanDelta,
// ZoomIn) work from the settled state so that repeated input accumulates
// correctly while an animation is running.
//
// # Configuration
//
// [Config] can be loaded from YAML with [LoadConfig] and overridden from
// the environment with [ApplyEnv]. Animation curves come from [gween]'s
// easing functions and are selected by name.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package panzoom
