package panzoom

import (
	"math"
	"testing"
)

func TestReleaseDamping(t *testing.T) {
	assertNear(t, "damping(0)", releaseDamping(0), 0.8)
	// (t+1)^-4 drops below 0.2 just after t = 0.4953.
	assertNear(t, "damping(1)", releaseDamping(1), 0)
	if d := releaseDamping(0.1); d <= 0 || d >= 0.8 {
		t.Errorf("damping(0.1) = %f, want in (0, 0.8)", d)
	}
}

func TestIntegrateKineticVelocityDecay(t *testing.T) {
	v0 := Point{1000, -500}
	const friction = 10.0
	for _, n := range []int{1, 3, 5} {
		_, v, halted := integrateKinetic(Point{}, v0, float64(n)*kineticSubStep, friction, 0)
		if halted {
			t.Fatalf("n=%d: halted with haltSpeed 0", n)
		}
		f := math.Pow(1-friction*kineticSubStep, float64(n))
		assertPoint(t, "velocity", v, v0.Mul(f), 1e-6)
	}
}

func TestIntegrateKineticPosition(t *testing.T) {
	// One sub-step moves by v*dt before friction applies.
	pan, _, _ := integrateKinetic(Point{5, 5}, Point{100, 0}, kineticSubStep, 10, 0)
	assertPoint(t, "pan", pan, Point{7, 5}, 1e-9)
}

func TestIntegrateKineticSubSteps(t *testing.T) {
	// A long frame gap is split, so it decays like many short steps.
	_, vLong, _ := integrateKinetic(Point{}, Point{1000, 0}, 0.1, 10, 0)
	_, vShort, _ := integrateKinetic(Point{}, Point{1000, 0}, kineticSubStep, 10, 0)
	for i := 0; i < 4; i++ {
		_, vShort, _ = integrateKinetic(Point{}, vShort, kineticSubStep, 10, 0)
	}
	assertPoint(t, "velocity", vLong, vShort, 1e-6)
}

func TestIntegrateKineticHalts(t *testing.T) {
	// 200 * 0.8 = 160, then 128, then 102.4, then 81.92 <= 100.
	_, v, halted := integrateKinetic(Point{}, Point{200, 0}, 1, 10, 100)
	if !halted {
		t.Fatal("expected halt")
	}
	assertNear(t, "halt velocity", v.X, 81.92)
}

func TestIntegrateKineticZeroDt(t *testing.T) {
	pan, v, halted := integrateKinetic(Point{1, 2}, Point{300, 0}, 0, 10, 100)
	if halted {
		t.Error("zero dt should not halt")
	}
	assertPoint(t, "pan", pan, Point{1, 2}, epsilon)
	assertPoint(t, "velocity", v, Point{300, 0}, epsilon)
}

func TestContentBounds(t *testing.T) {
	b := contentBounds(Size{100, 50}, Size{400, 300}, 2, Point{10, 20})
	assertPoint(t, "topLeft", b.topLeft, Point{10, 20}, epsilon)
	assertPoint(t, "bottomRight", b.bottomRight, Point{210, 120}, epsilon)
}

func TestPullbackInsideFrameUnchanged(t *testing.T) {
	b := contentBounds(Size{800, 600}, Size{400, 300}, 1, Point{-100, -100})
	d := Point{15, -15}
	assertPoint(t, "delta", b.pullback(d, 0.7), d, epsilon)
}

func TestPullbackAttenuatesOutward(t *testing.T) {
	// Left edge is 50px inside the frame; dragging further right resists.
	b := contentBounds(Size{800, 600}, Size{400, 300}, 1, Point{50, -100})
	got := b.pullback(Point{10, 0}, 0.7)
	assertNear(t, "x", got.X, 10*math.Pow(50, -0.7))

	// Dragging back toward the frame edge is not attenuated.
	got = b.pullback(Point{-10, 0}, 0.7)
	assertNear(t, "x inward", got.X, -10)
}

func TestPullbackBottomRightMeasuredAgainstFrame(t *testing.T) {
	// Right edge sits at 350 in a 400-wide frame: excursion 50.
	b := contentBounds(Size{450, 600}, Size{400, 300}, 1, Point{-100, -100})
	got := b.pullback(Point{-10, 0}, 0.7)
	assertNear(t, "x", got.X, -10*math.Pow(50, -0.7))
}

func TestPullbackSmallExcursionCapped(t *testing.T) {
	// x^-c > 1 for x < 1; the factor is capped at 1.
	b := contentBounds(Size{800, 600}, Size{400, 300}, 1, Point{0.5, -100})
	assertNear(t, "x", b.pullback(Point{4, 0}, 0.7).X, 4)
}

func TestRestore(t *testing.T) {
	b := contentBounds(Size{800, 600}, Size{400, 300}, 1, Point{40, -100})
	assertPoint(t, "restore left", b.restore(0.5), Point{-20, 0}, epsilon)

	b = contentBounds(Size{800, 600}, Size{400, 300}, 1, Point{-500, -400})
	// Right edge at 300 (100 short), bottom at 200 (100 short).
	assertPoint(t, "restore bottom-right", b.restore(0.5), Point{50, 50}, epsilon)

	b = contentBounds(Size{800, 600}, Size{400, 300}, 1, Point{-100, -100})
	assertPoint(t, "in bounds", b.restore(0.5), Point{}, epsilon)
}
