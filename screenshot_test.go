package panzoom

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-zoom", "after-zoom"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	v.Screenshot("a")
	v.Screenshot("b")
	v.Screenshot("c")
	if len(v.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(v.screenshotQueue))
	}
	if v.screenshotQueue[0] != "a" || v.screenshotQueue[1] != "b" || v.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", v.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	v := newTestViewer(t, DefaultConfig())
	if v.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", v.ScreenshotDir, "screenshots")
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half-transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	if got := img.Pix[0:4]; got[0] != 255 || got[1] != 127 || got[2] != 0 || got[3] != 128 {
		t.Errorf("half-transparent = %v, want [255 127 0 128]", got)
	}
	if got := img.Pix[4:8]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 255 {
		t.Errorf("opaque = %v, want unchanged", got)
	}
	if got := img.Pix[8:12]; got[3] != 0 {
		t.Errorf("transparent alpha = %d, want 0", got[3])
	}
}
