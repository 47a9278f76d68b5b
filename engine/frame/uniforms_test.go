package frame

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestBuildUniformsFallback(t *testing.T) {
	got := BuildUniforms(nil)
	if got.Resolution != [2]float32{1280, 800} {
		t.Errorf("BuildUniforms(nil) = %v, want (1280, 800)", got.Resolution)
	}
}

func TestBuildUniformsFromSize(t *testing.T) {
	got := BuildUniforms(&WindowSize{Width: 640, Height: 480})
	if got.Resolution != [2]float32{640, 480} {
		t.Errorf("BuildUniforms(640x480) = %v, want (640, 480)", got.Resolution)
	}
}

func TestUniformBlockMarshal(t *testing.T) {
	buf := UniformBlock{Resolution: [2]float32{1920, 1080}}.Marshal()
	if len(buf) != UniformBlockSize {
		t.Fatalf("len(Marshal()) = %d, want %d", len(buf), UniformBlockSize)
	}
	w := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
	h := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))
	if w != 1920 || h != 1080 {
		t.Errorf("Marshal() encoded (%v, %v), want (1920, 1080)", w, h)
	}
	for i, b := range buf[8:] {
		if b != 0 {
			t.Errorf("padding byte %d = %d, want 0", i, b)
		}
	}
}
