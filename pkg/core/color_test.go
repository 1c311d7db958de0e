package core

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestNewColorHex(t *testing.T) {
	c := NewColorHex(0x8b9dc300)

	r, g, b, a := c.ToRGBA8()
	if r != 0x8b || g != 0x9d || b != 0xc3 || a != 0xff {
		t.Errorf("Round trip produced %02x%02x%02x%02x", r, g, b, a)
	}
}

func TestColor_Arithmetic(t *testing.T) {
	a := NewColor(0.2, 0.4, 0.6)
	b := NewColor(0.5, 0.5, 0.5)

	tests := []struct {
		name     string
		got      Color
		expected Color
	}{
		{"add", a.Add(b), NewColor(0.7, 0.9, 1.1)},
		{"subtract", a.Subtract(b), NewColor(-0.3, -0.1, 0.1)},
		{"scale", a.Scale(2), NewColor(0.4, 0.8, 1.2)},
		{"multiply", a.Multiply(b), NewColor(0.1, 0.2, 0.3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got.R-tt.expected.R) > 1e-12 ||
				math.Abs(tt.got.G-tt.expected.G) > 1e-12 ||
				math.Abs(tt.got.B-tt.expected.B) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestColor_ClampMaxKeepsNegatives(t *testing.T) {
	c := NewColor(1.5, -0.25, 0.5).ClampMax(1)
	if c != NewColor(1, -0.25, 0.5) {
		t.Errorf("Expected upper clamp only, got %v", c)
	}
}

func TestColor_ToRGBA8(t *testing.T) {
	tests := []struct {
		name    string
		color   Color
		r, g, b uint8
	}{
		{"black", NewColor(0, 0, 0), 0, 0, 0},
		{"white", NewColor(1, 1, 1), 255, 255, 255},
		{"truncates", NewColor(0.5, 0.999, 0.1), 127, 254, 25},
		{"saturates", NewColor(2, -1, math.NaN()), 255, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.color.ToRGBA8()
			if r != tt.r || g != tt.g || b != tt.b || a != 255 {
				t.Errorf("Expected (%d,%d,%d,255), got (%d,%d,%d,%d)", tt.r, tt.g, tt.b, r, g, b, a)
			}
		})
	}
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), slog.LevelInfo)

	logger.Printf("loaded %d triangles\n", 12)

	out := buf.String()
	if !strings.Contains(out, "loaded 12 triangles") {
		t.Errorf("Expected message in output, got %q", out)
	}
	if !strings.Contains(out, "level=INFO") {
		t.Errorf("Expected info level, got %q", out)
	}
}

func TestNopLogger(t *testing.T) {
	// Must not panic
	NopLogger().Printf("ignored %s", "message")
	NewSlogLogger(nil, slog.LevelInfo).Printf("ignored")
}
