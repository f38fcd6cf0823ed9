package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFace(t *testing.T) {
	tests := []struct {
		name string
		size float64
		bold bool
	}{
		{"regular", 24, false},
		{"bold", 24, true},
		{"clamped", 0.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face, err := Face(tt.size, tt.bold)
			if err != nil {
				t.Fatalf("Face() error: %v", err)
			}
			defer face.Close()

			if w := font.MeasureString(face, "365"); w <= 0 {
				t.Errorf("MeasureString = %v, want > 0", w)
			}
		})
	}
}

func TestFaceScalesWithSize(t *testing.T) {
	small, err := Face(10, false)
	if err != nil {
		t.Fatal(err)
	}
	defer small.Close()
	large, err := Face(40, false)
	if err != nil {
		t.Fatal(err)
	}
	defer large.Close()

	if font.MeasureString(small, "hit") >= font.MeasureString(large, "hit") {
		t.Error("larger face should measure wider")
	}
}
