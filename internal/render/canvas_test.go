package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvas_SetAndLayer(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.DotWidth() != 8 || c.DotHeight() != 8 {
		t.Fatalf("dot size = %dx%d, want 8x8", c.DotWidth(), c.DotHeight())
	}

	c.Set(0, 0, 3)
	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("cell = %U, want %U", c.Grid[0][0], brailleBlank|0x1)
	}
	if c.Layer[0][0] != 3 {
		t.Errorf("layer = %d, want 3", c.Layer[0][0])
	}

	c.Set(3, 7, 1)
	if c.Grid[1][1] != brailleBlank|0x80 {
		t.Errorf("cell = %U, want %U", c.Grid[1][1], brailleBlank|0x80)
	}
}

func TestCanvas_OutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0, 0)
	c.Set(0, -1, 0)
	c.Set(4, 0, 0)
	c.Set(0, 8, 0)
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r > brailleBlank }) {
		t.Error("out of range pixels should be ignored")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, 0)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != brailleBlank|0x1|0x8 {
			t.Errorf("col %d = %U", col, c.Grid[0][col])
		}
	}
}

func TestCanvas_RenderKeepsRunes(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(0, 0, 0)
	out := c.Render([]lipgloss.Style{lipgloss.NewStyle()})
	if out != c.String() {
		t.Errorf("unstyled render = %q, want %q", out, c.String())
	}
}
