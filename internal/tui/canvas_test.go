package tui

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("pixel not set")
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("clear did not reset the cell")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(-1, -1)
	c.Set(1000, 1000)
	c.FillCircle(-10, -10, 3)
	if strings.ContainsRune(c.String(), 0x28FF) {
		t.Error("out-of-bounds draw touched the grid")
	}
}

func TestFillCircleCoversCenter(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillCircle(10, 20, 3)
	if c.Grid[5][5] == 0x2800 {
		t.Error("center cell not filled")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("expected 3 cells per row, got %d", len([]rune(line)))
		}
	}
}
