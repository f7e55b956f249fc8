package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(3, 2, '>', ColorOrange)
	cell := s.GetCell(3, 2)
	if cell.Rune != '>' || cell.Color != ColorOrange {
		t.Errorf("GetCell = %+v, expected '>' orange", cell)
	}

	// Out of bounds is ignored
	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	if s.Get(-1, 0) != ' ' {
		t.Error("out-of-bounds Get should return space")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorWhite)
	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorCyan)

	if s.Get(0, 0) != '╭' || s.Get(5, 3) != '╯' {
		t.Errorf("corners not drawn: %q %q", s.Get(0, 0), s.Get(5, 3))
	}
	if s.Get(2, 0) != '─' || s.Get(0, 2) != '│' {
		t.Error("edges not drawn")
	}
	if s.Get(2, 2) != ' ' {
		t.Error("box interior should stay blank")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawHLine(0, 1, 3, '~', ColorBlue)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "~~~" {
		t.Errorf("line 1 = %q, expected ~~~", lines[1])
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'x')
	s.Resize(8, 2)

	if s.Width() != 8 || s.Height() != 2 {
		t.Fatalf("size after resize = %dx%d", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("resize should clear content")
	}
}
