package swim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-swim/internal/core"
)

// Visual characters for rendering
const (
	SeaFloorChar = '▀'
	WaterChar    = '·'
)

var (
	playerSprite   = []rune("><>")
	predatorSprite = []rune("<◣◣◣")
	preySprite     = []rune("><")
)

// Render draws the engine's current frame into dst.
func (e *Engine) Render(dst *core.Screen) {
	RenderFrame(dst, e.Snapshot(), e.cfg.Physics.BottomChrome, e.cfg.Player.X)
}

// RenderFrame draws a frame into dst. The bottom chrome rows hold the sea
// floor and a status line; the overlay message box is drawn last.
func RenderFrame(dst *core.Screen, f Frame, bottomChrome int, playerX float64) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	floorY := h - bottomChrome
	if floorY < 1 {
		floorY = 1
	}

	// Sparse water texture
	for y := 2; y < floorY; y += 4 {
		for x := (y * 7) % 11; x < w; x += 11 {
			dst.SetColored(x, y, WaterChar, ColorFor(f.EnvironmentIndex))
		}
	}

	dst.DrawHLine(0, floorY, w, SeaFloorChar, core.ColorYellow)

	for _, o := range f.Obstacles {
		drawObstacle(dst, o)
	}

	if f.Started && !f.Over {
		color := core.ColorOrange
		if f.Invincible {
			color = core.ColorBrightCyan
		}
		drawSprite(dst, int(playerX), int(f.Player.Y), playerSprite, color)
	}

	// HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Prey: %d ", f.PreyEaten), core.ColorWhite)
	status := fmt.Sprintf(" %s  |  swims left today: %d ", f.TierName, f.PlaysLeft)
	if f.Invincible {
		status += " |  SHIELD "
	}
	dst.DrawText(1, floorY+1, status, core.ColorGray)

	if title, subtitle, ok := overlayText(f); ok {
		drawCenteredMessage(dst, title, subtitle)
	}
}

// ColorFor returns the water tint for an environment tier.
func ColorFor(tierIdx int) core.Color {
	switch tierIdx {
	case 0:
		return core.ColorCyan
	case 1:
		return core.ColorGreen
	case 2:
		return core.ColorBlue
	default:
		return core.ColorDeepBlue
	}
}

func drawObstacle(dst *core.Screen, o Obstacle) {
	if o.Kind == Prey {
		drawSprite(dst, int(math.Floor(o.X)), int(o.Y), preySprite, core.ColorBrightYellow)
		return
	}
	drawSprite(dst, int(math.Floor(o.X)), int(o.Y), predatorSprite, core.ColorRed)
}

func drawSprite(dst *core.Screen, x, y int, sprite []rune, c core.Color) {
	for i, r := range sprite {
		dst.SetColored(x+i, y, r, c)
	}
}

// overlayText returns the message for the frame's mode. Loading has no
// text here; the platform draws its own spinner for it.
func overlayText(f Frame) (title, subtitle string, ok bool) {
	switch f.Mode {
	case ModeNoPlaysLeft:
		return "NO SWIMS LEFT TODAY", "Come back tomorrow for a fresh set", true
	case ModeMustCompletePrerequisite:
		return "FINISH TODAY'S PRACTICE", "Journal and do a breathing exercise to unlock", true
	case ModeGameOver:
		return "GAME OVER", fmt.Sprintf("Ate %d  |  %d left  |  Space to swim again", f.PreyEaten, f.PlaysLeft), true
	case ModeWelcome:
		return "WELCOME TO THE REEF", "Eat small fish, dodge predators  |  Space to start", true
	case ModeReadyToStart:
		return "READY TO SWIM", fmt.Sprintf("%d swims left today  |  Space to start", f.PlaysLeft), true
	default:
		return "", "", false
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorCyan)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawText(titleX, boxY+1, title, core.ColorBrightYellow)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle, core.ColorWhite)
}
