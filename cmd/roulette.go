package cmd

import (
	"fmt"
	"time"
)

// Display pushes a frame to the LED matrix and keeps it up for hold.
type Display interface {
	Show(frame Frame, hold time.Duration) error
}

// Animation walks a single lit pixel clockwise around the matrix border.
type Animation struct {
	cursor Cursor
}

func NewAnimation() *Animation {
	return &Animation{}
}

func (a *Animation) Cursor() Cursor {
	return a.cursor
}

// Advance moves the cursor one step along the border. The rules are checked
// in order, so each corner turns the walk by 90 degrees.
func (a *Animation) Advance() {
	c := &a.cursor
	switch {
	case c.Col < MatrixSize-1 && c.Row == 0:
		c.Col++
	case c.Col > 0 && c.Row == MatrixSize-1:
		c.Col--
	case c.Col == MatrixSize-1 && c.Row < MatrixSize-1:
		c.Row++
	case c.Col == 0 && c.Row > 0:
		c.Row--
	}
}

func (a *Animation) Render() Frame {
	var f Frame
	f[a.cursor.Row][a.cursor.Col] = 1
	return f
}

// RunRoulette never returns unless the display fails.
func RunRoulette(config Settings, display Display) error {
	fmt.Println("Starting Roulette Loop")

	hold := config.FrameHold
	if hold <= 0 {
		hold = DefaultFrameHold
	}

	anim := NewAnimation()
	for {
		anim.Advance()
		if err := display.Show(anim.Render(), hold); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}
}
