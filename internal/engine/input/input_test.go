package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		raw  sdl.Event
		want Event
	}{
		{"quit", &sdl.QuitEvent{}, Event{Type: EventQuit}},
		{
			"resize",
			&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600},
		},
		{
			"key down",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12},
		},
		{
			"key up",
			&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
			Event{Type: EventKeyUp, Key: sdl.SCANCODE_W},
		},
		{
			"motion",
			&sdl.MouseMotionEvent{X: 10, Y: 20, XRel: -3, YRel: 4},
			Event{Type: EventMouseMove, MouseX: 10, MouseY: 20, DeltaX: -3, DeltaY: 4},
		},
		{
			"button down",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, X: 5, Y: 6, Button: sdl.BUTTON_LEFT},
			Event{Type: EventMouseDown, MouseX: 5, MouseY: 6, Button: sdl.BUTTON_LEFT},
		},
		{
			"button up",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, X: 5, Y: 6, Button: sdl.BUTTON_RIGHT},
			Event{Type: EventMouseUp, MouseX: 5, MouseY: 6, Button: sdl.BUTTON_RIGHT},
		},
		{"wheel", &sdl.MouseWheelEvent{Y: -2}, Event{Type: EventMouseWheel, WheelY: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateIgnoresOtherEvents(t *testing.T) {
	_, ok := translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_GAINED})
	assert.False(t, ok)

	_, ok = translate(&sdl.TextInputEvent{})
	assert.False(t, ok)
}

func TestIsKeyPressed(t *testing.T) {
	in := New()
	in.events = append(in.events,
		Event{Type: EventKeyUp, Key: sdl.SCANCODE_A},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_F},
	)

	assert.True(t, in.IsKeyPressed(sdl.SCANCODE_F))
	assert.False(t, in.IsKeyPressed(sdl.SCANCODE_A))
}
