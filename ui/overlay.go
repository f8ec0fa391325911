package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayData holds everything the debug overlay displays.
type OverlayData struct {
	State        string
	WorldEnergy  float32
	FaceDetected bool
	HeadX        float32
	HeadY        float32
	Smile        float32
	SmileGate    float32 // Threshold the smile must cross
	FlowerCount  int
	Bloomed      int
	Pollen       int
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// Overlay is the F1 operator panel: live tracking readouts plus a manual
// smile override for exhibitions where the camera cannot be trusted.
type Overlay struct {
	SmileOverride float32 // Operator-forced smile, 0 = off
}

// NewOverlay creates the overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Draw renders the panel. Call only when the overlay is toggled on.
func (o *Overlay) Draw(data OverlayData) {
	const x, w = 10, 280
	var y int32 = 10

	rl.DrawRectangle(x, y, w, 200, rl.Color{R: 10, G: 10, B: 14, A: 210})
	rl.DrawRectangleLines(x, y, w, 200, rl.Color{R: 90, G: 90, B: 110, A: 255})

	line := func(text string, color rl.Color) {
		rl.DrawText(text, x+10, y+8, 16, color)
		y += 20
	}

	line(fmt.Sprintf("state: %s  energy: %.2f", data.State, data.WorldEnergy), rl.White)
	line(fmt.Sprintf("fps: %d", data.FPS), rl.LightGray)

	faceColor := rl.Red
	faceText := "face: lost"
	if data.FaceDetected {
		faceColor = rl.Green
		faceText = fmt.Sprintf("face: %.2f, %.2f", data.HeadX, data.HeadY)
	}
	line(faceText, faceColor)

	smileColor := rl.LightGray
	if data.Smile > data.SmileGate {
		smileColor = rl.Yellow
	}
	line(fmt.Sprintf("smile: %.2f / gate %.2f", data.Smile, data.SmileGate), smileColor)
	line(fmt.Sprintf("flowers: %d  bloomed: %d  pollen: %d",
		data.FlowerCount, data.Bloomed, data.Pollen), rl.LightGray)

	// Smile bar
	barY := float32(y + 10)
	rl.DrawRectangle(x+10, int32(barY), w-20, 10, rl.DarkGray)
	rl.DrawRectangle(x+10, int32(barY), int32(float32(w-20)*data.Smile), 10, rl.Pink)
	gateX := x + 10 + int32(float32(w-20)*data.SmileGate)
	rl.DrawRectangle(gateX, int32(barY)-2, 2, 14, rl.Yellow)
	y += 28

	// Manual override slider for operators
	o.SmileOverride = gui.SliderBar(
		rl.Rectangle{X: x + 80, Y: float32(y + 8), Width: w - 100, Height: 16},
		"override", fmt.Sprintf("%.2f", o.SmileOverride),
		o.SmileOverride, 0, 1,
	)
}
