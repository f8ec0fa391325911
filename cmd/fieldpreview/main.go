// Field preview tool - interactive top-down heatmap of the awakening wave
// with sliders for the envelope parameters.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bloomroom/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Wave Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	wave := systems.WaveParams{
		Width:          0.9,
		RippleStrength: 0.08,
		RippleFreq:     1.2,
		FieldHalfW:     5.5,
		DepthRepeat:    20,
	}
	var energy float32 = 0.5
	animating := false

	// Heatmap texture: x across the field, y into the depth.
	gridSize := 256
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			energy += rl.GetFrameTime() * 0.1
			if energy > 1 {
				energy = 0
			}
			needsRegen = true
		}

		if needsRegen {
			updateHeatmap(texture, gridSize, wave, energy)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		rl.DrawText("near", 15, previewSize-10, 14, rl.Gray)
		rl.DrawText("far", 15, 15, 14, rl.Gray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Energy: %.2f  Front: %.1f", energy, wave.Wavefront(energy)), 15, statsY, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Wave Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label string, value *float32, min, max float32, format string) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newValue := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(format, min), fmt.Sprintf(format, max),
				*value, min, max,
			)
			rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if newValue != *value {
				*value = newValue
				needsRegen = true
			}
			panelY += 35
		}

		slider("Energy (wave progress)", &energy, 0, 1, "%.2f")
		slider("Width (envelope width)", &wave.Width, 0.1, 3, "%.2f")
		slider("Ripple strength", &wave.RippleStrength, 0, 0.3, "%.2f")
		slider("Ripple frequency", &wave.RippleFreq, 0.2, 4, "%.2f")
		slider("Field half width", &wave.FieldHalfW, 1, 10, "%.1f")
		slider("Depth repeat", &wave.DepthRepeat, 5, 40, "%.0f")

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 28}, "Animate") {
			animating = !animating
		}

		rl.EndDrawing()
	}
}

// updateHeatmap renders the life field: black dormant, warm white fully lit.
func updateHeatmap(texture rl.Texture2D, gridSize int, wave systems.WaveParams, energy float32) {
	pixels := make([]color.RGBA, gridSize*gridSize)
	for gy := 0; gy < gridSize; gy++ {
		// Row 0 is the far edge so near flowers sit at the bottom.
		z := (1 - float32(gy)/float32(gridSize-1)) * wave.DepthRepeat
		for gx := 0; gx < gridSize; gx++ {
			x := (float32(gx)/float32(gridSize-1)*2 - 1) * wave.FieldHalfW
			life := wave.LifeAt(x, z, energy)
			pixels[gy*gridSize+gx] = color.RGBA{
				R: uint8(255 * life),
				G: uint8(200 * life),
				B: uint8(220 * life),
				A: 255,
			}
		}
	}
	rl.UpdateTexture(texture, pixels)
}
