package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// glowDivisor is the downsample factor for the glow layer. Rendering the
// bright elements at a third of the resolution and stretching the result back
// up with bilinear filtering gives a cheap wide blur.
const glowDivisor = 3

// GlowCompositor owns the low-resolution render target that bright elements
// draw into, and composites it additively over the main frame.
type GlowCompositor struct {
	target rl.RenderTexture2D
	w, h   int32
}

// NewGlowCompositor allocates the glow target for the given screen size.
// Must be called after the window exists.
func NewGlowCompositor(screenW, screenH int32) *GlowCompositor {
	g := &GlowCompositor{w: screenW, h: screenH}
	g.target = rl.LoadRenderTexture(screenW/glowDivisor, screenH/glowDivisor)
	rl.SetTextureFilter(g.target.Texture, rl.FilterBilinear)
	return g
}

// PixelScale is the factor renderers multiply projected coordinates by when
// drawing into the glow pass.
func (g *GlowCompositor) PixelScale() float32 {
	return 1.0 / glowDivisor
}

// Begin redirects drawing into the glow target.
func (g *GlowCompositor) Begin() {
	rl.BeginTextureMode(g.target)
	rl.ClearBackground(rl.Blank)
}

// End stops drawing into the glow target.
func (g *GlowCompositor) End() {
	rl.EndTextureMode()
}

// Composite adds the upsampled glow layer over the current frame.
func (g *GlowCompositor) Composite() {
	rl.BeginBlendMode(rl.BlendAdditive)
	src := rl.Rectangle{
		X: 0, Y: 0,
		Width:  float32(g.target.Texture.Width),
		Height: -float32(g.target.Texture.Height), // Render textures are y-flipped
	}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(g.w), Height: float32(g.h)}
	rl.DrawTexturePro(g.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
	rl.EndBlendMode()
}

// Resize reallocates the glow target for a new screen size.
func (g *GlowCompositor) Resize(screenW, screenH int32) {
	rl.UnloadRenderTexture(g.target)
	g.w = screenW
	g.h = screenH
	g.target = rl.LoadRenderTexture(screenW/glowDivisor, screenH/glowDivisor)
	rl.SetTextureFilter(g.target.Texture, rl.FilterBilinear)
}

// Unload frees the render target.
func (g *GlowCompositor) Unload() {
	rl.UnloadRenderTexture(g.target)
}
