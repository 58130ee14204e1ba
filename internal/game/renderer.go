//go:build !android

package game

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"carrace/internal/track"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// quadUniforms are the locations shared by every program built on quadVertSrc.
type quadUniforms struct {
	origin     int32
	size       int32
	rotation   int32
	camera     int32
	zoom       int32
	resolution int32
}

func lookupQuadUniforms(prog uint32) quadUniforms {
	return quadUniforms{
		origin:     gl.GetUniformLocation(prog, gl.Str("uOrigin\x00")),
		size:       gl.GetUniformLocation(prog, gl.Str("uSize\x00")),
		rotation:   gl.GetUniformLocation(prog, gl.Str("uRotation\x00")),
		camera:     gl.GetUniformLocation(prog, gl.Str("uCamera\x00")),
		zoom:       gl.GetUniformLocation(prog, gl.Str("uZoom\x00")),
		resolution: gl.GetUniformLocation(prog, gl.Str("uResolution\x00")),
	}
}

func (u quadUniforms) set(cam Camera, fbW, fbH int, x, y, w, h, rot float64) {
	gl.Uniform2f(u.camera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(u.zoom, float32(cam.Zoom))
	gl.Uniform2f(u.resolution, float32(fbW), float32(fbH))
	gl.Uniform2f(u.origin, float32(x), float32(y))
	gl.Uniform2f(u.size, float32(w), float32(h))
	gl.Uniform1f(u.rotation, float32(rot))
}

type Renderer struct {
	// Textured quad program.
	quadProg uint32
	quadU    quadUniforms
	uTex     int32

	// Solid colour program.
	solidProg uint32
	solidU    quadUniforms
	uColor    int32

	quadVAO uint32
	quadVBO uint32

	textures []uint32

	cam      Camera
	fbW, fbH int

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	quadProg, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	solidProg, err := linkProgram(quadVertSrc, solidFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		return nil, fmt.Errorf("solid program: %w", err)
	}

	r := &Renderer{
		quadProg:  quadProg,
		solidProg: solidProg,
	}

	// Quad VAO/VBO: a unit quad (6 vertices, 2 triangles).
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.quadVAO = vao
	r.quadVBO = vbo

	gl.UseProgram(quadProg)
	r.quadU = lookupQuadUniforms(quadProg)
	r.uTex = gl.GetUniformLocation(quadProg, gl.Str("uTex\x00"))
	gl.Uniform1i(r.uTex, 0)

	gl.UseProgram(solidProg)
	r.solidU = lookupQuadUniforms(solidProg)
	r.uColor = gl.GetUniformLocation(solidProg, gl.Str("uColor\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.quadProg, r.solidProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if len(r.textures) > 0 {
		gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
	}
}

// UploadTexture copies img into a new nearest-filtered RGBA texture.
func (r *Renderer) UploadTexture(img *image.NRGBA) uint32 {
	b := img.Bounds()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	r.textures = append(r.textures, tex)
	return tex
}

func (r *Renderer) BeginFrame(cam Camera, fbW, fbH int) {
	r.cam, r.fbW, r.fbH = cam, fbW, fbH
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.ActiveTexture(gl.TEXTURE0)
}

// DrawTexture draws tex as a w x h world-pixel quad with its unrotated
// top-left at (x, y), turned by rot radians about its centre.
func (r *Renderer) DrawTexture(tex uint32, x, y, w, h, rot float64) {
	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)
	r.quadU.set(r.cam, r.fbW, r.fbH, x, y, w, h, rot)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.Disable(gl.BLEND)
}

// FillScreenRect draws a translucent rectangle in framebuffer pixels.
func (r *Renderer) FillScreenRect(x, y, w, h int, col track.RGB, alpha float32) {
	gl.UseProgram(r.solidProg)
	gl.BindVertexArray(r.quadVAO)
	r.solidU.set(ScreenCamera(r.fbW, r.fbH), r.fbW, r.fbH, float64(x), float64(y), float64(w), float64(h), 0)
	gl.Uniform4f(r.uColor, float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, alpha)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.Disable(gl.BLEND)
}
