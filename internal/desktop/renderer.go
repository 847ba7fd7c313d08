//go:build !nogl

package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"lightcycle/internal/game"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// layer is the GL texture backing one surface.
type layer struct {
	tex  uint32
	w, h int
}

// Renderer draws surfaces as full-viewport textured quads, back to front.
type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32
	uTex int32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(layerVertSrc, layerFragSrc)
	if err != nil {
		return nil, fmt.Errorf("layer program: %w", err)
	}
	r := &Renderer{prog: prog}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(prog)
	r.uTex = gl.GetUniformLocation(prog, gl.Str("uTex\x00"))
	gl.Uniform1i(r.uTex, 0)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// ensureTexture (re)creates l's texture to match s and uploads all of s.
// It reports whether an upload happened.
func (r *Renderer) ensureTexture(l *layer, s *game.Surface) bool {
	if l.tex != 0 && l.w == s.Width && l.h == s.Height {
		return false
	}
	r.deleteLayer(l)
	gl.GenTextures(1, &l.tex)
	gl.BindTexture(gl.TEXTURE_2D, l.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(s.Width), int32(s.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(s.Pix),
	)
	l.w, l.h = s.Width, s.Height
	s.NeedsUpload = false
	return true
}

// upload re-sends s's pixels if they changed since the last upload.
func (r *Renderer) upload(l *layer, s *game.Surface) {
	if r.ensureTexture(l, s) || !s.NeedsUpload {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, l.tex)
	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		int32(s.Width), int32(s.Height),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(s.Pix),
	)
	s.NeedsUpload = false
}

func (r *Renderer) deleteLayer(l *layer) {
	if l.tex != 0 {
		gl.DeleteTextures(1, &l.tex)
	}
	*l = layer{}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.prog)
	gl.BindVertexArray(r.vao)
	gl.ActiveTexture(gl.TEXTURE0)
}

// DrawSurface uploads s if needed and draws it over the viewport.
func (r *Renderer) DrawSurface(l *layer, s *game.Surface) {
	if s == nil || s.Width == 0 || s.Height == 0 {
		return
	}
	r.upload(l, s)
	gl.BindTexture(gl.TEXTURE_2D, l.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *Renderer) EndFrame() {
	gl.BindVertexArray(0)
}
