// Package graphics draws streamed chunks with OpenGL 4.1 core.
// All functions must run on the thread that owns the GL context.
package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/atlas"
	"voxelstream/internal/camera"
	"voxelstream/internal/display"
	"voxelstream/internal/logging"
	"voxelstream/internal/meshing"
	"voxelstream/internal/profiling"
)

const floatSize = 4

type chunkMesh struct {
	vao, vbo, ebo uint32
	count         int32
	model         mgl32.Mat4
	min, max      mgl32.Vec3
}

// GLDisplay uploads chunk meshes to GPU buffers and draws them.
// It implements display.Display.
type GLDisplay struct {
	shader  *Shader
	texture uint32
	meshes  map[display.Handle]*chunkMesh
	next    display.Handle

	FogColor  mgl32.Vec3
	FogEnd    float32
	LightDir  mgl32.Vec3
	Wireframe bool

	drawn int
}

// NewGLDisplay compiles the chunk shader and uploads the block atlas.
func NewGLDisplay(atlasSize, tilePixels int) (*GLDisplay, error) {
	shader, err := NewChunkShader()
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}
	img, err := atlas.Build(atlasSize, tilePixels)
	if err != nil {
		shader.Delete()
		return nil, err
	}
	return &GLDisplay{
		shader:   shader,
		texture:  UploadTexture(img),
		meshes:   make(map[display.Handle]*chunkMesh),
		FogColor: mgl32.Vec3{0.62, 0.76, 0.92},
		FogEnd:   256,
		LightDir: mgl32.Vec3{-0.4, -1, -0.3}.Normalize(),
	}, nil
}

// Create uploads mesh as one VAO with an interleaved vertex buffer and an index buffer.
func (d *GLDisplay) Create(mesh *meshing.Buffer, transform mgl32.Mat4) display.Handle {
	defer profiling.Track("graphics.Create")()
	m := &chunkMesh{model: transform, count: int32(len(mesh.Indices))}
	m.min, m.max = bounds(mesh, transform)

	vertices := mesh.Interleaved()
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * floatSize)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*floatSize))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	d.next++
	d.meshes[d.next] = m
	return d.next
}

// Destroy frees the GPU buffers behind h. Unknown handles are logged and ignored.
func (d *GLDisplay) Destroy(h display.Handle) {
	m, ok := d.meshes[h]
	if !ok {
		logging.Warnf("graphics: destroy of unknown handle %d", h)
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	delete(d.meshes, h)
}

// Draw renders every chunk whose bounds intersect the camera frustum.
func (d *GLDisplay) Draw(cam *camera.FlyCamera) {
	defer profiling.Track("graphics.Draw")()
	view, proj := cam.View(), cam.Projection()
	frustum := camera.FrustumFromMatrix(proj.Mul4(view))

	d.shader.Use()
	d.shader.SetMat4("view", view)
	d.shader.SetMat4("projection", proj)
	d.shader.SetVec3("lightDir", d.LightDir)
	d.shader.SetVec3("fogColor", d.FogColor)
	d.shader.SetFloat("fogEnd", d.FogEnd)
	d.shader.SetInt("atlas", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)

	if d.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	d.drawn = 0
	for _, m := range d.meshes {
		if !frustum.IntersectsAABB(m.min, m.max) {
			continue
		}
		d.shader.SetMat4("model", m.model)
		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
		d.drawn++
	}
	gl.BindVertexArray(0)
}

// Stats returns the number of live chunk meshes and how many the last Draw submitted
func (d *GLDisplay) Stats() (live, drawn int) {
	return len(d.meshes), d.drawn
}

// Close frees every mesh, the atlas and the shader
func (d *GLDisplay) Close() {
	for h := range d.meshes {
		d.Destroy(h)
	}
	gl.DeleteTextures(1, &d.texture)
	d.shader.Delete()
}

// bounds returns the world-space box of the mesh vertices under transform
func bounds(mesh *meshing.Buffer, transform mgl32.Mat4) (mgl32.Vec3, mgl32.Vec3) {
	if len(mesh.Positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := mesh.Positions[0], mesh.Positions[0]
	for _, p := range mesh.Positions[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return mgl32.TransformCoordinate(lo, transform), mgl32.TransformCoordinate(hi, transform)
}
