package mesh

import (
	"testing"

	"yaw/internal/graphics/gpu"
	"yaw/internal/graphics/gpu/gputest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placed mgl32.Mat4

func (p placed) WorldMatrix() mgl32.Mat4 { return mgl32.Mat4(p) }

type uniformLog struct {
	names  []string
	values []any
}

func (u *uniformLog) SetUniform(name string, value any) {
	u.names = append(u.names, name)
	u.values = append(u.values, value)
}

func (u *uniformLog) count(name string) int {
	n := 0
	for _, got := range u.names {
		if got == name {
			n++
		}
	}
	return n
}

func triangle() *Mesh {
	return New(
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[]float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		[]uint32{0, 1, 2},
		NewMaterial(1, 0, 0, 0.5),
	)
}

func TestInitUploadsThreeBuffers(t *testing.T) {
	api := gputest.NewRecorder()
	m := triangle()
	require.NoError(t, m.Init(api))

	assert.Equal(t, 1, api.Count("GenVertexArray"))
	assert.Equal(t, 3, api.Count("GenBuffer"))
	assert.Equal(t, 2, api.Count("BufferFloat32"))
	assert.Equal(t, 1, api.Count("BufferUint32"))
	assert.Equal(t, 2, api.Count("VertexAttribPointer"))
	assert.True(t, m.Initialized())

	assert.ErrorIs(t, m.Init(api), ErrAlreadyInitialized)
}

func TestWeightDefaultsToVertexCount(t *testing.T) {
	m := triangle()
	assert.Equal(t, 9, m.Weight())

	w := NewWeighted(nil, nil, nil, Material{}, 42)
	assert.Equal(t, 42, w.Weight())
}

func TestDrawBeforeInit(t *testing.T) {
	m := triangle()
	err := m.Draw(placed(mgl32.Ident4()), &uniformLog{}, mgl32.Ident4())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestDrawSingle(t *testing.T) {
	api := gputest.NewRecorder()
	m := triangle()
	require.NoError(t, m.Init(api))
	api.Reset()

	u := &uniformLog{}
	view := mgl32.Translate3D(0, 0, -5)
	world := mgl32.Translate3D(1, 2, 3)
	require.NoError(t, m.Draw(placed(world), u, view))

	assert.Equal(t, 1, api.Count("DrawElements"))
	assert.Equal(t, []string{"material", "modelViewMatrix"}, u.names)
	assert.Equal(t, view.Mul4(world), u.values[1])

	calls := api.Calls()
	assert.Equal(t, "BindVertexArray", calls[0].Name)
	assert.Equal(t, gputest.Call{Name: "DrawElements", Args: []any{gpu.Triangles, int32(3)}}, calls[3])
	assert.Equal(t, gputest.Call{Name: "BindVertexArray", Args: []any{uint32(0)}}, calls[len(calls)-1])
}

func TestDrawBatchOneCallPerItem(t *testing.T) {
	api := gputest.NewRecorder()
	m := triangle()
	require.NoError(t, m.Init(api))
	api.Reset()

	items := []Placed{
		placed(mgl32.Translate3D(1, 0, 0)),
		placed(mgl32.Translate3D(2, 0, 0)),
		placed(mgl32.Translate3D(3, 0, 0)),
	}
	u := &uniformLog{}
	require.NoError(t, m.DrawBatch(items, u, mgl32.Ident4()))

	assert.Equal(t, 3, api.Count("DrawElements"))
	assert.Equal(t, 2, api.Count("BindVertexArray"), "bind once, unbind once")
	assert.Equal(t, 1, u.count("material"))
	assert.Equal(t, 3, u.count("modelViewMatrix"))
}

func TestDrawBatchEmpty(t *testing.T) {
	api := gputest.NewRecorder()
	m := triangle()
	require.NoError(t, m.Init(api))
	api.Reset()

	require.NoError(t, m.DrawBatch(nil, &uniformLog{}, mgl32.Ident4()))
	assert.Empty(t, api.Calls())
}

func TestCleanUpReleasesEverything(t *testing.T) {
	api := gputest.NewRecorder()
	m := triangle()
	require.NoError(t, m.Init(api))
	vao, vbo := m.vao, m.vboVertex

	m.CleanUp()
	assert.Equal(t, 3, api.Count("DeleteBuffer"))
	assert.Equal(t, 1, api.CountWith("DeleteVertexArray", vao))
	assert.Equal(t, 1, api.CountWith("DeleteBuffer", vbo))

	err := m.DrawBatch([]Placed{placed(mgl32.Ident4())}, &uniformLog{}, mgl32.Ident4())
	assert.ErrorIs(t, err, ErrReleased)

	m.CleanUp()
	assert.Equal(t, 3, api.Count("DeleteBuffer"), "second clean-up is a no-op")
}

func TestCleanUpBeforeInit(t *testing.T) {
	api := gputest.NewRecorder()
	m := triangle()
	m.CleanUp()
	assert.Empty(t, api.Calls())
	assert.False(t, m.Initialized())

	err := m.Draw(placed(mgl32.Ident4()), &uniformLog{}, mgl32.Ident4())
	assert.ErrorIs(t, err, ErrReleased)
}

func TestInitAfterCleanUpUploadsAgain(t *testing.T) {
	api := gputest.NewRecorder()
	m := triangle()
	require.NoError(t, m.Init(api))
	oldVAO := m.vao
	m.CleanUp()

	require.NoError(t, m.Init(api))
	assert.True(t, m.Initialized())
	assert.NotEqual(t, oldVAO, m.vao)
	assert.Equal(t, 2, api.Count("GenVertexArray"))
	assert.Equal(t, 6, api.Count("GenBuffer"))
	assert.ErrorIs(t, m.Init(api), ErrAlreadyInitialized)

	api.Reset()
	require.NoError(t, m.Draw(placed(mgl32.Ident4()), &uniformLog{}, mgl32.Ident4()))
	assert.Equal(t, 1, api.CountWith("BindVertexArray", m.vao))
	assert.Equal(t, 1, api.Count("DrawElements"))
}

func TestBoxGeometry(t *testing.T) {
	m := Box(2, 4, 6, Material{}, false)
	assert.Len(t, m.Vertices(), 72)
	assert.Len(t, m.Normals(), 72)
	assert.Len(t, m.Indices(), 36)

	var maxX, maxY, maxZ float32
	for i := 0; i < len(m.Vertices()); i += 3 {
		maxX = max(maxX, m.Vertices()[i])
		maxY = max(maxY, m.Vertices()[i+1])
		maxZ = max(maxZ, m.Vertices()[i+2])
	}
	assert.Equal(t, []float32{1, 2, 3}, []float32{maxX, maxY, maxZ})
}

func TestBoxInwardFlipsNormals(t *testing.T) {
	out := Box(1, 1, 1, Material{}, false)
	in := Box(1, 1, 1, Material{}, true)
	for i := range out.Normals() {
		assert.Equal(t, -out.Normals()[i], in.Normals()[i])
	}
	assert.NotEqual(t, out.Indices(), in.Indices())
}
