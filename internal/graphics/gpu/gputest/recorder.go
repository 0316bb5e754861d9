// Package gputest provides a recording gpu.API for tests.
package gputest

import (
	"fmt"
	"strings"
	"sync"

	"yaw/internal/graphics/gpu"
)

// Call is one recorded API invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder implements gpu.API by appending every call to a log. Generated object
// names start at 1 and are shared across object kinds.
type Recorder struct {
	mu      sync.Mutex
	calls   []Call
	next    uint32
	locs    map[string]int32
	Pixels  []byte
	LinkErr error
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{locs: make(map[string]int32)}
}

func (r *Recorder) record(name string, args ...any) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Name: name, Args: args})
	r.mu.Unlock()
}

func (r *Recorder) gen(name string) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.calls = append(r.calls, Call{Name: name, Args: []any{r.next}})
	return r.next
}

// Calls returns a copy of the log.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many times the named method was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Name == name {
			n++
		}
	}
	return n
}

// CountWith returns how many times the named method was called with first argument arg.
func (r *Recorder) CountWith(name string, arg any) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Name == name && len(c.Args) > 0 && c.Args[0] == arg {
			n++
		}
	}
	return n
}

// Reset drops the log but keeps name generation going.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) GenVertexArray() uint32 { return r.gen("GenVertexArray") }
func (r *Recorder) BindVertexArray(vao uint32) { r.record("BindVertexArray", vao) }
func (r *Recorder) DeleteVertexArray(vao uint32) { r.record("DeleteVertexArray", vao) }
func (r *Recorder) GenBuffer() uint32 { return r.gen("GenBuffer") }
func (r *Recorder) DeleteBuffer(buf uint32) { r.record("DeleteBuffer", buf) }
func (r *Recorder) EnableVertexAttribArray(i uint32) {
	r.record("EnableVertexAttribArray", i)
}
func (r *Recorder) DisableVertexAttribArray(i uint32) {
	r.record("DisableVertexAttribArray", i)
}

func (r *Recorder) BindBuffer(target gpu.Target, buf uint32) {
	r.record("BindBuffer", target, buf)
}

func (r *Recorder) BufferFloat32(target gpu.Target, data []float32) {
	r.record("BufferFloat32", target, len(data))
}

func (r *Recorder) BufferUint32(target gpu.Target, data []uint32) {
	r.record("BufferUint32", target, len(data))
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32) {
	r.record("VertexAttribPointer", index, size)
}

func (r *Recorder) DrawElements(mode gpu.Primitive, count int32) {
	r.record("DrawElements", mode, count)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask gpu.ClearMask) { r.record("Clear", mask) }
func (r *Recorder) Viewport(x, y, w, h int32) { r.record("Viewport", x, y, w, h) }
func (r *Recorder) Enable(c gpu.Capability) { r.record("Enable", c) }
func (r *Recorder) Disable(c gpu.Capability) { r.record("Disable", c) }
func (r *Recorder) SetPolygonMode(mode gpu.PolygonMode) { r.record("SetPolygonMode", mode) }

func (r *Recorder) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	if r.LinkErr != nil {
		r.record("CreateProgram", uint32(0))
		return 0, r.LinkErr
	}
	return r.gen("CreateProgram"), nil
}

func (r *Recorder) UseProgram(program uint32) { r.record("UseProgram", program) }
func (r *Recorder) DeleteProgram(program uint32) { r.record("DeleteProgram", program) }

// UniformLocation hands out a stable location per program and name.
func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	key := fmt.Sprintf("%d/%s", program, name)
	r.mu.Lock()
	loc, ok := r.locs[key]
	if !ok {
		loc = int32(len(r.locs))
		r.locs[key] = loc
	}
	r.calls = append(r.calls, Call{Name: "UniformLocation", Args: []any{name, loc}})
	r.mu.Unlock()
	return loc
}

// LocationName returns the uniform name behind a location handed out earlier.
func (r *Recorder) LocationName(loc int32) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.locs {
		if v == loc {
			_, name, _ := strings.Cut(k, "/")
			return name
		}
	}
	return ""
}

func (r *Recorder) Uniform1i(loc int32, v int32) { r.record("Uniform1i", loc, v) }
func (r *Recorder) Uniform1f(loc int32, v float32) { r.record("Uniform1f", loc, v) }
func (r *Recorder) Uniform3f(loc int32, x, y, z float32) { r.record("Uniform3f", loc, x, y, z) }
func (r *Recorder) Uniform4f(loc int32, x, y, z, w float32) { r.record("Uniform4f", loc, x, y, z, w) }

func (r *Recorder) UniformMatrix4(loc int32, m *[16]float32) {
	r.record("UniformMatrix4", loc, *m)
}

// ReadPixels returns Pixels when set, otherwise a zeroed buffer of the right size.
func (r *Recorder) ReadPixels(x, y, width, height int32) []byte {
	r.record("ReadPixels", x, y, width, height)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Pixels != nil {
		return r.Pixels
	}
	return make([]byte, int(width)*int(height)*4)
}

var _ gpu.API = (*Recorder)(nil)
