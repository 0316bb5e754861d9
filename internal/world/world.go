// Package world runs the render loop and owns the scene state it draws.
//
// Run owns the graphics context and must be called on the thread the context was
// created on. Everything else on World may be called from any goroutine.
package world

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"yaw/internal/config"
	"yaw/internal/graphics"
	"yaw/internal/graphics/gpu"
	"yaw/internal/graphics/renderer"
	"yaw/internal/graphics/skybox"
	"yaw/internal/input"
	"yaw/internal/light"
	"yaw/internal/profiling"
	"yaw/internal/scene"
	"yaw/internal/snapshot"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

var (
	ErrAlreadyRunning = errors.New("world: already running")
	ErrClosed         = errors.New("world: closed")
)

// Window is the platform surface the loop presents to.
type Window interface {
	ShouldClose() bool
	// Clear wipes the back buffer and reports whether the framebuffer was resized.
	Clear() bool
	// Update swaps buffers and polls events.
	Update()
	Size() (width, height int)
	CleanUp()
}

// Platform opens the window and makes its graphics context current on the calling thread.
type Platform interface {
	Open(cfg config.Config, cb *input.Callback) (Window, gpu.API, error)
}

// PlatformFunc adapts a function to Platform.
type PlatformFunc func(cfg config.Config, cb *input.Callback) (Window, gpu.API, error)

func (f PlatformFunc) Open(cfg config.Config, cb *input.Callback) (Window, gpu.API, error) {
	return f(cfg, cb)
}

// SceneRenderer draws one frame. Render is called with the scene vertex container locked.
type SceneRenderer interface {
	Render(sc *scene.Vertex, sl *light.SceneLight, resized bool, c *graphics.Camera, sk *skybox.Skybox, width, height int) error
	CleanUp()
}

// RendererFactory builds the renderer once the graphics context is current.
type RendererFactory func(api gpu.API) (SceneRenderer, error)

// Option configures a World.
type Option func(*World)

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(w *World) { w.cfg = cfg }
}

// WithRenderer replaces the default forward renderer.
func WithRenderer(f RendererFactory) Option {
	return func(w *World) { w.newRenderer = f }
}

// WithLogger sets the logger used by the loop.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.log = l }
}

type snapshotRequest struct {
	path   string
	result chan error
}

// World holds the camera, the scene, the lights and the skybox, and drives the frame loop.
type World struct {
	cfg         config.Config
	log         *slog.Logger
	platform    Platform
	newRenderer RendererFactory

	mu      sync.RWMutex
	camera  *graphics.Camera
	cameras []*graphics.Camera
	groups  []*scene.Group

	sc       *scene.Vertex
	sl       *light.SceneLight
	callback *input.Callback

	skyMu       sync.Mutex
	skybox      *skybox.Skybox
	skyboxQueue []*skybox.Skybox

	snapMu     sync.Mutex
	snapshots  []snapshotRequest
	snapClosed bool

	running atomic.Bool
	started atomic.Bool
	done    chan struct{}
}

// New builds a world that is ready to Run.
func New(p Platform, opts ...Option) *World {
	w := &World{
		cfg: config.Default(),
		log: slog.Default(),
		platform: p,
		sc:       scene.NewVertex(),
		sl:       light.NewSceneLight(),
		callback: input.NewCallback(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.newRenderer == nil {
		dir := w.cfg.Render.ShaderDir
		w.newRenderer = func(api gpu.API) (SceneRenderer, error) {
			return renderer.New(api, renderer.WithShaderDir(dir))
		}
	}

	w.camera = w.newCamera()
	w.cameras = []*graphics.Camera{w.camera}
	w.running.Store(true)
	return w
}

func (w *World) newCamera() *graphics.Camera {
	c := graphics.NewCamera()
	c.FOV = w.cfg.Render.FOV
	c.NearPlane = w.cfg.Render.Near
	c.FarPlane = w.cfg.Render.Far
	return c
}

// Run opens the window and renders until the window closes or Close is called.
// Teardown always runs before Run returns.
func (w *World) Run() (err error) {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(w.done)
	defer w.failSnapshots()

	win, api, err := w.platform.Open(w.cfg, w.callback)
	if err != nil {
		return errors.Wrap(err, "open window")
	}
	r, err := w.newRenderer(api)
	if err != nil {
		win.CleanUp()
		return errors.Wrap(err, "create renderer")
	}

	w.log.Info("world loop started", "interval", w.cfg.FrameInterval())
	err = w.loop(win, r, api)
	if err != nil {
		w.log.Error("world loop stopped", "err", err)
	} else {
		w.log.Info("world loop stopped")
	}

	w.teardown(win, r)
	return err
}

func (w *World) loop(win Window, r SceneRenderer, api gpu.API) error {
	p := newPacer(w.cfg.FrameInterval())
	for w.running.Load() && !win.ShouldClose() {
		if err := w.frame(win, r, api); err != nil {
			return err
		}
		p.Wait()
	}
	return nil
}

func (w *World) frame(win Window, r SceneRenderer, api gpu.API) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("panic in frame: %v", p)
		}
	}()

	profiling.ResetFrame()
	start := time.Now()

	cam := w.Camera()
	cam.Update()
	w.callback.Update()
	resized := win.Clear()

	w.drainSkyboxes()

	width, height := win.Size()
	if err := w.render(r, cam, resized, width, height); err != nil {
		return err
	}
	w.serveSnapshots(api, width, height)
	win.Update()

	if slow := w.cfg.SlowFrame(); slow > 0 {
		if d := time.Since(start); d > slow {
			w.log.Warn("slow frame", "took", d,
				"render", profiling.SumWithPrefix("renderer."), "top", profiling.TopN(3))
		}
	}
	return nil
}

func (w *World) render(r SceneRenderer, cam *graphics.Camera, resized bool, width, height int) error {
	defer profiling.Track("world.render")()
	sk := w.Skybox()

	w.sc.Lock()
	defer w.sc.Unlock()
	return r.Render(w.sc, w.sl, resized, cam, sk, width, height)
}

func (w *World) teardown(win Window, r SceneRenderer) {
	r.CleanUp()

	w.sc.Lock()
	w.sc.CleanUp()
	w.sc.Unlock()

	w.drainSkyboxes()
	if sk := w.Skybox(); sk != nil {
		sk.CleanUp()
	}
	win.CleanUp()
}

// Close stops the loop and blocks until teardown has finished or ctx is done.
// It returns immediately when Run has already returned.
func (w *World) Close(ctx context.Context) error {
	w.running.Store(false)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (w *World) Done() <-chan struct{} { return w.done }

// SetSkybox makes sk current. The previous skybox keeps its GPU buffers until the
// next frame drains it, so a frame already drawing it is never left with freed buffers.
func (w *World) SetSkybox(sk *skybox.Skybox) {
	w.skyMu.Lock()
	defer w.skyMu.Unlock()
	if w.skybox == sk {
		return
	}
	if w.skybox != nil {
		w.skyboxQueue = append(w.skyboxQueue, w.skybox)
	}
	// sk may still be queued from an earlier replacement
	w.skyboxQueue = slices.DeleteFunc(w.skyboxQueue, func(s *skybox.Skybox) bool { return s == sk })
	w.skybox = sk
}

// SetSkyboxColor replaces the skybox with a flat coloured box of the given size.
func (w *World) SetSkyboxColor(width, length, height, r, g, b float32) *skybox.Skybox {
	sk := skybox.New(width, length, height, mgl32.Vec3{r, g, b})
	w.SetSkybox(sk)
	return sk
}

// RemoveSkybox queues the current skybox for release and leaves the world without one.
func (w *World) RemoveSkybox() { w.SetSkybox(nil) }

// Skybox returns the current skybox, or nil.
func (w *World) Skybox() *skybox.Skybox {
	w.skyMu.Lock()
	defer w.skyMu.Unlock()
	return w.skybox
}

// drainSkyboxes releases replaced skyboxes. Render thread only.
func (w *World) drainSkyboxes() {
	w.skyMu.Lock()
	defer w.skyMu.Unlock()
	if len(w.skyboxQueue) == 0 {
		return
	}
	for _, sk := range w.skyboxQueue {
		sk.CleanUp()
	}
	w.log.Debug("released skyboxes", "count", len(w.skyboxQueue))
	clear(w.skyboxQueue)
	w.skyboxQueue = w.skyboxQueue[:0]
}

// Camera returns the camera the next frame renders from.
func (w *World) Camera() *graphics.Camera {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.camera
}

// SetCamera switches the current camera. It does not have to be in the camera list.
func (w *World) SetCamera(c *graphics.Camera) {
	w.mu.Lock()
	w.camera = c
	w.mu.Unlock()
}

// Cameras returns a copy of the camera list.
func (w *World) Cameras() []*graphics.Camera {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.cameras)
}

// SetCameraAt inserts c into the camera list at index i. Index 0 also makes it current.
func (w *World) SetCameraAt(i int, c *graphics.Camera) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i > len(w.cameras) {
		return errors.Errorf("camera index %d out of range [0,%d]", i, len(w.cameras))
	}
	w.cameras = slices.Insert(w.cameras, i, c)
	if i == 0 {
		w.camera = c
	}
	return nil
}

// ResetCameras replaces the list with a single fresh camera, which becomes current.
func (w *World) ResetCameras() {
	c := w.newCamera()
	w.mu.Lock()
	w.camera = c
	w.cameras = []*graphics.Camera{c}
	w.mu.Unlock()
}

// SceneVertex returns the container of drawn items.
func (w *World) SceneVertex() *scene.Vertex { return w.sc }

// SceneLight returns the light set uploaded every frame.
func (w *World) SceneLight() *light.SceneLight { return w.sl }

// Callback returns the input state updated every frame.
func (w *World) Callback() *input.Callback { return w.callback }

// Groups returns a copy of the registered item groups.
func (w *World) Groups() []*scene.Group {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.groups)
}

// AddGroup registers g and adds its items to the scene.
func (w *World) AddGroup(g *scene.Group) {
	w.mu.Lock()
	w.groups = append(w.groups, g)
	w.mu.Unlock()
	w.sc.Add(g.Items()...)
}

// RemoveGroup unregisters g and removes its items from the scene.
func (w *World) RemoveGroup(g *scene.Group) bool {
	w.mu.Lock()
	i := slices.Index(w.groups, g)
	if i < 0 {
		w.mu.Unlock()
		return false
	}
	w.groups = slices.Delete(w.groups, i, i+1)
	w.mu.Unlock()
	w.sc.Remove(g.Items()...)
	return true
}

// Snapshot captures the next rendered frame to path, as BMP or TIFF by extension.
func (w *World) Snapshot(ctx context.Context, path string) error {
	req := snapshotRequest{path: path, result: make(chan error, 1)}

	w.snapMu.Lock()
	if w.snapClosed {
		w.snapMu.Unlock()
		return ErrClosed
	}
	w.snapshots = append(w.snapshots, req)
	w.snapMu.Unlock()

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *World) serveSnapshots(api gpu.API, width, height int) {
	w.snapMu.Lock()
	pending := w.snapshots
	w.snapshots = nil
	w.snapMu.Unlock()
	if len(pending) == 0 {
		return
	}

	defer profiling.Track("world.snapshot")()
	served := 0
	defer func() {
		if p := recover(); p != nil {
			err := errors.Errorf("snapshot: %v", p)
			for _, req := range pending[served:] {
				req.result <- err
			}
			panic(p)
		}
	}()

	pixels := api.ReadPixels(0, 0, int32(width), int32(height))
	for _, req := range pending {
		err := snapshot.Save(req.path, pixels, width, height)
		if err == nil {
			w.log.Info("saved snapshot", "path", req.path)
		}
		req.result <- err
		served++
	}
}

func (w *World) failSnapshots() {
	w.snapMu.Lock()
	pending := w.snapshots
	w.snapshots = nil
	w.snapClosed = true
	w.snapMu.Unlock()
	for _, req := range pending {
		req.result <- ErrClosed
	}
}
