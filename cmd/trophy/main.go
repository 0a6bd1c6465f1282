// trophy - Terminal 3D Scene Viewer
// Renders YAML scenes and GLB models through the software geometry pipeline.
//
// Controls:
//
//	Mouse drag  - Orbit (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation and zoom
//	M           - Toggle depth-sorted rendering
//	?           - Toggle HUD overlay
//	+/-         - Adjust zoom
//	Esc         - Quit
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/processing/processing-sub019/pkg/pipeline"
	"github.com/processing/processing-sub019/pkg/render"
	"github.com/processing/processing-sub019/pkg/scene"
)

// maxTextureSize bounds the longer side of a -texture image.
const maxTextureSize = 256

//go:embed default.yaml
var defaultScene []byte

var (
	scenePath   = flag.String("scene", "", "Path to a YAML scene (default: built-in demo)")
	texturePath = flag.String("texture", "", "Texture image for untextured shapes (PNG/JPG/BMP/TIFF/WebP)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "", "Background color override (R,G,B)")
	depthSort   = flag.Bool("depth-sort", false, "Start in depth-sorted mode")
	pngPath     = flag.String("png", "", "Render one frame to a PNG file and exit")
	logPath     = flag.String("log", "", "Write pipeline debug log to file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "trophy - Terminal 3D Scene Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: trophy [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  M           - Toggle depth sort\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds the orbit angles with harmonica spring physics
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// View is the per-frame placement of the scene.
type View struct {
	Pitch, Yaw, Roll float64
	Zoom             float64 // translation toward the eye, in scene units
}

// drawFrame renders one frame of s into g. The scene is scaled to fit the
// graphics, then orbited about its center. Lights are declared before the
// orbit so they stay fixed relative to the eye.
func drawFrame(g *pipeline.Graphics, s *scene.Scene, v View) error {
	g.BeginFrame()
	if err := s.DrawLights(g); err != nil {
		g.EndFrame()
		return err
	}

	w, h := float64(g.Width()), float64(g.Height())
	sw, sh := float64(s.Width), float64(s.Height)
	k := min(w/sw, h/sh)
	g.Translate(w/2, h/2, v.Zoom*k)
	g.Scale(k, k, k)
	g.RotateX(v.Pitch)
	g.RotateY(v.Yaw)
	g.RotateZ(v.Roll)
	g.Translate(-sw/2, -sh/2, 0)

	err := s.DrawShapes(g)
	if ferr := g.EndFrame(); err == nil {
		err = ferr
	}
	return err
}

// HUD draws an overlay with frame statistics and mode status.
type HUD struct {
	name      string
	visible   bool
	fps       float64
	fpsFrames int
	fpsTime   time.Time

	depthSort bool
	stats     pipeline.Stats
	pixels    int
}

// NewHUD creates a new HUD
func NewHUD(name string) *HUD {
	return &HUD{name: name, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw implements uv.Drawable. Only the first and last rows are touched.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle) {
	if !h.visible || area.Dy() < 2 {
		return
	}
	const (
		reset   = "\x1b[0m"
		bold    = "\x1b[1m"
		bgBlack = "\x1b[40m"
		fgWhite = "\x1b[97m"
		fgGreen = "\x1b[92m"
		fgCyan  = "\x1b[96m"
	)

	top := fmt.Sprintf("%s%s %.0f FPS %s  %s%s%s %s %s  %s%s%d tris %d lines %d clipped %s",
		bgBlack, fgGreen, h.fps, reset,
		bold, bgBlack, fgWhite, h.name, reset,
		bgBlack, fgCyan, h.stats.Triangles, h.stats.Lines, h.stats.Clipped, reset)
	uv.NewStyledString(top).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))

	check := "[ ]"
	if h.depthSort {
		check = "[✓]"
	}
	bottom := fmt.Sprintf("%s%s %s Depth sort (M)  %d px %s",
		bgBlack, fgWhite, check, h.pixels, reset)
	uv.NewStyledString(bottom).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))
}

// layers draws each drawable in order over the same area.
type layers []uv.Drawable

func (l layers) Draw(scr uv.Screen, area uv.Rectangle) {
	for _, d := range l {
		d.Draw(scr, area)
	}
}

func loadScene(modelPath string) (*scene.Scene, error) {
	switch {
	case *scenePath != "":
		return scene.Load(*scenePath)
	case modelPath != "":
		ext := strings.ToLower(filepath.Ext(modelPath))
		if ext != ".glb" && ext != ".gltf" {
			return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
		}
		return scene.ForModel(modelPath)
	}
	return scene.Parse(defaultScene)
}

// applyTexture binds tex to every shape and model material that has none.
func applyTexture(s *scene.Scene, tex pipeline.Texture) {
	for i := range s.Shapes {
		sh := &s.Shapes[i]
		if sh.Material.Texture == "" {
			sh.SetTexture(tex)
		}
		if mesh := sh.Mesh(); mesh != nil {
			for j := range mesh.Materials {
				if mesh.Materials[j].Texture == nil {
					mesh.Materials[j].Texture = tex
				}
			}
		}
	}
}

func setupLogging(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	pipeline.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() {
		pipeline.SetLogger(nil)
		f.Close()
	}, nil
}

func run(modelPath string) error {
	closeLog, err := setupLogging(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := loadScene(modelPath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	if *bgColor != "" {
		var r, g, b uint8
		if _, err := fmt.Sscanf(*bgColor, "%d,%d,%d", &r, &g, &b); err != nil {
			return fmt.Errorf("invalid -bg %q: %w", *bgColor, err)
		}
		s.Background = scene.Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
	}

	if *texturePath != "" {
		tex, err := render.LoadTexture(*texturePath)
		if err != nil {
			return fmt.Errorf("load texture: %w", err)
		}
		applyTexture(s, tex.Fit(maxTextureSize))
	}

	opts := s.Options()
	if *depthSort {
		opts = append(opts, pipeline.WithMode(pipeline.DeferredSorted))
	}

	if *pngPath != "" {
		return renderPNG(s, *pngPath, opts)
	}
	return runInteractive(s, opts)
}

// renderPNG draws a single frame at the scene's own size.
func renderPNG(s *scene.Scene, path string, opts []pipeline.Option) error {
	fb := render.NewFramebuffer(s.Width, s.Height)
	rast := render.NewRasterizer(fb)
	g := pipeline.New(s.Width, s.Height, rast, opts...)
	s.Apply(g)

	rast.Clear(s.Background.Pipeline().ToRGBA())
	if err := drawFrame(g, s, View{}); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if err := fb.SavePNG(path); err != nil {
		return err
	}
	st := g.Stats()
	fmt.Printf("Wrote %s (%dx%d, %d triangles, %d lines, %d pixels)\n",
		path, s.Width, s.Height, st.Triangles, st.Lines, rast.Stats.Pixels)
	return nil
}

func runInteractive(s *scene.Scene, opts []pipeline.Option) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	tr := render.NewTerminalRenderer(width, height)
	newGraphics := func() *pipeline.Graphics {
		w, h := tr.FramebufferSize()
		g := pipeline.New(w, h, tr.Rasterizer(), opts...)
		s.Apply(g)
		return g
	}
	g := newGraphics()

	hud := NewHUD(s.Name)
	bg := s.Background.Pipeline().ToRGBA()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Shared between the event goroutine and the render loop.
	rotation := NewRotationState(*targetFPS)
	var (
		mu          sync.Mutex
		inputTorque struct{ pitch, yaw, roll float64 }
		zoom        float64
		resized     bool
		toggleSort  bool
		mouseDown   bool
		lastX       int
		lastY       int
	)
	const torqueStrength = 3.0
	zoomStep := float64(s.Height) * 0.05
	zoomMin, zoomMax := -2*float64(s.Height), 0.6*float64(s.Height)

	// Event handler
	go func() {
		for ev := range term.Events() {
			mu.Lock()
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				resized = true

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					cancel()
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					zoom = 0
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					zoom = min(zoomMax, zoom+zoomStep)
				case ev.MatchString("-", "_"):
					zoom = max(zoomMin, zoom-zoomStep)
				case ev.MatchString("m"):
					toggleSort = true
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					hud.visible = !hud.visible
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w", "up", "s", "down"):
					inputTorque.pitch = 0
				case ev.MatchString("a", "left", "d", "right"):
					inputTorque.yaw = 0
				case ev.MatchString("q", "e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastX, lastY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					rotation.ApplyImpulse(float64(ev.Y-lastY)*0.03, float64(ev.X-lastX)*0.03, 0)
					lastX, lastY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					zoom = min(zoomMax, zoom+zoomStep)
				case uv.MouseWheelDown:
					zoom = max(zoomMin, zoom-zoomStep)
				}
			}
			mu.Unlock()
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		mu.Lock()
		if resized {
			resized = false
			term.Erase()
			term.Resize(width, height)
			tr.Resize(width, height)
			g = newGraphics()
		}
		if toggleSort {
			toggleSort = false
			if err := toggleDepthSort(g); err != nil {
				pipeline.Logger().Warn("trophy: depth sort toggle", "err", err)
			}
		}

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		// Update springs (harmonica handles timing internally)
		rotation.Update()
		view := View{
			Pitch: rotation.Pitch.Position,
			Yaw:   rotation.Yaw.Position,
			Roll:  rotation.Roll.Position,
			Zoom:  zoom,
		}
		mu.Unlock()

		tr.Begin(bg)
		if err := drawFrame(g, s, view); err != nil {
			cleanup()
			return fmt.Errorf("draw: %w", err)
		}

		mu.Lock()
		hud.UpdateFPS()
		hud.depthSort = g.Mode() == pipeline.DeferredSorted
		hud.stats = g.Stats()
		hud.pixels = tr.Rasterizer().Stats.Pixels
		term.Draw(layers{tr, hud})
		mu.Unlock()

		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// toggleDepthSort switches between immediate and depth-sorted drawing.
func toggleDepthSort(g *pipeline.Graphics) error {
	h := pipeline.HintDepthSort
	if g.Mode() == pipeline.DeferredSorted {
		h = pipeline.HintNoDepthSort
	}
	return g.Hint(h)
}
