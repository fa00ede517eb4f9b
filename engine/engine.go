package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/script"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
)

// poller is implemented by input sources that must be refreshed once per tick.
type poller interface {
	Poll()
}

// scriptSlot tracks whether a registered script has been created.
type scriptSlot struct {
	script  script.Script
	created bool
}

// engine implements the Engine interface.
// Coordinates the tick loop and the window message loop.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	input  input.Source

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	timeScale      float32
	tickCallback   func(deltaTime float32)

	scripts []*scriptSlot
}

// Engine is the main entry point for a camera host.
// It drives registered scripts from a fixed-rate tick loop and, when a window is
// attached, pumps its message loop and feeds its input events to the scripts.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for a headless engine
	Window() window.Window

	// Input returns the input source handed to scripts each tick.
	//
	// Returns:
	//   - input.Source: the input source, or nil if none is configured
	Input() input.Source

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTimeScale sets the gameplay speed multiplier passed to scripts.
	//
	// Parameters:
	//   - scale: time scale (values <= 0 are treated as 1 by scripts)
	SetTimeScale(scale float32)

	// TimeScale returns the gameplay speed multiplier.
	//
	// Returns:
	//   - float32: the current time scale
	TimeScale() float32

	// SetTickCallback registers a function called each tick after all scripts have run.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScript registers a script. Its OnCreate runs before its first OnUpdate.
	//
	// Parameters:
	//   - s: the script to register
	AddScript(s script.Script)

	// Tick runs one tick synchronously: pending OnCreate calls, then every script's
	// OnUpdate with a Context built from dt, the time scale and the input source.
	// Scripts whose OnCreate fails are logged and removed. OnUpdate errors are logged
	// and the script stays registered.
	//
	// Parameters:
	//   - dt: wall-clock seconds since the previous tick
	Tick(dt float32)

	// Run starts the tick loop. With a window it blocks in the window message loop
	// until the window closes; without one it blocks until Quit.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// If a window is configured and no input source is, an input.Tracker is bound to the
// window's callbacks and used as the input source.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		running:          false,
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler("Engine", time.Second),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		timeScale:        1,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && e.input == nil {
		t := input.NewTracker()
		bindTracker(e.window, t)
		e.input = t
	}

	return e
}

// bindTracker routes window input callbacks into t.
func bindTracker(w window.Window, t *input.Tracker) {
	w.SetKeyDownCallback(t.OnKeyDown)
	w.SetKeyUpCallback(t.OnKeyUp)
	w.SetMouseMoveCallback(t.OnMouseMove)
	w.SetMouseButtonCallback(t.OnMouseButton)
	w.SetScrollCallback(t.OnScroll)
	x, y := w.CursorPos()
	t.OnMouseMove(x, y)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Input() input.Source {
	return e.input
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick goroutine, tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(1)
	go e.handleEngine()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel
// is closed. A panicking script stops the engine instead of the process.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] tick goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

func (e *engine) Tick(dt float32) {
	e.mu.Lock()
	slots := append([]*scriptSlot(nil), e.scripts...)
	ctx := script.Context{
		Timestep:  dt,
		TimeScale: e.timeScale,
		Input:     e.input,
	}
	callback := e.tickCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if p, ok := ctx.Input.(poller); ok {
		p.Poll()
	}

	var failed []*scriptSlot
	for _, slot := range slots {
		if !slot.created {
			if err := slot.script.OnCreate(); err != nil {
				log.Printf("[Engine] script %T failed to create, removing: %v", slot.script, err)
				failed = append(failed, slot)
				continue
			}
			slot.created = true
		}
		if err := slot.script.OnUpdate(ctx); err != nil {
			log.Printf("[Engine] script %T update: %v", slot.script, err)
		}
	}
	if len(failed) > 0 {
		e.removeSlots(failed)
	}

	if callback != nil {
		callback(dt)
	}

	if profiling && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) removeSlots(failed []*scriptSlot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.scripts[:0]
	for _, slot := range e.scripts {
		drop := false
		for _, f := range failed {
			if slot == f {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, slot)
		}
	}
	e.scripts = kept
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	e.engineTickRate = newRate
	running := e.running
	e.mu.Unlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	}
}

func (e *engine) SetTimeScale(scale float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timeScale = scale
}

func (e *engine) TimeScale() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeScale
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) AddScript(s script.Script) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scripts = append(e.scripts, &scriptSlot{script: s})
}
