//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "context"

// engineContext bundles the shared resources socket-owning records' attach
// hooks need but that [World] (a portable file) cannot reference directly.
// The completion port is a single process-wide handle, read and written
// only by the event pump.
type engineContext struct {
	Port   *CompletionPort
	Config *Config
}

// engineCtx recovers the [*engineContext] stashed on w.Ctx by [NewEngine].
// Calling this before the world has an engine attached is a programmer
// error.
func engineCtx(w *World) *engineContext {
	ctx, ok := w.Ctx.(*engineContext)
	if !ok {
		panic("asynctcp: World has no engine context; create it via NewEngine")
	}
	return ctx
}

// Engine owns the [World], the [CompletionPort], and the [Pump] that drains
// it: the single process-wide transport instance.
type Engine struct {
	World  *World
	Pump   *Pump
	Config *Config
	Port   *CompletionPort
}

// NewEngine creates a completion port, a world wired to it, and the pump
// that drains it. A nil cfg uses [NewConfig]'s defaults.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	port, err := NewCompletionPort()
	if err != nil {
		return nil, err
	}
	w := NewWorld()
	w.Ctx = &engineContext{Port: port, Config: cfg}
	return &Engine{
		World:  w,
		Pump:   &Pump{Port: port, Config: cfg},
		Config: cfg,
		Port:   port,
	}, nil
}

// Listen attaches a [ListenRecord] to a fresh entity and returns its id.
// Convenience wrapper; equivalent to NewEntity+Add.
func (e *Engine) Listen(port uint16, onAccept ...Template) EntityID {
	id := e.World.NewEntity()
	Add(e.World, id, ListenRecord{LocalPort: port, OnAccept: onAccept})
	return id
}

// Tick drains the completion port once (subject to [Config.EventLimit]) and
// advances the HTTP lifecycle for any entities whose markers changed.
func (e *Engine) Tick(ctx context.Context) error {
	if err := e.Pump.Tick(ctx, e.World); err != nil {
		return err
	}
	runHTTPLifecycle(ctx, e.World, e.Config)
	return nil
}

// Close releases the completion port. Outstanding operations on sockets
// registered with it fail on their next (never-arriving) completion; callers
// should have already torn down entities via [DeleteEntity] first.
func (e *Engine) Close() error {
	return e.Port.Close()
}
