// Package world owns the simulation state a host drives one step at a time,
// and the scene files it is built from.
package world

import (
	"fmt"
	"log"

	"thematrix/internal/camera"
	"thematrix/internal/config"
	"thematrix/internal/engine"
	"thematrix/internal/input"
	"thematrix/internal/physics"
)

// State is everything one simulation step reads and writes. The host owns
// it; nothing here is global.
type State struct {
	Scene   *engine.Scene
	Camera  *camera.Controller // nil when the scene has no camera
	Physics *physics.System
	Mode    engine.GameMode
	Queue   *engine.MutationQueue

	OnModeChange engine.EventWithArg[engine.GameMode]
}

// StepResult is what Update reports to the host.
type StepResult struct {
	TriggerID         int
	Triggered         bool
	NothingToInteract bool
	ViewMode          bool
	Interacting       bool
	Released          *engine.Node
}

// NewState wires a controller for cam (or the scene's camera when cam is
// nil) and a physics system, both tuned from cfg.
func NewState(scene *engine.Scene, cam *engine.Node, cfg config.Config) (*State, error) {
	bindings, err := cfg.KeyBindings()
	if err != nil {
		return nil, fmt.Errorf("new state: %w", err)
	}

	s := &State{
		Scene:   scene,
		Physics: physics.NewSystem(scene),
		Mode:    engine.ModeNeutral,
	}
	s.Queue = &s.Physics.Queue
	s.Physics.CarryScale = cfg.Physics.CarryScale
	s.Physics.Verbose = cfg.Physics.Verbose

	if cam == nil {
		cam = scene.Camera()
	}
	if cam != nil {
		s.Camera = camera.New(cam)
		applyCamera(s.Camera, cfg)
		s.Camera.Bindings = bindings
	}

	scene.UpdateGlobalTransforms()
	return s, nil
}

func applyCamera(c *camera.Controller, cfg config.Config) {
	cc := cfg.Camera
	c.MaxSpeed = cc.MaxSpeed
	c.Friction = cc.Friction
	c.Acceleration = cc.Acceleration
	c.MouseSensitivity = cc.MouseSensitivity
	c.FlyAcceleration = cc.FlyAcceleration
	c.FOV = cc.FOV
	c.Near = cc.Near
	c.Far = cc.Far
	if w, h := cfg.Window.Width, cfg.Window.Height; w > 0 && h > 0 {
		c.Aspect = float32(w) / float32(h)
	}
	c.UpdateProjection()
}

// SetMode switches the game mode and notifies listeners when it changes.
func (s *State) SetMode(m engine.GameMode) {
	if m == s.Mode {
		return
	}
	log.Printf("world: mode %d -> %d", s.Mode, m)
	s.Mode = m
	s.OnModeChange.Invoke(m)
}

// Update runs one step: look, camera velocity, physics, mode switch, then
// the global transform refresh for the renderer.
func (s *State) Update(dt float32, in input.Snapshot) StepResult {
	var res StepResult

	if s.Camera != nil {
		s.Camera.Look(in.Pointer.X, in.Pointer.Y)
		r := s.Camera.Update(dt, in, s.Mode, s.Queue)
		res.NothingToInteract = r.NothingToInteract
		res.Released = r.Released
		res.ViewMode = s.Camera.ViewMode()
		res.Interacting = s.Camera.Interacting
	}

	if id, ok := s.Physics.Advance(dt, s.Mode, res.Interacting); ok {
		res.Triggered = true
		res.TriggerID = id
		s.SetMode(engine.GameMode(id))
	}

	s.Scene.UpdateGlobalTransforms()
	return res
}
