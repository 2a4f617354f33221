// Package config loads the TOML settings for the host and the simulation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"thematrix/internal/input"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Scene    string            `toml:"scene"`
	Window   WindowConfig      `toml:"window"`
	Camera   CameraConfig      `toml:"camera"`
	Physics  PhysicsConfig     `toml:"physics"`
	Bindings map[string]string `toml:"bindings"` // action name -> key name
}

type WindowConfig struct {
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	Title     string `toml:"title"`
	TargetFPS int32  `toml:"target_fps"`
}

type CameraConfig struct {
	MaxSpeed         float32 `toml:"max_speed"`
	Friction         float32 `toml:"friction"`
	Acceleration     float32 `toml:"acceleration"`
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
	FlyAcceleration  float32 `toml:"fly_acceleration"`
	FOV              float32 `toml:"fov"`
	Near             float32 `toml:"near"`
	Far              float32 `toml:"far"`
}

type PhysicsConfig struct {
	CarryScale float32 `toml:"carry_scale"`
	Verbose    bool    `toml:"verbose"`
}

func Default() Config {
	return Config{
		Scene: "assets/scenes/matrix.yaml",
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "The Matrix",
			TargetFPS: 120,
		},
		Camera: CameraConfig{
			MaxSpeed:         3,
			Friction:         0.2,
			Acceleration:     20,
			MouseSensitivity: 0.002,
			FlyAcceleration:  3,
			FOV:              1.5,
			Near:             0.01,
			Far:              100,
		},
		Physics: PhysicsConfig{
			CarryScale: 1,
		},
		Bindings: map[string]string{
			"forward":  "W",
			"back":     "S",
			"left":     "A",
			"right":    "D",
			"up":       "Space",
			"down":     "LeftShift",
			"interact": "E",
			"view":     "M",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Unknown keys are rejected so typos don't silently fall back.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	cam := c.Camera
	switch {
	case cam.MaxSpeed <= 0:
		return fmt.Errorf("camera.max_speed must be positive, got %v", cam.MaxSpeed)
	case cam.Acceleration <= 0:
		return fmt.Errorf("camera.acceleration must be positive, got %v", cam.Acceleration)
	case cam.FlyAcceleration <= 0:
		return fmt.Errorf("camera.fly_acceleration must be positive, got %v", cam.FlyAcceleration)
	case cam.MouseSensitivity <= 0:
		return fmt.Errorf("camera.mouse_sensitivity must be positive, got %v", cam.MouseSensitivity)
	case cam.FOV <= 0 || cam.FOV >= math.Pi:
		return fmt.Errorf("camera.fov must be in (0,π) radians, got %v", cam.FOV)
	case cam.Friction < 0 || cam.Friction >= 1:
		return fmt.Errorf("camera.friction must be in [0,1), got %v", cam.Friction)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return fmt.Errorf("camera near/far must satisfy 0 < near < far, got %v/%v", cam.Near, cam.Far)
	case c.Physics.CarryScale <= 0:
		return fmt.Errorf("physics.carry_scale must be positive, got %v", c.Physics.CarryScale)
	}
	_, err := c.KeyBindings()
	return err
}

// KeyBindings resolves the configured names into input bindings. Actions
// missing from the file keep their default key.
func (c Config) KeyBindings() (input.Bindings, error) {
	b := input.DefaultBindings()
	for actionName, keyName := range c.Bindings {
		a, err := input.ParseAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("bindings: %w", err)
		}
		k, err := input.ParseKey(keyName)
		if err != nil {
			return nil, fmt.Errorf("bindings.%s: %w", actionName, err)
		}
		b[a] = k
	}
	return b, nil
}
