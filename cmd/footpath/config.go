package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"zappem.net/pub/kinematics/hexapod"
	"zappem.net/pub/math/geom"
)

// LinkConfig holds DH parameters and joint limits. Lengths are in
// meters and angles in degrees.
type LinkConfig struct {
	D     float64 `json:"d"`
	Theta float64 `json:"theta"`
	R     float64 `json:"r"`
	Alpha float64 `json:"alpha"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
}

// SwingConfig describes the foot swing trajectory relative to the
// current tip position.
type SwingConfig struct {
	// Stride is the distance travelled along the leg frame x axis.
	Stride float64 `json:"stride"`
	// Height is the apex the foot must pass through.
	Height float64 `json:"height"`
	// Apex is the curve parameter at which the apex is reached.
	Apex float64 `json:"apex"`
}

// Config is the root of a footpath configuration file.
type Config struct {
	Body    *hexapod.PoseMsg `json:"body,omitempty"`
	Base    LinkConfig       `json:"base"`
	Links   []LinkConfig     `json:"links"`
	Joints  []float64        `json:"joints,omitempty"`
	Swing   SwingConfig      `json:"swing"`
	Samples int              `json:"samples,omitempty"`
}

const defaultSamples = 10

// LoadConfig reads a Config from a JSON file.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{Samples: defaultSamples}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for values the tool cannot work with.
func (c *Config) Validate() error {
	if len(c.Links) == 0 {
		return errors.New("config needs at least one link")
	}
	if len(c.Joints) != 0 && len(c.Joints) != len(c.Links) {
		return fmt.Errorf("%d joint angles for %d links", len(c.Joints), len(c.Links))
	}
	if c.Samples < 1 {
		return fmt.Errorf("samples must be positive, got %d", c.Samples)
	}
	if !(c.Swing.Apex > 0 && c.Swing.Apex < 1) {
		return fmt.Errorf("swing apex must be strictly between 0 and 1, got %g", c.Swing.Apex)
	}
	return nil
}

func (l LinkConfig) dh() hexapod.DH {
	return hexapod.DH{
		D:     l.D,
		Theta: geom.Degrees(l.Theta),
		R:     l.R,
		Alpha: geom.Degrees(l.Alpha),
	}
}

// Chain builds the leg described by the config and sets its joints.
func (c *Config) Chain() (*hexapod.Chain, error) {
	links := make([]hexapod.Link, len(c.Links))
	for i, l := range c.Links {
		links[i] = hexapod.Link{
			Min: geom.Degrees(l.Min),
			Max: geom.Degrees(l.Max),
			DH:  l.dh(),
		}
	}
	chain, err := hexapod.NewChain(c.Base.dh(), links...)
	if err != nil {
		return nil, err
	}
	for i, a := range c.Joints {
		if err := chain.SetJ(i, geom.Degrees(a)); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

// BodyPose returns the pose of the leg's robot frame in the world, the
// identity if none is configured.
func (c *Config) BodyPose() hexapod.Pose {
	if c.Body == nil {
		return hexapod.Identity()
	}
	return hexapod.FromPoseMsg(*c.Body).OrElse(hexapod.Identity())
}
