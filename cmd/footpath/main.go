// Command footpath samples the swing trajectory of one leg. It reads a
// leg description from a JSON config, places the leg with forward
// kinematics, fits a quartic Bezier swing through the configured apex
// and writes one JSON sample per line to stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"zappem.net/pub/kinematics/hexapod"
)

// Sample is one point of the swing trajectory. Velocity is the rate of
// change of the leg position over the normalized swing time t.
type Sample struct {
	T        float64       `json:"t"`
	Leg      hexapod.Point `json:"leg"`
	Velocity hexapod.Point `json:"velocity"`
	World    hexapod.Point `json:"world"`
}

func point(v r3.Vec) hexapod.Point {
	return hexapod.Point{X: v.X, Y: v.Y, Z: v.Z}
}

// swingCurve lifts the foot from start to start+stride, passing through
// the apex above the midpoint at parameter apex.
func swingCurve(start r3.Vec, s SwingConfig) (hexapod.Quartic, error) {
	lift := r3.Vec{Z: s.Height}
	end := r3.Add(start, r3.Vec{X: s.Stride})
	c := hexapod.Quartic{
		start,
		r3.Add(start, lift),
		r3.Add(hexapod.InterpolateVec(start, end, 0.5), lift),
		r3.Add(end, lift),
		end,
	}
	return c.Through(2, s.Apex)
}

func run(cfg *Config, smooth bool, w io.Writer) error {
	chain, err := cfg.Chain()
	if err != nil {
		return fmt.Errorf("leg: %w", err)
	}
	tip := chain.Tip()
	log.Printf("tip at %v", tip)

	curve, err := swingCurve(tip.Position, cfg.Swing)
	if err != nil {
		return fmt.Errorf("swing: %w", err)
	}

	body := cfg.BodyPose()
	enc := json.NewEncoder(w)
	for i := 0; i <= cfg.Samples; i++ {
		t := float64(i) / float64(cfg.Samples)
		u, rate := t, 1.0
		if smooth {
			u, rate = hexapod.SmoothStep(t), hexapod.SmoothStepRate(t)
		}
		p, err := curve.At(u)
		if err != nil {
			return err
		}
		v, err := curve.Derivative(u)
		if err != nil {
			return err
		}
		// Chain rule: dB/dt = dB/du * du/dt.
		v = r3.Scale(rate, v)
		if err := enc.Encode(Sample{
			T:        t,
			Leg:      point(p),
			Velocity: point(v),
			World:    point(body.TransformVector(p)),
		}); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON leg and swing config")
		samples    = flag.Int("samples", 0, "override the number of samples in the config")
		smooth     = flag.Bool("smooth", true, "ease in and out of the swing with smoothstep")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("footpath: ")

	if *configPath == "" {
		log.Fatal("-config is required")
	}
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *samples > 0 {
		cfg.Samples = *samples
	}
	if err := run(cfg, *smooth, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
