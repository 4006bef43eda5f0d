package main

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	dt          = 1.0 / 60
	gravity     = 0.35
	attraction  = 2.5
	damping     = 0.995
	restitution = 0.8
	maxSpeed    = 1.5
)

var (
	coldColor = common.ColorFromHex(0x3080ff)
	hotColor  = common.ColorFromHex(0xff6020)
)

// particles is a small point simulation driven entirely from animation hooks.
type particles struct {
	rng        *rand.Rand
	points     *common.PointSet
	velocities []mgl32.Vec2

	attractor *mgl32.Vec2
	paused    bool
	uncapped  bool
	maxFrames int
}

func newParticles(n int, seed int64, maxFrames int) *particles {
	p := &particles{
		rng:        rand.New(rand.NewSource(seed)),
		points:     &common.PointSet{Positions: make([]mgl32.Vec2, n)},
		velocities: make([]mgl32.Vec2, n),
		maxFrames:  maxFrames,
	}
	p.scatter()
	return p
}

// scatter places every particle at a random position with a small random velocity.
func (p *particles) scatter() {
	for i := range p.points.Positions {
		p.points.Positions[i] = common.Vec2(p.rng.Float32(), p.rng.Float32())
		angle := p.rng.Float32() * 2 * math.Pi
		speed := common.Mix(0.05, 0.3, p.rng.Float32())
		p.velocities[i] = common.Vec2(speed*float32(math.Cos(float64(angle))), speed*float32(math.Sin(float64(angle))))
	}
}

// step advances the simulation by one fixed time step. Particles bounce off the frame edges.
func (p *particles) step() {
	for i, pos := range p.points.Positions {
		vel := p.velocities[i]
		vel = vel.Sub(mgl32.Vec2{0, gravity * dt})
		if p.attractor != nil {
			toward := p.attractor.Sub(pos)
			falloff := 1 - common.Smoothstep(0, 0.75, common.Length(toward))
			vel = vel.Add(common.Normalize(toward).Mul(attraction * falloff * dt))
		}
		vel = vel.Mul(damping)
		if speed := common.Length(vel); speed > maxSpeed {
			vel = common.Normalize(vel).Mul(maxSpeed)
		}

		pos = pos.Add(vel.Mul(dt))
		if pos.X() < 0 || pos.X() > 1 {
			vel = common.Reflect(vel, mgl32.Vec2{1, 0}).Mul(restitution)
		}
		if pos.Y() < 0 || pos.Y() > 1 {
			vel = common.Reflect(vel, mgl32.Vec2{0, 1}).Mul(restitution)
		}
		pos = mgl32.Vec2{common.Saturate(pos.X()), common.Saturate(pos.Y())}

		p.points.Positions[i] = pos
		p.velocities[i] = vel
	}
}

// averageSpeed returns the mean particle speed, used to tint the overlay.
func (p *particles) averageSpeed() float32 {
	if len(p.velocities) == 0 {
		return 0
	}
	var sum float32
	for _, v := range p.velocities {
		sum += common.Length(v)
	}
	return sum / float32(len(p.velocities))
}

func (p *particles) hooks() engine.Hooks {
	return engine.Hooks{
		OnInit: func(a engine.Animation) error {
			a.DefineInput()
			return nil
		},
		OnAdvance: func(a engine.Animation) error {
			if p.maxFrames > 0 && a.FrameIndex()+1 >= p.maxFrames {
				a.Stop()
			}
			if !p.paused {
				p.step()
			}
			return nil
		},
		OnRender: func(a engine.Animation) error {
			t, err := a.Input().Time.Host()
			if err != nil {
				return err
			}
			// Heat follows speed, with a slow pulse over time.
			heat := common.Saturate(p.averageSpeed()/0.5 + 0.1*float32(math.Sin(2*math.Pi*float64(common.Fract(t/4)))))
			a.SetPointStyle(mixColor(coldColor, hotColor, heat), 1.5)
			return nil
		},
		OnClick: func(a engine.Animation, x, y float32, button common.Key) error {
			if button == common.MouseLeft {
				p.attractor = &mgl32.Vec2{x, y}
			}
			return nil
		},
		OnDrag: func(a engine.Animation, x, y float32, button common.Key) error {
			if button == common.MouseLeft {
				p.attractor = &mgl32.Vec2{x, y}
			}
			return nil
		},
		OnUnclick: func(a engine.Animation, x, y float32, button common.Key) error {
			if button == common.MouseLeft {
				p.attractor = nil
			}
			return nil
		},
		OnPress: func(a engine.Animation, key common.Key) error {
			switch key {
			case common.KeySpace:
				p.scatter()
			case common.KeyP:
				p.paused = !p.paused
			case common.KeyV:
				p.togglePresentMode(a)
			}
			return nil
		},
		OnExit: func(a engine.Animation) error {
			common.Logger().Info("particles finished", "frames", a.FrameIndex(), "seconds", a.Time())
			return nil
		},
	}
}

// togglePresentMode switches between vsync and uncapped presentation on GPU-backed displays.
func (p *particles) togglePresentMode(a engine.Animation) {
	gpu, ok := a.Display().(window.GPUDisplay)
	if !ok || gpu.Renderer() == nil {
		return
	}
	p.uncapped = !p.uncapped
	mode := renderer.PresentModeVSync
	if p.uncapped {
		mode = renderer.PresentModeUncapped
	}
	gpu.Renderer().SetPresentMode(mode)
	common.Logger().Info("present mode changed", "uncapped", p.uncapped)
}

func mixColor(a, b color.RGBA, t float32) color.RGBA {
	return color.RGBA{
		R: uint8(common.Mix(float32(a.R), float32(b.R), t)),
		G: uint8(common.Mix(float32(a.G), float32(b.G), t)),
		B: uint8(common.Mix(float32(a.B), float32(b.B), t)),
		A: 0xff,
	}
}
