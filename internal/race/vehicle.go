package race

import "math"

// Kind tags which role a Vehicle plays.
type Kind int

const (
	KindPlayer Kind = iota
	KindOpponent
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindOpponent:
		return "opponent"
	}
	return "unknown"
}

// Params are the per-kind handling constants. Velocities are in pixels per
// tick, rotation in degrees per tick.
type Params struct {
	MaxVelocity  float64 `json:"maxVelocity"`
	RotationRate float64 `json:"rotationRate"`
	Acceleration float64 `json:"acceleration"`
}

// Vehicle is the kinematic state shared by every car. X, Y is the top-left
// corner of the unrotated sprite; Heading is in degrees with 0 pointing up
// the screen and positive angles turning counter-clockwise.
type Vehicle struct {
	Kind Kind
	Params

	X, Y     float64
	Heading  float64
	Velocity float64

	// Sprite size, used as the bounding rectangle.
	Width, Height int

	Start Point
}

func NewVehicle(kind Kind, p Params, start Point, w, h int) *Vehicle {
	return &Vehicle{
		Kind:   kind,
		Params: p,
		X:      start.X,
		Y:      start.Y,
		Width:  w,
		Height: h,
		Start:  start,
	}
}

// MaxReverse is the reverse speed cap, half the forward maximum.
func (v *Vehicle) MaxReverse() float64 { return v.MaxVelocity / 2 }

func (v *Vehicle) Pos() Point { return Point{X: v.X, Y: v.Y} }

func (v *Vehicle) Bounds() Rect { return RectAt(v.X, v.Y, v.Width, v.Height) }

// Rotate turns by one RotationRate step. Left wins when both are held.
func (v *Vehicle) Rotate(left, right bool) {
	if left {
		v.Heading += v.RotationRate
	} else if right {
		v.Heading -= v.RotationRate
	}
}

func (v *Vehicle) AccelerateForward() {
	v.Velocity = math.Min(v.Velocity+v.Acceleration, v.MaxVelocity)
	v.clamp()
	v.Move()
}

// AccelerateReverse snaps straight to the reverse cap: the min() only bounds
// from above, so any forward speed is dropped at once.
func (v *Vehicle) AccelerateReverse() {
	v.Velocity = math.Min(v.Velocity-v.Acceleration, -v.MaxReverse())
	v.clamp()
	v.Move()
}

// clamp holds Velocity inside [-MaxReverse, MaxVelocity].
func (v *Vehicle) clamp() {
	v.Velocity = clampF(v.Velocity, -v.MaxReverse(), v.MaxVelocity)
}

// Move integrates one tick along the heading.
func (v *Vehicle) Move() {
	rad := v.Heading * math.Pi / 180
	v.X -= math.Sin(rad) * v.Velocity
	v.Y -= math.Cos(rad) * v.Velocity
}

func (v *Vehicle) Reset() {
	v.X, v.Y = v.Start.X, v.Start.Y
	v.Velocity = 0
	v.Heading = 0
}

// Decelerate is rolling friction for a car with no throttle input. Reverse
// motion stops at once.
func Decelerate(v *Vehicle) {
	v.Velocity = math.Max(v.Velocity-v.Acceleration/1.7, 0)
	v.clamp()
	v.Move()
}

// Bounce reverses and damps the velocity, pushing the car back the way it
// came. The result is not clamped: a bounce at full speed briefly exceeds the
// reverse cap until the next throttle step.
func Bounce(v *Vehicle) {
	v.Velocity = -v.Velocity / 1.5
	v.Move()
}
