package race

import "math"

// Opponent is the scripted car. It steers along Path one waypoint at a time
// at a fixed per-level velocity and stops once the path is used up.
type Opponent struct {
	Vehicle

	Path     []Point
	Waypoint int // index of the next target, len(Path) when exhausted

	// Velocity at level 1 and the increment per level.
	BaseVelocity float64
	LevelStep    float64
}

func NewOpponent(p Params, start Point, w, h int, path []Point, levelStep float64) *Opponent {
	o := &Opponent{
		Vehicle:      *NewVehicle(KindOpponent, p, start, w, h),
		Path:         path,
		BaseVelocity: p.MaxVelocity,
		LevelStep:    levelStep,
	}
	o.Velocity = o.BaseVelocity
	return o
}

func (o *Opponent) Exhausted() bool { return o.Waypoint >= len(o.Path) }

// Target returns the waypoint currently steered at.
func (o *Opponent) Target() (Point, bool) {
	if o.Exhausted() {
		return Point{}, false
	}
	return o.Path[o.Waypoint], true
}

// LevelVelocity is the cruising velocity for a 1-based level.
func (o *Opponent) LevelVelocity(level int) float64 {
	return o.BaseVelocity + float64(level-1)*o.LevelStep
}

// desiredHeading returns the heading in degrees that points from the car's
// anchor at target. atan only covers a half-plane, so targets below the car
// get an extra half turn.
func desiredHeading(from, target Point) float64 {
	dx := target.X - from.X
	dy := target.Y - from.Y

	var rad float64
	if dy == 0 {
		rad = math.Pi / 2
	} else {
		rad = math.Atan(dx / dy)
	}
	if target.Y > from.Y {
		rad += math.Pi
	}
	return rad * 180 / math.Pi
}

// steer turns the heading toward target by at most one RotationRate step.
func (o *Opponent) steer(target Point) {
	diff := o.Heading - desiredHeading(o.Pos(), target)
	if diff >= 180 {
		diff -= 360
	}
	step := math.Min(o.RotationRate, math.Abs(diff))
	if diff > 0 {
		o.Heading -= step
	} else {
		o.Heading += step
	}
}

// FollowPath advances the opponent by one tick: steer at the current
// waypoint, mark it reached once it is inside the car's rectangle, then move.
// An exhausted path leaves the car where it is.
func FollowPath(o *Opponent) {
	target, ok := o.Target()
	if !ok {
		return
	}
	o.steer(target)
	if o.Bounds().Contains(target) {
		o.Waypoint++
	}
	o.Move()
}

// Rearm puts the opponent back on the start line for level with the path
// restarted and the level's velocity applied.
func Rearm(o *Opponent, level int) {
	o.Reset()
	o.Waypoint = 0
	o.Velocity = o.LevelVelocity(level)
}
