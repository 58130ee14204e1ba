package track

import (
	"fmt"

	"carrace/internal/mask"
)

type Severity int

const (
	SeverityWarn Severity = iota
	SeverityFail
)

func (s Severity) String() string {
	if s == SeverityFail {
		return "FAIL"
	}
	return "WARN"
}

// Issue is one finding from Check.
type Issue struct {
	Severity Severity
	Message  string
}

// Check looks for data problems the race loop never reports: waypoints the
// opponent cannot reach on the road, and cars that start touching the kerb
// or the finish line.
func Check(a *Assets) []Issue {
	var issues []Issue
	add := func(s Severity, format string, args ...any) {
		issues = append(issues, Issue{Severity: s, Message: fmt.Sprintf(format, args...)})
	}
	d := a.Def

	for i, w := range d.Path {
		if w.X < 0 || w.Y < 0 || int(w.X) >= d.Width || int(w.Y) >= d.Height {
			add(SeverityFail, "waypoint %d (%.0f,%.0f) is outside the world", i, w.X, w.Y)
			continue
		}
		if !a.OnRoad(w.Point()) {
			add(SeverityWarn, "waypoint %d (%.0f,%.0f) is %.1fpx off the road centre, opponent may stall",
				i, w.X, w.Y, a.Distance(w.Point()))
		}
	}

	cars := []struct {
		name string
		spec CarSpec
		m    *mask.Mask
	}{
		{"player", d.Player, a.PlayerMask},
		{"opponent", d.Opponent, a.OpponentMask},
	}
	for _, c := range cars {
		sx, sy := c.spec.Start.X, c.spec.Start.Y
		if pt, hit := mask.Collide(a.BorderMask, 0, 0, c.m, sx, sy); hit {
			add(SeverityFail, "%s start (%.0f,%.0f) overlaps the kerb at (%d,%d)", c.name, sx, sy, pt.X, pt.Y)
		}
		if _, hit := mask.Collide(a.FinishMask, d.Finish.X, d.Finish.Y, c.m, sx, sy); hit {
			add(SeverityFail, "%s start (%.0f,%.0f) overlaps the finish line", c.name, sx, sy)
		}
		if sx < 0 || sy < 0 || int(sx)+c.spec.Width > d.Width || int(sy)+c.spec.Height > d.Height {
			add(SeverityFail, "%s sprite at (%.0f,%.0f) leaves the world", c.name, sx, sy)
		}
	}

	centre := Waypoint{X: d.Finish.X + float64(d.Finish.Width)/2, Y: d.Finish.Y + float64(d.Finish.Height)/2}
	if !a.OnRoad(centre.Point()) {
		add(SeverityWarn, "finish line centre (%.0f,%.0f) is not on the road", centre.X, centre.Y)
	}
	return issues
}

// Failed reports whether any issue is fatal.
func Failed(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityFail {
			return true
		}
	}
	return false
}
