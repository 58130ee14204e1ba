package track

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"time"

	"carrace/internal/mask"
	"carrace/internal/race"
)

const (
	kerbStripe   = 10 // px along the diagonal per kerb colour
	finishSquare = 8
	grassPatches = 90
)

// Assets holds everything rendered from a Definition: the four track
// layers, both car sprites and the collision masks derived from them.
type Assets struct {
	Def *Definition

	Grass  *image.NRGBA
	Road   *image.NRGBA
	Finish *image.NRGBA
	Border *image.NRGBA

	PlayerCar   *image.NRGBA
	OpponentCar *image.NRGBA

	BorderMask   *mask.Mask
	FinishMask   *mask.Mask
	PlayerMask   *mask.Mask
	OpponentMask *mask.Mask

	// dist holds each pixel's distance to the centreline.
	dist []float32
}

// Build rasterises def.
func Build(def *Definition) (*Assets, error) {
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("%w: world size %dx%d", ErrInvalidTrack, def.Width, def.Height)
	}
	if len(def.Road()) < 2 {
		return nil, fmt.Errorf("%w: centreline needs at least two points", ErrInvalidTrack)
	}

	a := &Assets{Def: def}
	a.dist = distanceField(def.Width, def.Height, def.Road())
	a.Grass = makeGrass(def.Width, def.Height, def.Seed)
	a.Road, a.Border = a.makeRoadAndKerb()
	a.Finish = makeFinish(def.Finish.Width, def.Finish.Height)
	a.PlayerCar = makeCar(def.Player.Width, def.Player.Height, def.Player.Color)
	a.OpponentCar = makeCar(def.Opponent.Width, def.Opponent.Height, def.Opponent.Color)

	a.BorderMask = mask.FromImage(a.Border, mask.DefaultThreshold)
	a.FinishMask = mask.FromImage(a.Finish, mask.DefaultThreshold)
	a.PlayerMask = mask.FromImage(a.PlayerCar, mask.DefaultThreshold)
	a.OpponentMask = mask.FromImage(a.OpponentCar, mask.DefaultThreshold)
	return a, nil
}

// Course packages the assets for the race core.
func (a *Assets) Course(announce time.Duration) race.Course {
	d := a.Def
	return race.Course{
		Width:    d.Width,
		Height:   d.Height,
		Border:   a.BorderMask,
		Finish:   a.FinishMask,
		FinishAt: race.Pt(d.Finish.X, d.Finish.Y),
		Player: race.Car{
			Params: d.Player.Params,
			Start:  d.Player.Start.Point(),
			Mask:   a.PlayerMask,
		},
		Opponent: race.Car{
			Params: d.Opponent.Params,
			Start:  d.Opponent.Start.Point(),
			Mask:   a.OpponentMask,
		},
		Path:       d.Points(),
		LevelCount: d.Levels,
		LevelStep:  d.LevelStep,
		Announce:   announce,
	}
}

func (a *Assets) Layer(l race.Layer) *image.NRGBA {
	switch l {
	case race.LayerGrass:
		return a.Grass
	case race.LayerTrack:
		return a.Road
	case race.LayerFinish:
		return a.Finish
	case race.LayerBorder:
		return a.Border
	}
	return nil
}

func (a *Assets) Sprite(s race.Sprite) *image.NRGBA {
	if s == race.SpriteOpponent {
		return a.OpponentCar
	}
	return a.PlayerCar
}

// Composite flattens the static layers into one image in draw order.
func (a *Assets) Composite() *image.NRGBA {
	d := a.Def
	out := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	draw.Draw(out, out.Bounds(), a.Grass, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), a.Road, image.Point{}, draw.Over)
	fx, fy := int(d.Finish.X), int(d.Finish.Y)
	fr := image.Rect(fx, fy, fx+d.Finish.Width, fy+d.Finish.Height)
	draw.Draw(out, fr, a.Finish, image.Point{}, draw.Over)
	draw.Draw(out, out.Bounds(), a.Border, image.Point{}, draw.Over)
	return out
}

// Distance returns the distance from p to the centreline, or +Inf outside
// the world.
func (a *Assets) Distance(p race.Point) float64 {
	x, y := int(p.X), int(p.Y)
	if x < 0 || y < 0 || x >= a.Def.Width || y >= a.Def.Height {
		return math.Inf(1)
	}
	return float64(a.dist[y*a.Def.Width+x])
}

// OnRoad reports whether p lies on the drivable road surface.
func (a *Assets) OnRoad(p race.Point) bool {
	return a.Distance(p) < a.Def.RoadHalfWidth
}

// distanceField computes, for every pixel centre, the distance to the
// closed polyline through pts.
func distanceField(w, h int, pts []Waypoint) []float32 {
	out := make([]float32, w*h)
	for i := range out {
		out[i] = math.MaxFloat32
	}
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		for y := 0; y < h; y++ {
			py := float64(y) + 0.5
			row := out[y*w : (y+1)*w]
			for x := 0; x < w; x++ {
				d := float32(segmentDistance(float64(x)+0.5, py, a, b))
				if d < row[x] {
					row[x] = d
				}
			}
		}
	}
	return out
}

func segmentDistance(px, py float64, a, b Waypoint) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = ((px-a.X)*dx + (py-a.Y)*dy) / l2
		t = math.Max(0, math.Min(1, t))
	}
	cx, cy := a.X+t*dx-px, a.Y+t*dy-py
	return math.Hypot(cx, cy)
}

func makeGrass(w, h int, seed uint64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := int(hash2D(seed, x, y)&0x0f) - 8
			img.SetNRGBA(x, y, Palette.Grass.Add(n/2, n, n/2).NRGBA(255))
		}
	}

	// Darker blotches so the field does not read as flat.
	r := NewRand(seed)
	for i := 0; i < grassPatches; i++ {
		cx, cy := r.Intn(w), r.Intn(h)
		rad := r.Range(6, 22)
		for y := cy - rad; y <= cy+rad; y++ {
			for x := cx - rad; x <= cx+rad; x++ {
				if x < 0 || y < 0 || x >= w || y >= h {
					continue
				}
				ddx, ddy := x-cx, y-cy
				if ddx*ddx+ddy*ddy > rad*rad {
					continue
				}
				n := int(hash2D(seed+1, x, y)&0x07) - 4
				img.SetNRGBA(x, y, Palette.GrassPatch.Add(n, n, n).NRGBA(255))
			}
		}
	}
	return img
}

// makeRoadAndKerb paints the asphalt inside the road half-width and the
// striped kerb ring just outside it. Both are transparent elsewhere.
func (a *Assets) makeRoadAndKerb() (*image.NRGBA, *image.NRGBA) {
	d := a.Def
	road := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	kerb := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	half, outer := d.RoadHalfWidth, d.RoadHalfWidth+d.BorderWidth

	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			dist := float64(a.dist[y*d.Width+x])
			switch {
			case dist < 1 && (x/6+y/6)%3 == 0:
				road.SetNRGBA(x, y, Palette.RoadLine.NRGBA(255))
			case dist < half:
				n := int(hash2D(d.Seed^0x5eed, x, y)&0x07) - 4
				road.SetNRGBA(x, y, Palette.Road.Add(n, n, n).NRGBA(255))
			case dist < outer:
				col := Palette.KerbRed
				if ((x+y)/kerbStripe)%2 == 0 {
					col = Palette.KerbWhite
				}
				kerb.SetNRGBA(x, y, col.NRGBA(255))
			}
		}
	}
	return road, kerb
}

func makeFinish(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := Palette.FinishLight
			if (x/finishSquare+y/finishSquare)%2 == 1 {
				col = Palette.FinishDark
			}
			img.SetNRGBA(x, y, col.NRGBA(255))
		}
	}
	return img
}

// makeCar draws a top-down car facing up: bumper, windscreen, roof, rear
// window and boot as horizontal bands, tyres on the flanks and rounded
// transparent corners.
func makeCar(w, h int, body RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	roof := body.Mul(180)

	band := func(y int) RGB {
		f := float64(y) / float64(h)
		switch {
		case f < 0.22:
			return body
		case f < 0.36:
			return Palette.Window
		case f < 0.64:
			return roof
		case f < 0.74:
			return Palette.Window.Mul(200)
		default:
			return body
		}
	}
	tyre := func(y int) bool {
		f := float64(y) / float64(h)
		return (f >= 0.12 && f < 0.28) || (f >= 0.70 && f < 0.86)
	}

	const radius = 3
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cornerCut(x, y, w, h, radius) {
				continue
			}
			col := band(y)
			if (x == 0 || x == w-1) && tyre(y) {
				col = Palette.Tyre
			}
			if y == 0 && (x == 2 || x == 3 || x == w-3 || x == w-4) {
				col = Palette.Headlight
			}
			img.SetNRGBA(x, y, col.NRGBA(255))
		}
	}
	return img
}

// cornerCut reports whether (x, y) falls outside a rectangle with rounded
// corners of radius r.
func cornerCut(x, y, w, h, r int) bool {
	cx, cy := -1, -1
	switch {
	case x < r:
		cx = r
	case x >= w-r:
		cx = w - r - 1
	}
	switch {
	case y < r:
		cy = r
	case y >= h-r:
		cy = h - r - 1
	}
	if cx < 0 || cy < 0 {
		return false
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy > r*r
}
