package ebitenview

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/sitecam"
)

// Edge is one wireframe segment in world space.
type Edge struct {
	A, B  mgl64.Vec3
	Color color.RGBA
}

// Model is anything the view can draw as a wireframe. It also reports the
// bounds the controller frames.
type Model interface {
	sitecam.Scene
	// Edges appends the model's segments to buf and returns it.
	Edges(buf []Edge) []Edge
}

var (
	colorDone    = color.RGBA{0x4c, 0xaf, 0x50, 0xff}
	colorPending = color.RGBA{0x60, 0x60, 0x68, 0xff}
	colorGround  = color.RGBA{0x2a, 0x2a, 0x30, 0xff}
)

// Building is a multi-floor block of units. Each unit is drawn green once
// it is complete, grey otherwise.
type Building struct {
	Floors      int
	UnitsX      int
	UnitsZ      int
	UnitWidth   float64
	UnitDepth   float64
	FloorHeight float64
	// Complete holds Floors*UnitsX*UnitsZ flags in floor-major order.
	Complete []bool

	loaded bool
}

// NewBuilding creates a building with every unit pending. It reports no
// bounds until SetLoaded is called.
func NewBuilding(floors, unitsX, unitsZ int) *Building {
	return &Building{
		Floors:      floors,
		UnitsX:      unitsX,
		UnitsZ:      unitsZ,
		UnitWidth:   4,
		UnitDepth:   4,
		FloorHeight: 3,
		Complete:    make([]bool, floors*unitsX*unitsZ),
	}
}

// SetLoaded marks the model geometry as available.
func (b *Building) SetLoaded(loaded bool) {
	b.loaded = loaded
}

// SetComplete marks one unit as finished.
func (b *Building) SetComplete(floor, x, z int, done bool) {
	i := b.index(floor, x, z)
	if i >= 0 {
		b.Complete[i] = done
	}
}

func (b *Building) index(floor, x, z int) int {
	if floor < 0 || floor >= b.Floors || x < 0 || x >= b.UnitsX || z < 0 || z >= b.UnitsZ {
		return -1
	}
	return (floor*b.UnitsZ+z)*b.UnitsX + x
}

// Bounds implements sitecam.Scene. The footprint is centered on the
// origin and the ground floor sits on y = 0.
func (b *Building) Bounds() (sitecam.Box3, bool) {
	if !b.loaded || b.Floors <= 0 || b.UnitsX <= 0 || b.UnitsZ <= 0 {
		return sitecam.Box3{}, false
	}
	hx := float64(b.UnitsX) * b.UnitWidth / 2
	hz := float64(b.UnitsZ) * b.UnitDepth / 2
	return sitecam.Box3{
		Min: mgl64.Vec3{-hx, 0, -hz},
		Max: mgl64.Vec3{hx, float64(b.Floors) * b.FloorHeight, hz},
	}, true
}

// unitBox returns the box of one unit.
func (b *Building) unitBox(floor, x, z int) sitecam.Box3 {
	x0 := -float64(b.UnitsX)*b.UnitWidth/2 + float64(x)*b.UnitWidth
	z0 := -float64(b.UnitsZ)*b.UnitDepth/2 + float64(z)*b.UnitDepth
	y0 := float64(floor) * b.FloorHeight
	return sitecam.Box3{
		Min: mgl64.Vec3{x0, y0, z0},
		Max: mgl64.Vec3{x0 + b.UnitWidth, y0 + b.FloorHeight, z0 + b.UnitDepth},
	}
}

// Edges implements Model: a ground grid plus the 12 edges of every unit.
func (b *Building) Edges(buf []Edge) []Edge {
	box, ok := b.Bounds()
	if !ok {
		return buf
	}
	buf = appendGround(buf, box)
	for f := 0; f < b.Floors; f++ {
		for z := 0; z < b.UnitsZ; z++ {
			for x := 0; x < b.UnitsX; x++ {
				clr := colorPending
				if b.Complete[b.index(f, x, z)] {
					clr = colorDone
				}
				buf = appendBoxEdges(buf, b.unitBox(f, x, z), clr)
			}
		}
	}
	return buf
}

// appendGround adds a grid one unit larger than the footprint on every
// side.
func appendGround(buf []Edge, box sitecam.Box3) []Edge {
	const step = 4.0
	x0, x1 := box.Min[0]-step, box.Max[0]+step
	z0, z1 := box.Min[2]-step, box.Max[2]+step
	for x := x0; x <= x1+1e-9; x += step {
		buf = append(buf, Edge{A: mgl64.Vec3{x, 0, z0}, B: mgl64.Vec3{x, 0, z1}, Color: colorGround})
	}
	for z := z0; z <= z1+1e-9; z += step {
		buf = append(buf, Edge{A: mgl64.Vec3{x0, 0, z}, B: mgl64.Vec3{x1, 0, z}, Color: colorGround})
	}
	return buf
}

func appendBoxEdges(buf []Edge, b sitecam.Box3, clr color.RGBA) []Edge {
	lo, hi := b.Min, b.Max
	c := [8]mgl64.Vec3{
		{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]},
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		buf = append(buf,
			Edge{A: c[i], B: c[j], Color: clr},
			Edge{A: c[i+4], B: c[j+4], Color: clr},
			Edge{A: c[i], B: c[i+4], Color: clr},
		)
	}
	return buf
}
