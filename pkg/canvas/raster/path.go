package raster

import "github.com/OpenTraceLab/pcbcanvas/pkg/geom"

// subpath holds device-space points
type subpath struct {
	pts    []geom.Point
	closed bool
}

type path struct {
	subpaths []subpath
}

func (p *path) reset() {
	p.subpaths = p.subpaths[:0]
}

func (p *path) hasCurrent() bool {
	return len(p.subpaths) > 0
}

// current returns the pen position; after close it is the subpath start
func (p *path) current() geom.Point {
	sp := p.subpaths[len(p.subpaths)-1]
	if sp.closed {
		return sp.pts[0]
	}
	return sp.pts[len(sp.pts)-1]
}

func (p *path) moveTo(pt geom.Point) {
	p.subpaths = append(p.subpaths, subpath{pts: []geom.Point{pt}})
}

// lineTo behaves like moveTo when the path is empty
func (p *path) lineTo(pt geom.Point) {
	if !p.hasCurrent() {
		p.moveTo(pt)
		return
	}
	last := &p.subpaths[len(p.subpaths)-1]
	if last.closed {
		p.moveTo(last.pts[0])
		last = &p.subpaths[len(p.subpaths)-1]
	}
	last.pts = append(last.pts, pt)
}

// close marks the current subpath closed. The next segment starts a new
// subpath at its first point.
func (p *path) close() {
	if !p.hasCurrent() {
		return
	}
	p.subpaths[len(p.subpaths)-1].closed = true
}
