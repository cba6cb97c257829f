// Package tessellate turns a set of sites into Voronoi cell polygons.
package tessellate

import (
	"github.com/jbeda/geom"
	"github.com/pzsz/voronoi"

	"voronoi-cells/round"
)

// Polygons computes the Voronoi diagram of sites clipped to the rectangle
// [0,width]x[0,height].  The i-th polygon is the cell of sites[i].  A site
// that repeats an earlier position gets an empty polygon, and a site
// outside the rectangle may come back with fewer than three vertices.
func Polygons(sites []geom.Coord, width, height float64) []round.Polygon {
	vs := make([]voronoi.Vertex, len(sites))
	for i, s := range sites {
		vs[i] = voronoi.Vertex{X: s.X, Y: s.Y}
	}

	bbox := voronoi.BBox{Xl: 0, Xr: width, Yt: 0, Yb: height}
	diagram := voronoi.ComputeDiagram(vs, bbox, true)

	bySite := make(map[voronoi.Vertex]*voronoi.Cell, len(diagram.Cells))
	for _, cell := range diagram.Cells {
		bySite[cell.Site] = cell
	}

	polys := make([]round.Polygon, len(sites))
	claimed := make(map[voronoi.Vertex]bool, len(sites))
	for i, v := range vs {
		cell, ok := bySite[v]
		if !ok || claimed[v] {
			continue
		}
		claimed[v] = true
		polys[i] = cellPolygon(cell)
	}
	return polys
}

func cellPolygon(cell *voronoi.Cell) round.Polygon {
	p := make(round.Polygon, 0, len(cell.Halfedges))
	for _, he := range cell.Halfedges {
		v := he.GetStartpoint()
		p = append(p, geom.Coord{X: v.X, Y: v.Y})
	}
	return p
}
