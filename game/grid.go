package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bastion"
)

var (
	gridLineColor = color.RGBA{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff}
	gridCellColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// Cell is one slot of the placement grid. Cells are created by NewGrid and
// linked to their orthogonal neighbors; edge cells have nil neighbors on the
// outside.
type Cell struct {
	Col, Row int
	Pos      bastion.Vec2

	up, down, left, right *Cell

	size  float64
	tower AnyTower
}

// Up returns the neighbor above, or nil on the top edge.
func (c *Cell) Up() *Cell { return c.up }

// Down returns the neighbor below, or nil on the bottom edge.
func (c *Cell) Down() *Cell { return c.down }

// Left returns the neighbor to the left, or nil on the left edge.
func (c *Cell) Left() *Cell { return c.left }

// Right returns the neighbor to the right, or nil on the right edge.
func (c *Cell) Right() *Cell { return c.right }

// Bounds returns the cell's square in screen coordinates.
func (c *Cell) Bounds() bastion.Rect {
	return c.Pos.AsRect(c.size, c.size)
}

// Center returns the cell's center point.
func (c *Cell) Center() bastion.Vec2 {
	return c.Bounds().Center()
}

// Tower returns the tower occupying the cell, or nil. A tower that has died
// or been disposed no longer counts as occupying; the stale reference is
// dropped on first observation.
func (c *Cell) Tower() AnyTower {
	if c.tower == nil {
		return nil
	}
	core := c.tower.TowerRef()
	if core.Removed() || core.PendingRemoval() {
		c.tower.TowerRef().cell = nil
		c.tower = nil
	}
	return c.tower
}

// Occupied reports whether a live tower sits in the cell.
func (c *Cell) Occupied() bool { return c.Tower() != nil }

// Clear disposes and unseats the cell's tower, if any.
func (c *Cell) Clear() {
	if t := c.Tower(); t != nil {
		t.TowerRef().Dispose()
		t.TowerRef().cell = nil
		c.tower = nil
	}
}

// Grid is the placement board: a rectangle of equally sized square cells,
// each holding at most one tower. The grid draws underneath everything else
// and disposing it cascades to every tower it houses.
type Grid struct {
	bastion.Core

	cols, rows int
	cellSize   float64
	cells      [][]*Cell // indexed [row][col]
}

// NewGrid builds a cols x rows grid of square cells anchored at origin.
// Panics if either dimension is less than 1 or the cell size is not positive.
func NewGrid(cols, rows int, cellSize float64, origin bastion.Vec2) *Grid {
	if cols < 1 || rows < 1 {
		panic("bastion: grid dimensions must be at least 1x1")
	}
	if cellSize <= 0 {
		panic("bastion: grid cell size must be positive")
	}
	g := &Grid{cols: cols, rows: rows, cellSize: cellSize}
	g.Pos = origin
	g.SetPriority(10)

	g.cells = make([][]*Cell, rows)
	for row := range g.cells {
		g.cells[row] = make([]*Cell, cols)
		for col := range g.cells[row] {
			g.cells[row][col] = &Cell{
				Col:  col,
				Row:  row,
				Pos:  origin.Add(bastion.Vec2{X: float64(col) * cellSize, Y: float64(row) * cellSize}),
				size: cellSize,
			}
		}
	}
	for row := range g.cells {
		for col, c := range g.cells[row] {
			if row > 0 {
				c.up = g.cells[row-1][col]
			}
			if row < rows-1 {
				c.down = g.cells[row+1][col]
			}
			if col > 0 {
				c.left = g.cells[row][col-1]
			}
			if col < cols-1 {
				c.right = g.cells[row][col+1]
			}
		}
	}

	g.OnDispose = func() {
		for _, row := range g.cells {
			for _, c := range row {
				if t := c.Tower(); t != nil {
					t.TowerRef().Dispose()
				}
			}
		}
	}
	return g
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *Grid) Rows() int { return g.rows }

// CellAt returns the cell at (col, row), or nil when out of range.
func (g *Grid) CellAt(col, row int) *Cell {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[row][col]
}

// CellAtPoint returns the cell containing the screen point, or nil when the
// point lies outside the grid.
func (g *Grid) CellAtPoint(pt bastion.Vec2) *Cell {
	col := int((pt.X - g.Pos.X) / g.cellSize)
	row := int((pt.Y - g.Pos.Y) / g.cellSize)
	if pt.X < g.Pos.X || pt.Y < g.Pos.Y {
		return nil
	}
	return g.CellAt(col, row)
}

// CanPlace reports whether a new tower may be built in the cell: the cell
// must be empty and share an edge with an occupied cell, so the base grows
// contiguously from the first tower placed.
func (g *Grid) CanPlace(c *Cell) bool {
	if c == nil || c.Occupied() {
		return false
	}
	for _, n := range []*Cell{c.up, c.down, c.left, c.right} {
		if n != nil && n.Occupied() {
			return true
		}
	}
	return false
}

// Place puts the tower in the cell, disposing any tower already there,
// centers it, and registers and spawns it. Adjacency is not checked here;
// callers enforce CanPlace for player builds. Returns false when the grid
// has not been registered yet or the cell is nil.
func (g *Grid) Place(c *Cell, t AnyTower) bool {
	if c == nil || g.Registry() == nil {
		return false
	}
	if prev := c.Tower(); prev != nil {
		prev.TowerRef().Dispose()
	}
	tw := t.TowerRef()
	b := t.Bounds()
	center := c.Center()
	tw.Pos = bastion.Vec2{X: center.X - b.Width/2, Y: center.Y - b.Height/2}
	tw.cell = c
	c.tower = t
	g.Registry().Register(t)
	t.Spawn()
	return true
}

// Tick is a no-op; the grid is static scenery.
func (g *Grid) Tick(frame int64) {}

// Draw fills each cell with a one-pixel gutter so the lattice reads as
// lines without a separate stroke pass.
func (g *Grid) Draw(screen *ebiten.Image) {
	bastion.FillRect(screen, g.Bounds(), gridLineColor)
	for _, row := range g.cells {
		for _, c := range row {
			inner := c.Bounds()
			inner.X++
			inner.Y++
			inner.Width -= 2
			inner.Height -= 2
			bastion.FillRect(screen, inner, gridCellColor)
		}
	}
}

// Bounds returns the full board rectangle.
func (g *Grid) Bounds() bastion.Rect {
	return g.Pos.AsRect(float64(g.cols)*g.cellSize, float64(g.rows)*g.cellSize)
}
