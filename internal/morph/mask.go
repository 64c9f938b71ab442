// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package morph implements binary mask morphology: index/mask conversions,
// dilation, erosion, XOR and windowed regions, all pure on their inputs.
package morph

import "github.com/jtpils/lidarseg/internal/raster"

// Mask is a W*H row-major 0/255 byte plane matching an Image's dimensions.
type Mask struct {
	W, H int32
	Data []byte
}

// NewMask allocates an all-zero mask of the given dimensions.
func NewMask(w, h int32) *Mask {
	return &Mask{W: w, H: h, Data: make([]byte, w*h)}
}

func (m *Mask) InBounds(c raster.Coord) bool {
	return c.X >= 0 && c.X < m.W && c.Y >= 0 && c.Y < m.H
}

func (m *Mask) Index(c raster.Coord) int32 {
	return c.Y*m.W + c.X
}

func (m *Mask) CoordOf(i int32) raster.Coord {
	return raster.Coord{X: i % m.W, Y: i / m.W}
}

func (m *Mask) At(c raster.Coord) bool {
	return m.Data[m.Index(c)] != 0
}

// IndicesToMask sets 255 at each listed coordinate, 0 elsewhere.
func IndicesToMask(indices []raster.Coord, w, h int32) *Mask {
	m := NewMask(w, h)
	for _, c := range indices {
		if m.InBounds(c) {
			m.Data[m.Index(c)] = 255
		}
	}
	return m
}

// MaskToIndices returns every non-zero pixel's coordinate, in row-major order.
func MaskToIndices(m *Mask) []raster.Coord {
	out := make([]raster.Coord, 0)
	for i, v := range m.Data {
		if v != 0 {
			out = append(out, m.CoordOf(int32(i)))
		}
	}
	return out
}

// Xor computes the elementwise XOR of two same-sized masks.
func Xor(a, b *Mask) *Mask {
	out := NewMask(a.W, a.H)
	for i := range out.Data {
		av := a.Data[i] != 0
		bv := b.Data[i] != 0
		if av != bv {
			out.Data[i] = 255
		}
	}
	return out
}

// RegionAround returns the inclusive square of half-side r centered on p,
// clipped to [0,w) x [0,h).
func RegionAround(p raster.Coord, r int32, w, h int32) []raster.Coord {
	out := make([]raster.Coord, 0, (2*r+1)*(2*r+1))
	for y := p.Y - r; y <= p.Y+r; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := p.X - r; x <= p.X+r; x++ {
			if x < 0 || x >= w {
				continue
			}
			out = append(out, raster.Coord{X: x, Y: y})
		}
	}
	return out
}
