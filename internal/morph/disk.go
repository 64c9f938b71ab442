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

package morph

import "github.com/jtpils/lidarseg/internal/raster"

// diskOffsets lists every (dx,dy) within radius r of the origin, standard
// Euclidean disk structuring element.
func diskOffsets(r int32) []raster.Coord {
	offsets := make([]raster.Coord, 0)
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r2 {
				offsets = append(offsets, raster.Coord{X: dx, Y: dy})
			}
		}
	}
	return offsets
}

// Dilate grows m by the disk structuring element of radius r: a pixel is set
// if any pixel within the disk in the source mask is set.
func Dilate(m *Mask, r int32) *Mask {
	if r <= 0 {
		return cloneMask(m)
	}
	offsets := diskOffsets(r)
	out := NewMask(m.W, m.H)
	for i, v := range m.Data {
		if v == 0 {
			continue
		}
		c := m.CoordOf(int32(i))
		for _, off := range offsets {
			n := raster.Coord{X: c.X + off.X, Y: c.Y + off.Y}
			if m.InBounds(n) {
				out.Data[m.Index(n)] = 255
			}
		}
	}
	return out
}

// Erode shrinks m by the disk structuring element of radius r: a pixel is
// set only if every pixel within the disk is set in the source mask. Disk
// pixels outside the image count as unset, so a pixel whose disk crosses the
// image border is always cleared.
func Erode(m *Mask, r int32) *Mask {
	if r <= 0 {
		return cloneMask(m)
	}
	offsets := diskOffsets(r)
	out := NewMask(m.W, m.H)
	for y := int32(0); y < m.H; y++ {
		for x := int32(0); x < m.W; x++ {
			c := raster.Coord{X: x, Y: y}
			if !m.At(c) {
				continue
			}
			keep := true
			for _, off := range offsets {
				n := raster.Coord{X: c.X + off.X, Y: c.Y + off.Y}
				if !m.InBounds(n) || !m.At(n) {
					keep = false
					break
				}
			}
			if keep {
				out.Data[m.Index(c)] = 255
			}
		}
	}
	return out
}

func cloneMask(m *Mask) *Mask {
	out := NewMask(m.W, m.H)
	copy(out.Data, m.Data)
	return out
}
