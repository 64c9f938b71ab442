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

package session

import (
	"fmt"
	"io"

	"github.com/jtpils/lidarseg/internal/raster"
)

// SeedSet holds a segmentation call's foreground/background seed pixels.
type SeedSet struct {
	Sources []raster.Coord
	Sinks   []raster.Coord
}

// Clean drops out-of-bounds coordinates and de-duplicates both lists,
// logging what was dropped the way the teacher's operators log to an
// io.Writer rather than a structured logger.
func (s SeedSet) Clean(img *raster.Image, logWriter io.Writer) SeedSet {
	sources, droppedSrc, dupSrc := cleanCoords(img, s.Sources)
	sinks, droppedSnk, dupSnk := cleanCoords(img, s.Sinks)
	if logWriter != nil && (droppedSrc > 0 || droppedSnk > 0 || dupSrc > 0 || dupSnk > 0) {
		fmt.Fprintf(logWriter, "seeds: dropped %d+%d out-of-bounds, %d+%d duplicate (sources+sinks)\n",
			droppedSrc, droppedSnk, dupSrc, dupSnk)
	}
	return SeedSet{Sources: sources, Sinks: sinks}
}

// IsEmpty reports spec.md §7's NoSeeds condition.
func (s SeedSet) IsEmpty() bool {
	return len(s.Sources) == 0 && len(s.Sinks) == 0
}

func cleanCoords(img *raster.Image, in []raster.Coord) (out []raster.Coord, dropped, duplicates int) {
	seen := make(map[raster.Coord]bool, len(in))
	out = make([]raster.Coord, 0, len(in))
	for _, c := range in {
		if !img.InBounds(c) {
			dropped++
			continue
		}
		if seen[c] {
			duplicates++
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, dropped, duplicates
}
