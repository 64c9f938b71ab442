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

import "github.com/jtpils/lidarseg/internal/qsort"

// MedianOf returns the exact median of values: the middle element of an odd-
// length list, the average of the two central elements for even length. ok
// is false for an empty slice.
func MedianOf(values []float32) (median float32, ok bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}
	buf := make([]float32, n)
	copy(buf, values)
	return qsort.QSelectMedianFloat32(buf), true
}
