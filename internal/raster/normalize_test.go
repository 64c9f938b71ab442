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

package raster

import "testing"

func TestNormalizeRescalesToUnitRange(t *testing.T) {
	img := NewImage(4, 4, 4)
	for y := int32(0); y < 4; y++ {
		for x := int32(0); x < 4; x++ {
			c := Coord{X: x, Y: y}
			img.Set(c, 3, float32(10+x)) // depth in meters, e.g. 10..13
		}
	}

	out, ranges := Normalize(img)
	if !IsNormalized(out) {
		t.Fatalf("normalized image not within [0,1]")
	}
	if ranges[3].Min != 10 || ranges[3].Max != 13 {
		t.Errorf("depth range = %+v, want {10 13}", ranges[3])
	}
	if out.At(Coord{X: 0, Y: 0}, 3) != 0 {
		t.Errorf("min depth pixel = %v, want 0", out.At(Coord{X: 0, Y: 0}, 3))
	}
	if out.At(Coord{X: 3, Y: 0}, 3) != 1 {
		t.Errorf("max depth pixel = %v, want 1", out.At(Coord{X: 3, Y: 0}, 3))
	}
}

func TestNormalizeConstantChannelIsZero(t *testing.T) {
	img := NewImage(3, 3, 4)
	for i := range img.Data {
		img.Data[i] = 0.5
	}
	out, _ := Normalize(img)
	for _, v := range out.Data {
		if v != 0 {
			t.Fatalf("constant channel should normalize to 0 throughout, got %v", v)
		}
	}
}

func TestNormalizeIsAffineInvariant(t *testing.T) {
	a := NewImage(5, 5, 4)
	b := NewImage(5, 5, 4)
	for y := int32(0); y < 5; y++ {
		for x := int32(0); x < 5; x++ {
			c := Coord{X: x, Y: y}
			v := float32(x+y) / 8
			a.Set(c, 3, v)
			b.Set(c, 3, 3*v+7) // affine rescale of the same depth signal
		}
	}

	outA, _ := Normalize(a)
	outB, _ := Normalize(b)
	for i := range outA.Data {
		diff := outA.Data[i] - outB.Data[i]
		if diff < -1e-5 || diff > 1e-5 {
			t.Fatalf("normalized values diverge at index %d: %v vs %v", i, outA.Data[i], outB.Data[i])
		}
	}
}
