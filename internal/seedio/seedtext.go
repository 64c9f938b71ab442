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

package seedio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/session"
)

// ReadSeedTextFile parses one "f x y" or "b x y" per line: f for foreground
// (source), b for background (sink).
func ReadSeedTextFile(fileName string) (session.SeedSet, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return session.SeedSet{}, err
	}
	defer f.Close()
	return ReadSeedText(f)
}

func ReadSeedText(r io.Reader) (session.SeedSet, error) {
	var seeds session.SeedSet
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return session.SeedSet{}, fmt.Errorf("seedio: line %d: expected \"f x y\" or \"b x y\", got %q", lineNo, line)
		}
		x, errX := strconv.Atoi(fields[1])
		y, errY := strconv.Atoi(fields[2])
		if errX != nil || errY != nil {
			return session.SeedSet{}, fmt.Errorf("seedio: line %d: invalid coordinates in %q", lineNo, line)
		}
		c := raster.Coord{X: int32(x), Y: int32(y)}
		switch fields[0] {
		case "f":
			seeds.Sources = append(seeds.Sources, c)
		case "b":
			seeds.Sinks = append(seeds.Sinks, c)
		default:
			return session.SeedSet{}, fmt.Errorf("seedio: line %d: unknown seed kind %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return session.SeedSet{}, err
	}
	return seeds, nil
}

// WriteSeedTextFile writes a SeedSet in the same "f x y" / "b x y" format.
func WriteSeedTextFile(fileName string, seeds session.SeedSet) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSeedText(f, seeds)
}

func WriteSeedText(w io.Writer, seeds session.SeedSet) error {
	bw := bufio.NewWriter(w)
	for _, c := range seeds.Sources {
		fmt.Fprintf(bw, "f %d %d\n", c.X, c.Y)
	}
	for _, c := range seeds.Sinks {
		fmt.Fprintf(bw, "b %d %d\n", c.X, c.Y)
	}
	return bw.Flush()
}
