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

package ops

import (
	"fmt"
	"io"
	"strings"

	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/seedio"
	"github.com/jtpils/lidarseg/internal/session"
)

// OpLoadJob sources a Job by reading a raster image file and a seed file
// (PNG or text, picked by extension).
type OpLoadJob struct {
	ID           int    `json:"id"`
	ImageFile    string `json:"imageFile"`
	SeedFile     string `json:"seedFile"`
	Params       session.Params `json:"params"`
}

var _ OperatorSource = (*OpLoadJob)(nil)

func NewOpLoadJob(id int, imageFile, seedFile string, params session.Params) *OpLoadJob {
	return &OpLoadJob{ID: id, ImageFile: imageFile, SeedFile: seedFile, Params: params}
}

func (op *OpLoadJob) Apply(logWriter io.Writer) (job *Job, err error) {
	img, err := raster.NewImageFromFile(op.ImageFile, op.ID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(logWriter, "%d: loaded %s pixel image from %s\n", op.ID, img.DimensionsToString(), op.ImageFile)

	seeds, err := readSeedFile(op.SeedFile)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(logWriter, "%d: loaded %d source and %d sink seeds from %s\n", op.ID, len(seeds.Sources), len(seeds.Sinks), op.SeedFile)

	return &Job{ID: op.ID, Image: img, Seeds: seeds, Params: op.Params}, nil
}

func readSeedFile(fileName string) (session.SeedSet, error) {
	lower := strings.ToLower(fileName)
	if strings.HasSuffix(lower, ".png") {
		return seedio.ReadSeedPNGFile(fileName)
	}
	return seedio.ReadSeedTextFile(fileName)
}
