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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jtpils/lidarseg/internal/morph"
	"github.com/jtpils/lidarseg/internal/seedio"
)

// OpSaveMask writes a Job's result mask to disk as an 8-bit PNG if active.
type OpSaveMask struct {
	Active      bool   `json:"active"`
	FilePattern string `json:"filePattern"`
}

var _ OperatorUnary = (*OpSaveMask)(nil)

func NewOpSaveMask(filePattern string) *OpSaveMask {
	return &OpSaveMask{Active: filePattern != "", FilePattern: filePattern}
}

func (op *OpSaveMask) UnmarshalJSON(data []byte) error {
	type defaults OpSaveMask
	def := defaults{Active: true}
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	*op = OpSaveMask(def)
	return nil
}

func (op *OpSaveMask) Apply(job *Job, logWriter io.Writer) (jobOut *Job, err error) {
	if !op.Active || op.FilePattern == "" {
		return job, nil
	}

	mask := op.maskOf(job)
	if mask == nil {
		return nil, errors.New("opsave: job has no result to save; run OpSegment or OpSegmentTwoPass first")
	}

	fileName := op.FilePattern
	if strings.Contains(fileName, "%d") {
		fileName = fmt.Sprintf(op.FilePattern, job.ID)
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".png") {
		return nil, fmt.Errorf("opsave: unsupported mask file suffix in %s", fileName)
	}

	fmt.Fprintf(logWriter, "%d: writing %dx%d pixel mask to %s\n", job.ID, mask.W, mask.H, fileName)
	if err := seedio.WriteMaskPNGToFile(fileName, mask); err != nil {
		return nil, fmt.Errorf("opsave: writing %s: %w", fileName, err)
	}
	return job, nil
}

func (op *OpSaveMask) maskOf(job *Job) *morph.Mask {
	if job.TwoPass {
		return job.TwoPassResult.Mask
	}
	return job.Result.Mask
}
