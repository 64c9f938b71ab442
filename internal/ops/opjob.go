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
	"errors"
	"io"
)

// OpRunJob is the top-level JSON job specification for the "run" command: a
// source step followed by named, independently-omittable pipeline stages.
// Segment and SegmentTwoPass carry a Solver field tagged json:"-"; the
// caller must wire one in after unmarshalling, since a MaxFlowSolver isn't
// serializable.
type OpRunJob struct {
	Load           *OpLoadJob        `json:"load"`
	Segment        *OpSegment        `json:"segment"`
	SegmentTwoPass *OpSegmentTwoPass `json:"segmentTwoPass"`
	Save           *OpSaveMask       `json:"save"`
}

// Run sources a Job via Load and threads it through whichever of Segment,
// SegmentTwoPass and Save are present, in that fixed order.
func (op *OpRunJob) Run(logWriter io.Writer) (job *Job, err error) {
	if op.Load == nil {
		return nil, errors.New("oprunjob: a \"load\" stage is required")
	}
	if job, err = op.Load.Apply(logWriter); err != nil {
		return nil, err
	}
	if op.Segment != nil {
		if job, err = op.Segment.Apply(job, logWriter); err != nil {
			return nil, err
		}
	}
	if op.SegmentTwoPass != nil {
		if job, err = op.SegmentTwoPass.Apply(job, logWriter); err != nil {
			return nil, err
		}
	}
	if op.Save != nil {
		if job, err = op.Save.Apply(job, logWriter); err != nil {
			return nil, err
		}
	}
	return job, nil
}
