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
	"io"

	"github.com/jtpils/lidarseg/internal/graphcut"
	"github.com/jtpils/lidarseg/internal/pipeline"
)

// OpSegment runs the single-pass segmentation on a Job if active. Solver is
// not serialized; callers wire it in after unmarshalling a pipeline config.
type OpSegment struct {
	Active bool                  `json:"active"`
	Solver graphcut.MaxFlowSolver `json:"-"`
}

var _ OperatorUnary = (*OpSegment)(nil)

func NewOpSegment(solver graphcut.MaxFlowSolver) *OpSegment {
	return &OpSegment{Active: solver != nil, Solver: solver}
}

// UnmarshalJSON unmarshals the type from JSON with default values for
// missing entries, matching the teacher's pattern; Solver must be set by
// the caller afterward since it is not serializable.
func (op *OpSegment) UnmarshalJSON(data []byte) error {
	type defaults OpSegment
	def := defaults{Active: true}
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	*op = OpSegment(def)
	return nil
}

func (op *OpSegment) Apply(job *Job, logWriter io.Writer) (jobOut *Job, err error) {
	if !op.Active {
		return job, nil
	}
	result, err := pipeline.Segment(job.Image, job.Seeds, job.Params, op.Solver, nil, logWriter)
	if err != nil {
		return nil, err
	}
	job.Result = result
	return job, nil
}

// OpSegmentTwoPass runs the two-pass LiDAR refinement pipeline on a Job.
type OpSegmentTwoPass struct {
	Active bool                   `json:"active"`
	Solver graphcut.MaxFlowSolver `json:"-"`
}

var _ OperatorUnary = (*OpSegmentTwoPass)(nil)

func NewOpSegmentTwoPass(solver graphcut.MaxFlowSolver) *OpSegmentTwoPass {
	return &OpSegmentTwoPass{Active: solver != nil, Solver: solver}
}

func (op *OpSegmentTwoPass) UnmarshalJSON(data []byte) error {
	type defaults OpSegmentTwoPass
	def := defaults{Active: true}
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	*op = OpSegmentTwoPass(def)
	return nil
}

func (op *OpSegmentTwoPass) Apply(job *Job, logWriter io.Writer) (jobOut *Job, err error) {
	if !op.Active {
		return job, nil
	}
	result, err := pipeline.SegmentTwoPass(job.Image, job.Seeds, job.Params, op.Solver, nil, logWriter)
	if err != nil {
		return nil, err
	}
	job.TwoPassResult = result
	job.TwoPass = true
	return job, nil
}
