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

import "io"

// OpSequence chains OperatorUnary steps, feeding each Job through in order.
type OpSequence struct {
	Active bool
	Steps  []OperatorUnary `json:"steps"`
}

var _ OperatorUnary = (*OpSequence)(nil)

func NewOpSequence(steps []OperatorUnary) *OpSequence {
	return &OpSequence{Active: len(steps) > 0, Steps: steps}
}

func (op *OpSequence) Apply(job *Job, logWriter io.Writer) (jobOut *Job, err error) {
	if !op.Active {
		return job, nil
	}
	for _, step := range op.Steps {
		job, err = step.Apply(job, logWriter)
		if err != nil {
			return nil, err
		}
	}
	return job, nil
}
