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

package graphcut

import (
	"github.com/jtpils/lidarseg/internal/regional"
	"github.com/jtpils/lidarseg/internal/smoothness"
)

// Build assembles a Graph from a pixel count, the regional term's terminal
// capacities and the smoothness term's neighbour capacities, per spec.md
// §4.6: one node per pixel, s-links from t_source, t-links from t_sink,
// n-links from the weighted neighbour pairs.
func Build(numNodes int32, caps regional.Capacities, weights smoothness.Weights) *Graph {
	g := &Graph{
		NumNodes: numNodes,
		SLinks:   make([]SLink, 0, numNodes),
		TLinks:   make([]TLink, 0, numNodes),
		NLinks:   make([]NLink, 0, len(weights.Pairs)),
	}
	for i := int32(0); i < numNodes; i++ {
		if caps.TSource[i] > 0 {
			g.SLinks = append(g.SLinks, SLink{Node: i, Cap: caps.TSource[i]})
		}
		if caps.TSink[i] > 0 {
			g.TLinks = append(g.TLinks, TLink{Node: i, Cap: caps.TSink[i]})
		}
	}
	for _, p := range weights.Pairs {
		g.NLinks = append(g.NLinks, NLink{A: p.A, B: p.B, Cap: p.Weight})
	}
	return g
}
