// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"fmt"
	"math"

	"github.com/snowdonr/gcms/gcmserr"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// SimilarityMatrix scores every pairwise combination of singleton
// alignments, each entry being the merged similarity scalar from Align. The matrix is symmetric by construction; only the upper
// triangle is computed.
func SimilarityMatrix(alignments []*Alignment, d, gap float64) ([][]float64, error) {
	n := len(alignments)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			merged, err := Align(alignments[i], alignments[j], d, gap)
			if err != nil {
				return nil, err
			}
			m[i][j] = merged.Similarity
			m[j][i] = merged.Similarity
		}
	}
	return m, nil
}

// ToDistance converts a pairwise similarity matrix (higher is better,
// self-pairs undefined) into the distance matrix UPGMA expects, by
// subtracting every entry from the largest off-diagonal similarity, or
// from zero when every off-diagonal similarity is negative. The diagonal
// is left at zero. The result is suitable as UPGMA's dist argument.
func ToDistance(sim [][]float64) [][]float64 {
	max := 0.0
	for i, row := range sim {
		for j, v := range row {
			if i != j && v > max {
				max = v
			}
		}
	}
	out := make([][]float64, len(sim))
	for i, row := range sim {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if i == j {
				continue
			}
			out[i][j] = max - v
		}
	}
	return out
}

// TreeNode is one node of a UPGMA guide tree. Left and Right follow the
// signed-index convention: a non-negative value indexes an original
// alignment, a negative value indexes an earlier TreeNode by
// -(index+1).
type TreeNode struct {
	Left, Right int
	Height      float64
}

// UPGMA clusters n leaves given their pairwise distance matrix dist,
// returning n-1 internal nodes in merge order. The last node is the
// root.
func UPGMA(dist [][]float64) ([]TreeNode, error) {
	n := len(dist)
	if n == 0 {
		return nil, gcmserr.New(gcmserr.EmptyAlignment, "UPGMA", "no leaves")
	}
	if n == 1 {
		return nil, nil
	}

	// active cluster bookkeeping: id uses the signed convention, size is
	// the leaf count backing the cluster, slot indexes the grow-only
	// distance cache below.
	type cluster struct {
		id   int
		size int
		slot int
	}
	active := make([]cluster, n)
	for i := range active {
		active[i] = cluster{id: i, size: 1, slot: i}
	}

	// d is a grow-only distance cache keyed by slot, since signed node
	// ids are not contiguous and can't index a plain matrix.
	d := make(map[[2]int]float64)
	key := func(a, b int) [2]int {
		if a > b {
			a, b = b, a
		}
		return [2]int{a, b}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d[key(i, j)] = dist[i][j]
		}
	}
	nextSlot := n

	var nodes []TreeNode
	for len(active) > 1 {
		bi, bj := 0, 1
		best := math.Inf(1)
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				v := d[key(active[i].slot, active[j].slot)]
				if v < best {
					best, bi, bj = v, i, j
				}
			}
		}

		ci, cj := active[bi], active[bj]
		nodeIdx := len(nodes)
		nodes = append(nodes, TreeNode{Left: ci.id, Right: cj.id, Height: best})
		newID := -(nodeIdx + 1)
		newSize := ci.size + cj.size
		newSlot := nextSlot
		nextSlot++

		// recompute distances from the merged cluster to all others using
		// size-weighted averaging.
		for k := 0; k < len(active); k++ {
			if k == bi || k == bj {
				continue
			}
			ck := active[k]
			wi := float64(ci.size) / float64(newSize)
			wj := float64(cj.size) / float64(newSize)
			nd := wi*d[key(ci.slot, ck.slot)] + wj*d[key(cj.slot, ck.slot)]
			d[key(newSlot, ck.slot)] = nd
		}

		next := active[:0]
		for k, c := range active {
			if k == bi || k == bj {
				continue
			}
			next = append(next, c)
		}
		active = append(next, cluster{id: newID, size: newSize, slot: newSlot})
	}
	return nodes, nil
}

// AlignWithTree folds a UPGMA guide tree over the original singleton
// alignments, merging bottom-up, and applies a minimum-peaks-per-position
// filter to the final result.
func AlignWithTree(alignments []*Alignment, tree []TreeNode, d, gap float64, minPeaks int) (*Alignment, error) {
	if len(alignments) == 1 {
		out := *alignments[0]
		out.FilterMinPeaks(minPeaks)
		return &out, nil
	}

	resolved := make(map[int]*Alignment, 2*len(alignments))
	for i, a := range alignments {
		resolved[i] = a
	}
	lookup := func(id int) (*Alignment, error) {
		if id >= 0 {
			return resolved[id], nil
		}
		a, ok := resolved[id]
		if !ok {
			return nil, gcmserr.New(gcmserr.NotFound, "AlignWithTree", fmt.Sprintf("node %d not yet merged", id))
		}
		return a, nil
	}

	var root *Alignment
	for i, n := range tree {
		left, err := lookup(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := lookup(n.Right)
		if err != nil {
			return nil, err
		}
		merged, err := Align(left, right, d, gap)
		if err != nil {
			return nil, err
		}
		resolved[-(i+1)] = merged
		root = merged
	}
	root.FilterMinPeaks(minPeaks)
	return root, nil
}

// GuideTreeDOT renders a UPGMA guide tree as a Graphviz DOT document,
// labelling leaves with their alignment's experiment codes.
func GuideTreeDOT(alignments []*Alignment, tree []TreeNode) ([]byte, error) {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	idFor := make(map[int]int64)

	nodeFor := func(signed int, label string) graph.Node {
		if id, ok := idFor[signed]; ok {
			return g.Node(id)
		}
		id := g.NewNode().ID()
		idFor[signed] = id
		n := gtNode{id: id, label: label}
		g.AddNode(n)
		return n
	}

	for i, a := range alignments {
		label := fmt.Sprintf("leaf-%d", i)
		if len(a.ExprCodes) > 0 {
			label = a.ExprCodes[0]
		}
		nodeFor(i, label)
	}
	for i, n := range tree {
		self := nodeFor(-(i + 1), fmt.Sprintf("node-%d", i+1))
		left := nodeFor(n.Left, "")
		right := nodeFor(n.Right, "")
		g.SetWeightedEdge(gtEdge{f: self, t: left, w: n.Height})
		g.SetWeightedEdge(gtEdge{f: self, t: right, w: n.Height})
	}

	return dot.Marshal(g, "guidetree", "", "\t")
}

type gtNode struct {
	id    int64
	label string
}

func (n gtNode) ID() int64     { return n.id }
func (n gtNode) DOTID() string { return n.label }

type gtEdge struct {
	f, t graph.Node
	w    float64
}

func (e gtEdge) From() graph.Node         { return e.f }
func (e gtEdge) To() graph.Node           { return e.t }
func (e gtEdge) ReversedEdge() graph.Edge { return gtEdge{f: e.t, t: e.f, w: e.w} }
func (e gtEdge) Weight() float64          { return e.w }
func (e gtEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "height", Value: fmt.Sprint(e.w)}}
}
