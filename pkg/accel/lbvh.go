// Package accel builds and traverses the linear (Morton-code) bounding
// volume hierarchy over scene triangles.
package accel

import (
	"math/bits"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/wavepath/tracer/pkg/geom"
)

// Node is one element of the flat BVH array. Leaves have Left == -1 and a
// valid TriIndex; internal nodes have Left/Right >= 0 and TriIndex == -1.
// Children and parent are plain integer indices into LBVH.Nodes rather
// than heap pointers, which makes the tree trivially relocatable and safe
// to fill from many goroutines at once via the atomic arrival counters in
// Build.
type Node struct {
	Bounds   geom.Bounds3
	Left     int32
	Right    int32
	Parent   int32
	TriIndex int32
}

func (n Node) IsLeaf() bool { return n.Left < 0 }

// LBVH is the built hierarchy. It borrows the triangle array by index only
// — Tris is the same backing slice the scene view owns.
type LBVH struct {
	Nodes []Node
	Root  int32
	Tris  []geom.Triangle
}

// Build constructs an LBVH over tris using the Morton-code ordered-tree
// algorithm: flat integer-indexed nodes, with a goroutine fan-out for
// Morton-code computation and the bottom-up bounds fill, joined with
// WaitGroup barriers.
func Build(tris []geom.Triangle) *LBVH {
	n := len(tris)
	if n == 0 {
		return &LBVH{Root: -1}
	}
	if n == 1 {
		return &LBVH{
			Nodes: []Node{{Bounds: tris[0].BoundingBox(), Left: -1, Right: -1, Parent: -1, TriIndex: 0}},
			Root:  0,
			Tris:  tris,
		}
	}

	centroidBounds := geom.EmptyBounds()
	for i := range tris {
		centroidBounds = centroidBounds.UnionPoint(tris[i].Centroid())
	}

	codes := computeMortonCodes(tris, centroidBounds)

	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := codes[order[a]], codes[order[b]]
		if ca != cb {
			return ca < cb
		}
		return order[a] < order[b] // stable tie-break on primitive index
	})

	sortedCodes := make([]uint32, n)
	for i, idx := range order {
		sortedCodes[i] = codes[idx]
	}

	nodeCount := 2*n - 1
	nodes := make([]Node, nodeCount)
	leafBase := int32(n - 1)

	for i := int32(0); i < int32(n); i++ {
		triIdx := order[i]
		nodes[leafBase+i] = Node{
			Bounds:   tris[triIdx].BoundingBox(),
			Left:     -1,
			Right:    -1,
			Parent:   -1,
			TriIndex: triIdx,
		}
	}
	for i := int32(0); i < leafBase; i++ {
		nodes[i].Parent = -1
		nodes[i].TriIndex = -1
	}

	level := make([]int, n)
	level[0] = 1 << 30 // sentinel, larger than any real common-prefix length
	for i := 1; i < n; i++ {
		level[i] = bits.LeadingZeros32(sortedCodes[i-1] ^ sortedCodes[i])
	}

	for i := 1; i < n; i++ {
		j := i - 1
		k := 0
		if level[j] == level[i] && j > 0 {
			k = j
			j--
		}
		for j > 0 && level[j] > level[i] {
			if level[k] > level[j] {
				k = j
			}
			j--
		}
		var childA int32
		if k == 0 {
			childA = leafBase + int32(i-1)
		} else {
			childA = int32(k - 1)
		}
		nodes[childA].Parent = int32(i - 1)

		j = i + 1
		k = 0
		for j < n && level[j] > level[i] {
			if level[k] >= level[j] {
				k = j
			}
			j++
		}
		var childB int32
		if k == 0 {
			childB = leafBase + int32(i)
		} else {
			childB = int32(k - 1)
		}
		nodes[childB].Parent = int32(i - 1)

		nodes[i-1].Left = childA
		nodes[i-1].Right = childB
	}

	fillBoundsBottomUp(nodes, leafBase, n)

	p := nodes[leafBase].Parent
	for nodes[p].Parent != -1 {
		p = nodes[p].Parent
	}

	return &LBVH{Nodes: nodes, Root: p, Tris: tris}
}

func computeMortonCodes(tris []geom.Triangle, centroidBounds geom.Bounds3) []uint32 {
	n := len(tris)
	codes := make([]uint32, n)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				c := tris[i].Centroid()
				x := quantize(c.X, centroidBounds.Min.X, centroidBounds.Max.X)
				y := quantize(c.Y, centroidBounds.Min.Y, centroidBounds.Max.Y)
				z := quantize(c.Z, centroidBounds.Min.Z, centroidBounds.Max.Z)
				codes[i] = mortonCode3(x, y, z)
			}
		}(start, end)
	}
	wg.Wait()
	return codes
}

// fillBoundsBottomUp implements the two-pass arrival-counter algorithm:
// the first leaf to reach an internal node returns (its sibling isn't
// ready yet); the second computes the union and continues toward the
// root. One goroutine per leaf, synchronised purely through the atomic
// counters — no locks, no shared mutable state beyond Bounds/flag.
func fillBoundsBottomUp(nodes []Node, leafBase int32, n int) {
	flag := make([]int32, leafBase)
	var wg sync.WaitGroup
	for i := int32(0); i < int32(n); i++ {
		leaf := leafBase + i
		wg.Add(1)
		go func(leaf int32) {
			defer wg.Done()
			p := nodes[leaf].Parent
			for p != -1 {
				if atomic.AddInt32(&flag[p], 1) == 1 {
					return
				}
				nodes[p].Bounds = nodes[nodes[p].Left].Bounds.Union(nodes[nodes[p].Right].Bounds)
				p = nodes[p].Parent
			}
		}(leaf)
	}
	wg.Wait()
}
