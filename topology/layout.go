package topology

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// coordScale divides the record coordinates into world units.
	coordScale = 5
	// offsetX recenters the horizontal axis.
	offsetX = -300
	// heightRange is the spread of the random node heights.
	heightRange = 100
	// labelOffset shifts each label off its node on every axis.
	labelOffset = -10
)

// Node is a placed record.
type Node struct {
	Record        Record
	Position      mgl32.Vec3
	Label         string
	LabelPosition mgl32.Vec3
}

// Edge joins two nodes by index. From is the link target, To the record owning the link.
type Edge struct {
	From int
	To   int
}

// Layout is a topology placed in world space.
type Layout struct {
	Nodes []Node
	Edges []Edge
	// Unresolved counts links whose target is not in the snapshot.
	Unresolved int
}

type layoutConfig struct {
	random func() float64
}

// LayoutBuilderOption is a functional option for configuring Arrange.
type LayoutBuilderOption func(*layoutConfig)

// WithRandom replaces the height source. It must return values in [0, 1).
//
// Parameters:
//   - random: the height source
//
// Returns:
//   - LayoutBuilderOption: a function that sets the height source
func WithRandom(random func() float64) LayoutBuilderOption {
	return func(c *layoutConfig) {
		c.random = random
	}
}

// Arrange places every record and resolves its links. A record at (x, y) lands at
// (x/5 - 300, random*100, y/5) with its label 10 units below on every axis.
//
// Parameters:
//   - t: the snapshot
//   - options: builder options
//
// Returns:
//   - Layout: the placed nodes and edges
func Arrange(t *Topology, options ...LayoutBuilderOption) Layout {
	cfg := layoutConfig{random: rand.Float64}
	for _, opt := range options {
		opt(&cfg)
	}

	out := Layout{Nodes: make([]Node, len(t.Records))}
	for i, r := range t.Records {
		pos := mgl32.Vec3{
			float32(r.X)/coordScale + offsetX,
			float32(cfg.random() * heightRange),
			float32(r.Y) / coordScale,
		}
		out.Nodes[i] = Node{
			Record:        r,
			Position:      pos,
			Label:         r.Label(),
			LabelPosition: pos.Add(mgl32.Vec3{labelOffset, labelOffset, labelOffset}),
		}
	}

	idx := t.Index()
	for i, r := range t.Records {
		for _, l := range r.Links {
			target := l.Target()
			j, ok := idx[target]
			if !ok || target == "" {
				out.Unresolved++
				continue
			}
			out.Edges = append(out.Edges, Edge{From: j, To: i})
		}
	}
	return out
}

// Stats summarizes a layout for reporting.
type Stats struct {
	Nodes      int
	Edges      int
	Unresolved int
	Clouds     int
	Min        mgl32.Vec3
	Max        mgl32.Vec3
}

// Summarize counts the layout's nodes and edges and measures its bounding box.
//
// Parameters:
//   - l: the layout
//
// Returns:
//   - Stats: the summary
func Summarize(l Layout) Stats {
	s := Stats{Nodes: len(l.Nodes), Edges: len(l.Edges), Unresolved: l.Unresolved}
	for i, n := range l.Nodes {
		if n.Record.IP == "" {
			s.Clouds++
		}
		if i == 0 {
			s.Min, s.Max = n.Position, n.Position
			continue
		}
		for k := range 3 {
			s.Min[k] = min(s.Min[k], n.Position[k])
			s.Max[k] = max(s.Max[k], n.Position[k])
		}
	}
	return s
}
