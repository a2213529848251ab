package app

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/Carmen-Shannon/topo3d/engine/game_object"
	"github.com/Carmen-Shannon/topo3d/engine/renderer/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	gridSize      = 2000
	gridDivisions = 100
	gridHeight    = -3
	groundHeight  = -4
)

// axesOrigin is where the world axis helper is drawn.
var axesOrigin = mgl32.Vec3{-500, -500, -500}

func (v *viewer) Draw(batch *mesh.Batch) {
	batch.Reset()

	ground := mgl32.Translate3D(0, groundHeight, 0)
	batch.Box(ground, mgl32.Vec3{gridSize / 2, 0.01, gridSize / 2}, groundColor)
	batch.Grid(gridSize, gridDivisions, gridHeight, gridCenter, gridLines)
	batch.Axes(axesOrigin, axesLength)

	var hovered, selected controls.Target
	if v.drag != nil {
		hovered = v.drag.Hovered()
	}
	if v.transform != nil {
		selected = v.transform.Object()
	}

	for _, n := range v.nodes {
		if !n.Enabled() {
			continue
		}
		batch.Box(n.WorldMatrix(), n.HalfExtents(), v.nodeColor(n, hovered, selected))
	}

	for _, e := range v.layout.Edges {
		batch.Line(v.nodes[e.From].WorldPosition(), v.nodes[e.To].WorldPosition(), edgeColor)
	}

	if v.labels != nil {
		for _, l := range v.labels.Children() {
			if l.Enabled() && l.Shape() == game_object.ShapeMarker {
				batch.Marker(l.WorldPosition(), markerSize, l.Color())
			}
		}
	}

	if v.transform != nil && v.transform.Visible() {
		for _, s := range v.transform.Gizmo().Handles() {
			batch.OverlayLine(s.From, s.To, s.Color)
		}
	}
}

func (v *viewer) nodeColor(n game_object.GameObject, hovered, selected controls.Target) common.Color {
	switch controls.Target(n) {
	case selected:
		return selectedColor
	case hovered:
		return hoverColor
	}
	return n.Color()
}
