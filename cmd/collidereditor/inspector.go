package main

import (
	"fmt"
	gomath "math"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-collide/internal/engine/ui"
	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/physics/collider"
	"github.com/Faultbox/midgard-collide/internal/scene"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Slider ranges for the inspector.
const (
	positionRange = 500
	sizeMax       = 500
	scaleMin      = 0.01
	scaleMax      = 20
)

// renderSceneTree renders node creation controls and the node hierarchy.
func (app *App) renderSceneTree() {
	imgui.SetNextItemWidth(-1)
	imgui.InputTextWithHint("##newnode", "Node name...", &app.newNodeName, 0, nil)

	if imgui.Button("Add Root") {
		app.addNode("")
	}
	imgui.SameLine()
	imgui.BeginDisabledV(app.selectedNode == nil)
	if imgui.Button("Add Child") {
		app.addNode(app.selectedNode.Name)
	}
	imgui.EndDisabled()
	imgui.Separator()

	for _, root := range app.scene.Roots() {
		app.renderNode(root)
	}
}

func (app *App) renderNode(n *scene.Node) {
	flags := imgui.TreeNodeFlagsOpenOnArrow | imgui.TreeNodeFlagsSpanAvailWidth | imgui.TreeNodeFlagsDefaultOpen
	if n == app.selectedNode && app.selectedCollider == nil {
		flags |= imgui.TreeNodeFlagsSelected
	}
	if len(n.Children()) == 0 && len(n.Colliders()) == 0 {
		flags |= imgui.TreeNodeFlagsLeaf
	}

	open := imgui.TreeNodeExStrV(n.Name, flags)
	if imgui.IsItemClicked() {
		app.selectedNode = n
		app.selectedCollider = nil
	}
	if !open {
		return
	}

	for i, c := range n.Colliders() {
		cflags := imgui.TreeNodeFlagsLeaf | imgui.TreeNodeFlagsNoTreePushOnOpen | imgui.TreeNodeFlagsSpanAvailWidth
		if c == app.selectedCollider {
			cflags |= imgui.TreeNodeFlagsSelected
		}
		label := fmt.Sprintf("[%s] #%d", c.Kind(), i)
		if c.IsTrigger() {
			label += " (trigger)"
		}
		imgui.TreeNodeExStrV(label+"##"+c.ID().String(), cflags)
		if imgui.IsItemClicked() {
			app.selectedNode = n
			app.selectedCollider = c
		}
	}
	for _, child := range n.Children() {
		app.renderNode(child)
	}
	imgui.TreePop()
}

func (app *App) addNode(parent string) {
	n, err := app.scene.AddNode(app.newNodeName, parent)
	if err != nil {
		app.showNotification(err.Error())
		return
	}
	app.scene.UpdateTransforms()
	app.selectedNode = n
	app.selectedCollider = nil
	app.newNodeName = ""
	app.markDirty()
}

// renderInspector edits the selected node and collider.
func (app *App) renderInspector() {
	n := app.selectedNode
	if n == nil {
		imgui.TextDisabled("Select a node or click a collider")
		return
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Node "+n.Name, imgui.TreeNodeFlagsDefaultOpen) {
		app.renderNodeTransform(n)

		imgui.Spacing()
		imgui.Text("Add collider:")
		for _, kind := range []collider.Kind{collider.KindBox, collider.KindSphere, collider.KindCapsule} {
			imgui.SameLine()
			if imgui.Button(string(kind)) {
				c, err := app.scene.AddCollider(n, kind)
				if err != nil {
					app.showNotification(err.Error())
					continue
				}
				app.selectedCollider = c
				app.markDirty()
			}
		}
	}

	if app.selectedCollider != nil {
		imgui.Spacing()
		if imgui.CollapsingHeaderTreeNodeFlagsV("Collider", imgui.TreeNodeFlagsDefaultOpen) {
			app.renderColliderProperties(app.selectedCollider)
		}
	}
}

func (app *App) renderNodeTransform(n *scene.Node) {
	changed := false
	if ui.SliderVec3("Position", &n.Position, -positionRange, positionRange) {
		changed = true
	}

	euler := app.eulerDegrees[n]
	if ui.SliderVec3("Rotation", &euler, -180, 180) {
		app.eulerDegrees[n] = euler
		n.Rotation = rotationFromEuler(euler)
		changed = true
	}

	if ui.SliderVec3("Scale", &n.Scale, scaleMin, scaleMax) {
		changed = true
	}

	if changed {
		app.scene.UpdateTransforms()
		app.markDirty()
	}

	world := n.World()
	ui.Vec3Text("World position", world.Translation)
	ui.Vec3Text("World scale", n.WorldScale())
}

// renderColliderProperties edits c through its serialized properties so the
// editor goes through the same path as scene loading.
func (app *App) renderColliderProperties(c collider.Shape) {
	imgui.Text(fmt.Sprintf("Type: %s", c.Kind()))
	imgui.TextDisabled(c.ID().String())

	p := c.Properties(nil)
	changed := false

	if p.Center != nil && ui.SliderVec3("Center", p.Center, -positionRange, positionRange) {
		changed = true
	}
	if p.IsTrigger != nil && imgui.Checkbox("Trigger", p.IsTrigger) {
		changed = true
	}
	imgui.SameLine()
	if p.IsStatic != nil && imgui.Checkbox("Static", p.IsStatic) {
		changed = true
	}
	if p.Size != nil && ui.SliderVec3("Size", p.Size, 0, sizeMax) {
		changed = true
	}
	if p.Radius != nil && ui.SliderFloat("Radius", p.Radius, 0, sizeMax/2) {
		changed = true
	}
	if p.Height != nil && ui.SliderFloat("Height", p.Height, 0, sizeMax) {
		changed = true
	}

	if changed {
		c.ApplyProperties(p)
		app.markDirty()
		logger.Debug("collider edited", zap.Stringer("id", c.ID()), zap.Uint64("revision", c.Revision()))
	}

	imgui.Separator()
	box := c.BoundingBox()
	sphere := c.BoundingSphere()
	ui.Vec3Text("AABB min", box.Min)
	ui.Vec3Text("AABB max", box.Max)
	ui.Vec3Text("Sphere center", sphere.Center)
	imgui.Text(fmt.Sprintf("Sphere radius: %.3f", sphere.Radius))
	imgui.Text(fmt.Sprintf("Geometry: %s", c.GetGeometry()))
	imgui.Text(fmt.Sprintf("Handle: %d  Revision: %d", c.Handle(), c.Revision()))

	imgui.Spacing()
	if imgui.Button("Remove Collider") {
		app.removeSelectedCollider()
	}
}

func (app *App) removeSelectedCollider() {
	if app.selectedNode == nil || app.selectedCollider == nil {
		return
	}
	if app.scene.RemoveCollider(app.selectedNode, app.selectedCollider) {
		app.selectedCollider = nil
		app.markDirty()
	}
}

// rotationFromEuler builds a rotation from pitch (X), yaw (Y) and roll (Z)
// in degrees, applied roll first and yaw last.
func rotationFromEuler(deg math.Vec3) math.Quat {
	toRad := func(d float32) float32 { return d * gomath.Pi / 180 }
	yaw := math.QuatFromAxisAngle(math.Vec3{Y: 1}, toRad(deg.Y))
	pitch := math.QuatFromAxisAngle(math.Vec3{X: 1}, toRad(deg.X))
	roll := math.QuatFromAxisAngle(math.Vec3{Z: 1}, toRad(deg.Z))
	return yaw.Mul(pitch).Mul(roll).Normalize()
}
