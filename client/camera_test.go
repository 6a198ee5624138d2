// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"github.com/SoftbearStudios/tileworld/terrain"
	"github.com/SoftbearStudios/tileworld/world"
	"github.com/chewxy/math32"
	"testing"
)

func approxVec(a, b world.Vec2f) bool {
	return math32.Abs(a.X-b.X) < 1e-3 && math32.Abs(a.Y-b.Y) < 1e-3
}

func TestCamera_ZoomAnchor(t *testing.T) {
	c := terrain.DefaultConfig()
	cam := NewCamera(&c)
	cursor := world.Vec2f{X: 100, Y: 100}

	for _, direction := range []float32{1, 1, -1, 1, -1, -1, -1} {
		before := cam.ScreenToWorld(cursor)
		cam.ZoomAt(cursor, direction)
		if after := cam.ScreenToWorld(cursor); !approxVec(before, after) {
			t.Fatalf("zoom %v moved the cursor from %s to %s", direction, before, after)
		}
	}

	cam = NewCamera(&c)
	cam.ZoomAt(cursor, 1)
	if got := cam.Scale(); math32.Abs(got-1.05) > 1e-6 {
		t.Errorf("expected scale 1.05, got %v", got)
	}
}

func TestCamera_ScaleBounds(t *testing.T) {
	c := terrain.DefaultConfig()
	cam := NewCamera(&c)

	for i := 0; i < 1000; i++ {
		cam.ZoomAt(world.Vec2f{}, 1)
	}
	if cam.Scale() != float32(c.MaxScale) {
		t.Errorf("expected max scale, got %v", cam.Scale())
	}
	for i := 0; i < 1000; i++ {
		cam.ZoomAt(world.Vec2f{}, -1)
	}
	if cam.Scale() != float32(c.MinScale) {
		t.Errorf("expected min scale, got %v", cam.Scale())
	}
}

func TestCamera_Inverse(t *testing.T) {
	c := terrain.DefaultConfig()
	cam := NewCamera(&c)
	cam.Position = world.Vec2f{X: -37, Y: 512}
	cam.SetScale(2.5)

	for _, p := range []world.Vec2f{{}, {X: 10, Y: -4}, {X: 1280, Y: 720}} {
		if got := cam.ScreenToWorld(cam.WorldToScreen(p)); !approxVec(got, p) {
			t.Errorf("round trip of %s gave %s", p, got)
		}
	}

	if got := cam.WorldToScreen(world.Vec2f{X: -37, Y: 512}); !approxVec(got, world.Vec2f{}) {
		t.Errorf("position should map to the origin, got %s", got)
	}
}

func TestCamera_EdgePan(t *testing.T) {
	c := terrain.DefaultConfig()
	cam := NewCamera(&c)

	tests := []struct {
		cursor world.Vec2f
		want   world.Vec2f
	}{
		{world.Vec2f{X: 640, Y: 360}, world.Vec2f{}},
		{world.Vec2f{X: 10, Y: 360}, world.Vec2f{X: -1}},
		{world.Vec2f{X: 1275, Y: 360}, world.Vec2f{X: 1}},
		{world.Vec2f{X: 640, Y: 5}, world.Vec2f{Y: -1}},
		{world.Vec2f{X: 1275, Y: 715}, world.Vec2f{X: 1, Y: 1}},
	}

	for _, test := range tests {
		cam.Position = world.Vec2f{}
		cam.SetScale(1)
		cam.EdgePan(test.cursor)
		if !approxVec(cam.Position, test.want) {
			t.Errorf("cursor %s panned to %s, want %s", test.cursor, cam.Position, test.want)
		}
	}

	// The world moves less when zoomed in.
	cam.Position = world.Vec2f{}
	cam.SetScale(4)
	cam.EdgePan(world.Vec2f{X: 0, Y: 360})
	if !approxVec(cam.Position, world.Vec2f{X: -0.25}) {
		t.Errorf("expected -0.25, got %s", cam.Position)
	}
}

func TestCamera_Viewport(t *testing.T) {
	c := terrain.DefaultConfig()
	cam := NewCamera(&c)
	cam.Position = world.Vec2f{X: 8, Y: 16}
	cam.SetScale(2)

	v := cam.Viewport()
	if !approxVec(v.Vec2f, cam.Position) || v.Width != 640 || v.Height != 360 {
		t.Errorf("unexpected viewport %+v", v)
	}

	if !cam.RectIntersectsViewport(world.AABBFrom(-5, -5, 10, 10)) {
		t.Error("rect over the corner should be visible")
	}
	if cam.RectIntersectsViewport(world.AABBFrom(1280, 0, 10, 10)) {
		t.Error("rect touching the right edge should not be visible")
	}
}
