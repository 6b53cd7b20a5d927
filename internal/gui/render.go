package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/fabiuuh12/Physics-and-Programming/internal/scene"
	"github.com/fabiuuh12/Physics-and-Programming/internal/vec"
)

func toVector3(v vec.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func fromVector3(v rl.Vector3) vec.Vec3 {
	return vec.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func toColor(c scene.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// drawScene renders the frame's DrawList inside one 3D mode block.
// The list is world-space; raylib handles depth.
func (a *App) drawScene() {
	var list scene.DrawList
	a.scn.Draw(&list)

	rl.BeginMode3D(a.rlCam)

	a.drawGrid(20, 1.0)

	for _, l := range list.Lines {
		rl.DrawLine3D(toVector3(l.A), toVector3(l.B), toColor(l.Color))
	}
	for _, p := range list.Points {
		rl.DrawPoint3D(toVector3(p.Pos), toColor(p.Color))
	}
	for _, s := range list.Spheres {
		rl.DrawSphere(toVector3(s.Center), float32(s.Radius), toColor(s.Color))
	}

	rl.EndMode3D()
}

func (a *App) drawGrid(slices int, spacing float32) {
	halfSize := float32(slices) * spacing / 2
	for i := -slices / 2; i <= slices/2; i++ {
		pos := float32(i) * spacing
		rl.DrawLine3D(rl.NewVector3(pos, 0, -halfSize), rl.NewVector3(pos, 0, halfSize), ColGrid)
		rl.DrawLine3D(rl.NewVector3(-halfSize, 0, pos), rl.NewVector3(halfSize, 0, pos), ColGrid)
	}
}
