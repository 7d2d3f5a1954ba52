package system

import (
	"github.com/milk9111/tilecore/common"
	"github.com/milk9111/tilecore/ecs"
	"github.com/milk9111/tilecore/ecs/component"
)

// CameraSnapSystem centers the camera on SnapCamera entities. With several,
// the last one visited wins.
type CameraSnapSystem struct{}

func NewCameraSnapSystem() *CameraSnapSystem {
	return &CameraSnapSystem{}
}

func (s *CameraSnapSystem) Update(w *ecs.World) {
	cam, ok := ecs.Resource(w, component.CameraResource.Kind())
	if !ok {
		return
	}
	ecs.ForEach2(w, component.SnapCameraComponent.Kind(), component.PositionComponent.Kind(),
		func(_ ecs.Entity, _ *component.SnapCamera, p *component.Position) {
			cam.Location = common.Vector{X: p.X, Y: p.Y}
		})
}

// ChaseCameraSystem pins ChaseCamera entities to the camera location.
type ChaseCameraSystem struct{}

func NewChaseCameraSystem() *ChaseCameraSystem {
	return &ChaseCameraSystem{}
}

func (s *ChaseCameraSystem) Update(w *ecs.World) {
	cam, ok := ecs.Resource(w, component.CameraResource.Kind())
	if !ok {
		return
	}
	ecs.ForEach2(w, component.ChaseCameraComponent.Kind(), component.PositionComponent.Kind(),
		func(_ ecs.Entity, _ *component.ChaseCamera, p *component.Position) {
			p.X, p.Y = cam.Location.X, cam.Location.Y
		})
}
