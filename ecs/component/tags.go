package component

// Controlled entities are driven by player input through a state machine.
type Controlled struct{}

var ControlledComponent = NewComponent[Controlled]()

// StartStateMachine marks a machine that has not been started yet. The tag is
// removed once the machine runs.
type StartStateMachine struct{}

var StartStateMachineComponent = NewComponent[StartStateMachine]()

// SnapCamera entities drag the camera to their position.
type SnapCamera struct{}

var SnapCameraComponent = NewComponent[SnapCamera]()

// ChaseCamera entities are moved to the camera location, e.g. backgrounds.
type ChaseCamera struct{}

var ChaseCameraComponent = NewComponent[ChaseCamera]()
