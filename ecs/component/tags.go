package component

type RobotTag struct{}

var RobotTagComponent = NewComponent[RobotTag]()

type GrabberTag struct{}

var GrabberTagComponent = NewComponent[GrabberTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
