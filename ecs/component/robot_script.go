package component

// RobotScript names the tengo script that drives an idle robot.
type RobotScript struct {
	Path   string
	Params map[string]any
	Frame  int
}

var RobotScriptComponent = NewComponent[RobotScript]()
