package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate; physics steps once per update.
	TPS       = 60
	PhysicsDT = 1.0 / TPS
)
