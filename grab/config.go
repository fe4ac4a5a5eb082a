package grab

import "github.com/milk9111/robotgrabber/physics"

// InputModality selects per-device tuning such as the tether rest distance.
type InputModality int

const (
	ModalityMouse InputModality = iota
	ModalityTouch
)

func (m InputModality) String() string {
	switch m {
	case ModalityTouch:
		return "touch"
	default:
		return "mouse"
	}
}

// Config tunes the controller.
type Config struct {
	GrabRadius          float64
	MouseTetherDistance float64
	TouchTetherDistance float64
	ForceMultiplier     float64
	// HUDExclusionY ignores presses at or above this world y so taps on
	// overlay controls never grab an actor underneath them.
	HUDExclusionY float64
	// DeadZoneFactor zeroes throws whose squared displacement is at or below
	// DeadZoneFactor * rest distance squared.
	DeadZoneFactor float64
	RequiredTag    string

	GrabbableLayer physics.Layer
	GrabbedLayer   physics.Layer
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		GrabRadius:          10,
		MouseTetherDistance: 0.1,
		TouchTetherDistance: 1,
		ForceMultiplier:     2,
		HUDExclusionY:       7,
		DeadZoneFactor:      2,
		RequiredTag:         "robot",
		GrabbableLayer:      physics.LayerGrabbable,
		GrabbedLayer:        physics.LayerGrabbed,
	}
}

// RestDistance returns the tether length for a modality.
func (c Config) RestDistance(m InputModality) float64 {
	if m == ModalityTouch {
		return c.TouchTetherDistance
	}
	return c.MouseTetherDistance
}
