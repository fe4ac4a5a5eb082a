package system

import (
	"github.com/milk9111/robotgrabber/common"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
)

type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		name, ok := clipForEvent(evt)
		if !ok {
			continue
		}
		if audioComp, ok := ecs.GetPtr(w, evt.Entity, component.AudioComponent); ok {
			audioComp.Request(name)
		}
	}

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Play)
		if len(audioComp.Players) < count {
			count = len(audioComp.Players)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil {
				if i < len(audioComp.Volume) {
					player.SetVolume(common.Clamp(audioComp.Volume[i], 0, 1))
				}
				if !player.IsPlaying() {
					_ = player.Rewind()
					player.Play()
				}
			}

			audioComp.Play[i] = false
		}
	})
}

// clipForEvent maps a grab loop event to the clip it triggers. The grab clip
// is requested directly by the robot when a tether connects.
func clipForEvent(evt ecs.Event) (string, bool) {
	switch evt.Kind {
	case ecs.EventReleased:
		if evt.Force.X == 0 && evt.Force.Y == 0 {
			return "", false
		}
		return "throw", true
	case ecs.EventGrounded:
		return "land", true
	}
	return "", false
}
