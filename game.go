package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/robotgrabber/common"
	"github.com/milk9111/robotgrabber/ecs"
	"github.com/milk9111/robotgrabber/ecs/component"
	"github.com/milk9111/robotgrabber/ecs/entity"
	"github.com/milk9111/robotgrabber/ecs/system"
	"github.com/milk9111/robotgrabber/physics"
	"github.com/milk9111/robotgrabber/prefabs"
	"golang.org/x/image/colornames"
)

type gameOptions struct {
	debug      bool
	forceTouch bool
	robots     int
}

type Game struct {
	frames int
	debug  bool
	paused bool
	cursor ebiten.CursorModeType

	world      *ecs.World
	scheduler  *ecs.Scheduler
	space      *physics.Space
	grabber    *system.GrabberSystem
	scripts    *system.RobotScriptSystem
	background color.Color

	watcher *prefabs.Watcher
	hud     *HUD
}

func NewGame(opts gameOptions) (*Game, error) {
	ws, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	gs, err := prefabs.LoadGrabberSpec()
	if err != nil {
		return nil, err
	}
	rs, err := prefabs.LoadRobotSpec()
	if err != nil {
		return nil, err
	}
	if opts.robots > 0 {
		ws.Spawns = resizeSpawns(ws.Spawns, opts.robots)
	}

	world := ecs.NewWorld()
	if err := entity.BuildWorld(world, ws, gs, rs, entity.Options{}); err != nil {
		return nil, err
	}

	space := physics.NewSpace(entity.PhysicsConfig(ws, gs))
	grabber := system.NewGrabberSystem(space, entity.GrabConfig(gs))
	scripts := system.NewRobotScriptSystem(space)

	g := &Game{
		debug:      opts.debug,
		world:      world,
		space:      space,
		grabber:    grabber,
		scripts:    scripts,
		background: ws.Background.Or(colornames.Black),
	}
	g.scheduler = ecs.NewScheduler(
		system.NewPointerSystem(opts.forceTouch),
		grabber,
		scripts,
		system.NewRobotSystem(space),
		system.NewPhysicsSystem(space),
		system.NewShadowSystem(space),
		system.NewAudioSystem(),
		system.NewRenderSystem(),
	)
	g.hud = NewHUD(g)

	if opts.debug {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.reloadPrefabs()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	g.hud.Update(g.world, g.paused)
	if g.paused {
		return nil
	}

	g.scheduler.Update(g.world)
	g.syncCursor()
	return nil
}

// syncCursor shows the OS cursor only while the grabber sprite is not
// standing in for it.
func (g *Game) syncCursor() {
	e, ok := g.world.First(component.GrabberComponent.Kind())
	if !ok {
		return
	}
	view, _ := ecs.Get(g.world, e, component.GrabberComponent)
	mode := ebiten.CursorModeHidden
	if view.CursorVisible {
		mode = ebiten.CursorModeVisible
	}
	if mode != g.cursor {
		ebiten.SetCursorMode(mode)
		g.cursor = mode
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.scheduler.Draw(g.world, screen)
	g.hud.Draw(screen, g.paused)

	if g.debug {
		system.DrawPhysicsDebug(g.space, g.grabber.Controller().Config(), g.world, screen)
		system.DrawGrabDebug(g.grabber.Controller(), g.world, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Tethers: %d", g.frames, ebiten.ActualFPS(), g.space.Tethers().Len()), 8, common.BaseHeight-20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// reloadPrefabs applies edits picked up by the watcher. Grabber tuning and
// scripts apply live; other prefabs need a restart.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("prefab watcher: %v", err)
	default:
	}

	for _, change := range g.watcher.Poll() {
		switch {
		case change.Script:
			g.scripts.Reload(change.Name)
			log.Printf("reloaded script %s", change.Name)
		case change.Name == prefabs.GrabberFile:
			spec, err := prefabs.LoadGrabberSpec()
			if err != nil {
				log.Printf("reload %s: %v", change.Name, err)
				continue
			}
			g.grabber.SetConfig(entity.GrabConfig(spec))
			log.Printf("reloaded %s", change.Name)
		default:
			log.Printf("%s changed; restart to apply", change.Name)
		}
	}
}

// resizeSpawns trims the spawn list to n or pads it with stock robots laid
// out on a grid.
func resizeSpawns(spawns []prefabs.EntityBuildSpec, n int) []prefabs.EntityBuildSpec {
	if n <= len(spawns) {
		return spawns[:n]
	}
	out := append([]prefabs.EntityBuildSpec(nil), spawns...)
	const cols = 6
	for i := len(spawns); i < n; i++ {
		x := float64(i%cols)*3 - 7.5
		y := -float64(i/cols)*2.5 + 2
		out = append(out, prefabs.EntityBuildSpec{
			Name:   fmt.Sprintf("robot_%d", i),
			Prefab: prefabs.RobotFile,
			Components: map[string]any{
				"transform": map[string]any{"x": x, "y": y},
			},
		})
	}
	return out
}
