package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/ecs/entity"
	"github.com/milk9111/jumper/ecs/system"
	"github.com/milk9111/jumper/levels"
	"github.com/milk9111/jumper/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type gameConfig struct {
	Level  string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	cfg   gameConfig
	world *ecs.World

	scripts   *system.ScriptInputSystem
	debugDraw *system.DebugDrawSystem
	watcher   *prefabs.Watcher
}

func NewGame(cfg gameConfig) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		scripts:   system.NewScriptInputSystem(),
		debugDraw: system.NewDebugDrawSystem(),
	}
	g.applyDebugSpec()
	if err := g.loadWorld(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"), "levels")
		if err != nil {
			log.Printf("game: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadWorld builds a fresh world for the configured level.
func (g *Game) loadWorld() error {
	lvl, err := levels.LoadLevelFromFS(g.cfg.Level)
	if err != nil {
		return fmt.Errorf("game: load level %q: %w", g.cfg.Level, err)
	}

	w := ecs.NewWorld()
	w.AddSystem(system.NewInputSystem())
	w.AddSystem(g.scripts)
	w.AddSystem(system.NewPerceptionSystem())
	w.AddSystem(system.NewTraversalSystem(g.cfg.Debug))
	w.AddSystem(system.NewClimbSystem())
	w.AddSystem(system.NewMovementSystem())
	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(system.NewCameraSystem())
	w.AddSystem(g.debugDraw)

	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return fmt.Errorf("game: build level %q: %w", g.cfg.Level, err)
	}
	if g.cfg.Script != "" {
		ecs.ForEach(w, component.AvatarTagComponent.Kind(), func(e ecs.Entity, _ *component.AvatarTag) {
			if err := entity.AttachScript(w, e, g.cfg.Script); err != nil {
				log.Printf("game: entity=%v attach script: %v", e, err)
			}
		})
	}
	g.scripts.Reset()
	g.world = w
	return nil
}

func (g *Game) applyDebugSpec() {
	spec, err := prefabs.LoadDebugSpec()
	if err != nil {
		log.Printf("game: %v", err)
		return
	}
	g.debugDraw.ShowProbes = spec.ShowProbes
	g.debugDraw.ShowMap = spec.ShowMap
	if spec.BoxColor != nil {
		g.debugDraw.BoxColor = spec.BoxColor.Color
	}
}

func (g *Game) Update() error {
	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reloadWorld()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debugDraw.ShowProbes = !g.debugDraw.ShowProbes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.debugDraw.ShowMap = !g.debugDraw.ShowMap
	}

	g.world.Update()
	return nil
}

func (g *Game) reloadWorld() {
	if err := g.loadWorld(); err != nil {
		log.Printf("%v", err)
	}
}

// applyReloads handles the files the watcher reported since the last
// frame without blocking.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	base := filepath.Base(change.Path)
	log.Printf("game: reload %s %s", change.Kind, base)

	switch change.Kind {
	case prefabs.ChangeScript:
		g.scripts.Invalidate(change.Path)
	case prefabs.ChangeLevel:
		g.reloadWorld()
	case prefabs.ChangePrefab:
		switch base {
		case "debug.yaml":
			g.applyDebugSpec()
		case "camera.yaml":
			g.reloadWorld()
		default:
			g.retuneAvatars(base)
		}
	}
}

// retuneAvatars pushes the traversal tuning of prefab into the running
// machines of every avatar built from it.
func (g *Game) retuneAvatars(prefab string) {
	avatars := entity.AvatarsFromPrefab(g.world, prefab)
	if len(avatars) == 0 {
		return
	}
	tuning, err := entity.AvatarTuning(prefab)
	if err != nil {
		log.Printf("game: reload %s: %v", prefab, err)
		return
	}
	for _, e := range avatars {
		if tr, ok := ecs.Get(g.world, e, component.TraversalComponent.Kind()); ok {
			system.ApplyTuning(tr, tuning)
		}
	}
	log.Printf("game: applied %s tuning to %d avatar(s)", prefab, len(avatars))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
