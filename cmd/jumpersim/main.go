// Command jumpersim steps a level headlessly with scripted avatars and
// logs every traversal transition.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/ecs/entity"
	"github.com/milk9111/jumper/ecs/system"
	"github.com/milk9111/jumper/levels"
	"github.com/milk9111/jumper/traversal"
)

func main() {
	levelName := flag.String("level", "tower", "level name in levels/ (basename, .json optional)")
	script := flag.String("script", "ledge_climb.tengo", "script from prefabs/scripts driving every avatar")
	frames := flag.Int("frames", 600, "number of fixed steps to run")
	expect := flag.String("expect", "", "comma separated states every avatar must reach, e.g. hanging,climbing")
	list := flag.Bool("list", false, "print the embedded level names and exit")
	flag.Parse()

	if *list {
		for _, name := range levels.Names() {
			fmt.Println(name)
		}
		return
	}

	want, err := parseStates(*expect)
	if err != nil {
		log.Fatal(err)
	}

	w, rec, err := newSimWorld(*levelName, *script)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < *frames; i++ {
		w.Update()
	}

	missing := rec.missing(w, want)
	for _, line := range rec.summary(w) {
		log.Print(line)
	}
	if len(missing) > 0 {
		log.Printf("jumpersim: %s", strings.Join(missing, "; "))
		os.Exit(1)
	}
}

func newSimWorld(levelName, script string) (*ecs.World, *transitionRecorder, error) {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, nil, err
	}

	rec := newTransitionRecorder()
	w := ecs.NewWorld()
	w.AddSystem(system.NewScriptInputSystem())
	w.AddSystem(system.NewPerceptionSystem())
	w.AddSystem(system.NewTraversalSystem(false))
	w.AddSystem(system.NewClimbSystem())
	w.AddSystem(system.NewMovementSystem())
	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(rec)

	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return nil, nil, err
	}
	var avatars []ecs.Entity
	ecs.ForEach(w, component.AvatarTagComponent.Kind(), func(e ecs.Entity, _ *component.AvatarTag) {
		avatars = append(avatars, e)
	})
	if len(avatars) == 0 {
		e, err := entity.NewAvatar(w)
		if err != nil {
			return nil, nil, fmt.Errorf("jumpersim: spawn avatar: %w", err)
		}
		avatars = append(avatars, e)
	}
	if script != "" {
		for _, e := range avatars {
			if err := entity.AttachScript(w, e, script); err != nil {
				return nil, nil, fmt.Errorf("jumpersim: entity=%v attach script: %w", e, err)
			}
		}
	}
	return w, rec, nil
}

func parseStates(list string) ([]traversal.AvatarState, error) {
	var out []traversal.AvatarState
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		state, ok := traversal.ParseAvatarState(name)
		if !ok {
			return nil, fmt.Errorf("jumpersim: unknown state %q", name)
		}
		out = append(out, state)
	}
	return out, nil
}
