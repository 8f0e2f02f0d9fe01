package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
)

// InputSystem writes keyboard and gamepad state into every Input that is
// not script driven.
// Jump and Crouch are held flags; the traversal dispatcher finds the edges.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	away := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	toward := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	crouch := ebiten.IsKeyPressed(ebiten.KeyC) || ebiten.IsKeyPressed(ebiten.KeyControlLeft)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}
	moveY := 0.0
	if away {
		moveY += 1
	}
	if toward {
		moveY -= 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(leftX, leftY) > stickDeadzone {
			moveX = leftX
			moveY = -leftY
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		crouch = crouch || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		if ecs.Has(w, e, component.ScriptInputComponent.Kind()) {
			return
		}
		input.MoveX = moveX
		input.MoveY = moveY
		input.Jump = jump
		input.Crouch = crouch
	})
}
