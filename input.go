package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skyhop/obj"
)

// keyBindings maps physical keys to game keys. Arrows and space are the
// primary controls.
var keyBindings = map[obj.Key][]ebiten.Key{
	obj.KeyLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	obj.KeyRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	obj.KeyJump:  {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
}

// keyboard samples ebiten key state once per tick and forwards the edges.
type keyboard struct {
	edges obj.KeyEdges
}

func (kb *keyboard) Poll(in *obj.Input) {
	for _, k := range []obj.Key{obj.KeyLeft, obj.KeyRight, obj.KeyJump} {
		kb.edges.Set(in, k, isDown(k))
	}
}

// Reset forgets held keys after a restart. A jump key still down from
// dismissing the game-over message must be released before it jumps.
func (kb *keyboard) Reset() {
	kb.edges.Reset()
	kb.edges.Hold(obj.KeyJump, isDown(obj.KeyJump))
}

func isDown(k obj.Key) bool {
	for _, key := range keyBindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
