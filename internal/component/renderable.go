package component

import (
	"tesla-tower/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CRenderable ecs.ComponentType = 3

// Renderable tells the terminal renderer how to draw an entity. Higher
// RenderOrder draws on top.
type Renderable struct {
	Glyph       string
	FGColor     tcell.Color
	RenderOrder int
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
