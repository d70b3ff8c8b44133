// Package views bridges the HUD core's markup contract to the templ
// components: the core hands over a render context and gets back a string.
package views

import (
	"bytes"
	"context"

	"tokenhud/internal/hud"
	"tokenhud/views/components"
)

// Renderer implements hud.Renderer with the templ components.
type Renderer struct{}

// RenderPanel produces the main HUD panel markup.
func (Renderer) RenderPanel(ctx context.Context, rc *hud.RenderContext) (string, error) {
	var buf bytes.Buffer
	if err := components.HudPanel(rc).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderSidebar produces the named sidebar panel markup.
func (Renderer) RenderSidebar(ctx context.Context, rc *hud.RenderContext, name string) (string, error) {
	var buf bytes.Buffer
	if err := components.SidebarPanel(rc, name).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
