package hud

import (
	"context"

	"tokenhud/internal/scene"
	"tokenhud/internal/settings"
)

// Render re-runs the render pipeline against the tracked token; no-op when
// closed. force pushes the result even when the markup is unchanged.
func (h *HUD) Render(ctx context.Context, force bool) {
	h.mu.Lock()
	if h.token == nil {
		h.mu.Unlock()
		return
	}
	gen := h.generation
	h.mu.Unlock()
	h.renderPass(ctx, gen, force)
}

// renderPass is one full render cycle: assemble the context, produce markup,
// then swap it in. The generation captured before the provider calls is
// re-checked under the lock before the swap, so a render that raced a newer
// selection is discarded instead of clobbering it.
func (h *HUD) renderPass(ctx context.Context, gen uint64, force bool) {
	h.mu.Lock()
	token := h.token
	if token == nil || gen != h.generation {
		h.mu.Unlock()
		return
	}
	sidebar := h.sidebar
	h.mu.Unlock()

	// Providers may suspend (rich-text enrichment, computed formulas); state
	// is re-validated after this before touching the container.
	rc := h.buildContext(ctx, token)

	panelHTML, err := h.cfg.Renderer.RenderPanel(ctx, rc)
	if err != nil {
		h.logger.Printf("hud: panel render failed for token %s: %v", token.ID, err)
		panelHTML = ""
	}
	sidebarHTML := ""
	if sidebar != "" && !rc.Empty {
		sidebarHTML, err = h.cfg.Renderer.RenderSidebar(ctx, rc, sidebar)
		if err != nil {
			h.logger.Printf("hud: sidebar %q render failed: %v", sidebar, err)
			sidebarHTML = ""
		}
	}

	h.mu.Lock()
	if gen != h.generation || h.token != token {
		// A newer selection or close won the race; drop this render.
		h.mu.Unlock()
		return
	}
	if !force && h.container.Mounted() && h.container.Markup() == panelHTML && sidebar == "" {
		h.mu.Unlock()
		return
	}
	focus := h.container.Swap(panelHTML)
	// Anchor after the swap: position must be computed against the new
	// container, not stale geometry.
	placement := h.resolveLocked(token)
	frames := []Frame{{
		Type:      FrameHUD,
		TokenID:   token.ID,
		HTML:      panelHTML,
		Placement: &placement,
		Focus:     focus,
	}}
	if sidebar != "" {
		if rc.Empty {
			frames = append(frames, h.closeSidebarLocked()...)
		} else {
			frames = append(frames, Frame{
				Type:        FrameSidebar,
				TokenID:     token.ID,
				Sidebar:     sidebar,
				SidebarHTML: sidebarHTML,
				Placement:   &placement,
			})
		}
	}
	h.mu.Unlock()
	h.push(frames)
}

// buildContext assembles the per-render aggregate. An actor missing its
// minimum data (no health block) yields an empty context: the container stays
// mounted but renders no content, so mid-update actors do not flicker away.
func (h *HUD) buildContext(ctx context.Context, token *scene.Token) *RenderContext {
	rc := &RenderContext{
		TokenID:       token.ID,
		ActorID:       token.ActorID,
		Name:          token.Name,
		Extensions:    make(map[string]any),
		ActiveSidebar: h.Sidebar(),
		Mode:          h.cfg.Settings.Get(settings.KeyMode),
		FontSize:      h.cfg.Settings.GetInt(settings.KeyFontSize),
	}
	actor, ok := h.cfg.Scene.Actor(token.ActorID)
	if !ok || actor.HP == nil {
		rc.Empty = true
		return rc
	}
	rc.Name = actor.Name
	rc.Level = actor.Level
	if err := h.cfg.Registry.Build(ctx, actor, token, rc); err != nil {
		h.logger.Printf("hud: provider failed for actor %s: %v", actor.ID, err)
		rc.Empty = true
		rc.StatHeader = nil
		rc.AdvancedStats = nil
		rc.SidebarMenu = nil
		rc.Extensions = make(map[string]any)
	}
	return rc
}
