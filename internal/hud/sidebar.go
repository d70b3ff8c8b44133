package hud

import "context"

// Sidebar names. The set is fixed; content comes from the matching provider.
const (
	SidebarActions = "actions"
	SidebarSpells  = "spells"
	SidebarItems   = "items"
	SidebarSkills  = "skills"
	SidebarExtras  = "extras"
)

// KnownSidebar reports whether name is a sidebar this HUD can show.
func KnownSidebar(name string) bool {
	switch name {
	case SidebarActions, SidebarSpells, SidebarItems, SidebarSkills, SidebarExtras:
		return true
	}
	return false
}

// Sidebar returns the currently showing sidebar name, or "".
func (h *HUD) Sidebar() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sidebar
}

// ToggleSidebar opens the named sidebar, closes it if it is already showing,
// or forces it closed when name is empty. Only one sidebar panel exists at a
// time; switching tears down the previous one. A sidebar can only show while
// the HUD is open.
func (h *HUD) ToggleSidebar(ctx context.Context, name string) {
	if name == "" {
		h.CloseSidebar()
		return
	}
	if !KnownSidebar(name) {
		h.logger.Printf("hud: ignoring unknown sidebar %q", name)
		return
	}

	h.mu.Lock()
	if h.token == nil {
		h.mu.Unlock()
		return
	}
	if h.sidebar == name {
		frames := h.closeSidebarLocked()
		h.mu.Unlock()
		h.push(frames)
		return
	}
	h.sidebar = name
	gen := h.generation
	h.mu.Unlock()

	h.sidebarPass(ctx, gen, name)
}

// CloseSidebar closes the sidebar if one is showing and reports whether it
// did anything.
func (h *HUD) CloseSidebar() bool {
	h.mu.Lock()
	frames := h.closeSidebarLocked()
	h.mu.Unlock()
	h.push(frames)
	return len(frames) > 0
}

func (h *HUD) closeSidebarLocked() []Frame {
	if h.sidebar == "" {
		return nil
	}
	h.sidebar = ""
	return []Frame{{Type: FrameSidebarClose}}
}

// sidebarPass renders just the sidebar panel against the current context and
// anchors it to the main panel. Stale passes are discarded like main renders.
func (h *HUD) sidebarPass(ctx context.Context, gen uint64, name string) {
	h.mu.Lock()
	token := h.token
	if token == nil || gen != h.generation || h.sidebar != name {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	rc := h.buildContext(ctx, token)
	if rc.Empty {
		// No sidebar over an actor with no data to show.
		h.CloseSidebar()
		return
	}
	html, err := h.cfg.Renderer.RenderSidebar(ctx, rc, name)
	if err != nil {
		h.logger.Printf("hud: sidebar %q render failed: %v", name, err)
		h.CloseSidebar()
		return
	}

	h.mu.Lock()
	if gen != h.generation || h.token != token || h.sidebar != name {
		h.mu.Unlock()
		return
	}
	placement := h.resolveLocked(token)
	h.mu.Unlock()
	h.cfg.Pusher.Push(Frame{
		Type:        FrameSidebar,
		TokenID:     token.ID,
		Sidebar:     name,
		SidebarHTML: html,
		Placement:   &placement,
	})
}
