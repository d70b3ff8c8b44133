package hud

import (
	"context"

	"tokenhud/internal/scene"
	"tokenhud/internal/viewmodel"
)

// RenderContext is the transient aggregate a render cycle assembles and the
// renderer consumes. It is rebuilt from scratch on every render and discarded
// after the markup is produced; nothing carries over between cycles.
type RenderContext struct {
	TokenID string
	ActorID string
	Name    string
	Level   int

	// Empty marks an actor missing its minimum data (no health block). The
	// container stays mounted but the body renders with no content.
	Empty bool

	StatHeader    *viewmodel.StatHeader
	AdvancedStats *viewmodel.AdvancedStats
	SidebarMenu   []viewmodel.SidebarMenuEntry

	// Extensions holds free-form per-provider contributions keyed by provider
	// name (e.g. the assembled actions sidebar).
	Extensions map[string]any

	ActiveSidebar string
	Mode          string
	FontSize      int
}

// Provider contributes one named slice of the render context. Providers must
// not mutate the actor or token they are handed.
type Provider interface {
	Name() string
	Contribute(ctx context.Context, actor *scene.Actor, token *scene.Token, rc *RenderContext) error
}

// Registry composes providers by explicit ordered merge: each provider writes
// its contribution into the context in registration order.
type Registry struct {
	providers []Provider
}

// NewRegistry creates a registry with the given providers, in order.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Build runs every provider against the actor. The first provider error
// aborts the merge.
func (r *Registry) Build(ctx context.Context, actor *scene.Actor, token *scene.Token, rc *RenderContext) error {
	for _, p := range r.providers {
		if err := p.Contribute(ctx, actor, token, rc); err != nil {
			return err
		}
	}
	return nil
}

// Renderer turns a render context into markup. The HUD does not care which
// template language produces it.
type Renderer interface {
	RenderPanel(ctx context.Context, rc *RenderContext) (string, error)
	RenderSidebar(ctx context.Context, rc *RenderContext, name string) (string, error)
}

// FrameType tags an outbound frame for the client.
type FrameType string

const (
	// FrameHUD mounts or replaces the main HUD panel.
	FrameHUD FrameType = "hud"
	// FramePosition re-anchors without re-rendering.
	FramePosition FrameType = "position"
	// FrameSidebar mounts or replaces the sidebar panel.
	FrameSidebar FrameType = "sidebar"
	// FrameSidebarClose tears down the sidebar panel.
	FrameSidebarClose FrameType = "sidebar-close"
	// FrameClose tears down the whole HUD.
	FrameClose FrameType = "close"
	// FrameError reports a contract violation to the client console.
	FrameError FrameType = "error"
)

// Frame is one instruction pushed to the client.
type Frame struct {
	Type        FrameType  `json:"type"`
	TokenID     string     `json:"tokenId,omitempty"`
	HTML        string     `json:"html,omitempty"`
	Sidebar     string     `json:"sidebar,omitempty"`
	SidebarHTML string     `json:"sidebarHtml,omitempty"`
	Placement   *Placement `json:"placement,omitempty"`
	Focus       string     `json:"focus,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// Pusher delivers frames to the connected client.
type Pusher interface {
	Push(Frame)
}
