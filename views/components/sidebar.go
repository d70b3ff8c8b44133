package components

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"tokenhud/internal/hud"
	"tokenhud/internal/viewmodel"
)

// SidebarPanel renders the named sidebar panel. Sidebars without a content
// provider render an empty shell so the toggle still has something to anchor.
func SidebarPanel(rc *hud.RenderContext, name string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<aside class="hud-sidebar sidebar-%s" data-token-id="%s">`,
			html.EscapeString(name), html.EscapeString(rc.TokenID)); err != nil {
			return err
		}
		if name == hud.SidebarActions {
			if sidebar, ok := rc.Extensions[hud.SidebarActions].(*viewmodel.ActionsSidebar); ok {
				if err := writeActions(w, sidebar); err != nil {
					return err
				}
			}
		}
		_, err := io.WriteString(w, `</aside>`)
		return err
	})
}

func writeActions(w io.Writer, sidebar *viewmodel.ActionsSidebar) error {
	for _, section := range sidebar.Sections {
		if _, err := fmt.Fprintf(w, `<section class="actions-%s"><h3>%s</h3>`,
			html.EscapeString(section.Key), html.EscapeString(section.Label)); err != nil {
			return err
		}
		for _, action := range section.Actions {
			if err := writeAction(w, action); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}
	}
	if sidebar.CanDrawCard {
		if _, err := io.WriteString(w,
			`<button class="draw-hero-card" data-hud-action="draw-hero-card">Draw Hero Card</button>`,
		); err != nil {
			return err
		}
	}
	return nil
}

func writeAction(w io.Writer, action viewmodel.ActionEntry) error {
	classes := []string{"action", "action-" + action.Kind}
	if action.Active {
		classes = append(classes, "active")
	}
	disabled := ""
	if !action.Enabled {
		disabled = " disabled"
	}
	if _, err := fmt.Fprintf(w, `<button class="%s" data-action="%s"%s>`,
		strings.Join(classes, " "), html.EscapeString(action.ID), disabled); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<span class="action-name">%s</span>`, html.EscapeString(action.Name)); err != nil {
		return err
	}
	if action.Cost != "" {
		if _, err := fmt.Fprintf(w, `<span class="action-cost">%s</span>`, html.EscapeString(action.Cost)); err != nil {
			return err
		}
	}
	if action.UsesRemaining != nil {
		if _, err := fmt.Fprintf(w, `<span class="action-uses">%d</span>`, *action.UsesRemaining); err != nil {
			return err
		}
	}
	for _, trait := range action.Traits {
		if _, err := fmt.Fprintf(w, `<span class="trait">%s</span>`, html.EscapeString(trait)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</button>`)
	return err
}
