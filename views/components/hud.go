// Package components holds the templ components for HUD fragments.
package components

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"tokenhud/internal/hud"
)

// HudPanel renders the main HUD panel for a render context. An empty context
// still renders the container so the panel does not flicker away while the
// actor is mid-update; only the body is blank.
func HudPanel(rc *hud.RenderContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div class="token-hud mode-%s" data-token-id="%s" style="font-size:%dpx">`,
			html.EscapeString(rc.Mode), html.EscapeString(rc.TokenID), rc.FontSize,
		); err != nil {
			return err
		}
		if rc.Empty {
			if _, err := io.WriteString(w, `<div class="hud-body hud-body-empty"></div></div>`); err != nil {
				return err
			}
			return nil
		}
		if err := writeHeader(w, rc); err != nil {
			return err
		}
		if err := writeAdvanced(w, rc); err != nil {
			return err
		}
		if err := writeSidebarMenu(w, rc); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func writeHeader(w io.Writer, rc *hud.RenderContext) error {
	header := rc.StatHeader
	if header == nil {
		_, err := io.WriteString(w, `<div class="hud-body hud-body-empty"></div>`)
		return err
	}
	if _, err := fmt.Fprintf(w,
		`<header class="hud-header"><span class="name">%s</span><span class="level">%d</span></header>`,
		html.EscapeString(header.Name), header.Level,
	); err != nil {
		return err
	}
	hp := fmt.Sprintf(`<span class="hp">%d/%d</span>`, header.HPCurrent, header.HPMax)
	if header.HPTemp > 0 {
		hp += fmt.Sprintf(`<span class="hp-temp">+%d</span>`, header.HPTemp)
	}
	_, err := fmt.Fprintf(w,
		`<div class="hud-stats">%s<input type="number" name="amount" placeholder="0"/><span class="ac">%d</span></div>`,
		hp, header.AC,
	)
	return err
}

func writeAdvanced(w io.Writer, rc *hud.RenderContext) error {
	stats := rc.AdvancedStats
	if stats == nil {
		return nil
	}
	_, err := fmt.Fprintf(w,
		`<div class="hud-advanced"><span class="perception">%+d</span><span class="fort">%+d</span><span class="ref">%+d</span><span class="will">%+d</span><span class="speed">%d</span><span class="senses">%s</span><span class="hero-points">%d</span></div>`,
		stats.Perception, stats.Fortitude, stats.Reflex, stats.Will,
		stats.Speed, html.EscapeString(stats.Senses), stats.HeroPoints,
	)
	return err
}

func writeSidebarMenu(w io.Writer, rc *hud.RenderContext) error {
	if len(rc.SidebarMenu) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, `<nav class="hud-sidebars">`); err != nil {
		return err
	}
	for _, entry := range rc.SidebarMenu {
		active := ""
		if entry.Name == rc.ActiveSidebar {
			active = " active"
		}
		disabled := ""
		if entry.Disabled {
			disabled = " disabled"
		}
		if _, err := fmt.Fprintf(w,
			`<button class="sidebar-toggle%s" data-sidebar="%s"%s>%s</button>`,
			active, html.EscapeString(entry.Name), disabled, html.EscapeString(entry.Label),
		); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</nav>`)
	return err
}
