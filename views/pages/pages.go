// Package pages holds the templ components for full pages.
package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"tokenhud/internal/viewmodel"
)

func writeShellOpen(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w,
		`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><title>%s</title><link rel="stylesheet" href="/static/hud.css"/></head><body>`,
		html.EscapeString(title))
	return err
}

func writeShellClose(w io.Writer) error {
	_, err := io.WriteString(w, `<script src="/static/hud.js"></script></body></html>`)
	return err
}

// HomePage lists scenes and offers the create-scene form.
func HomePage(data viewmodel.HomePage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeShellOpen(w, data.Title); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="home"><h1>Scenes</h1><ul class="scene-list">`); err != nil {
			return err
		}
		for _, entry := range data.Scenes {
			if _, err := fmt.Fprintf(w, `<li><a href="/scene/%s">%s</a></li>`,
				html.EscapeString(entry.ID), html.EscapeString(entry.Name)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w,
			`</ul><form method="post" action="/scenes"><input name="name" placeholder="Scene name" required/><input name="grid" type="number" value="100" min="10" max="400"/><button type="submit">Create scene</button></form></main>`,
		); err != nil {
			return err
		}
		return writeShellClose(w)
	})
}

// ScenePage renders the canvas shell the client script drives. Tokens are
// emitted as data attributes; the HUD itself arrives over the websocket.
func ScenePage(data viewmodel.ScenePage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeShellOpen(w, data.Title); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`<main class="scene" data-scene-id="%s" data-grid-size="%g"><h1>%s</h1>`,
			html.EscapeString(data.SceneID), data.GridSize, html.EscapeString(data.SceneName),
		); err != nil {
			return err
		}
		if !data.HasPlayer {
			if _, err := fmt.Fprintf(w,
				`<form method="post" action="/scene/%s/join"><input name="username" placeholder="Your name" required maxlength="20"/><button type="submit">Join</button></form>`,
				html.EscapeString(data.SceneID)); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, `<p class="player">Playing as %s</p>`,
				html.EscapeString(data.UserName)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<div id="canvas" class="canvas">`); err != nil {
			return err
		}
		for _, token := range data.Tokens {
			if _, err := fmt.Fprintf(w,
				`<div class="token token-%s" data-token-id="%s" data-x="%g" data-y="%g" data-w="%g" data-h="%g">%s</div>`,
				html.EscapeString(token.Category), html.EscapeString(token.ID),
				token.X, token.Y, token.W, token.H, html.EscapeString(token.Name),
			); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div><div id="hud-root"></div></main>`); err != nil {
			return err
		}
		return writeShellClose(w)
	})
}
