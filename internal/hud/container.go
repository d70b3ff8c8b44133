package hud

import "strings"

// Container mirrors the single DOM container the client mounts the HUD into.
// Re-render replaces the whole markup atomically; the focused element name is
// tracked so focus survives a swap triggered mid-typing by unrelated events.
// Not safe for concurrent use; the HUD guards it with its own lock.
type Container struct {
	mounted bool
	markup  string
	focused string
}

// Mounted reports whether the container exists in the client DOM.
func (c *Container) Mounted() bool { return c.mounted }

// Markup returns the currently mounted markup.
func (c *Container) Markup() string { return c.markup }

// Focused returns the name attribute of the focused element, if any.
func (c *Container) Focused() string { return c.focused }

// SetFocus records that the element with the given name attribute has focus.
func (c *Container) SetFocus(name string) { c.focused = name }

// Blur clears the focus record.
func (c *Container) Blur() { c.focused = "" }

// Swap mounts the new markup, replacing any previous subtree, and returns the
// element name the client should restore focus to. Focus is kept only if the
// new markup still contains an element with that name attribute.
func (c *Container) Swap(markup string) (focus string) {
	c.mounted = true
	c.markup = markup
	if c.focused != "" && !strings.Contains(markup, `name="`+c.focused+`"`) {
		c.focused = ""
	}
	return c.focused
}

// Unmount tears the container down and releases focus.
func (c *Container) Unmount() {
	c.mounted = false
	c.markup = ""
	c.focused = ""
}
