package hud

import "testing"

func TestContainer_SwapMounts(t *testing.T) {
	var c Container
	if c.Mounted() {
		t.Fatal("zero container should be unmounted")
	}

	c.Swap(`<div>one</div>`)
	if !c.Mounted() || c.Markup() != `<div>one</div>` {
		t.Errorf("after swap: mounted=%v markup=%q", c.Mounted(), c.Markup())
	}

	c.Swap(`<div>two</div>`)
	if c.Markup() != `<div>two</div>` {
		t.Errorf("swap should replace the whole markup, got %q", c.Markup())
	}
}

func TestContainer_FocusSurvivesSwap(t *testing.T) {
	var c Container
	c.Swap(`<input name="amount"/>`)
	c.SetFocus("amount")

	if focus := c.Swap(`<p>hp</p><input name="amount"/>`); focus != "amount" {
		t.Errorf("focus = %q, want amount while the field remains", focus)
	}
	if focus := c.Swap(`<p>no fields</p>`); focus != "" {
		t.Errorf("focus = %q, want empty once the field is gone", focus)
	}
	if c.Focused() != "" {
		t.Error("focus record should be cleared with the field")
	}
}

func TestContainer_FocusNameMatchesExactly(t *testing.T) {
	var c Container
	c.Swap(`<input name="amounts"/>`)
	c.SetFocus("amount")

	if focus := c.Swap(`<input name="amounts"/>`); focus != "" {
		t.Errorf("focus = %q; a longer name attribute must not match", focus)
	}
}

func TestContainer_Unmount(t *testing.T) {
	var c Container
	c.Swap(`<input name="amount"/>`)
	c.SetFocus("amount")

	c.Unmount()
	if c.Mounted() || c.Markup() != "" || c.Focused() != "" {
		t.Errorf("unmount should clear everything: %+v", c)
	}
}
