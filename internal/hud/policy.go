package hud

import "tokenhud/internal/settings"

// Policy is what a semantic event does to the open HUD.
type Policy string

const (
	// PolicyNever ignores the event.
	PolicyNever Policy = "never"
	// PolicySidebar closes only the sidebar, if one is open.
	PolicySidebar Policy = "sidebar"
	// PolicyAll closes the entire HUD, cascading to the sidebar.
	PolicyAll Policy = "all"
)

// ParsePolicy maps a stored setting value to a Policy; anything unknown
// defaults to never.
func ParsePolicy(value string) Policy {
	switch Policy(value) {
	case PolicySidebar, PolicyAll:
		return Policy(value)
	default:
		return PolicyNever
	}
}

// CloseTrigger is a semantic event a close policy can be attached to.
type CloseTrigger string

const (
	TriggerSendToChat   CloseTrigger = "sendToChat"
	TriggerCastSpell    CloseTrigger = "castSpell"
	TriggerUseAction    CloseTrigger = "useAction"
	TriggerDrawHeroCard CloseTrigger = "drawHeroCard"
)

func triggerKey(trigger CloseTrigger) (settings.Key, bool) {
	switch trigger {
	case TriggerSendToChat:
		return settings.KeyCloseOnSendToChat, true
	case TriggerCastSpell:
		return settings.KeyCloseOnCastSpell, true
	case TriggerUseAction:
		return settings.KeyCloseOnUseAction, true
	case TriggerDrawHeroCard:
		return settings.KeyCloseOnDrawHeroCard, true
	default:
		return "", false
	}
}

// CloseIf applies the configured close policy for the trigger and reports
// whether any closing action was taken. Policies take effect immediately on
// the next event; nothing is cached here.
func (h *HUD) CloseIf(trigger CloseTrigger) bool {
	key, ok := triggerKey(trigger)
	if !ok {
		return false
	}
	switch ParsePolicy(h.cfg.Settings.Get(key)) {
	case PolicySidebar:
		return h.CloseSidebar()
	case PolicyAll:
		return h.Close()
	default:
		return false
	}
}
