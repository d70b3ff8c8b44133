// Package provider holds the stat and sidebar data providers the render
// pipeline composes. Each provider writes one named slice of the render
// context and never mutates the actor it reads.
package provider

import (
	"context"

	"tokenhud/internal/hud"
	"tokenhud/internal/scene"
	"tokenhud/internal/viewmodel"
)

// DefaultProviders returns the fixed provider set in merge order. stances and
// deck are optional capabilities; nil means the feature is absent and the
// providers degrade quietly.
func DefaultProviders(stances StanceSource, deck HeroDeck) []hud.Provider {
	return []hud.Provider{
		statHeaderProvider{},
		advancedStatsProvider{},
		sidebarMenuProvider{},
		actionsProvider{stances: stances, deck: deck},
	}
}

type statHeaderProvider struct{}

func (statHeaderProvider) Name() string { return "stat-header" }

func (statHeaderProvider) Contribute(_ context.Context, actor *scene.Actor, _ *scene.Token, rc *hud.RenderContext) error {
	if actor.HP == nil {
		return nil
	}
	rc.StatHeader = &viewmodel.StatHeader{
		Name:      actor.Name,
		Level:     actor.Level,
		HPCurrent: actor.HP.Current,
		HPMax:     actor.HP.Max,
		HPTemp:    actor.HP.Temp,
		AC:        actor.AC,
	}
	return nil
}

type advancedStatsProvider struct{}

func (advancedStatsProvider) Name() string { return "advanced-stats" }

func (advancedStatsProvider) Contribute(_ context.Context, actor *scene.Actor, _ *scene.Token, rc *hud.RenderContext) error {
	rc.AdvancedStats = &viewmodel.AdvancedStats{
		Perception: actor.Perception,
		Fortitude:  actor.Saves.Fortitude,
		Reflex:     actor.Saves.Reflex,
		Will:       actor.Saves.Will,
		Speed:      actor.Speed,
		Senses:     actor.Senses,
		HeroPoints: actor.HeroPoints,
	}
	return nil
}

type sidebarMenuProvider struct{}

func (sidebarMenuProvider) Name() string { return "sidebar-menu" }

func (sidebarMenuProvider) Contribute(_ context.Context, actor *scene.Actor, _ *scene.Token, rc *hud.RenderContext) error {
	hasActions := len(actor.Strikes) > 0 || len(actor.Blasts) > 0 || len(actor.Items) > 0
	rc.SidebarMenu = []viewmodel.SidebarMenuEntry{
		{Name: hud.SidebarActions, Label: "Actions", Disabled: !hasActions},
		{Name: hud.SidebarSpells, Label: "Spells", Disabled: true},
		{Name: hud.SidebarItems, Label: "Items", Disabled: true},
		{Name: hud.SidebarSkills, Label: "Skills", Disabled: true},
		{Name: hud.SidebarExtras, Label: "Extras"},
	}
	return nil
}
