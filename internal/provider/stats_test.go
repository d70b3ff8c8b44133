package provider

import (
	"context"
	"testing"

	"tokenhud/internal/hud"
	"tokenhud/internal/scene"
)

func TestStatHeader(t *testing.T) {
	actor := &scene.Actor{
		Name: "Ezren", Level: 5,
		HP: &scene.HealthBlock{Current: 38, Max: 45, Temp: 5},
		AC: 21,
	}
	rc := &hud.RenderContext{Extensions: make(map[string]any)}
	if err := (statHeaderProvider{}).Contribute(context.Background(), actor, &scene.Token{}, rc); err != nil {
		t.Fatal(err)
	}
	if rc.StatHeader == nil {
		t.Fatal("stat header missing")
	}
	if rc.StatHeader.HPCurrent != 38 || rc.StatHeader.HPMax != 45 || rc.StatHeader.HPTemp != 5 || rc.StatHeader.AC != 21 {
		t.Errorf("stat header = %+v", rc.StatHeader)
	}
}

func TestStatHeader_NoHealthBlock(t *testing.T) {
	rc := &hud.RenderContext{Extensions: make(map[string]any)}
	if err := (statHeaderProvider{}).Contribute(context.Background(), &scene.Actor{Name: "Pit"}, &scene.Token{}, rc); err != nil {
		t.Fatal(err)
	}
	if rc.StatHeader != nil {
		t.Error("no stat header without a health block")
	}
}

func TestAdvancedStats(t *testing.T) {
	actor := &scene.Actor{
		Perception: 11,
		Saves:      scene.Saves{Fortitude: 9, Reflex: 10, Will: 14},
		Speed:      25,
		Senses:     "darkvision",
		HeroPoints: 2,
	}
	rc := &hud.RenderContext{Extensions: make(map[string]any)}
	if err := (advancedStatsProvider{}).Contribute(context.Background(), actor, &scene.Token{}, rc); err != nil {
		t.Fatal(err)
	}
	got := rc.AdvancedStats
	if got == nil || got.Perception != 11 || got.Will != 14 || got.Speed != 25 || got.HeroPoints != 2 {
		t.Errorf("advanced stats = %+v", got)
	}
}

func TestSidebarMenu_ActionsDisabledWithoutContent(t *testing.T) {
	rc := &hud.RenderContext{Extensions: make(map[string]any)}
	if err := (sidebarMenuProvider{}).Contribute(context.Background(), &scene.Actor{}, &scene.Token{}, rc); err != nil {
		t.Fatal(err)
	}
	byName := map[string]bool{}
	for _, entry := range rc.SidebarMenu {
		byName[entry.Name] = entry.Disabled
	}
	if !byName[hud.SidebarActions] {
		t.Error("actions entry should be disabled for an actor with nothing to act with")
	}
	if byName[hud.SidebarExtras] {
		t.Error("extras entry is always enabled")
	}

	rc = &hud.RenderContext{Extensions: make(map[string]any)}
	actor := &scene.Actor{Strikes: []scene.Strike{{Slug: "fist"}}}
	if err := (sidebarMenuProvider{}).Contribute(context.Background(), actor, &scene.Token{}, rc); err != nil {
		t.Fatal(err)
	}
	for _, entry := range rc.SidebarMenu {
		if entry.Name == hud.SidebarActions && entry.Disabled {
			t.Error("actions entry should be enabled once the actor has a strike")
		}
	}
}

func TestDefaultProviders_Order(t *testing.T) {
	providers := DefaultProviders(ActorStances{}, HeroPointDeck{})
	want := []string{"stat-header", "advanced-stats", "sidebar-menu", "actions"}
	if len(providers) != len(want) {
		t.Fatalf("got %d providers, want %d", len(providers), len(want))
	}
	for i, p := range providers {
		if p.Name() != want[i] {
			t.Errorf("provider %d = %q, want %q", i, p.Name(), want[i])
		}
	}
}

func TestActorCapabilities(t *testing.T) {
	actor := &scene.Actor{
		HeroPoints: 1,
		Stances:    []scene.Stance{{ItemID: "i1", Name: "Mountain Stance"}},
	}
	if got := (ActorStances{}).Stances(actor); len(got) != 1 || got[0].Name != "Mountain Stance" {
		t.Errorf("stances = %+v", got)
	}
	if !(HeroPointDeck{}).CanDraw(actor) {
		t.Error("a hero point should allow a card draw")
	}
	if (HeroPointDeck{}).CanDraw(&scene.Actor{}) {
		t.Error("no hero points, no card draw")
	}
}
