package provider

import (
	"context"
	"reflect"
	"testing"

	"tokenhud/internal/hud"
	"tokenhud/internal/scene"
	"tokenhud/internal/viewmodel"
)

type fixedStances struct {
	stances []scene.Stance
}

func (f fixedStances) Stances(*scene.Actor) []scene.Stance { return f.stances }

type fixedDeck struct {
	can bool
}

func (f fixedDeck) CanDraw(*scene.Actor) bool { return f.can }

func buildActions(t *testing.T, p actionsProvider, actor *scene.Actor) *viewmodel.ActionsSidebar {
	t.Helper()
	rc := &hud.RenderContext{Extensions: make(map[string]any)}
	if err := p.Contribute(context.Background(), actor, &scene.Token{}, rc); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	sidebar, ok := rc.Extensions[hud.SidebarActions].(*viewmodel.ActionsSidebar)
	if !ok {
		t.Fatalf("extensions[%q] = %T", hud.SidebarActions, rc.Extensions[hud.SidebarActions])
	}
	return sidebar
}

func sectionKeys(sidebar *viewmodel.ActionsSidebar) []string {
	keys := make([]string, 0, len(sidebar.Sections))
	for _, s := range sidebar.Sections {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestActions_SectionOrder(t *testing.T) {
	actor := &scene.Actor{
		Strikes: []scene.Strike{{Slug: "staff", Label: "Staff", Ready: true}},
		Blasts:  []scene.Blast{{Element: "fire", Label: "Fire Blast"}},
		Items: []scene.ActionItem{
			{ID: "i1", Name: "Attack of Opportunity", Category: "encounter"},
			{ID: "i2", Name: "Search", Category: "exploration"},
			{ID: "i3", Name: "Craft", Category: "downtime"},
			{ID: "i4", Name: "Shield Block", Category: "free"},
			{ID: "i5", Name: "Arcane Cascade", Category: "encounter"},
		},
	}
	stances := fixedStances{stances: []scene.Stance{{ItemID: "i5", Name: "Arcane Cascade", Active: true}}}

	sidebar := buildActions(t, actionsProvider{stances: stances}, actor)

	want := []string{"strikes", "blasts", "stances", "encounter", "exploration", "downtime", "free"}
	if got := sectionKeys(sidebar); !reflect.DeepEqual(got, want) {
		t.Errorf("sections = %v, want %v", got, want)
	}
}

func TestActions_StanceItemsNotDuplicated(t *testing.T) {
	actor := &scene.Actor{
		Items: []scene.ActionItem{
			{ID: "item-stance", Name: "Mountain Stance", Category: "encounter"},
			{ID: "item-other", Name: "Trip", Category: "encounter"},
		},
	}
	stances := fixedStances{stances: []scene.Stance{{ItemID: "item-stance", Name: "Mountain Stance"}}}

	sidebar := buildActions(t, actionsProvider{stances: stances}, actor)

	for _, section := range sidebar.Sections {
		if section.Key != "encounter" {
			continue
		}
		for _, entry := range section.Actions {
			if entry.ID == "item-stance" {
				t.Error("stance-backed item must not also appear in its category section")
			}
		}
		if len(section.Actions) != 1 || section.Actions[0].ID != "item-other" {
			t.Errorf("encounter section = %+v", section.Actions)
		}
	}
}

func TestActions_FrequencyAffordances(t *testing.T) {
	actor := &scene.Actor{
		Items: []scene.ActionItem{
			{ID: "fresh", Name: "A", Category: "encounter", Frequency: &scene.Frequency{Max: 2, Used: 0}},
			{ID: "spent", Name: "B", Category: "encounter", Frequency: &scene.Frequency{Max: 1, Used: 1}},
			{ID: "plain", Name: "C", Category: "encounter"},
		},
	}

	sidebar := buildActions(t, actionsProvider{}, actor)

	entries := map[string]viewmodel.ActionEntry{}
	for _, e := range sidebar.Sections[0].Actions {
		entries[e.ID] = e
	}
	if e := entries["fresh"]; !e.Enabled || e.UsesRemaining == nil || *e.UsesRemaining != 2 {
		t.Errorf("fresh = %+v", e)
	}
	if e := entries["spent"]; e.Enabled || e.UsesRemaining == nil || *e.UsesRemaining != 0 {
		t.Errorf("spent item should render disabled with zero uses: %+v", e)
	}
	if e := entries["plain"]; !e.Enabled || e.UsesRemaining != nil {
		t.Errorf("plain item should be enabled with no uses counter: %+v", e)
	}
}

func TestActions_DoesNotMutateActor(t *testing.T) {
	freq := &scene.Frequency{Max: 1, Used: 0}
	actor := &scene.Actor{
		Strikes: []scene.Strike{{Slug: "staff", Label: "Staff", Traits: []string{"two-hand-d8"}}},
		Items:   []scene.ActionItem{{ID: "i1", Name: "A", Category: "encounter", Traits: []string{"flourish"}, Frequency: freq}},
	}

	sidebar := buildActions(t, actionsProvider{}, actor)

	// Mutating the produced entries must not write through to the actor.
	for _, section := range sidebar.Sections {
		for i := range section.Actions {
			if len(section.Actions[i].Traits) > 0 {
				section.Actions[i].Traits[0] = "changed"
			}
		}
	}
	if actor.Strikes[0].Traits[0] != "two-hand-d8" {
		t.Error("strike traits were mutated through the sidebar")
	}
	if actor.Items[0].Traits[0] != "flourish" {
		t.Error("item traits were mutated through the sidebar")
	}
	if freq.Used != 0 {
		t.Errorf("frequency used = %d, want 0 after a pure build", freq.Used)
	}
}

func TestActions_UnknownCategoryBucketsAsEncounter(t *testing.T) {
	actor := &scene.Actor{
		Items: []scene.ActionItem{{ID: "i1", Name: "Odd", Category: "ritual"}},
	}

	sidebar := buildActions(t, actionsProvider{}, actor)

	if len(sidebar.Sections) != 1 || sidebar.Sections[0].Key != "encounter" {
		t.Errorf("sections = %v, want just encounter", sectionKeys(sidebar))
	}
}

func TestActions_EntriesSortedByName(t *testing.T) {
	actor := &scene.Actor{
		Items: []scene.ActionItem{
			{ID: "z", Name: "Trip", Category: "encounter"},
			{ID: "a", Name: "Aid", Category: "encounter"},
			{ID: "m", Name: "Aid", Category: "encounter"},
		},
	}

	sidebar := buildActions(t, actionsProvider{}, actor)

	got := make([]string, 0, 3)
	for _, e := range sidebar.Sections[0].Actions {
		got = append(got, e.ID)
	}
	// Equal names fall back to ID order.
	if want := []string{"a", "m", "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestActions_OptionalCapabilities(t *testing.T) {
	actor := &scene.Actor{
		Items: []scene.ActionItem{{ID: "i1", Name: "A", Category: "encounter"}},
	}

	// Nil capabilities: no stance section, no card draw.
	sidebar := buildActions(t, actionsProvider{}, actor)
	for _, key := range sectionKeys(sidebar) {
		if key == "stances" {
			t.Error("no stance section without a stance source")
		}
	}
	if sidebar.CanDrawCard {
		t.Error("no card draw without a deck")
	}

	sidebar = buildActions(t, actionsProvider{deck: fixedDeck{can: true}}, actor)
	if !sidebar.CanDrawCard {
		t.Error("deck allowing a draw should surface CanDrawCard")
	}
}

func TestActions_NotReadyStrikeDisabled(t *testing.T) {
	actor := &scene.Actor{
		Strikes: []scene.Strike{
			{Slug: "bow", Label: "Bow", Ready: false},
			{Slug: "fist", Label: "Fist", Ready: true},
		},
	}

	sidebar := buildActions(t, actionsProvider{}, actor)

	for _, entry := range sidebar.Sections[0].Actions {
		ready := entry.ID == "fist"
		if entry.Enabled != ready {
			t.Errorf("strike %s enabled = %v, want %v", entry.ID, entry.Enabled, ready)
		}
	}
}
