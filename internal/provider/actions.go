package provider

import (
	"context"
	"sort"

	"tokenhud/internal/hud"
	"tokenhud/internal/scene"
	"tokenhud/internal/viewmodel"
)

// StanceSource is the optional stance system. When present, its entries show
// in their own section and the action items they wrap are excluded from the
// regular sections so they do not appear twice.
type StanceSource interface {
	Stances(actor *scene.Actor) []scene.Stance
}

// HeroDeck is the optional hero-action card system.
type HeroDeck interface {
	CanDraw(actor *scene.Actor) bool
}

// actionsProvider assembles the actions sidebar: innate strikes, elemental
// blast pseudo-strikes, stance entries, and the actor's action items bucketed
// by category, each with its usage affordances computed. The actor's records
// are read, never written.
type actionsProvider struct {
	stances StanceSource
	deck    HeroDeck
}

func (actionsProvider) Name() string { return "actions" }

var itemCategories = []struct {
	key   string
	label string
}{
	{"encounter", "Encounter"},
	{"exploration", "Exploration"},
	{"downtime", "Downtime"},
	{"free", "Free Actions & Reactions"},
}

func (p actionsProvider) Contribute(_ context.Context, actor *scene.Actor, _ *scene.Token, rc *hud.RenderContext) error {
	sidebar := &viewmodel.ActionsSidebar{}

	if entries := strikeEntries(actor.Strikes); len(entries) > 0 {
		sidebar.Sections = append(sidebar.Sections, viewmodel.ActionSection{
			Key: "strikes", Label: "Strikes", Actions: entries,
		})
	}
	if entries := blastEntries(actor.Blasts); len(entries) > 0 {
		sidebar.Sections = append(sidebar.Sections, viewmodel.ActionSection{
			Key: "blasts", Label: "Elemental Blasts", Actions: entries,
		})
	}

	// Items already represented as stances are excluded from the category
	// sections below.
	stanceItems := make(map[string]bool)
	if p.stances != nil {
		stances := p.stances.Stances(actor)
		entries := make([]viewmodel.ActionEntry, 0, len(stances))
		for _, stance := range stances {
			stanceItems[stance.ItemID] = true
			entries = append(entries, viewmodel.ActionEntry{
				ID:      stance.ItemID,
				Name:    stance.Name,
				Kind:    "stance",
				Enabled: true,
				Active:  stance.Active,
			})
		}
		sortEntries(entries)
		if len(entries) > 0 {
			sidebar.Sections = append(sidebar.Sections, viewmodel.ActionSection{
				Key: "stances", Label: "Stances", Actions: entries,
			})
		}
	}

	buckets := make(map[string][]viewmodel.ActionEntry)
	for _, item := range actor.Items {
		if stanceItems[item.ID] {
			continue
		}
		buckets[bucketFor(item.Category)] = append(buckets[bucketFor(item.Category)], itemEntry(item))
	}
	for _, category := range itemCategories {
		entries := buckets[category.key]
		if len(entries) == 0 {
			continue
		}
		sortEntries(entries)
		sidebar.Sections = append(sidebar.Sections, viewmodel.ActionSection{
			Key: category.key, Label: category.label, Actions: entries,
		})
	}

	sidebar.CanDrawCard = p.deck != nil && p.deck.CanDraw(actor)

	rc.Extensions[hud.SidebarActions] = sidebar
	return nil
}

func strikeEntries(strikes []scene.Strike) []viewmodel.ActionEntry {
	entries := make([]viewmodel.ActionEntry, 0, len(strikes))
	for _, strike := range strikes {
		entries = append(entries, viewmodel.ActionEntry{
			ID:      strike.Slug,
			Name:    strike.Label,
			Cost:    "1",
			Kind:    "strike",
			Traits:  append([]string(nil), strike.Traits...),
			Enabled: strike.Ready,
		})
	}
	sortEntries(entries)
	return entries
}

func blastEntries(blasts []scene.Blast) []viewmodel.ActionEntry {
	entries := make([]viewmodel.ActionEntry, 0, len(blasts))
	for _, blast := range blasts {
		entries = append(entries, viewmodel.ActionEntry{
			ID:      blast.Element,
			Name:    blast.Label,
			Cost:    "2",
			Kind:    "blast",
			Enabled: true,
		})
	}
	sortEntries(entries)
	return entries
}

// itemEntry computes the item's usage affordances without touching the item:
// remaining frequency uses and whether the button is enabled at all.
func itemEntry(item scene.ActionItem) viewmodel.ActionEntry {
	entry := viewmodel.ActionEntry{
		ID:      item.ID,
		Name:    item.Name,
		Cost:    item.Cost,
		Kind:    "action",
		Traits:  append([]string(nil), item.Traits...),
		Enabled: true,
	}
	if item.Frequency != nil {
		remaining := item.Frequency.Remaining()
		entry.UsesRemaining = &remaining
		entry.Enabled = remaining > 0
	}
	return entry
}

func bucketFor(category string) string {
	switch category {
	case "exploration", "downtime", "free":
		return category
	default:
		return "encounter"
	}
}

func sortEntries(entries []viewmodel.ActionEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name == entries[j].Name {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Name < entries[j].Name
	})
}
