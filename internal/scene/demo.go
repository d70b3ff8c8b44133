package scene

// SeedDemo populates a scene with a small encounter: a player character, an
// NPC, a hazard, and a loot pile. The owner ID controls the character token.
func SeedDemo(s *Scene, ownerID string) {
	ezren := s.AddActor(&Actor{
		Name:       "Ezren",
		Level:      5,
		HP:         &HealthBlock{Current: 58, Max: 63},
		AC:         21,
		Perception: 11,
		Saves:      Saves{Fortitude: 11, Reflex: 9, Will: 13},
		Speed:      25,
		Senses:     "low-light vision",
		HeroPoints: 1,
		Items: []ActionItem{
			{ID: "item-recall", Name: "Recall Knowledge", Cost: "1", Category: "encounter"},
			{ID: "item-shield-block", Name: "Shield Block", Cost: "reaction", Category: "free"},
			{ID: "item-refocus", Name: "Refocus", Cost: "1", Category: "exploration",
				Frequency: &Frequency{Max: 1, Per: "day"}},
			{ID: "item-stance-arcane", Name: "Arcane Cascade", Cost: "1", Category: "encounter"},
		},
		Strikes: []Strike{
			{Slug: "staff", Label: "Staff", Bonus: 11, Damage: "1d4+2 bludgeoning", Ready: true},
			{Slug: "fist", Label: "Fist", Bonus: 9, Damage: "1d4 bludgeoning",
				Traits: []string{"agile", "nonlethal"}, Ready: true},
		},
		Blasts: []Blast{
			{Element: "fire", Label: "Fire Blast", Bonus: 12, Damage: "2d6 fire", Range: 30},
		},
		Stances: []Stance{
			{ItemID: "item-stance-arcane", Name: "Arcane Cascade"},
		},
	})
	s.AddToken(&Token{
		Name:     "Ezren",
		ActorID:  ezren.ID,
		Bounds:   GridRect{X: 4, Y: 3, W: 1, H: 1},
		Category: CategoryCharacter,
		Owners:   []string{ownerID},
	})

	ogre := s.AddActor(&Actor{
		Name:       "Ogre Warrior",
		Level:      3,
		HP:         &HealthBlock{Current: 50, Max: 50},
		AC:         18,
		Perception: 7,
		Saves:      Saves{Fortitude: 11, Reflex: 5, Will: 6},
		Speed:      30,
		Senses:     "darkvision",
		Strikes: []Strike{
			{Slug: "greatclub", Label: "Greatclub", Bonus: 12, Damage: "1d10+7 bludgeoning", Ready: true},
		},
	})
	s.AddToken(&Token{
		Name:     "Ogre Warrior",
		ActorID:  ogre.ID,
		Bounds:   GridRect{X: 8, Y: 5, W: 2, H: 2},
		Category: CategoryNPC,
	})

	// Hazard actors carry no health block until the GM reveals them; the HUD
	// renders an empty body for them.
	pit := s.AddActor(&Actor{Name: "Hidden Pit", Level: 0, AC: 10})
	s.AddToken(&Token{
		Name:     "Hidden Pit",
		ActorID:  pit.ID,
		Bounds:   GridRect{X: 6, Y: 7, W: 1, H: 1},
		Category: CategoryHazard,
	})

	chest := s.AddActor(&Actor{Name: "Treasure Chest"})
	s.AddToken(&Token{
		Name:     "Treasure Chest",
		ActorID:  chest.ID,
		Bounds:   GridRect{X: 10, Y: 2, W: 1, H: 1},
		Category: CategoryLoot,
		Owners:   []string{ownerID},
	})
}
