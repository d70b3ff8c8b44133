package provider

import "tokenhud/internal/scene"

// ActorStances sources stances straight from the actor record.
type ActorStances struct{}

func (ActorStances) Stances(actor *scene.Actor) []scene.Stance {
	return actor.Stances
}

// HeroPointDeck allows a card draw while the actor has hero points to spend.
type HeroPointDeck struct{}

func (HeroPointDeck) CanDraw(actor *scene.Actor) bool {
	return actor.HeroPoints > 0
}
