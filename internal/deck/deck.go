// Package deck builds the draw piles a game starts with from a compiled catalog.
package deck

import (
	"math/rand/v2"
	"slices"

	"github.com/AdamMil/BirdhouseManor/internal/catalog"
	"github.com/AdamMil/BirdhouseManor/internal/tiles"
)

// Location is a position within a deck.
type Location uint8

const (
	Top Location = iota
	Bottom
	Random
)

// Deck is a pile of cards. The top of the deck is the end of the slice.
type Deck[T any] struct {
	cards []T
	rng   *rand.Rand
}

// New returns an unshuffled deck holding cards, bottom first. rng is used by Shuffle and by
// Random locations.
func New[T any](rng *rand.Rand, cards ...T) *Deck[T] {
	return &Deck[T]{cards: slices.Clone(cards), rng: rng}
}

// FromCounts returns an unshuffled deck with count(item) copies of each item.
func FromCounts[T any](rng *rand.Rand, items []T, count func(T) int) *Deck[T] {
	d := &Deck[T]{rng: rng}
	for _, item := range items {
		for range count(item) {
			d.cards = append(d.cards, item)
		}
	}
	return d
}

// Len returns the number of cards left in the deck.
func (d *Deck[T]) Len() int { return len(d.cards) }

// Cards returns the deck's cards, bottom first.
func (d *Deck[T]) Cards() []T { return slices.Clone(d.cards) }

// Add puts a card at the given location.
func (d *Deck[T]) Add(card T, at Location) {
	i := d.index(at, len(d.cards)+1)
	d.cards = slices.Insert(d.cards, i, card)
}

// AddCards moves every card from other onto the top of d, leaving other empty.
func (d *Deck[T]) AddCards(other *Deck[T]) {
	d.cards = append(d.cards, other.cards...)
	other.cards = other.cards[:0]
}

// Draw takes a card from the given location. It returns false if the deck is empty.
func (d *Deck[T]) Draw(from Location) (T, bool) {
	var zero T
	if len(d.cards) == 0 {
		return zero, false
	}
	i := d.index(from, len(d.cards))
	card := d.cards[i]
	d.cards = slices.Delete(d.cards, i, i+1)
	return card, true
}

// Shuffle randomly permutes the deck.
func (d *Deck[T]) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
}

// index maps a location to a slice index in [0, n).
func (d *Deck[T]) index(at Location, n int) int {
	switch at {
	case Bottom:
		return 0
	case Random:
		return d.rng.IntN(n)
	default:
		return n - 1
	}
}

// Decks holds the piles a game is set up with.
type Decks struct {
	Tiles      *Deck[tiles.Card]
	Start      []tiles.Card // placed before play, never drawn
	Encounters *Deck[catalog.Card]
	Treasures  *Deck[catalog.Card]
	Monsters   *Deck[catalog.MonsterClass]
	Villains   []catalog.MonsterClass
}

// DefaultDecks builds the shuffled starting piles for a catalog. Every card appears Count
// times; dungeon cards enter the tile deck only if they are drawn at random.
func DefaultDecks(cat *catalog.Catalog, rng *rand.Rand) *Decks {
	d := &Decks{
		Encounters: FromCounts(rng, cat.Encounters(), func(c catalog.Card) int { return c.Count }),
		Treasures:  FromCounts(rng, cat.Treasures(), func(c catalog.Card) int { return c.Count }),
	}

	var random []tiles.Card
	for _, c := range cat.DungeonCards() {
		switch c.Draw {
		case tiles.DrawRandom:
			random = append(random, c)
		case tiles.DrawStart:
			d.Start = append(d.Start, c)
		}
	}
	d.Tiles = FromCounts(rng, random, func(c tiles.Card) int { return c.Count })

	var monsters []catalog.MonsterClass
	for _, m := range cat.Monsters() {
		if m.Villain {
			d.Villains = append(d.Villains, m)
		} else {
			monsters = append(monsters, m)
		}
	}
	d.Monsters = FromCounts(rng, monsters, func(m catalog.MonsterClass) int { return m.Count })

	d.Tiles.Shuffle()
	d.Encounters.Shuffle()
	d.Treasures.Shuffle()
	d.Monsters.Shuffle()
	return d
}
