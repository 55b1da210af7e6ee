package engine

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Deck holds the chance and chest stacks. The top of a stack is the last
// element; returned cards go to the bottom.
type Deck struct {
	stacks map[DeckKind][]*EventCard
}

// NewDeck shuffles chance and then chest once with rng, so a seeded rng
// always deals the same decks. A nil rng keeps table order.
func NewDeck(chance, chest []*EventCard, rng *rand.Rand) (*Deck, error) {
	d := &Deck{stacks: make(map[DeckKind][]*EventCard, 2)}
	for _, pile := range []struct {
		kind  DeckKind
		cards []*EventCard
	}{{DeckChance, chance}, {DeckChest, chest}} {
		kind, cards := pile.kind, pile.cards
		stack := make([]*EventCard, 0, len(cards))
		for _, c := range cards {
			if c == nil || c.Deck() != kind {
				return nil, fmt.Errorf("%w: card does not belong to the %s deck", ErrInvalidCard, kind)
			}
			stack = append(stack, c)
		}
		if rng != nil {
			rng.Shuffle(len(stack), func(i, j int) {
				stack[i], stack[j] = stack[j], stack[i]
			})
		}
		d.stacks[kind] = stack
	}
	return d, nil
}

// Draw pops the top card of a stack
func (d *Deck) Draw(kind DeckKind) (*EventCard, error) {
	stack, ok := d.stacks[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown deck %q", ErrInvalidCard, kind)
	}
	if len(stack) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeckExhausted, kind)
	}
	card := stack[len(stack)-1]
	d.stacks[kind] = stack[:len(stack)-1]
	return card, nil
}

// Return puts a resolved card at the bottom of its stack so it is drawn last.
func (d *Deck) Return(card *EventCard) {
	if card == nil {
		return
	}
	stack := d.stacks[card.Deck()]
	d.stacks[card.Deck()] = append([]*EventCard{card}, stack...)
}

// Len returns the number of cards left in a stack
func (d *Deck) Len(kind DeckKind) int {
	return len(d.stacks[kind])
}

// Peek returns the stack from bottom to top without removing anything.
func (d *Deck) Peek(kind DeckKind) []*EventCard {
	stack := d.stacks[kind]
	result := make([]*EventCard, len(stack))
	copy(result, stack)
	return result
}
