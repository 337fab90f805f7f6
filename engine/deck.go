package engine

// NewDeck builds the full 110-card population: two standard 52-card decks
// plus six jokers.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for copies := 0; copies < 2; copies++ {
		for suit := SuitSpades; suit <= SuitClubs; suit++ {
			for rank := RankTwo; rank <= RankAce; rank++ {
				deck = append(deck, NewCard(suit, rank))
			}
		}
		for j := 0; j < 3; j++ {
			deck = append(deck, Joker())
		}
	}
	return deck
}

// simpleForwardSteps returns the forward distance of the plain movement
// ranks. Four, seven, and the face cards resolve through their own paths
// and report ok=false here.
func simpleForwardSteps(rank uint8) (uint8, bool) {
	switch rank {
	case RankTwo, RankThree, RankFive, RankSix, RankEight, RankNine, RankTen:
		return rank + 2, true
	}
	return 0, false
}

// numericSteps returns the forward distance of any numeric rank, including
// four and seven. Team-support moves treat every numeric card as a plain
// forward move.
func numericSteps(rank uint8) (uint8, bool) {
	if rank <= RankTen {
		return rank + 2, true
	}
	return 0, false
}
