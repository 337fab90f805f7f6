package engine

import "sort"

// Suit constants — packed into the upper 4 bits of Card.
// Order follows the canonical deck listing (♠ ♥ ♦ ♣).
const (
	SuitSpades   uint8 = 0
	SuitHearts   uint8 = 1
	SuitDiamonds uint8 = 2
	SuitClubs    uint8 = 3
	SuitNone     uint8 = 4 // jokers carry no suit
)

// Rank constants — packed into the lower 4 bits of Card.
const (
	RankTwo   uint8 = 0
	RankThree uint8 = 1
	RankFour  uint8 = 2
	RankFive  uint8 = 3
	RankSix   uint8 = 4
	RankSeven uint8 = 5
	RankEight uint8 = 6
	RankNine  uint8 = 7
	RankTen   uint8 = 8
	RankJack  uint8 = 9
	RankQueen uint8 = 10
	RankKing  uint8 = 11
	RankAce   uint8 = 12
	RankJoker uint8 = 13
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Joker constructs one of the six suitless joker cards.
func Joker() Card { return NewCard(SuitNone, RankJoker) }

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

var suitStrings = [...]string{"♠", "♥", "♦", "♣", ""}

var rankStrings = [...]string{
	"2", "3", "4", "5", "6", "7", "8", "9", "10",
	"J", "Q", "K", "A", "JKR",
}

// String renders the card as suit symbol followed by rank, e.g. "♠A" or "JKR".
func (c Card) String() string {
	if c == EmptyCard {
		return "—"
	}
	s, r := c.Suit(), c.Rank()
	if int(s) >= len(suitStrings) || int(r) >= len(rankStrings) {
		return "?"
	}
	return suitStrings[s] + rankStrings[r]
}

// SortCards orders cards lexicographically on their rendered form.
// The order has no gameplay meaning; it exists for deterministic display
// and test output.
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].String() < cards[j].String()
	})
}

// Board population constants.
const (
	NumPlayers       = 4
	MarblesPerPlayer = 4
	DeckSize         = 110
	InitialHandSize  = 6
)

// PartnerOf returns the index of the given player's teammate.
// Teams are the player pairs (0,2) and (1,3).
func PartnerOf(p uint8) uint8 { return (p + 2) % NumPlayers }

// NoPosition marks an absent from/to position in an Action.
const NoPosition uint8 = 0xFF

// Marble is one of a player's four race marbles.
// Pos encodes the zone (track, kennel or finish, see board.go).
// Safe is true while the marble sits on its exit cell fresh from the
// kennel; a safe marble blocks every path across its cell.
type Marble struct {
	Pos  uint8
	Safe bool
}

// PlayerState holds one player's hand and marbles.
type PlayerState struct {
	Name    string
	Hand    []Card
	Marbles [MarblesPerPlayer]Marble
}

// Phase is the lifecycle phase of a game.
type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// GameState is the complete persisted state of a Dog game.
// It is a plain value apart from the card slices; Clone produces a fully
// independent copy. The xorshift RNG lives inside the state so that a
// cloned state replays deterministically.
type GameState struct {
	Phase          Phase
	RoundCount     uint16
	CardExchanged  bool
	StartingPlayer uint8
	ActivePlayer   uint8
	Players        [NumPlayers]PlayerState
	DrawPile       []Card
	DiscardPile    []Card
	ActiveCard     Card // EmptyCard when no card is in play across actions
	RNG            uint64
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() GameState {
	out := *s
	out.DrawPile = append([]Card(nil), s.DrawPile...)
	out.DiscardPile = append([]Card(nil), s.DiscardPile...)
	for i := range out.Players {
		out.Players[i].Hand = append([]Card(nil), s.Players[i].Hand...)
	}
	return out
}

// CardCount returns the total number of cards across hands, draw pile and
// discard pile. It is 110 for every reachable state.
func (s *GameState) CardCount() int {
	n := len(s.DrawPile) + len(s.DiscardPile)
	for i := range s.Players {
		n += len(s.Players[i].Hand)
	}
	return n
}

// Action is one legal (or speculatively probed) play.
//
// The three shapes, distinguished by the sentinel fields:
//   - move: From/To set, Swap == EmptyCard
//   - exchange declaration: From == To == NoPosition, Swap == EmptyCard
//   - joker activation: From == To == NoPosition, Swap set
//
// A pass is the absence of an Action (nil), not an Action value.
// Action is comparable; the generator relies on that for de-duplication.
type Action struct {
	Card Card
	From uint8
	To   uint8
	Swap Card
}

// NewMove builds a marble move or swap action.
func NewMove(card Card, from, to uint8) Action {
	return Action{Card: card, From: from, To: to, Swap: EmptyCard}
}

// NewExchange builds a card exchange declaration.
func NewExchange(card Card) Action {
	return Action{Card: card, From: NoPosition, To: NoPosition, Swap: EmptyCard}
}

// NewJokerPick builds a joker activation declaring standIn as the card
// the joker will be played as.
func NewJokerPick(joker, standIn Card) Action {
	return Action{Card: joker, From: NoPosition, To: NoPosition, Swap: standIn}
}

// IsExchange reports whether the action is an exchange declaration.
func (a Action) IsExchange() bool {
	return a.From == NoPosition && a.To == NoPosition && a.Swap == EmptyCard
}

// IsJokerPick reports whether the action is a joker activation.
func (a Action) IsJokerPick() bool {
	return a.From == NoPosition && a.To == NoPosition && a.Swap != EmptyCard
}
