// Package engine implements the Dog marble race rules.
//
// The package is a self-contained state machine: LegalActions enumerates
// every play available to the active player and ApplyAction advances the
// state by one chosen play (or a pass). A driving loop — server, CLI or
// test harness — alternates the two calls; the engine itself owns no
// goroutines, timers or I/O.
package engine

// Game couples a GameState with the turn-local bookkeeping of a split
// seven. StepsRemaining lives outside the persisted state but must travel
// with it: two concurrently hosted games each need their own budget.
type Game struct {
	State GameState

	// StepsRemaining is the unspent budget of an in-progress rank-7
	// split, or -1 while no split is active.
	StepsRemaining int8
}

// NewGame creates a game seeded for its shuffles and deals the first
// round: six cards per player, all marbles in their kennels.
func NewGame(seed uint64) *Game {
	g := &Game{}
	g.State.RNG = seed
	if g.State.RNG == 0 {
		g.State.RNG = 1 // xorshift can't start at 0
	}
	g.Reset()
	return g
}

// Reset re-deals a fresh game, keeping the RNG stream.
func (g *Game) Reset() {
	rng := g.State.RNG
	g.State = GameState{
		Phase:      PhaseRunning,
		RoundCount: 1,
		ActiveCard: EmptyCard,
		RNG:        rng,
	}
	g.StepsRemaining = -1

	s := &g.State
	s.DrawPile = NewDeck()
	s.shuffleDraw()

	names := [NumPlayers]string{"Player 1", "Player 2", "Player 3", "Player 4"}
	for p := uint8(0); p < NumPlayers; p++ {
		s.Players[p].Name = names[p]
		for slot := 0; slot < MarblesPerPlayer; slot++ {
			s.Players[p].Marbles[slot] = Marble{Pos: KennelSlot(p, slot)}
		}
	}
	s.deal(InitialHandSize)
}

// SetState replaces the game state with a deep copy of the given one.
func (g *Game) SetState(s GameState) { g.State = s.Clone() }

// GetState returns a deep copy of the current game state.
func (g *Game) GetState() GameState { return g.State.Clone() }

// PlayerView returns the state as the given player may see it: every
// other player's hand is concealed. Marbles, piles and round bookkeeping
// are public knowledge.
func (g *Game) PlayerView(viewer uint8) GameState {
	view := g.State.Clone()
	for p := range view.Players {
		if uint8(p) != viewer {
			view.Players[p].Hand = nil
		}
	}
	return view
}

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (s *GameState) nextRand() uint64 {
	x := s.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (s *GameState) randN(n uint64) uint64 {
	return s.nextRand() % n
}

// shuffleDraw runs a Fisher-Yates shuffle over the draw pile.
func (s *GameState) shuffleDraw() {
	for i := len(s.DrawPile) - 1; i > 0; i-- {
		j := int(s.randN(uint64(i + 1)))
		s.DrawPile[i], s.DrawPile[j] = s.DrawPile[j], s.DrawPile[i]
	}
}

// deal pops n cards off the draw pile into each hand, in player order.
func (s *GameState) deal(n int) {
	for p := range s.Players {
		for c := 0; c < n && len(s.DrawPile) > 0; c++ {
			last := len(s.DrawPile) - 1
			s.Players[p].Hand = append(s.Players[p].Hand, s.DrawPile[last])
			s.DrawPile = s.DrawPile[:last]
		}
	}
}

// cardsForRound returns the hand size dealt for a round: 6 for round one,
// then one fewer each round down to 2, restarting at 6 every fifth round.
func cardsForRound(round uint16) int {
	if round == 0 {
		return InitialHandSize
	}
	n := InitialHandSize - int((round-1)%5)
	if n < 2 {
		n = 2
	}
	return n
}

// beginRound rolls the game over into the next round: the start rotates,
// the exchange flag resets, unplayed cards are discarded, the discard
// pile is reshuffled into the draw pile when it cannot cover the deal,
// and every player receives the round's hand.
func (g *Game) beginRound() {
	s := &g.State
	s.RoundCount++
	s.CardExchanged = false
	s.StartingPlayer = (s.StartingPlayer + 1) % NumPlayers
	s.ActivePlayer = s.StartingPlayer

	n := cardsForRound(s.RoundCount)

	// Cards left in hands at the round boundary go to the discard pile;
	// every card stays in the 110-card population.
	for p := range s.Players {
		s.DiscardPile = append(s.DiscardPile, s.Players[p].Hand...)
		s.Players[p].Hand = s.Players[p].Hand[:0]
	}

	if len(s.DrawPile) < n*NumPlayers {
		s.DrawPile = append(s.DrawPile, s.DiscardPile...)
		s.DiscardPile = nil
		s.shuffleDraw()
	}
	s.deal(n)
}
