package engine

import (
	"errors"
	"fmt"
)

// ErrExceededSteps is returned when a split-seven sub-move asks for more
// steps than remain in the budget. The state is untouched on this path.
var ErrExceededSteps = errors.New("exceeded remaining steps for seven")

// ApplyAction advances the game by one play. A nil action is a pass: it
// aborts an unfinished split seven, folds a hand with no legal plays, and
// otherwise just yields the turn.
//
// Only ErrExceededSteps is ever returned. Actions that reference a card
// the player doesn't hold, a position without a matching marble, or a
// swap target without a marble are silently ignored per the engine's
// permissive contract: callers may probe speculatively, and only
// LegalActions output is guaranteed legal.
func (g *Game) ApplyAction(a *Action) error {
	s := &g.State
	if s.Phase == PhaseFinished {
		return nil
	}

	if a == nil {
		if s.ActiveCard != EmptyCard {
			if s.ActiveCard.Rank() == RankSeven {
				g.abortSeven()
				return nil
			}
			// A stand-in nobody can play is abandoned; the joker behind
			// it was already discarded at activation.
			s.ActiveCard = EmptyCard
		}
		if len(g.LegalActions()) == 0 {
			g.foldHand()
		}
		if g.StepsRemaining < 0 {
			g.advanceTurn()
		}
		return nil
	}

	p := s.ActivePlayer
	active := &s.Players[p]

	// Probes naming a card the player neither holds nor has in play are
	// ignored outright.
	if !handContains(active.Hand, a.Card) && a.Card != s.ActiveCard {
		return nil
	}

	switch {
	case a.IsExchange():
		g.exchangeCard(a.Card)
		return nil
	case a.IsJokerPick():
		g.activateJoker(a.Card, a.Swap)
		return nil
	}

	// A finished player's moves act on the partner's marbles.
	if s.PlayerFinished(p) {
		g.moveForPartner(a)
		g.advanceTurn()
		return nil
	}

	card := a.Card
	if s.ActiveCard != EmptyCard {
		card = s.ActiveCard
	}

	if card.Rank() == RankSeven {
		return g.applySeven(a, card)
	}
	if card.Rank() == RankJack {
		g.applyJackSwap(a, p)
	} else {
		g.applyMove(a, p)
	}

	// Consume the played card: single-use stand-ins clear, hand cards
	// move to the discard pile.
	if s.ActiveCard == EmptyCard {
		g.discardFromHand(p, a.Card)
	} else {
		s.ActiveCard = EmptyCard
	}

	if g.StepsRemaining < 0 {
		g.advanceTurn()
	}
	return nil
}

// exchangeCard hands the named card to the partner and advances the
// turn. The exchange never triggers round rollover: the exchange round
// completes before normal turn accounting resumes.
func (g *Game) exchangeCard(c Card) {
	s := &g.State
	p := s.ActivePlayer
	if removeFromHand(&s.Players[p].Hand, c) {
		partner := PartnerOf(p)
		s.Players[partner].Hand = append(s.Players[partner].Hand, c)
		s.CardExchanged = true
	}
	s.ActivePlayer = (s.ActivePlayer + 1) % NumPlayers
}

// activateJoker discards the joker and puts its declared stand-in in
// play. The turn does not advance: the stand-in still has to be played.
func (g *Game) activateJoker(joker, standIn Card) {
	s := &g.State
	if removeFromHand(&s.Players[s.ActivePlayer].Hand, joker) {
		s.DiscardPile = append(s.DiscardPile, joker)
		s.ActiveCard = standIn
	}
}

// moveForPartner relocates the partner marble at a.From. A missing
// marble is a silent no-op; the card is kept and the turn still passes.
func (g *Game) moveForPartner(a *Action) {
	s := &g.State
	p := s.ActivePlayer
	partner := PartnerOf(p)
	m := marbleAt(&s.Players[partner], a.From)
	if m == nil {
		return
	}
	m.Pos = a.To
	m.Safe = false
	g.discardFromHand(p, a.Card)
}

// applySeven performs one leg of a split seven. The step cost is the
// fixed finish-leg cost where the leg matches, the plain cell distance
// otherwise; marbles passed on the way are captured. The card stays in
// play until the budget is spent.
func (g *Game) applySeven(a *Action, card Card) error {
	s := &g.State
	p := s.ActivePlayer

	used := sevenSteps(p, a.From, a.To)
	remaining := g.StepsRemaining
	if remaining < 0 {
		remaining = 7
	}
	if int8(used) > remaining {
		return fmt.Errorf("%w: move %d→%d costs %d, %d left",
			ErrExceededSteps, a.From, a.To, used, remaining)
	}

	m := marbleAt(&s.Players[p], a.From)
	if m == nil {
		return nil
	}

	g.StepsRemaining = remaining
	s.ActiveCard = card

	for _, cell := range sevenPath(p, a.From, a.To) {
		g.captureAt(cell, m)
	}
	m.Pos = a.To
	m.Safe = a.To == StartCell(p)

	g.StepsRemaining -= int8(used)
	if g.StepsRemaining <= 0 {
		g.StepsRemaining = -1
		s.ActiveCard = EmptyCard
		g.discardFromHand(p, card)
		if s.TeamWon(p) {
			s.Phase = PhaseFinished
		}
		g.advanceTurn()
	}
	return nil
}

// sevenSteps prices one leg of a split seven for player p.
func sevenSteps(p, from, to uint8) uint8 {
	switch {
	case from == sevenEntryFrom(p) && to == FinishStart(p):
		return sevenEntryCost
	case from == FinishStart(p) && to == sevenTailTo(p):
		return sevenTailCost
	case to >= from:
		return to - from
	default:
		return from - to
	}
}

// sevenPath lists the cells a seven leg sweeps for captures, including
// the destination. The finish entry leg walks the four track cells up to
// the player's start (wrapping the track) before the finish cell itself.
func sevenPath(p, from, to uint8) []uint8 {
	if from == sevenEntryFrom(p) && to == FinishStart(p) {
		path := make([]uint8, 0, kennelSize+1)
		for i := uint8(1); i <= kennelSize; i++ {
			path = append(path, (from+i)%TrackSize)
		}
		return append(path, to)
	}
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	path := make([]uint8, 0, hi-lo)
	for cell := lo + 1; cell <= hi; cell++ {
		path = append(path, cell)
	}
	return path
}

// abortSeven is the forced cleanup when the player passes mid-split: the
// seven is discarded unfinished and the turn moves on.
func (g *Game) abortSeven() {
	s := &g.State
	g.discardFromHand(s.ActivePlayer, s.ActiveCard)
	s.ActiveCard = EmptyCard
	g.StepsRemaining = -1
	g.advanceTurn()
}

// applyJackSwap exchanges the positions of the player's marble at a.From
// and any marble at a.To. No capture happens; both marbles stay on the
// track. Missing marbles on either end make this a silent no-op.
func (g *Game) applyJackSwap(a *Action, p uint8) {
	s := &g.State
	own := marbleAt(&s.Players[p], a.From)
	if own == nil {
		return
	}
	for q := range s.Players {
		ps := &s.Players[q]
		for i := range ps.Marbles {
			other := &ps.Marbles[i]
			if other == own || other.Pos != a.To {
				continue
			}
			own.Pos, other.Pos = other.Pos, own.Pos
			return
		}
	}
}

// applyMove is the generic marble move: the occupant of the destination
// (if any) is captured, the marble lands, and a team victory ends the
// game. The marble is safe only on its own start cell, fresh out of the
// kennel.
func (g *Game) applyMove(a *Action, p uint8) {
	s := &g.State
	m := marbleAt(&s.Players[p], a.From)
	if m == nil {
		return
	}
	g.captureAt(a.To, m)
	m.Pos = a.To
	m.Safe = a.To == StartCell(p)

	if s.TeamWon(p) {
		s.Phase = PhaseFinished
	}
}

// captureAt sends any marble on the given cell (other than the mover)
// back to its owner's kennel, to the slot reserved for its index.
func (g *Game) captureAt(cell uint8, mover *Marble) {
	s := &g.State
	for q := range s.Players {
		ps := &s.Players[q]
		for slot := range ps.Marbles {
			m := &ps.Marbles[slot]
			if m == mover || m.Pos != cell {
				continue
			}
			m.Pos = KennelSlot(uint8(q), slot)
			m.Safe = false
		}
	}
}

// foldHand discards the entire hand of a player with no legal plays.
func (g *Game) foldHand() {
	s := &g.State
	hand := &s.Players[s.ActivePlayer].Hand
	s.DiscardPile = append(s.DiscardPile, *hand...)
	*hand = (*hand)[:0]
}

// advanceTurn rotates to the next player; wrapping back around to the
// round's starting player rolls the game into the next round.
func (g *Game) advanceTurn() {
	s := &g.State
	if s.Phase == PhaseFinished {
		return
	}
	s.ActivePlayer = (s.ActivePlayer + 1) % NumPlayers
	if s.ActivePlayer == s.StartingPlayer {
		g.beginRound()
	}
}

// discardFromHand moves one copy of c from the player's hand to the
// discard pile. Absent cards are ignored.
func (g *Game) discardFromHand(p uint8, c Card) {
	s := &g.State
	if removeFromHand(&s.Players[p].Hand, c) {
		s.DiscardPile = append(s.DiscardPile, c)
	}
}

func handContains(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// removeFromHand deletes the first copy of c, preserving hand order.
func removeFromHand(hand *[]Card, c Card) bool {
	for i, h := range *hand {
		if h == c {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}
