package engine

// LegalActions enumerates every action the active player may take. The
// result is de-duplicated and deterministic for a given state; a nil or
// empty result means the player can only pass.
func (g *Game) LegalActions() []Action {
	s := &g.State
	if s.Phase == PhaseFinished {
		return nil
	}
	p := s.ActivePlayer
	active := &s.Players[p]

	// A finished player plays for their partner and nothing else.
	if s.PlayerFinished(p) {
		return dedupActions(g.teamSupportActions(p))
	}

	// Mandatory partner exchange before normal play in the exchange round.
	if s.RoundCount == 0 && !s.CardExchanged {
		actions := make([]Action, 0, len(active.Hand))
		for _, c := range active.Hand {
			actions = append(actions, NewExchange(c))
		}
		return dedupActions(actions)
	}

	// An in-progress split seven narrows the whole action space to its
	// sanctioned continuation legs.
	if s.ActiveCard != EmptyCard && s.ActiveCard.Rank() == RankSeven {
		if cont, ok := g.sevenContinuation(p, active); ok {
			return cont
		}
	}

	cards := active.Hand
	if s.ActiveCard != EmptyCard {
		cards = []Card{s.ActiveCard}
	}
	beginning := allMarblesHome(active)

	var actions []Action
	for _, card := range cards {
		switch card.Rank() {
		case RankJoker:
			g.jokerActions(&actions, card, p, beginning)
		case RankJack:
			g.jackActions(&actions, card, p)
		case RankAce, RankKing:
			g.kennelExitActions(&actions, card, p)
		default:
			if steps, ok := simpleForwardSteps(card.Rank()); ok {
				g.forwardActions(&actions, card, p, steps)
			}
		}
	}

	if s.ActiveCard != EmptyCard {
		kept := actions[:0]
		for _, a := range actions {
			if a.Card == s.ActiveCard {
				kept = append(kept, a)
			}
		}
		actions = kept
	}
	return dedupActions(actions)
}

// sevenContinuation returns the single continuation leg of an active
// split seven, recognized by the marble's position against the budget:
// the finish entry leg with a full budget, the finish-internal tail with
// two steps left. ok=false when neither leg matches.
func (g *Game) sevenContinuation(p uint8, active *PlayerState) ([]Action, bool) {
	left := g.StepsRemaining
	if left < 0 {
		left = 7
	}
	card := g.State.ActiveCard
	switch {
	case left == 7 && marbleAt(active, sevenEntryFrom(p)) != nil:
		return []Action{NewMove(card, sevenEntryFrom(p), FinishStart(p))}, true
	case left == sevenTailCost && marbleAt(active, FinishStart(p)) != nil:
		return []Action{NewMove(card, FinishStart(p), sevenTailTo(p))}, true
	}
	return nil, false
}

// teamSupportActions enumerates the moves a finished player may make for
// their partner: plain forward moves for every numeric rank, kennel exits
// for ace and king.
func (g *Game) teamSupportActions(p uint8) []Action {
	s := &g.State
	partner := PartnerOf(p)
	partnerState := &s.Players[partner]

	var actions []Action
	for _, card := range s.Players[p].Hand {
		if steps, ok := numericSteps(card.Rank()); ok {
			for _, m := range partnerState.Marbles {
				if !OnTrack(m.Pos) {
					continue
				}
				target := m.Pos + steps
				if target < TrackSize && !s.IsPathBlocked(m.Pos, target) {
					actions = append(actions, NewMove(card, m.Pos, target))
				}
			}
			continue
		}
		if card.Rank() == RankAce || card.Rank() == RankKing {
			if from := s.firstKennelMarble(partner); from != NoPosition {
				actions = append(actions, NewMove(card, from, StartCell(partner)))
			}
		}
	}
	return actions
}

// jokerActions offers the joker's kennel exit plus its activation as a
// stand-in for another card. While all of the player's marbles are home
// the stand-in is restricted to aces and kings.
func (g *Game) jokerActions(actions *[]Action, card Card, p uint8, beginning bool) {
	g.kennelExitActions(actions, card, p)

	if beginning {
		for suit := SuitSpades; suit <= SuitClubs; suit++ {
			*actions = append(*actions,
				NewJokerPick(card, NewCard(suit, RankAce)),
				NewJokerPick(card, NewCard(suit, RankKing)))
		}
		return
	}
	for suit := SuitSpades; suit <= SuitClubs; suit++ {
		for rank := RankTwo; rank <= RankAce; rank++ {
			*actions = append(*actions, NewJokerPick(card, NewCard(suit, rank)))
		}
	}
}

// jackActions offers position swaps: the player's on-track marbles
// against every non-safe opponent marble on the track, in both
// directions. Without any such pairing the jack may swap two of the
// player's own on-track marbles instead.
func (g *Game) jackActions(actions *[]Action, card Card, p uint8) {
	s := &g.State
	foundTarget := false
	for _, own := range s.Players[p].Marbles {
		if !OnTrack(own.Pos) {
			continue
		}
		for q := range s.Players {
			if uint8(q) == p {
				continue
			}
			for _, opp := range s.Players[q].Marbles {
				if opp.Safe || !OnTrack(opp.Pos) {
					continue
				}
				foundTarget = true
				*actions = append(*actions,
					NewMove(card, own.Pos, opp.Pos),
					NewMove(card, opp.Pos, own.Pos))
			}
		}
	}
	if foundTarget {
		return
	}

	var onTrack []uint8
	for _, m := range s.Players[p].Marbles {
		if OnTrack(m.Pos) {
			onTrack = append(onTrack, m.Pos)
		}
	}
	for i := 0; i < len(onTrack); i++ {
		for j := i + 1; j < len(onTrack); j++ {
			*actions = append(*actions,
				NewMove(card, onTrack[i], onTrack[j]),
				NewMove(card, onTrack[j], onTrack[i]))
		}
	}
}

// kennelExitActions offers the move out of the kennel onto the player's
// start cell. Path blocking never applies to the exit.
func (g *Game) kennelExitActions(actions *[]Action, card Card, p uint8) {
	if from := g.State.firstKennelMarble(p); from != NoPosition {
		*actions = append(*actions, NewMove(card, from, StartCell(p)))
	}
}

// forwardActions offers plain forward moves on the track, vetoed by safe
// marbles on the path and by the track boundary.
func (g *Game) forwardActions(actions *[]Action, card Card, p uint8, steps uint8) {
	s := &g.State
	for _, m := range s.Players[p].Marbles {
		if !OnTrack(m.Pos) {
			continue
		}
		target := m.Pos + steps
		if target < TrackSize && !s.IsPathBlocked(m.Pos, target) {
			*actions = append(*actions, NewMove(card, m.Pos, target))
		}
	}
}

// dedupActions removes duplicates, keeping the first occurrence of each
// (card, from, to, swap) tuple in insertion order.
func dedupActions(actions []Action) []Action {
	if len(actions) < 2 {
		return actions
	}
	seen := make(map[Action]struct{}, len(actions))
	out := actions[:0]
	for _, a := range actions {
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
