package engine

import (
	"reflect"
	"testing"
)

func containsAction(actions []Action, want Action) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

func TestKennelExitAction(t *testing.T) {
	g := NewGame(1)
	ace := NewCard(SuitSpades, RankAce)
	g.State.Players[0].Hand = []Card{ace}

	actions := g.LegalActions()
	want := NewMove(ace, KennelStart(0), StartCell(0))
	if len(actions) != 1 || actions[0] != want {
		t.Fatalf("LegalActions = %v, want exactly %v", actions, want)
	}
}

func TestForwardMoveAndBlocking(t *testing.T) {
	g := NewGame(1)
	five := NewCard(SuitSpades, RankFive)
	g.State.Players[0].Hand = []Card{five}
	g.State.Players[0].Marbles[0].Pos = 10

	actions := g.LegalActions()
	want := NewMove(five, 10, 15)
	if !containsAction(actions, want) {
		t.Fatalf("LegalActions = %v, missing %v", actions, want)
	}

	// A safe marble between 10 and 15 vetoes the move.
	g.State.Players[2].Marbles[0] = Marble{Pos: 12, Safe: true}
	actions = g.LegalActions()
	if containsAction(actions, want) {
		t.Fatalf("blocked move %v still offered in %v", want, actions)
	}
}

func TestExchangeRoundActions(t *testing.T) {
	g := NewGame(1)
	s := &g.State
	s.RoundCount = 0
	c1 := NewCard(SuitSpades, RankFive)
	c2 := NewCard(SuitHearts, RankKing)
	s.Players[0].Hand = []Card{c1, c2}

	actions := g.LegalActions()
	want := []Action{NewExchange(c1), NewExchange(c2)}
	if !reflect.DeepEqual(actions, want) {
		t.Fatalf("LegalActions = %v, want %v", actions, want)
	}

	s.CardExchanged = true
	for _, a := range g.LegalActions() {
		if a.IsExchange() {
			t.Fatalf("exchange %v offered after the exchange already happened", a)
		}
	}
}

func TestJokerBeginningRestriction(t *testing.T) {
	g := NewGame(1)
	g.State.Players[0].Hand = []Card{Joker()}

	actions := g.LegalActions()
	// One kennel exit plus ace and king stand-ins in four suits each.
	if len(actions) != 9 {
		t.Fatalf("got %d actions, want 9: %v", len(actions), actions)
	}
	for _, a := range actions {
		if !a.IsJokerPick() {
			continue
		}
		if r := a.Swap.Rank(); r != RankAce && r != RankKing {
			t.Errorf("beginning-phase stand-in %v is neither ace nor king", a.Swap)
		}
	}

	// Once a marble is out, any non-joker card may be declared.
	g.State.Players[0].Marbles[0].Pos = 5
	actions = g.LegalActions()
	picks := 0
	for _, a := range actions {
		if !a.IsJokerPick() {
			continue
		}
		picks++
		if a.Swap.Rank() == RankJoker {
			t.Errorf("joker offered as its own stand-in: %v", a)
		}
	}
	if picks != 4*13 {
		t.Fatalf("got %d stand-in picks, want %d", picks, 4*13)
	}
}

func TestSevenContinuationLegs(t *testing.T) {
	g := NewGame(1)
	s := &g.State
	seven := NewCard(SuitSpades, RankSeven)
	s.ActivePlayer = 1
	s.Players[1].Hand = []Card{seven}
	s.Players[1].Marbles[0].Pos = 12
	s.ActiveCard = seven
	g.StepsRemaining = 7

	actions := g.LegalActions()
	want := NewMove(seven, 12, 76)
	if len(actions) != 1 || actions[0] != want {
		t.Fatalf("LegalActions = %v, want exactly %v", actions, want)
	}

	s.Players[1].Marbles[0].Pos = 76
	g.StepsRemaining = 2
	actions = g.LegalActions()
	want = NewMove(seven, 76, 78)
	if len(actions) != 1 || actions[0] != want {
		t.Fatalf("LegalActions = %v, want exactly %v", actions, want)
	}
}

func TestActiveCardFilter(t *testing.T) {
	g := NewGame(1)
	s := &g.State
	ace := NewCard(SuitSpades, RankAce)
	s.Players[0].Hand = []Card{NewCard(SuitHearts, RankFive), NewCard(SuitClubs, RankKing)}
	s.ActiveCard = ace

	actions := g.LegalActions()
	if len(actions) == 0 {
		t.Fatal("no actions for the active card")
	}
	for _, a := range actions {
		if a.Card != ace {
			t.Fatalf("action %v does not reference the active card", a)
		}
	}
}

func TestTeamSupportActions(t *testing.T) {
	g := NewGame(1)
	s := &g.State
	for slot := 0; slot < MarblesPerPlayer; slot++ {
		s.Players[0].Marbles[slot].Pos = FinishStart(0) + uint8(slot)
	}
	five := NewCard(SuitSpades, RankFive)
	ace := NewCard(SuitHearts, RankAce)
	s.Players[0].Hand = []Card{five, ace}
	s.Players[2].Marbles[0].Pos = 40

	actions := g.LegalActions()
	wantMove := NewMove(five, 40, 45)
	wantExit := NewMove(ace, KennelStart(2)+1, StartCell(2))
	if !containsAction(actions, wantMove) {
		t.Errorf("LegalActions = %v, missing partner move %v", actions, wantMove)
	}
	if !containsAction(actions, wantExit) {
		t.Errorf("LegalActions = %v, missing partner exit %v", actions, wantExit)
	}
	for _, a := range actions {
		if a.From == FinishStart(0) || InFinish(0, a.From) {
			t.Errorf("finished player offered a self-move: %v", a)
		}
	}
}

func TestJackActions(t *testing.T) {
	g := NewGame(1)
	s := &g.State
	jack := NewCard(SuitSpades, RankJack)
	s.Players[0].Hand = []Card{jack}
	s.Players[0].Marbles[0].Pos = 5
	s.Players[1].Marbles[0] = Marble{Pos: 20}
	s.Players[1].Marbles[1] = Marble{Pos: 30, Safe: true}

	actions := g.LegalActions()
	if !containsAction(actions, NewMove(jack, 5, 20)) || !containsAction(actions, NewMove(jack, 20, 5)) {
		t.Fatalf("swap with unsafe opponent missing from %v", actions)
	}
	for _, a := range actions {
		if a.From == 30 || a.To == 30 {
			t.Errorf("safe opponent marble offered as swap target: %v", a)
		}
	}

	// No opponent on the track: fall back to the player's own pairs.
	s.Players[1].Marbles[0] = Marble{Pos: KennelSlot(1, 0)}
	s.Players[1].Marbles[1] = Marble{Pos: KennelSlot(1, 1)}
	s.Players[0].Marbles[1].Pos = 9
	actions = g.LegalActions()
	want := []Action{NewMove(jack, 5, 9), NewMove(jack, 9, 5)}
	if !reflect.DeepEqual(actions, want) {
		t.Fatalf("own-pair fallback = %v, want %v", actions, want)
	}
}

func TestLegalActionsDeterministic(t *testing.T) {
	g := NewGame(42)
	first := g.LegalActions()
	second := g.LegalActions()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same state, different actions: %v vs %v", first, second)
	}
}

func TestLegalActionsDedup(t *testing.T) {
	g := NewGame(1)
	five := NewCard(SuitSpades, RankFive)
	g.State.Players[0].Hand = []Card{five, five}
	g.State.Players[0].Marbles[0].Pos = 10

	actions := g.LegalActions()
	if len(actions) != 1 {
		t.Fatalf("duplicate cards produced duplicate actions: %v", actions)
	}
}
