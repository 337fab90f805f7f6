package engine

import (
	"reflect"
	"testing"
)

func TestCardPacking(t *testing.T) {
	for suit := SuitSpades; suit <= SuitClubs; suit++ {
		for rank := RankTwo; rank <= RankAce; rank++ {
			c := NewCard(suit, rank)
			if c.Suit() != suit || c.Rank() != rank {
				t.Fatalf("NewCard(%d,%d) unpacked to (%d,%d)", suit, rank, c.Suit(), c.Rank())
			}
		}
	}
	j := Joker()
	if j.Suit() != SuitNone || j.Rank() != RankJoker {
		t.Fatalf("Joker unpacked to (%d,%d)", j.Suit(), j.Rank())
	}
}

func TestCardString(t *testing.T) {
	cases := []struct {
		card Card
		want string
	}{
		{NewCard(SuitSpades, RankAce), "♠A"},
		{NewCard(SuitHearts, RankTen), "♥10"},
		{NewCard(SuitClubs, RankTwo), "♣2"},
		{Joker(), "JKR"},
		{EmptyCard, "—"},
	}
	for _, tc := range cases {
		if got := tc.card.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestSortCards(t *testing.T) {
	cards := []Card{
		NewCard(SuitHearts, RankKing),
		NewCard(SuitSpades, RankAce),
		NewCard(SuitSpades, RankTwo),
	}
	SortCards(cards)
	want := []Card{
		NewCard(SuitSpades, RankTwo),
		NewCard(SuitSpades, RankAce),
		NewCard(SuitHearts, RankKing),
	}
	if !reflect.DeepEqual(cards, want) {
		t.Fatalf("SortCards = %v, want %v", cards, want)
	}
}

func TestPartnerOf(t *testing.T) {
	pairs := [NumPlayers]uint8{2, 3, 0, 1}
	for p := uint8(0); p < NumPlayers; p++ {
		if got := PartnerOf(p); got != pairs[p] {
			t.Errorf("PartnerOf(%d) = %d, want %d", p, got, pairs[p])
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := NewGame(7)
	clone := g.State.Clone()

	g.State.DrawPile[0] = EmptyCard
	g.State.Players[0].Hand[0] = EmptyCard
	g.State.Players[1].Marbles[2].Pos = 33

	if clone.DrawPile[0] == EmptyCard {
		t.Error("clone shares draw pile backing array")
	}
	if clone.Players[0].Hand[0] == EmptyCard {
		t.Error("clone shares hand backing array")
	}
	if clone.Players[1].Marbles[2].Pos == 33 {
		t.Error("clone shares marble state")
	}
}

func TestActionPredicates(t *testing.T) {
	move := NewMove(NewCard(SuitSpades, RankFive), 10, 15)
	if move.IsExchange() || move.IsJokerPick() {
		t.Error("move classified as exchange or joker pick")
	}
	ex := NewExchange(NewCard(SuitHearts, RankNine))
	if !ex.IsExchange() || ex.IsJokerPick() {
		t.Error("exchange misclassified")
	}
	pick := NewJokerPick(Joker(), NewCard(SuitSpades, RankAce))
	if !pick.IsJokerPick() || pick.IsExchange() {
		t.Error("joker pick misclassified")
	}
}
