package pot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testSeat struct {
	name   string
	bet    int
	chips  int
	rating int
	won    int
}

func (t *testSeat) Bet() int {
	return t.bet
}

func (t *testSeat) TakeBet(amount int) {
	t.bet -= amount
}

func (t *testSeat) AllIn() bool {
	return t.chips == 0
}

func (t *testSeat) Rating() int {
	return t.rating
}

func (t *testSeat) Award(amount int) {
	t.chips += amount
	t.won += amount
}

func (t *testSeat) Name() string {
	return t.name
}

func (t *testSeat) HandName() string {
	return "a hand"
}

// table returns a ten seat table with the test seats placed at the given seat numbers
func table(seated map[int]*testSeat) []Seat {
	seats := make([]Seat, 10)
	for i, s := range seated {
		seats[i] = s
	}

	return seats
}

func TestPot_AddTableBets_EqualBets(t *testing.T) {
	a := assert.New(t)

	s1 := &testSeat{name: "one", bet: 10, chips: 90}
	s2 := &testSeat{name: "two", bet: 10, chips: 90}
	s3 := &testSeat{name: "three", bet: 10, chips: 90}
	seats := table(map[int]*testSeat{1: s1, 2: s2, 3: s3})

	p := New()
	p.AddTableBets(seats)

	a.Equal(Buckets{{Amount: 30, Contributors: []int{1, 2, 3}}}, p.Buckets())
	a.Equal(0, s1.bet)
	a.Equal(0, s2.bet)
	a.Equal(0, s3.bet)

	// next street keeps filling the same pot
	s1.bet, s2.bet, s3.bet = 20, 20, 20
	p.AddTableBets(seats)
	a.Equal(Buckets{{Amount: 90, Contributors: []int{1, 2, 3}}}, p.Buckets())
	a.Equal(90, p.Total())
}

func TestPot_AddTableBets_SidePots(t *testing.T) {
	a := assert.New(t)

	short := &testSeat{name: "short", bet: 50, chips: 0}
	mid := &testSeat{name: "mid", bet: 100, chips: 0}
	deep := &testSeat{name: "deep", bet: 100, chips: 400}
	deeper := &testSeat{name: "deeper", bet: 100, chips: 500}
	seats := table(map[int]*testSeat{0: short, 3: mid, 5: deep, 7: deeper})

	p := New()
	p.AddTableBets(seats)

	a.Equal(Buckets{
		{Amount: 200, Contributors: []int{0, 3, 5, 7}},
		{Amount: 150, Contributors: []int{3, 5, 7}},
	}, p.Buckets())

	// mid is all-in for exactly the second layer, so later bets open a third pot
	deep.bet, deeper.bet = 40, 40
	p.AddTableBets(seats)
	a.Equal(Buckets{
		{Amount: 200, Contributors: []int{0, 3, 5, 7}},
		{Amount: 150, Contributors: []int{3, 5, 7}},
		{Amount: 80, Contributors: []int{5, 7}},
	}, p.Buckets())
	a.Equal(430, p.Total())

	short.rating, mid.rating, deep.rating, deeper.rating = 400, 300, 200, 100
	messages := p.DistributeToWinners(seats, 3)

	a.Equal(200, short.won)
	a.Equal(150, mid.won)
	a.Equal(80, deep.won)
	a.Equal(0, deeper.won)
	a.Equal([]string{
		"deep wins side pot 2 (80) with a hand",
		"mid wins side pot 1 (150) with a hand",
		"short wins the main pot (200) with a hand",
	}, messages)

	// distribution resets the pot
	a.Equal(0, p.Total())
	a.Equal(Buckets{{Amount: 0, Contributors: []int{}}}, p.Buckets())
}

func TestPot_AddTableBets_AllInCallCapsPot(t *testing.T) {
	a := assert.New(t)

	allIn := &testSeat{name: "allIn", bet: 30, chips: 0}
	b := &testSeat{name: "b", bet: 30, chips: 70}
	c := &testSeat{name: "c", bet: 30, chips: 70}
	seats := table(map[int]*testSeat{1: allIn, 2: b, 3: c})

	p := New()
	p.AddTableBets(seats)
	a.Equal(Buckets{{Amount: 90, Contributors: []int{1, 2, 3}}}, p.Buckets())

	b.bet, c.bet = 20, 20
	p.AddTableBets(seats)
	a.Equal(Buckets{
		{Amount: 90, Contributors: []int{1, 2, 3}},
		{Amount: 40, Contributors: []int{2, 3}},
	}, p.Buckets())

	// the all-in player holds the best hand but cannot win chips it never covered
	allIn.rating, b.rating, c.rating = 10, 5, 1
	p.DistributeToWinners(seats, 1)
	a.Equal(90, allIn.won)
	a.Equal(40, b.won)
	a.Equal(0, c.won)
}

func TestPot_RemovePlayer(t *testing.T) {
	a := assert.New(t)

	folder := &testSeat{name: "folder", bet: 10, chips: 90}
	b := &testSeat{name: "b", bet: 30, chips: 70}
	c := &testSeat{name: "c", bet: 30, chips: 70}
	seats := table(map[int]*testSeat{1: folder, 2: b, 3: c})

	p := New()
	p.RemovePlayer(1)
	p.AddTableBets(seats)

	// chips stay in the pot, the folder does not
	a.Equal(Buckets{{Amount: 70, Contributors: []int{2, 3}}}, p.Buckets())
	a.Equal(0, folder.bet)

	// a later fold strips an existing contributor as well
	b.bet, c.bet = 10, 10
	p.AddTableBets(seats)
	p.RemovePlayer(2)
	a.Equal(Buckets{{Amount: 90, Contributors: []int{3}}}, p.Buckets())

	folder.rating, b.rating, c.rating = 100, 100, 1
	p.DistributeToWinners(seats, 1)
	a.Equal(0, folder.won)
	a.Equal(0, b.won)
	a.Equal(90, c.won)
}

func TestPot_AddTableBets_FoldedBetAboveLiveBets(t *testing.T) {
	a := assert.New(t)

	allIn := &testSeat{name: "allIn", bet: 10, chips: 0}
	folder := &testSeat{name: "folder", bet: 30, chips: 70}
	seats := table(map[int]*testSeat{0: allIn, 1: folder})

	p := New()
	p.RemovePlayer(1)
	p.AddTableBets(seats)

	a.Equal(40, p.Total())
	a.Equal(Buckets{{Amount: 40, Contributors: []int{0}}}, p.Buckets())

	seat, ok := p.SoleContender()
	a.True(ok)
	a.Equal(0, seat)
}

func TestPot_DeadMoney(t *testing.T) {
	a := assert.New(t)

	b := &testSeat{name: "b", bet: 20, chips: 80}
	c := &testSeat{name: "c", bet: 20, chips: 80}
	seats := table(map[int]*testSeat{2: b, 3: c})

	p := New()
	p.RemovePlayer(1)
	p.AddDeadMoney(1, 15)
	a.Equal(15, p.Total())

	p.AddTableBets(seats)
	a.Equal(Buckets{{Amount: 55, Contributors: []int{2, 3}}}, p.Buckets())

	// with no bets on the table the dead money still lands in the pot
	p.AddDeadMoney(1, 5)
	p.AddTableBets(seats)
	a.Equal(60, p.Total())
	a.Equal(60, p.Buckets().Total())
}

func TestPot_AddTableBets_UnmatchedFoldGoesToDeepestSidePot(t *testing.T) {
	a := assert.New(t)

	short := &testSeat{name: "short", bet: 10, chips: 0, rating: 9}
	medium := &testSeat{name: "medium", bet: 30, chips: 0, rating: 5}
	folder := &testSeat{name: "folder", bet: 50, chips: 50, rating: 100}
	seats := table(map[int]*testSeat{0: short, 1: medium, 2: folder})

	p := New()
	p.RemovePlayer(2)
	p.AddTableBets(seats)

	// the 20 nobody matched joins the last side pot even though it is capped
	a.Equal(Buckets{
		{Amount: 30, Contributors: []int{0, 1}},
		{Amount: 60, Contributors: []int{1}},
	}, p.Buckets())

	p.DistributeToWinners(seats, 1)
	a.Equal(30, short.won)
	a.Equal(60, medium.won)
	a.Equal(0, folder.won)
}

func TestPot_DeadMoneyIsLayeredLikeAFold(t *testing.T) {
	a := assert.New(t)

	short := &testSeat{name: "short", bet: 20, chips: 0, rating: 9}
	caller := &testSeat{name: "caller", bet: 100, chips: 400, rating: 5}
	seats := table(map[int]*testSeat{0: short, 2: caller})

	p := New()
	p.RemovePlayer(3)
	p.AddDeadMoney(3, 100)
	a.Equal(100, p.Total())

	p.AddTableBets(seats)
	a.Equal(220, p.Total())
	a.Equal(Buckets{
		{Amount: 60, Contributors: []int{0, 2}},
		{Amount: 160, Contributors: []int{2}},
	}, p.Buckets())

	p.DistributeToWinners(seats, 0)
	a.Equal(60, short.won, "an all-in only wins what it matched from the departed bet")
	a.Equal(160, caller.won)
	a.Equal(0, p.Total())
}

func TestPot_DistributeToWinners_OddChips(t *testing.T) {
	a := assert.New(t)

	newTie := func() (*testSeat, *testSeat, *testSeat, []Seat) {
		s2 := &testSeat{name: "two", bet: 34, chips: 100, rating: 7}
		s4 := &testSeat{name: "four", bet: 33, chips: 100, rating: 7}
		s6 := &testSeat{name: "six", bet: 33, chips: 100, rating: 7}
		return s2, s4, s6, table(map[int]*testSeat{2: s2, 4: s4, 6: s6})
	}

	s2, s4, s6, seats := newTie()
	p := New()
	p.AddTableBets(seats)
	a.Equal(Buckets{{Amount: 100, Contributors: []int{2, 4, 6}}}, p.Buckets())

	messages := p.DistributeToWinners(seats, 4)
	a.Equal(34, s4.won)
	a.Equal(33, s6.won)
	a.Equal(33, s2.won)
	a.Equal([]string{
		"four ties for the pot (34) with a hand",
		"six ties for the pot (33) with a hand",
		"two ties for the pot (33) with a hand",
	}, messages)

	// the walk wraps past the last seat
	s2, s4, s6, seats = newTie()
	p.AddTableBets(seats)
	p.DistributeToWinners(seats, 7)
	a.Equal(34, s2.won)
	a.Equal(33, s4.won)
	a.Equal(33, s6.won)

	// the reference seat itself is first in line
	s2, s4, s6, seats = newTie()
	s2.bet = 35
	p.AddTableBets(seats)
	a.Equal(101, p.Total())
	p.DistributeToWinners(seats, 6)
	a.Equal(34, s6.won)
	a.Equal(34, s2.won)
	a.Equal(33, s4.won)
}

func TestPot_DistributeToWinners_EmptySidePotRollsDown(t *testing.T) {
	a := assert.New(t)

	allIn := &testSeat{name: "allIn", bet: 10, chips: 0, rating: 1}
	b := &testSeat{name: "b", bet: 50, chips: 50, rating: 9}
	c := &testSeat{name: "c", bet: 50, chips: 50, rating: 9}
	seats := table(map[int]*testSeat{0: allIn, 1: b, 2: c})

	p := New()
	p.AddTableBets(seats)
	p.RemovePlayer(1)
	p.RemovePlayer(2)

	p.DistributeToWinners(seats, 0)
	a.Equal(110, allIn.won)
}

func TestPot_GiveToWinner(t *testing.T) {
	a := assert.New(t)

	allIn := &testSeat{name: "allIn", bet: 10, chips: 0}
	b := &testSeat{name: "b", bet: 50, chips: 50}
	c := &testSeat{name: "c", bet: 50, chips: 50}
	seats := table(map[int]*testSeat{0: allIn, 1: b, 2: c})

	p := New()
	p.AddTableBets(seats)
	p.RemovePlayer(0)
	p.RemovePlayer(2)

	seat, ok := p.SoleContender()
	a.True(ok)
	a.Equal(1, seat)

	a.Equal([]string{"b wins the pot (110)"}, p.GiveToWinner(seats, seat))
	a.Equal(110, b.won)
	a.Equal(0, p.Total())

	_, ok = p.SoleContender()
	a.False(ok)
}
