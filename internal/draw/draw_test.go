package draw

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testTable(names ...string) *Table {
	rows := make([]Row, 0, len(names))
	for _, n := range names {
		rows = append(rows, Row{"nombre": n, "email": n + "@example.com"})
	}
	return &Table{Headers: []string{"nombre", "email"}, Rows: rows}
}

func fastEngine(seed int64) *Engine {
	e := NewEngine(rand.New(rand.NewSource(seed)))
	e.SpinInterval = time.Millisecond
	e.SpinDuration = 10 * time.Millisecond
	e.DecelPicks = 3
	e.DecelStep = time.Millisecond
	e.sleep = func(time.Duration) {}
	return e
}

func TestRunRejectsEmptyTable(t *testing.T) {
	e := fastEngine(1)

	err := e.Run(context.Background(), nil, func(Row) {}, func(Row) {})
	require.ErrorIs(t, err, ErrNoParticipants)

	err = e.Run(context.Background(), &Table{}, func(Row) {}, func(Row) {})
	require.ErrorIs(t, err, ErrNoParticipants)
}

func TestRunProducesPicksAndOneWinner(t *testing.T) {
	e := fastEngine(7)
	table := testTable("ana", "luis", "carmen")

	var picks, winners int
	err := e.Run(context.Background(), table,
		func(Row) { picks++ },
		func(r Row) {
			winners++
			require.Contains(t, []string{"ana", "luis", "carmen"}, r["nombre"])
		})
	require.NoError(t, err)
	require.Equal(t, 1, winners)
	require.Equal(t, 10+3, picks, "fast-phase picks plus deceleration picks")
}

func TestRunSecondStartIsRejected(t *testing.T) {
	e := fastEngine(3)
	table := testTable("ana", "luis")

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	e.sleep = func(time.Duration) {
		once.Do(func() {
			close(started)
			<-release
		})
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = e.Run(context.Background(), table, func(Row) {}, func(Row) {})
	}()

	<-started
	err := e.Run(context.Background(), table, func(Row) {}, func(Row) {})
	require.ErrorIs(t, err, ErrAlreadyRunning)

	close(release)
	wg.Wait()

	// After completion a fresh run is allowed again.
	e.sleep = func(time.Duration) {}
	require.NoError(t, e.Run(context.Background(), table, func(Row) {}, func(Row) {}))
}

func TestRunHonorsCancellation(t *testing.T) {
	e := fastEngine(5)
	ctx, cancel := context.WithCancel(context.Background())

	var picks int
	e.sleep = func(time.Duration) {
		if picks >= 2 {
			cancel()
		}
	}

	var winners int
	err := e.Run(ctx, testTable("ana", "luis"),
		func(Row) { picks++ },
		func(Row) { winners++ })
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, winners, "cancelled run must not declare a winner")
}

func TestPickWinnersUnique(t *testing.T) {
	rows := testTable("ana", "luis", "carmen", "pedro").Rows

	winners := PickWinners(rows, 2, true, rand.New(rand.NewSource(42)))
	require.Len(t, winners, 2)
	require.NotEqual(t, winners[0].Name, winners[1].Name, "unique draw must not repeat")
	require.Equal(t, 1, winners[0].Position)
	require.Equal(t, 2, winners[1].Position)

	for _, w := range winners {
		require.NotEmpty(t, w.DrawTicket)
		require.Contains(t, w.EmailMasked, "***")
	}
}

func TestPickWinnersUniqueCoveringEveryone(t *testing.T) {
	rows := testTable("ana", "luis").Rows
	winners := PickWinners(rows, 5, true, rand.New(rand.NewSource(1)))
	require.Len(t, winners, 2, "asking for more unique winners than rows returns everyone")
}

func TestPickWinnersWithReplacement(t *testing.T) {
	rows := testTable("ana").Rows
	winners := PickWinners(rows, 3, false, rand.New(rand.NewSource(1)))
	require.Len(t, winners, 3)
	for _, w := range winners {
		require.Equal(t, "ana", w.Name)
	}
}

func TestPickWinnersSeedReproducible(t *testing.T) {
	rows := testTable("ana", "luis", "carmen", "pedro", "maria").Rows

	a := PickWinners(rows, 3, true, rand.New(rand.NewSource(99)))
	b := PickWinners(rows, 3, true, rand.New(rand.NewSource(99)))

	for i := range a {
		require.Equal(t, a[i].Name, b[i].Name, "same seed must give the same order")
	}
}

func TestPickWinnersEmpty(t *testing.T) {
	require.Nil(t, PickWinners(nil, 1, true, nil))
	require.Nil(t, PickWinners(testTable("ana").Rows, 0, true, nil))
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"carlos@gmail.com", "ca***@gm***.com"},
		{"ab@cd.org", "a*@c*.org"},
		{"a@b.c", "a*@b*.c"},
		{"noatsign", "noatsign"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, MaskEmail(tt.in), tt.in)
	}
}
