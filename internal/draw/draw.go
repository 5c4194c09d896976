package draw

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoParticipants = errors.New("no participants loaded")
	ErrAlreadyRunning = errors.New("draw already running")
)

// Engine runs the show-style draw animation: rapid random highlights that
// decelerate into a final pick. Every pick, the winner included, is drawn
// independently and uniformly with replacement; the deceleration is purely
// cosmetic and does not bias selection.
type Engine struct {
	SpinInterval time.Duration // delay between picks in the fast phase
	SpinDuration time.Duration // total length of the fast phase
	DecelPicks   int           // extra picks with linearly growing delay
	DecelStep    time.Duration // delay increment per deceleration pick

	mu      sync.Mutex
	running bool
	rng     *rand.Rand
	sleep   func(time.Duration)
}

// NewEngine returns an Engine with the stock timings: 80ms picks for 5s,
// then 12 decelerating picks.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		SpinInterval: 80 * time.Millisecond,
		SpinDuration: 5 * time.Second,
		DecelPicks:   12,
		DecelStep:    60 * time.Millisecond,
		rng:          rng,
		sleep:        time.Sleep,
	}
}

// Run animates a draw over the table, reporting every transient highlight
// through onPick and the final selection through onWinner. A Run issued
// while another is in progress returns ErrAlreadyRunning and does nothing.
func (e *Engine) Run(ctx context.Context, table *Table, onPick, onWinner func(Row)) error {
	if table == nil || len(table.Rows) == 0 {
		return ErrNoParticipants
	}

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	pick := func() Row {
		e.mu.Lock()
		defer e.mu.Unlock()
		return table.Rows[e.rng.Intn(len(table.Rows))]
	}

	// Fast phase: uniform picks at a fixed cadence.
	spins := int(e.SpinDuration / e.SpinInterval)
	for i := 0; i < spins; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		onPick(pick())
		e.sleep(e.SpinInterval)
	}

	// Deceleration: same uniform picks, linearly growing delay.
	for i := 1; i <= e.DecelPicks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		onPick(pick())
		e.sleep(e.SpinInterval + time.Duration(i)*e.DecelStep)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	onWinner(pick())
	return nil
}

// Winner is one selected participant, with position and a masked email
// suitable for public display.
type Winner struct {
	Position    int
	Name        string
	Email       string
	EmailMasked string
	DrawTicket  string
}

// PickWinners selects n winners from the rows. With unique=true winners are
// sampled without replacement (n covering everyone returns the whole list);
// otherwise repeats are possible. Rows are expected to carry a "nombre" or
// "name" column and an "email" column.
func PickWinners(rows []Row, n int, unique bool, rng *rand.Rand) []Winner {
	if len(rows) == 0 || n < 1 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var chosen []Row
	if unique {
		if n >= len(rows) {
			chosen = rows
		} else {
			pool := make([]Row, len(rows))
			copy(pool, rows)
			rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
			chosen = pool[:n]
		}
	} else {
		chosen = make([]Row, 0, n)
		for i := 0; i < n; i++ {
			chosen = append(chosen, rows[rng.Intn(len(rows))])
		}
	}

	winners := make([]Winner, 0, len(chosen))
	for i, row := range chosen {
		name := row["nombre"]
		if name == "" {
			name = row["name"]
		}
		email := row["email"]
		winners = append(winners, Winner{
			Position:    i + 1,
			Name:        name,
			Email:       email,
			EmailMasked: MaskEmail(email),
			DrawTicket:  uuid.NewString(),
		})
	}
	return winners
}

// MaskEmail hides most of the local part and the first domain label:
// "carlos@gmail.com" becomes "ca***@gm***.com". Strings without "@" are
// returned unchanged.
func MaskEmail(email string) string {
	if email == "" || !strings.Contains(email, "@") {
		return email
	}

	mask := func(s string) string {
		r := []rune(s)
		if len(r) <= 2 {
			if len(r) == 0 {
				return "*"
			}
			return string(r[:1]) + "*"
		}
		return string(r[:2]) + "***"
	}

	parts := strings.SplitN(email, "@", 2)
	domParts := strings.Split(parts[1], ".")
	domParts[0] = mask(domParts[0])
	return mask(parts[0]) + "@" + strings.Join(domParts, ".")
}
