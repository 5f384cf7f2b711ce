package grid

import (
	"errors"
	"reflect"
	"testing"
)

// scriptedRand replays fixed values. Once a script runs out it keeps
// returning the fallback (0.9 for floats so tiles are 2s, 0 for ints).
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.9
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

type moveEvent struct {
	srcRow, srcCol, dstRow, dstCol int
}

type resultEvent struct {
	kind  ResultKind
	value int
}

// recorder is a headless Display that keeps every notification.
// It also checks that new tiles only land on cells that were empty.
type recorder struct {
	t        *testing.T
	clears   int
	newTiles []Cell
	moves    []moveEvent
	results  []resultEvent
	last     Grid
}

func newRecorder(t *testing.T) *recorder {
	return &recorder{t: t}
}

func (r *recorder) Clear() {
	r.clears++
	r.last = Grid{}
}

func (r *recorder) NewTile(g Grid, row, col int) {
	if r.last.cells != nil && r.last.At(row, col) != 0 {
		r.t.Errorf("NewTile at (%d,%d) overwrote value %d", row, col, r.last.At(row, col))
	}
	r.newTiles = append(r.newTiles, Cell{Row: row, Col: col})
	r.last = g.Clone()
}

func (r *recorder) MoveTile(g Grid, srcRow, srcCol, dstRow, dstCol int) {
	r.moves = append(r.moves, moveEvent{srcRow, srcCol, dstRow, dstCol})
	r.last = g.Clone()
}

func (r *recorder) Result(kind ResultKind, value int) {
	r.results = append(r.results, resultEvent{kind, value})
}

func (r *recorder) reset() {
	r.clears = 0
	r.newTiles = nil
	r.moves = nil
	r.results = nil
}

// newTestEngine builds an active engine holding the given layout.
func newTestEngine(t *testing.T, layout [][]int, opts ...Option) (*Engine, *recorder) {
	t.Helper()

	g, err := FromRows(layout)
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}

	rec := newRecorder(t)
	opts = append([]Option{WithSize(g.Rows(), g.Cols()), WithRand(&scriptedRand{})}, opts...)
	e, err := New(rec, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	e.grid = g
	e.state = StateActive
	rec.last = g.Clone()
	return e, rec
}

// moveWithoutSpawn applies a move and removes the spawned tile, returning
// the grid as the slide pass left it.
func moveWithoutSpawn(t *testing.T, layout [][]int, dir Direction) ([][]int, bool) {
	t.Helper()

	e, rec := newTestEngine(t, layout)
	moved, err := e.Move(dir)
	if err != nil {
		t.Fatalf("Move(%s) failed: %v", dir, err)
	}

	switch {
	case moved && len(rec.newTiles) != 1:
		t.Fatalf("effective move spawned %d tiles, want 1", len(rec.newTiles))
	case !moved && len(rec.newTiles) != 0:
		t.Fatalf("ineffective move spawned %d tiles, want 0", len(rec.newTiles))
	}

	g := e.Grid()
	if moved {
		spawned := rec.newTiles[0]
		g.set(spawned.Row, spawned.Col, 0)
	}
	return g.Values(), moved
}

func TestMoveRowLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		moved    bool
	}{
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, true},
		{"three equal tiles merge once", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, true},
		{"slide then merge", []int{0, 2, 2, 4}, []int{4, 4, 0, 0}, true},
		{"two pairs", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, true},
		{"merged cell not absorbed again", []int{4, 4, 8, 0}, []int{8, 8, 0, 0}, true},
		{"merge across gap", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, true},
		{"single tile slides", []int{0, 4, 0, 0}, []int{4, 0, 0, 0}, true},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, false},
		{"already packed", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := [][]int{tt.input, {0, 0, 0, 0}}
			got, moved := moveWithoutSpawn(t, layout, DirLeft)
			if !reflect.DeepEqual(got[0], tt.expected) {
				t.Errorf("Move(left) %v = %v, want %v", tt.input, got[0], tt.expected)
			}
			if moved != tt.moved {
				t.Errorf("Move(left) %v moved = %v, want %v", tt.input, moved, tt.moved)
			}
		})
	}
}

func TestMoveAllDirections(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		input    [][]int
		expected [][]int
	}{
		{
			name: "left",
			dir:  DirLeft,
			input: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
		},
		{
			name: "right",
			dir:  DirRight,
			input: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
		},
		{
			name: "up",
			dir:  DirUp,
			input: [][]int{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: [][]int{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
		},
		{
			name: "down",
			dir:  DirDown,
			input: [][]int{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
		},
		{
			name: "right on a non-square grid",
			dir:  DirRight,
			input: [][]int{
				{2, 0, 2, 0, 4, 4},
				{0, 0, 0, 0, 0, 8},
			},
			expected: [][]int{
				{0, 0, 0, 0, 4, 8},
				{0, 0, 0, 0, 0, 8},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := moveWithoutSpawn(t, tt.input, tt.dir)
			if !moved {
				t.Fatalf("Move(%s) should be effective", tt.dir)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Move(%s): got\n%v\nwant\n%v", tt.dir, got, tt.expected)
			}
		})
	}
}

func TestMoveTileNotifications(t *testing.T) {
	e, rec := newTestEngine(t, [][]int{
		{2, 2, 2, 0},
		{0, 0, 0, 0},
	})

	if _, err := e.Move(DirLeft); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}

	// (0,0) stays put and is not reported.
	expected := []moveEvent{
		{0, 1, 0, 0},
		{0, 2, 0, 1},
	}
	if !reflect.DeepEqual(rec.moves, expected) {
		t.Errorf("MoveTile events = %v, want %v", rec.moves, expected)
	}
}

func TestIneffectiveMoveDoesNotSpawn(t *testing.T) {
	layout := [][]int{
		{4, 2, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	e, rec := newTestEngine(t, layout)
	before := e.Grid()

	moved, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if moved {
		t.Error("Move(left) on a packed board should not be effective")
	}
	if len(rec.newTiles) != 0 || len(rec.moves) != 0 {
		t.Errorf("expected no notifications, got %d new tiles and %d moves", len(rec.newTiles), len(rec.moves))
	}
	if !e.Grid().Equal(before) {
		t.Errorf("grid changed:\n%v\nwant\n%v", e.Grid(), before)
	}
	if e.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", e.Moves())
	}
	if e.State() != StateActive {
		t.Errorf("State() = %s, want active", e.State())
	}
}

func TestClearResetsEngine(t *testing.T) {
	e, rec := newTestEngine(t, [][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{2, 4, 8, 16},
		{32, 64, 128, 256},
	})
	e.goal = 8192
	e.state = StateEnded
	e.moves = 12

	e.clear()

	for _, row := range e.Grid().Values() {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("after clear grid should be empty, got\n%v", e.Grid())
			}
		}
	}
	if e.State() != StateActive {
		t.Errorf("State() = %s, want active", e.State())
	}
	if e.Goal() != DefaultGoal {
		t.Errorf("Goal() = %d, want %d", e.Goal(), DefaultGoal)
	}
	if e.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", e.Moves())
	}
	if rec.clears != 1 {
		t.Errorf("Display.Clear called %d times, want 1", rec.clears)
	}
}

func TestStartSpawnsStartTiles(t *testing.T) {
	rec := newRecorder(t)
	e, err := New(rec, WithSeed(7), WithStartTiles(3))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if e.State() != StateIdle {
		t.Fatalf("new engine State() = %s, want idle", e.State())
	}

	e.Start()

	if rec.clears != 1 {
		t.Errorf("Display.Clear called %d times, want 1", rec.clears)
	}
	if len(rec.newTiles) != 3 {
		t.Errorf("Start spawned %d tiles, want 3", len(rec.newTiles))
	}
	if got := len(e.Grid().EmptyCells()); got != 16-3 {
		t.Errorf("empty cells after Start = %d, want 13", got)
	}
	if e.State() != StateActive {
		t.Errorf("State() = %s, want active", e.State())
	}
}

func TestSpawnValueSelection(t *testing.T) {
	tests := []struct {
		name  string
		roll  float64
		value int
	}{
		{"low roll spawns four", 0.0, 4},
		{"just below threshold spawns four", 0.29, 4},
		{"threshold spawns two", 0.3, 2},
		{"high roll spawns two", 0.99, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngine(t, [][]int{{0, 0}, {0, 0}})
			e.rng = &scriptedRand{floats: []float64{tt.roll}, ints: []int{3}}

			e.spawnRandomTile()

			if len(rec.newTiles) != 1 {
				t.Fatalf("spawned %d tiles, want 1", len(rec.newTiles))
			}
			if rec.newTiles[0] != (Cell{Row: 1, Col: 1}) {
				t.Errorf("spawned at %v, want (1,1)", rec.newTiles[0])
			}
			if got := e.grid.At(1, 1); got != tt.value {
				t.Errorf("spawned value = %d, want %d", got, tt.value)
			}
		})
	}
}

func TestSpawnFourDistribution(t *testing.T) {
	e, err := New(nil, WithSize(100, 100), WithStartTiles(0), WithSeed(2048))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Start()

	const spawns = 9999
	for range spawns {
		e.spawnRandomTile()
	}

	fours := 0
	for _, v := range e.grid.cells {
		if v == 4 {
			fours++
		}
	}

	ratio := float64(fours) / spawns
	if ratio < 0.27 || ratio > 0.33 {
		t.Errorf("share of fours = %.3f, want about %.1f", ratio, DefaultSpawnFourProbability)
	}
}

func TestSpawnLandsOnEmptyCell(t *testing.T) {
	e, rec := newTestEngine(t, [][]int{
		{2, 4, 8},
		{16, 0, 32},
		{64, 128, 256},
	})
	e.rng = &scriptedRand{ints: []int{5}}

	e.spawnRandomTile()

	if len(rec.newTiles) != 1 || rec.newTiles[0] != (Cell{Row: 1, Col: 1}) {
		t.Fatalf("NewTile events = %v, want [(1,1)]", rec.newTiles)
	}
	expected := [][]int{
		{2, 4, 8},
		{16, 2, 32},
		{64, 128, 256},
	}
	if got := e.grid.Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("grid = %v, want %v", got, expected)
	}
}

func TestSpawnOnFullGridPanics(t *testing.T) {
	e, _ := newTestEngine(t, [][]int{
		{2, 2},
		{2, 2},
	})

	defer func() {
		if recover() == nil {
			t.Error("spawn on a full grid should panic")
		}
	}()
	e.spawnRandomTile()
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rec := newRecorder(t)
	e, err := New(rec, WithSeed(99))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Start()

	for i := 0; i < 2000 && e.State() != StateEnded; i++ {
		if e.State() == StatePaused {
			e.Pause(true)
		}

		before := e.Grid()
		rec.reset()
		moved, err := e.Move(Directions[i%len(Directions)])
		if err != nil {
			t.Fatalf("Move() failed: %v", err)
		}

		if moved && len(rec.newTiles) != 1 {
			t.Fatalf("move %d: effective move spawned %d tiles", i, len(rec.newTiles))
		}
		if !moved {
			if len(rec.newTiles) != 0 {
				t.Fatalf("move %d: ineffective move spawned %d tiles", i, len(rec.newTiles))
			}
			if !e.Grid().Equal(before) {
				t.Fatalf("move %d: ineffective move changed the grid", i)
			}
		}

		for _, row := range e.Grid().Values() {
			for _, v := range row {
				if v != 0 && !isPowerOfTwo(v) {
					t.Fatalf("move %d: cell value %d is not a power of two", i, v)
				}
			}
		}
	}
}

func TestGoalReachedPausesAndDoubles(t *testing.T) {
	e, rec := newTestEngine(t, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if _, err := e.Move(DirLeft); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}

	if len(rec.results) != 1 || rec.results[0] != (resultEvent{ResultWin, 2048}) {
		t.Fatalf("results = %v, want one win for 2048", rec.results)
	}
	if e.State() != StatePaused {
		t.Errorf("State() = %s, want paused", e.State())
	}
	if e.Goal() != 4096 {
		t.Errorf("Goal() = %d, want 4096", e.Goal())
	}

	// Paused: moves are ignored.
	rec.reset()
	moved, _ := e.Move(DirRight)
	if moved || len(rec.moves) != 0 || len(rec.newTiles) != 0 {
		t.Error("Move while paused should be ignored")
	}

	// Continuing with 2048 still on the board must not re-notify.
	e.Pause(true)
	if e.State() != StateActive {
		t.Fatalf("State() after resume = %s, want active", e.State())
	}
	rec.reset()
	if moved, _ := e.Move(DirRight); !moved {
		t.Fatal("Move(right) after resume should be effective")
	}
	if len(rec.results) != 0 {
		t.Errorf("results after continuing = %v, want none", rec.results)
	}

	// Reaching the doubled goal triggers a second win.
	e.grid = mustGrid(t, [][]int{
		{2048, 2048, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	rec.reset()
	if _, err := e.Move(DirLeft); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if len(rec.results) != 1 || rec.results[0] != (resultEvent{ResultWin, 4096}) {
		t.Fatalf("results = %v, want one win for 4096", rec.results)
	}
	if e.Goal() != 8192 {
		t.Errorf("Goal() = %d, want 8192", e.Goal())
	}
}

func TestLossEndsGame(t *testing.T) {
	e, rec := newTestEngine(t, [][]int{
		{2, 4},
		{8, 0},
	})

	e.spawnRandomTile()

	if e.State() != StateEnded {
		t.Fatalf("State() = %s, want ended", e.State())
	}
	if len(rec.results) != 1 || rec.results[0] != (resultEvent{ResultLoss, 8}) {
		t.Fatalf("results = %v, want one loss carrying 8", rec.results)
	}

	rec.reset()
	for _, dir := range Directions {
		if moved, _ := e.Move(dir); moved {
			t.Errorf("Move(%s) after loss should be ignored", dir)
		}
	}
	e.Pause(true)
	if e.State() != StateEnded {
		t.Errorf("Pause(true) should not leave the ended state, got %s", e.State())
	}
	if len(rec.moves) != 0 || len(rec.newTiles) != 0 {
		t.Error("no notifications expected after loss")
	}

	e.Start()
	if e.State() != StateActive {
		t.Errorf("State() after Start = %s, want active", e.State())
	}
}

func TestFullGridWithPairIsNotLoss(t *testing.T) {
	e, rec := newTestEngine(t, [][]int{
		{2, 4},
		{4, 0},
	})

	// Spawns a 4 at (1,1): the bottom row holds an adjacent pair.
	e.rng = &scriptedRand{floats: []float64{0.0}}
	e.spawnRandomTile()

	if e.State() != StateActive {
		t.Errorf("State() = %s, want active", e.State())
	}
	if len(rec.results) != 0 {
		t.Errorf("results = %v, want none", rec.results)
	}
}

func TestLossScanCoversEdges(t *testing.T) {
	tests := []struct {
		name   string
		layout [][]int
		ended  bool
	}{
		{
			name:   "pair in bottom-right corner",
			layout: [][]int{{2, 4, 8}, {4, 8, 16}, {8, 16, 16}},
			ended:  false,
		},
		{
			name:   "pair in right column vertical",
			layout: [][]int{{2, 4, 8}, {4, 8, 32}, {8, 16, 32}},
			ended:  false,
		},
		{
			name:   "pair in bottom row",
			layout: [][]int{{2, 4, 8}, {4, 8, 2}, {16, 16, 4}},
			ended:  false,
		},
		{
			name:   "checkerboard deadlock",
			layout: [][]int{{2, 4, 2}, {4, 2, 4}, {2, 4, 2}},
			ended:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, tt.layout)
			e.checkResult()
			if got := e.State() == StateEnded; got != tt.ended {
				t.Errorf("ended = %v, want %v", got, tt.ended)
			}
		})
	}
}

func TestStartThenMoveRoundTrip(t *testing.T) {
	for _, dir := range Directions {
		t.Run(dir.String(), func(t *testing.T) {
			rec := newRecorder(t)
			e, err := New(rec, WithSeed(42))
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			e.Start()
			before := e.Grid()
			rec.reset()

			moved, err := e.Move(dir)
			if err != nil {
				t.Fatalf("Move() failed: %v", err)
			}

			if moved {
				if len(rec.newTiles) != 1 {
					t.Errorf("effective move spawned %d tiles, want 1", len(rec.newTiles))
				}
				return
			}
			if len(rec.newTiles) != 0 {
				t.Errorf("ineffective move spawned %d tiles", len(rec.newTiles))
			}
			if !e.Grid().Equal(before) {
				t.Error("ineffective move changed the grid")
			}
		})
	}
}

func TestMoveLeftExample(t *testing.T) {
	rec := newRecorder(t)
	e, err := New(rec, WithSeed(1))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Start()
	e.grid = mustGrid(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	rec.reset()
	rec.last = e.grid.Clone()

	moved, err := e.Move(DirLeft)
	if err != nil || !moved {
		t.Fatalf("Move(left) = %v, %v; want effective move", moved, err)
	}

	if got := e.grid.At(0, 0); got != 4 {
		t.Errorf("cell (0,0) = %d, want 4", got)
	}
	if len(rec.newTiles) != 1 {
		t.Fatalf("spawned %d tiles, want 1", len(rec.newTiles))
	}
	if rec.newTiles[0] == (Cell{Row: 0, Col: 0}) {
		t.Error("spawn landed on the merged cell")
	}
	if got := 16 - len(e.grid.EmptyCells()); got != 2 {
		t.Errorf("occupied cells = %d, want 2", got)
	}
}

func TestInvalidDirection(t *testing.T) {
	e, rec := newTestEngine(t, [][]int{{2, 2}, {0, 0}})

	moved, err := e.Move(Direction(9))
	if !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Move(9) error = %v, want ErrInvalidDirection", err)
	}
	if moved || len(rec.moves) != 0 {
		t.Error("invalid direction must not move tiles")
	}
}

func TestPause(t *testing.T) {
	e, _ := newTestEngine(t, [][]int{{2, 0}, {0, 0}})

	e.Pause(false)
	if e.State() != StatePaused {
		t.Errorf("State() = %s, want paused", e.State())
	}
	if moved, _ := e.Move(DirRight); moved {
		t.Error("Move while paused should be ignored")
	}
	if got := e.grid.At(0, 0); got != 2 {
		t.Errorf("pause changed the grid: (0,0) = %d", got)
	}

	e.Pause(true)
	if e.State() != StateActive {
		t.Errorf("State() = %s, want active", e.State())
	}

	idle, err := New(nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	idle.Pause(false)
	if idle.State() != StateIdle {
		t.Errorf("Pause on idle engine changed state to %s", idle.State())
	}
}

func TestNewValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero rows", []Option{WithSize(0, 4)}},
		{"negative cols", []Option{WithSize(4, -1)}},
		{"too many start tiles", []Option{WithSize(2, 2), WithStartTiles(5)}},
		{"goal not a power of two", []Option{WithGoal(1000)}},
		{"goal too small", []Option{WithGoal(2)}},
		{"probability above one", []Option{WithSpawnFourProbability(1.5)}},
		{"negative probability", []Option{WithSpawnFourProbability(-0.1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil, tt.opts...)
			if !errors.Is(err, ErrInvalidOption) {
				t.Errorf("New() error = %v, want ErrInvalidOption", err)
			}
		})
	}
}

func TestDeterministicStart(t *testing.T) {
	e1, _ := New(nil, WithSeed(12345))
	e2, _ := New(nil, WithSeed(12345))
	e1.Start()
	e2.Start()

	for i := range 50 {
		dir := Directions[i%len(Directions)]
		e1.Move(dir)
		e2.Move(dir)
	}

	if !reflect.DeepEqual(e1.Snapshot(), e2.Snapshot()) {
		t.Errorf("same seed should produce the same game:\n%+v\nvs\n%+v", e1.Snapshot(), e2.Snapshot())
	}
}

func TestSnapshot(t *testing.T) {
	e, _ := newTestEngine(t, [][]int{
		{2, 0, 0},
		{0, 16, 0},
	})

	snap := e.Snapshot()

	if snap.Rows != 2 || snap.Cols != 3 {
		t.Errorf("Snapshot size = %dx%d, want 2x3", snap.Rows, snap.Cols)
	}
	if snap.MaxTile != 16 {
		t.Errorf("Snapshot MaxTile = %d, want 16", snap.MaxTile)
	}
	if snap.State != "active" {
		t.Errorf("Snapshot State = %s, want active", snap.State)
	}
	if snap.Goal != DefaultGoal {
		t.Errorf("Snapshot Goal = %d, want %d", snap.Goal, DefaultGoal)
	}

	// The snapshot board is a copy.
	snap.Board[0][0] = 64
	if e.grid.At(0, 0) != 2 {
		t.Error("mutating the snapshot changed the engine grid")
	}
}

func mustGrid(t *testing.T, layout [][]int) Grid {
	t.Helper()
	g, err := FromRows(layout)
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	return g
}
