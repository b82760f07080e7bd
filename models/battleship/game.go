package battleship

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type Phase uint8

const (
	PhaseAwaitingPlacement Phase = iota
	PhaseAwaitingPlayerShot
	PhaseEvaluating
	PhaseMaybeEnemyTurn
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPlacement:
		return "awaiting-placement"
	case PhaseAwaitingPlayerShot:
		return "awaiting-player-shot"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseMaybeEnemyTurn:
		return "maybe-enemy-turn"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	for candidate := PhaseAwaitingPlacement; candidate <= PhaseGameOver; candidate++ {
		if candidate.String() == text {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown game phase: %q", text)
}

// TurnResult describes one full turn: the player's shot and, when the enemy
// is awake, its answer.
type TurnResult struct {
	Shot           Coordinates `json:"shot"`
	Distance       float64     `json:"distance"`
	Points         int         `json:"points"`
	Hit            bool        `json:"hit"`
	Score          int         `json:"score"`
	EnemyActivated bool        `json:"enemy_activated"`
	EnemyShot      *EnemyShot  `json:"enemy_shot,omitempty"`
	FriendlySunk   bool        `json:"friendly_sunk"`
	MatchStatus    int         `json:"match_status"`
	Phase          Phase       `json:"phase"`
}

type GameState struct {
	Uuid        string           `json:"game_uuid"`
	Phase       Phase            `json:"phase"`
	Config      Config           `json:"config"`
	Score       int              `json:"score"`
	ShotsFired  int              `json:"shots_fired"`
	EnemyActive bool             `json:"enemy_active"`
	MatchStatus int              `json:"match_status"`
	Board       [][]CellCategory `json:"board"`
}

// Game is the turn controller of a single match. A mutex makes every turn
// one atomic step so a game can be driven from a connection goroutine.
type Game struct {
	mu sync.Mutex

	uuid        string
	config      Config
	phase       Phase
	target      Coordinates
	targetFixed bool
	createdAt   time.Time

	friendly *Ship
	enemy    *Enemy
	player   *Player
	placer   *Placer

	rng      *rand.Rand
	board    *Board
	renderer Renderer
}

type GameOption func(*Game)

// WithRand makes every random decision of the game come from rng.
func WithRand(rng *rand.Rand) GameOption {
	return func(g *Game) {
		g.rng = rng
	}
}

func WithRenderer(r Renderer) GameOption {
	return func(g *Game) {
		g.renderer = r
	}
}

// WithTarget hides the enemy at c instead of a random cell.
func WithTarget(c Coordinates) GameOption {
	return func(g *Game) {
		g.target = c
		g.targetFixed = true
	}
}

func NewGame(config Config, opts ...GameOption) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		uuid:      uuid.NewString(),
		config:    config,
		phase:     PhaseAwaitingPlacement,
		createdAt: time.Now(),
		player:    NewPlayer(),
		board:     NewBoard(config.GridSize),
		renderer:  NopRenderer{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.targetFixed && !g.target.InBounds(config.GridSize) {
		return nil, cerr.ErrXorYOutOfGridBound(g.target.X, g.target.Y)
	}
	if !g.targetFixed {
		g.target = g.randomCell()
	}

	g.friendly = NewShip(config.GridSize)
	g.enemy = NewEnemy(config.GridSize, g.rng)
	g.placer = NewPlacer(g.rng)
	return g, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Config() Config {
	return g.config
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Player() *Player {
	return g.player
}

func (g *Game) Friendly() *Ship {
	return g.friendly
}

func (g *Game) Enemy() *Enemy {
	return g.enemy
}

// Status is the player's match status: won, lost or undefined while playing.
func (g *Game) Status() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.player.MatchStatus()
}

// RevealTarget exposes the hidden target. It exists for debugging sessions.
func (g *Game) RevealTarget() Coordinates {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target
}

func (g *Game) randomCell() Coordinates {
	return NewCoordinates(g.rng.IntN(g.config.GridSize), g.rng.IntN(g.config.GridSize))
}

func (g *Game) render(events ...CellEvent) {
	for _, event := range events {
		g.board.Render(event)
		g.renderer.Render(event)
	}
}

// PlaceFriendly puts the player's ship on the grid. An out of bounds pivot is
// returned to the caller to re-prompt and leaves the game unchanged.
func (g *Game) PlaceFriendly(pivot Coordinates, orientation Orientation) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseAwaitingPlacement {
		return cerr.ErrShipAlreadyPlaced()
	}
	if err := g.friendly.Place(pivot, orientation); err != nil {
		return err
	}
	g.startLocked()
	return nil
}

// PlaceFriendlyRandom places the player's ship with the placement engine.
func (g *Game) PlaceFriendlyRandom() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseAwaitingPlacement {
		return cerr.ErrShipAlreadyPlaced()
	}

	var forbidden CellSet
	if g.config.TargetAvoidsFriendly && g.targetFixed {
		forbidden = NewCellSet(g.target)
	}
	ship, err := g.placer.SpawnNonOverlapping(g.config.GridSize, forbidden, AllOrientations, g.config.MaxPlacementTries)
	if err != nil {
		return err
	}
	g.friendly = ship
	g.startLocked()
	return nil
}

func (g *Game) startLocked() {
	if g.config.TargetAvoidsFriendly && !g.targetFixed {
		for g.friendly.cells.Has(g.target) {
			g.target = g.randomCell()
		}
	}
	g.phase = PhaseAwaitingPlayerShot
	g.render(g.friendly.Paint()...)
}

// score applies the bullseye rule to the Euclidean distance of a shot.
func (g *Game) score(distance float64) (int, bool) {
	if distance <= g.config.BullseyeDistance {
		return g.config.BullseyeBonus, true
	}
	return 0, false
}

// PlayTurn resolves the player's shot, wakes the enemy up when the shot came
// close enough, lets the enemy fire and then checks the end of the match.
// Winning takes priority over losing within the same turn.
func (g *Game) PlayTurn(shot Coordinates) (TurnResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.phase {
	case PhaseGameOver:
		return TurnResult{}, cerr.ErrGameOver
	case PhaseAwaitingPlacement:
		return TurnResult{}, cerr.ErrShipNotPlaced()
	}
	if !shot.InBounds(g.config.GridSize) {
		return TurnResult{}, cerr.ErrXorYOutOfGridBound(shot.X, shot.Y)
	}

	g.phase = PhaseEvaluating
	distance := shot.Distance(g.target)
	points, hit := g.score(distance)
	if hit {
		g.render(NewCellEvent(shot, CellPlayerHit))
	} else {
		g.render(NewCellEvent(shot, CellPlayerMiss))
	}
	g.render(g.friendly.Paint()...)
	g.player.recordShot(points)

	result := TurnResult{
		Shot:     shot,
		Distance: distance,
		Points:   points,
		Hit:      hit,
		Score:    g.player.Score(),
	}

	g.phase = PhaseMaybeEnemyTurn
	if hit || distance <= g.config.NearTriggerDistance {
		result.EnemyActivated = g.enemy.Activate()
	}
	if g.enemy.IsActive() {
		// With no cell left to fire at the enemy skips its turn.
		enemyShot, err := g.enemy.Fire(g.friendly)
		if err == nil {
			if !enemyShot.Hit {
				g.render(NewCellEvent(enemyShot.Coordinates, CellEnemyMiss))
			}
			g.render(g.friendly.Paint()...)
			result.EnemyShot = &enemyShot
		}
	}

	result.FriendlySunk = g.friendly.IsSunk()
	switch {
	case g.player.Score() >= g.config.GoalScore:
		g.player.setWinner()
		g.phase = PhaseGameOver
	case result.FriendlySunk:
		g.player.setLoser()
		g.phase = PhaseGameOver
	default:
		g.phase = PhaseAwaitingPlayerShot
	}

	result.MatchStatus = g.player.MatchStatus()
	result.Phase = g.phase
	return result, nil
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return GameState{
		Uuid:        g.uuid,
		Phase:       g.phase,
		Config:      g.config,
		Score:       g.player.Score(),
		ShotsFired:  g.player.ShotsFired(),
		EnemyActive: g.enemy.IsActive(),
		MatchStatus: g.player.MatchStatus(),
		Board:       g.board.Rows(),
	}
}
