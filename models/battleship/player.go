package battleship

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

// Player is the human side: the score of their shots and how the match ended.
type Player struct {
	score       int
	shotsFired  int
	matchStatus int
}

func NewPlayer() *Player {
	return &Player{matchStatus: PlayerMatchStatusUndefined}
}

func (p *Player) Score() int {
	return p.score
}

func (p *Player) ShotsFired() int {
	return p.shotsFired
}

func (p *Player) MatchStatus() int {
	return p.matchStatus
}

func (p *Player) IsMatchOver() bool {
	return p.matchStatus != PlayerMatchStatusUndefined
}

func (p *Player) recordShot(points int) {
	p.shotsFired++
	p.score += points
}

func (p *Player) setWinner() {
	p.matchStatus = PlayerMatchStatusWon
}

func (p *Player) setLoser() {
	p.matchStatus = PlayerMatchStatusLost
}
