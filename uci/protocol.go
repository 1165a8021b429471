// Package uci is the text protocol front end for the engine facade. It is
// an external collaborator of the search core: it only ever calls the
// engine through the start/stop/callback contract the engine package
// exposes, the way the reference design's own UCI adapter is layered
// over its engine class.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/FGiesemann/MaatChessEngine/engine"
	"github.com/FGiesemann/MaatChessEngine/internal/board"
)

const (
	// Identifier and Author are reported to the GUI by the "id" command,
	// carried forward from the reference design's engine identity.
	Identifier = "Maat v0.1"
	Author     = "Florian Giesemann"

	suddenDeathMoves   = 40
	searchStopBuffer   = 50 * time.Millisecond
)

// Protocol reads UCI commands from in and writes responses to out,
// driving a single engine.Engine.
type Protocol struct {
	eng *engine.Engine
	log zerolog.Logger

	in  *bufio.Scanner
	out io.Writer
}

// New builds a Protocol wired to eng, reading from in and writing to out.
func New(eng *engine.Engine, in io.Reader, out io.Writer, log zerolog.Logger) *Protocol {
	p := &Protocol{
		eng: eng,
		log: log,
		in:  bufio.NewScanner(in),
		out: out,
	}
	eng.OnSearchProgress(p.handleProgress)
	eng.OnSearchEnded(p.handleEnded)
	return p
}

// Run reads commands until the input is exhausted or "quit" is received.
func (p *Protocol) Run() {
	for p.in.Scan() {
		line := strings.TrimSpace(p.in.Text())
		if line == "" {
			continue
		}
		if !p.handle(line) {
			return
		}
	}
}

func (p *Protocol) send(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Protocol) handle(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		p.send("id name %s", Identifier)
		p.send("id author %s", Author)
		p.send("uciok")
	case "isready":
		p.send("readyok")
	case "ucinewgame":
		p.eng.NewGame()
	case "position":
		p.positionCommand(args)
	case "go":
		p.goCommand(args)
	case "stop":
		p.eng.StopSearch()
	case "d":
		p.displayBoard()
	case "quit":
		return false
	default:
		p.log.Debug().Str("command", cmd).Msg("unknown uci command")
	}
	return true
}

func (p *Protocol) positionCommand(args []string) {
	if len(args) == 0 {
		return
	}

	var fen string
	var rest []string
	if args[0] == "startpos" {
		fen = board.StartposFEN()
		rest = args[1:]
	} else if args[0] == "fen" {
		idx := 1
		for idx < len(args) && args[idx] != "moves" {
			idx++
		}
		fen = strings.Join(args[1:idx], " ")
		rest = args[idx:]
	} else {
		return
	}

	var moves []string
	if len(rest) > 0 && rest[0] == "moves" {
		moves = rest[1:]
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		p.log.Error().Err(err).Msg("position command")
		return
	}
	for _, mv := range moves {
		m, err := board.ParseUCIMove(pos, mv)
		if err != nil {
			p.log.Error().Err(err).Str("move", mv).Msg("position command")
			return
		}
		pos.MakeMove(m)
	}

	p.eng.SetPosition(pos)
}

func (p *Protocol) goCommand(args []string) {
	params := parseGoCommand(args)
	stop := engine.StopParameters{
		MaxSearchDepth: params.depth,
		MaxSearchNodes: params.nodes,
	}
	if params.infinite {
		stop.MaxSearchTime = 0
	} else {
		stop.MaxSearchTime = computeTargetMovetime(params, p.eng.Position().SideToMove() == board.White)
	}
	p.eng.StartSearch(stop)
}

func (p *Protocol) displayBoard() {
	pos := p.eng.Position()
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := board.Square(rank*8 + file)
			pt, color, ok := pos.PieceAt(sq)
			if !ok {
				sb.WriteString(". ")
				continue
			}
			sb.WriteString(pieceChar(pt, color))
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d\n", rank+1)
	}
	sb.WriteString("  a b c d e f g h\n")
	p.send("%s", sb.String())
}

func pieceChar(pt board.PieceType, color board.Color) string {
	chars := map[board.PieceType]string{
		board.Pawn: "p", board.Knight: "n", board.Bishop: "b",
		board.Rook: "r", board.Queen: "q", board.King: "k",
	}
	c := chars[pt]
	if color == board.White {
		c = strings.ToUpper(c)
	}
	return c
}

func (p *Protocol) handleProgress(stats engine.SearchStats) {
	p.send("info depth %d nodes %d score cp %d nps %d pv %s",
		int(stats.Depth), stats.Nodes(), int(stats.BestMove.Score), stats.NPS(), stats.BestMove.Move.String())
}

func (p *Protocol) handleEnded(best engine.EvaluatedMove) {
	move := best.Move.String()
	p.send("bestmove %s", move)
}

type goParams struct {
	depth    engine.Depth
	nodes    uint64
	movetime time.Duration
	wtime    time.Duration
	btime    time.Duration
	winc     time.Duration
	binc     time.Duration
	movestogo int
	infinite bool
}

func parseGoCommand(args []string) goParams {
	var p goParams
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				v, _ := strconv.Atoi(args[i])
				p.depth = engine.Depth(v)
			}
		case "nodes":
			i++
			if i < len(args) {
				v, _ := strconv.ParseUint(args[i], 10, 64)
				p.nodes = v
			}
		case "movetime":
			i++
			if i < len(args) {
				v, _ := strconv.Atoi(args[i])
				p.movetime = time.Duration(v) * time.Millisecond
			}
		case "wtime":
			i++
			if i < len(args) {
				v, _ := strconv.Atoi(args[i])
				p.wtime = time.Duration(v) * time.Millisecond
			}
		case "btime":
			i++
			if i < len(args) {
				v, _ := strconv.Atoi(args[i])
				p.btime = time.Duration(v) * time.Millisecond
			}
		case "winc":
			i++
			if i < len(args) {
				v, _ := strconv.Atoi(args[i])
				p.winc = time.Duration(v) * time.Millisecond
			}
		case "binc":
			i++
			if i < len(args) {
				v, _ := strconv.Atoi(args[i])
				p.binc = time.Duration(v) * time.Millisecond
			}
		case "movestogo":
			i++
			if i < len(args) {
				v, _ := strconv.Atoi(args[i])
				p.movestogo = v
			}
		case "infinite":
			p.infinite = true
		}
	}
	return p
}

// computeTargetMovetime ports original_source's compute_target_movetime:
// a movetime fast path, otherwise a wtime/btime/winc/binc/movestogo
// budget with a 40-move sudden-death default and a 50ms safety buffer
// subtracted from the allotment.
func computeTargetMovetime(p goParams, whiteToMove bool) time.Duration {
	if p.movetime > 0 {
		return p.movetime
	}
	if p.wtime == 0 && p.btime == 0 {
		return 0 // infinite; caller must call stop explicitly
	}

	timeLeft := p.btime
	increment := p.binc
	if whiteToMove {
		timeLeft = p.wtime
		increment = p.winc
	}

	movesToGo := p.movestogo
	if movesToGo <= 0 {
		movesToGo = suddenDeathMoves
	}

	var target time.Duration
	if timeLeft > 0 && movesToGo > 0 {
		target = timeLeft / time.Duration(movesToGo)
	}
	target += increment * 9 / 10

	if timeLeft > 0 && target > timeLeft/2 {
		target = timeLeft / 2
	}
	target -= searchStopBuffer

	switch {
	case target <= 0 && timeLeft > 0:
		target = time.Millisecond
	case timeLeft <= 0:
		target = 0
	}
	return target
}
