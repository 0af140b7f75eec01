package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/hailam/laserchess/internal/board"
	"github.com/hailam/laserchess/internal/engine"
	"github.com/hailam/laserchess/internal/storage"
)

// Kings on b4 and i4 firing at each other.
const facingFEN = "10/10/10/10/10/1EE6ww1/10/10/10/10 W"

func run(t *testing.T, cfg Config, script string) (*UCI, string) {
	t.Helper()
	if cfg.Weights == (engine.Weights{}) {
		cfg.Weights = engine.DefaultWeights()
	}
	cfg.Logger = logr.Discard()

	var out bytes.Buffer
	u := New(cfg, strings.NewReader(script), &out)
	if err := u.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return u, out.String()
}

func expectLines(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestHandshake(t *testing.T) {
	_, out := run(t, Config{}, "uci\nisready\nquit\n")
	expectLines(t, out,
		"id name LaserChess\n",
		"option name pcentral type spin default 200 min 0 max 10000\n",
		"option name hattack type spin default -50 min -10000 max 10000\n",
		"uciok\n",
		"readyok\n",
	)
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name   string
		cmd    string
		fen    string
		errMsg string
	}{
		{"startpos", "position startpos", board.StartFEN, ""},
		{"fen", "position fen " + facingFEN, facingFEN, ""},
		{"bad fen", "position fen 10/10 W", board.StartFEN, "info string Invalid FEN"},
		{"moves", "position startpos moves j0j1", board.StartFEN, "moves are not supported"},
		{"missing", "position", board.StartFEN, "missing argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, out := run(t, Config{}, tt.cmd+"\n")
			if got := u.position.ToFEN(); got != tt.fen {
				t.Errorf("position = %q, want %q", got, tt.fen)
			}
			if tt.errMsg != "" {
				expectLines(t, out, tt.errMsg)
			} else if out != "" {
				t.Errorf("unexpected output %q", out)
			}
		})
	}
}

func TestEval(t *testing.T) {
	t.Run("Score", func(t *testing.T) {
		_, out := run(t, Config{}, "position fen "+facingFEN+"\neval\n")
		if out != "score 0\n" {
			t.Errorf("eval output = %q, want %q", out, "score 0\n")
		}
	})

	t.Run("Verbose", func(t *testing.T) {
		_, out := run(t, Config{}, "position fen "+facingFEN+"\neval verbose\n")
		expectLines(t, out,
			"KFACE bonus 500 for White King on b4\n",
			"KFACE bonus 500 for Black King on i4\n",
			"MOBILITY bonus 700 for White\n",
			"score 0\n",
		)
	})

	t.Run("SetOption", func(t *testing.T) {
		u, out := run(t, Config{}, "setoption name kface value 42\nposition fen "+facingFEN+"\neval verbose\n")
		if u.weights.KingFaceScale != 42 {
			t.Errorf("KingFaceScale = %d, want 42", u.weights.KingFaceScale)
		}
		expectLines(t, out, "KFACE bonus 42 for White King on b4\n")
	})

	t.Run("SetOptionInvalid", func(t *testing.T) {
		u, out := run(t, Config{}, "setoption name nosuch value 1\nsetoption name kface value x\n")
		if u.weights != engine.DefaultWeights() {
			t.Errorf("weights changed after rejected setoption: %+v", u.weights)
		}
		if strings.Count(out, "info string setoption:") != 2 {
			t.Errorf("expected two rejections:\n%s", out)
		}
	})

	t.Run("Cached", func(t *testing.T) {
		table := engine.NewEvalTable(1)
		_, out := run(t, Config{Table: table}, "position fen "+facingFEN+"\neval\neval\n")
		if out != "score 0\nscore 0\n" {
			t.Errorf("eval output = %q", out)
		}
		if table.HitRate() == 0 {
			t.Error("second eval did not hit the table")
		}
	})
}

func TestLaserAndMobility(t *testing.T) {
	_, out := run(t, Config{}, "position fen "+facingFEN+"\nlaser white\nmobility\nlaser purple\n")
	expectLines(t, out,
		"4  .. EE ** ** ** ** ** ** ww .. \n",
		"laser white steps 7\n",
		"white mobility 7 attackability ",
		"black mobility 7 attackability ",
		"info string laser: unknown color purple\n",
	)
}

func TestLaserColor(t *testing.T) {
	_, out := run(t, Config{Color: true}, "position fen "+facingFEN+"\nlaser w\n")
	if !strings.Contains(out, "\x1b[") || strings.Contains(out, " ** ") {
		t.Errorf("beam not highlighted:\n%q", out)
	}
}

func TestInvariantRecovered(t *testing.T) {
	var out bytes.Buffer
	u := New(Config{Weights: engine.DefaultWeights(), Logger: logr.Discard()},
		strings.NewReader("eval\nisready\n"), &out)

	// A piece tag no valid position can hold
	u.position.Board[board.NewSquare(4, 4)] = board.NewPiece(board.PieceType(5), board.White, board.NN)

	if err := u.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expectLines(t, out.String(), "info string error ", "readyok\n")
}

func TestStorageCommands(t *testing.T) {
	store, err := storage.Open(storage.Options{InMemory: true, Logger: logr.Discard()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	script := strings.Join([]string{
		"setoption name mobility value 250",
		"saveweights",
		"setoption name mobility value 1",
		"loadweights",
		"position fen " + facingFEN,
		"analysis",
		"eval",
		"analysis",
		"quit",
		"eval",
	}, "\n")
	u, out := run(t, Config{Store: store}, script)

	expectLines(t, out,
		"info string weights saved\n",
		"info string weights loaded\n",
		"analyses stored 0\n",
		"info string no stored analysis for this position\n",
		"analyses stored 1\n",
		"KFACE bonus 500 for White King on b4\n",
		"analysis score 0 terms ",
	)
	if u.weights.MobilityScale != 250 {
		t.Errorf("MobilityScale after loadweights = %d, want 250", u.weights.MobilityScale)
	}

	// quit stops before the second eval
	n, err := store.CountAnalyses(u.weights.Fingerprint())
	if err != nil || n != 1 {
		t.Errorf("CountAnalyses = %d, %v; want 1", n, err)
	}
	rec, found, err := store.LoadAnalysis(facingFEN, u.weights.Fingerprint())
	if err != nil || !found {
		t.Fatalf("LoadAnalysis = %v, %v", found, err)
	}
	if rec.Score != 0 || len(rec.Terms) == 0 {
		t.Errorf("stored record = %+v", rec)
	}
}

func TestNoStorage(t *testing.T) {
	_, out := run(t, Config{}, "saveweights\nloadweights\nanalysis\nbench 10\nbench x\nfoo\n")
	expectLines(t, out,
		"info string no storage configured\n",
		"bench 10 evaluations in ",
		"info string bench: invalid count x\n",
		"info string unknown command: foo\n",
	)
}
