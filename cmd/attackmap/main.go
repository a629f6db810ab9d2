// Command attackmap prints the squares a piece attacks in a position and can
// render them as SVG or PNG diagrams or record them for later verification.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessattacks/internal/board"
	"github.com/hailam/chessattacks/internal/render"
	"github.com/hailam/chessattacks/internal/storage"
)

// errMismatch is returned by -verify when a stored snapshot no longer matches.
var errMismatch = errors.New("snapshot mismatch")

type config struct {
	fen        string
	square     string
	piece      string
	side       string
	moves      int
	svgPath    string
	pngPath    string
	size       int
	dbDir      string
	record     bool
	verify     bool
	list       bool
	cpuprofile string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("attackmap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.fen, "fen", board.StartFEN, "position in FEN (placement required, side optional)")
	fs.StringVar(&cfg.square, "square", "", "square of the attacking piece, e.g. d4")
	fs.StringVar(&cfg.piece, "piece", "", "piece kind p,k,r,q,n,b (default: occupant of -square)")
	fs.StringVar(&cfg.side, "side", "", "attacking side w or b (default: side to move)")
	fs.IntVar(&cfg.moves, "moves", -1, "half-moves played; side to move follows its parity")
	fs.StringVar(&cfg.svgPath, "svg", "", "write an SVG diagram to this file")
	fs.StringVar(&cfg.pngPath, "png", "", "write a PNG diagram to this file")
	fs.IntVar(&cfg.size, "size", render.DefaultSize, "diagram size in pixels")
	fs.StringVar(&cfg.dbDir, "db", "", "snapshot database directory (default $"+storage.EnvDatabaseDir+" or the data dir)")
	fs.BoolVar(&cfg.record, "record", false, "store the computed attack set")
	fs.BoolVar(&cfg.verify, "verify", false, "recompute every stored snapshot and report mismatches")
	fs.BoolVar(&cfg.list, "list", false, "list stored snapshots")
	fs.StringVar(&cfg.cpuprofile, "cpuprofile", "", "write cpu profile to file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.cpuprofile == "" {
		cfg.cpuprofile = os.Getenv("CPUPROFILE")
	}
	return cfg, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("attackmap: ")

	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuprofile != "" {
		f, err := os.Create(cfg.cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cfg.cpuprofile)
	}

	if err := run(cfg, os.Stdout); err != nil {
		pprof.StopCPUProfile()
		if errors.Is(err, errMismatch) {
			log.Print(err)
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

func run(cfg *config, stdout io.Writer) error {
	if cfg.list || cfg.verify {
		store, err := openStore(cfg.dbDir)
		if err != nil {
			return err
		}
		defer store.Close()

		if cfg.list {
			return listSnapshots(store, stdout)
		}
		return verifySnapshots(store, stdout)
	}

	if cfg.square == "" {
		return errors.New("-square is required")
	}
	sq, err := board.ParseSquare(cfg.square)
	if err != nil {
		return err
	}

	pos, fenSide, err := board.ParseFEN(cfg.fen)
	if err != nil {
		return err
	}
	if err := pos.Validate(); err != nil {
		return err
	}

	game := board.Game{Position: pos, PlayedMoves: cfg.moves}
	if cfg.moves < 0 {
		game.PlayedMoves = 0
		if fenSide == board.Black {
			game.PlayedMoves = 1
		}
	}
	side := game.SideToMove()
	if cfg.side != "" {
		if side, err = board.ParseColor(cfg.side); err != nil {
			return err
		}
	}

	var pt board.PieceType
	var attacks board.Bitboard
	if cfg.piece == "" {
		occupant := pos.PieceAt(sq)
		if occupant == board.NoPiece {
			return fmt.Errorf("%v is empty; pass -piece", sq)
		}
		pt = occupant.Type()
		if cfg.side == "" {
			// Only the side to move's pieces attack. The result is not
			// what Attacks gives for (pt, sq, side), so it must not be
			// stored as a snapshot.
			if cfg.record && occupant.Color() != side {
				return fmt.Errorf("%v holds a %v piece but %v is to move; pass -side to record it",
					sq, occupant.Color(), side)
			}
			attacks = game.PieceAttacks(sq)
		} else {
			attacks = board.Attacks(pt, pos, sq, side)
		}
	} else {
		if pt, err = board.ParsePieceType(cfg.piece); err != nil {
			return err
		}
		attacks = board.Attacks(pt, pos, sq, side)
	}

	fmt.Fprintln(stdout, game)
	fmt.Fprintf(stdout, "\n%v %v on %v attacks %d squares\n", side, pt, sq, attacks.PopCount())
	fmt.Fprintln(stdout, attacks.Draw())
	if pos.InCheck(side.Other()) {
		fmt.Fprintf(stdout, "%v is in check\n", side.Other())
	}

	opts := render.Options{Size: cfg.size, Attacks: attacks, Origin: board.SquareBB(sq)}
	if cfg.svgPath != "" {
		if err := writeFile(cfg.svgPath, func(w io.Writer) error {
			return render.WriteSVG(w, pos, opts)
		}); err != nil {
			return err
		}
		log.Printf("wrote %s", cfg.svgPath)
	}
	if cfg.pngPath != "" {
		if err := writeFile(cfg.pngPath, func(w io.Writer) error {
			return render.WritePNG(w, pos, opts)
		}); err != nil {
			return err
		}
		log.Printf("wrote %s", cfg.pngPath)
	}

	if cfg.record {
		store, err := openStore(cfg.dbDir)
		if err != nil {
			return err
		}
		defer store.Close()

		snap := storage.Snapshot{
			Query:   storage.NewQuery(pos, pt, sq, side),
			Attacks: attacks,
		}
		if err := store.Record(snap); err != nil {
			return err
		}
		log.Printf("recorded %s", snap.Query)
	}
	return nil
}

func openStore(dir string) (*storage.Store, error) {
	if dir == "" {
		return storage.OpenDefault()
	}
	return storage.Open(dir)
}

func listSnapshots(store *storage.Store, w io.Writer) error {
	snaps, err := store.List()
	if err != nil {
		return err
	}
	for _, s := range snaps {
		fmt.Fprintf(w, "%s %s %v\n", s.CreatedAt.Format("2006-01-02 15:04:05"), s.Query, s.Attacks.Squares())
	}
	fmt.Fprintf(w, "%d snapshots\n", len(snaps))
	return nil
}

func verifySnapshots(store *storage.Store, w io.Writer) error {
	mismatches, err := store.Verify(board.Attacks)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		fmt.Fprintf(w, "MISMATCH %s\n  recorded %v\n  computed %v\n",
			m.Snapshot.Query, m.Snapshot.Attacks.Squares(), m.Got.Squares())
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %d of the stored snapshots", errMismatch, len(mismatches))
	}
	fmt.Fprintln(w, "all snapshots match")
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
