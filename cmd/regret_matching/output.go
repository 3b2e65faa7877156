package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	gzip "github.com/klauspost/pgzip"

	"github.com/timpalpant/go-regret"
	"github.com/timpalpant/go-regret/npyio"
)

// historyFilename resolves --output: a directory gets one archive per run.
func historyFilename(output, game string, runID uuid.UUID) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, fmt.Sprintf("%s-%v.npz", game, runID))
	}

	return output
}

// saveHistory writes the average strategy of each player after every round
// as player_<i>.npy within an npz archive.
func saveHistory(history *regret.History, filename string) error {
	npyFiles := make(map[string]io.Reader, history.NumPlayers())
	for i := 0; i < history.NumPlayers(); i++ {
		var buf bytes.Buffer
		rows, cols, data := history.Matrix(i)
		if err := npyio.WriteMatrix(&buf, rows, cols, data); err != nil {
			return err
		}

		npyFiles[fmt.Sprintf("player_%d.npy", i)] = &buf
	}

	return npyio.MakeNPZ(npyFiles, filename)
}

func saveCheckpoint(sim *regret.Simulation, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	if err := sim.MarshalTo(w); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	return f.Close()
}

func loadCheckpoint(filename string, rng regret.Rand) (*regret.Simulation, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return regret.LoadSimulation(r, rng)
}
