package games

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/timpalpant/go-regret"
)

// Definition is a normal-form game read from a YAML file, e.g.
//
//  name: stag-hunt
//  players: [hunter-1, hunter-2]
//  payoffs:
//    - [[4, 4], [1, 3]]
//    - [[3, 1], [2, 2]]
type Definition struct {
	Name    string      `yaml:"name"`
	Players []string    `yaml:"players,omitempty"`
	Payoffs interface{} `yaml:"payoffs"`

	tensor *regret.Tensor
}

// Load reads a game definition from r.
func Load(r io.Reader) (*Definition, error) {
	var d Definition
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decoding game definition")
	}

	if d.Payoffs == nil {
		return nil, errors.Errorf("game %q has no payoffs", d.Name)
	}

	t, err := regret.ParseTensor(d.Payoffs)
	if err != nil {
		return nil, errors.Wrapf(err, "game %q", d.Name)
	}

	if numPlayers := t.NumDims() - 1; len(d.Players) > 0 && len(d.Players) != numPlayers {
		return nil, errors.Errorf("game %q names %d players but payoffs are for %d",
			d.Name, len(d.Players), numPlayers)
	}

	d.tensor = t
	return &d, nil
}

// LoadFile reads a game definition from the named file.
func LoadFile(filename string) (*Definition, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Tensor returns the payoff tensor of the game.
func (d *Definition) Tensor() *regret.Tensor {
	return d.tensor
}
