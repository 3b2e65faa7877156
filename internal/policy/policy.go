// Package policy implements the tabular state of a regret-matching learner:
// accumulated regret, the current strategy derived from it, and the running
// sum of played strategies.
package policy

import (
	"bytes"
	"encoding/gob"

	"github.com/timpalpant/go-regret/internal/f64"
)

// Policy keeps a table of accumulated regrets and strategies
// for a single decision with a fixed number of actions.
type Policy struct {
	currentStrategy []float64

	regretSum   []float64
	strategySum []float64
	playCount   int
}

// New returns a new Policy for a decision with the given number of actions.
// The initial strategy is uniform.
func New(nActions int) *Policy {
	return &Policy{
		currentStrategy: f64.Uniform(nActions),
		regretSum:       make([]float64, nActions),
		strategySum:     make([]float64, nActions),
	}
}

// NumActions returns the number of actions this policy chooses between.
func (p *Policy) NumActions() int {
	return len(p.regretSum)
}

// GetStrategy returns the current strategy. The returned slice
// is owned by the Policy and must not be modified.
func (p *Policy) GetStrategy() []float64 {
	return p.currentStrategy
}

// GetRegretSum returns the accumulated regret for each action.
func (p *Policy) GetRegretSum() []float64 {
	return p.regretSum
}

// GetStrategySum returns the running sum of played strategies.
func (p *Policy) GetStrategySum() []float64 {
	return p.strategySum
}

// PlayCount returns the number of times AddStrategyWeight has been called.
func (p *Policy) PlayCount() int {
	return p.playCount
}

// AddRegret adds the given instantaneous regrets to the accumulated regret.
func (p *Policy) AddRegret(instantaneousRegrets []float64) {
	f64.Add(p.regretSum, instantaneousRegrets)
}

// ClampRegretSum floors the accumulated regret of every action at zero.
func (p *Policy) ClampRegretSum() {
	f64.MakePositive(p.regretSum)
}

// AddStrategyWeight accumulates the current strategy, weighted by w,
// into the strategy sum and counts one play.
func (p *Policy) AddStrategyWeight(w float64) {
	f64.AxpyUnitary(w, p.currentStrategy, p.strategySum)
	p.playCount++
}

// NextStrategy recomputes the current strategy from the accumulated regret.
func (p *Policy) NextStrategy() []float64 {
	p.regretMatching()
	return p.currentStrategy
}

// GetAverageStrategy returns the strategy sum divided by the number of plays,
// or all zeros if the policy has never been played.
func (p *Policy) GetAverageStrategy() []float64 {
	avgStrat := make([]float64, len(p.strategySum))
	if p.playCount > 0 {
		for i, x := range p.strategySum {
			avgStrat[i] = x / float64(p.playCount)
		}
	}

	return avgStrat
}

func (p *Policy) regretMatching() {
	copy(p.currentStrategy, p.regretSum)
	f64.MakePositive(p.currentStrategy)
	total := f64.Sum(p.currentStrategy)
	if total > 0 {
		f64.ScalUnitary(1.0/total, p.currentStrategy)
	} else {
		for i := range p.currentStrategy {
			p.currentStrategy[i] = 1.0 / float64(len(p.currentStrategy))
		}
	}
}

// GobDecode implements gob.GobDecoder.
func (p *Policy) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	var nActions int
	if err := dec.Decode(&nActions); err != nil {
		return err
	}

	regretSum := make([]float64, 0, nActions)
	if err := dec.Decode(&regretSum); err != nil {
		return err
	}

	strategySum := make([]float64, 0, nActions)
	if err := dec.Decode(&strategySum); err != nil {
		return err
	}

	var playCount int
	if err := dec.Decode(&playCount); err != nil {
		return err
	}

	p.regretSum = regretSum
	p.strategySum = strategySum
	p.playCount = playCount
	p.currentStrategy = make([]float64, nActions)
	p.regretMatching()
	return nil
}

// GobEncode implements gob.GobEncoder.
func (p *Policy) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(p.NumActions()); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.regretSum); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.strategySum); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.playCount); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
