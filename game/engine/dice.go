package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
)

// Dice produces a pair of die faces in [1,6].
type Dice interface {
	Roll() (int, int)
}

// UniformDice rolls two independent fair dice from a seeded source.
type UniformDice struct {
	rng *rand.Rand
}

// NewUniformDice creates dice over rng
func NewUniformDice(rng *rand.Rand) *UniformDice {
	return &UniformDice{rng: rng}
}

func (d *UniformDice) Roll() (int, int) {
	return d.rng.Intn(6) + 1, d.rng.Intn(6) + 1
}

// ScriptedDice replays fixed rolls. Once the script runs out it keeps
// returning the last pair.
type ScriptedDice struct {
	mu    sync.Mutex
	rolls [][2]int
	next  int
}

// NewScriptedDice creates dice that return rolls in order
func NewScriptedDice(rolls ...[2]int) *ScriptedDice {
	return &ScriptedDice{rolls: rolls}
}

func (d *ScriptedDice) Roll() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.rolls) == 0 {
		return 1, 2
	}
	i := d.next
	if i >= len(d.rolls) {
		i = len(d.rolls) - 1
	} else {
		d.next++
	}
	return d.rolls[i][0], d.rolls[i][1]
}

// Push appends rolls to the script
func (d *ScriptedDice) Push(rolls ...[2]int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rolls = append(d.rolls, rolls...)
}

// NewSeed reads a random seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
