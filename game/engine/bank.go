package engine

import (
	"fmt"
	"sort"
)

// Holder identifies who holds an instrument: the bank or a player character.
type Holder string

// BankHolder marks an instrument still available for sale.
const BankHolder Holder = ""

// Bank owns the instrument catalog and is the single ownership registry.
type Bank struct {
	instruments map[string]*Instrument
	order       []string
	holders     map[string]Holder
	groupSizes  map[string]int
}

// NewBank builds a catalog from the classic board table
func NewBank() (*Bank, error) {
	return newBankFromLayout(classicLayout)
}

func newBankFromLayout(layout []spaceSpec) (*Bank, error) {
	b := &Bank{
		instruments: make(map[string]*Instrument),
		holders:     make(map[string]Holder),
		groupSizes:  make(map[string]int),
	}
	for _, row := range layout {
		if !row.kind.Ownable() {
			continue
		}
		inst, err := row.buildInstrument()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBoard, err)
		}
		if _, dup := b.instruments[inst.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate instrument %q", ErrMalformedBoard, inst.Name())
		}
		b.instruments[inst.Name()] = inst
		b.order = append(b.order, inst.Name())
		b.holders[inst.Name()] = BankHolder
		if inst.Kind() == KindDeed {
			b.groupSizes[inst.Group()]++
		}
	}
	return b, nil
}

// Instrument returns the named instrument or nil. It does not report ownership.
func (b *Bank) Instrument(name string) *Instrument {
	return b.instruments[name]
}

// Instruments returns every instrument in board order
func (b *Bank) Instruments() []*Instrument {
	result := make([]*Instrument, 0, len(b.order))
	for _, name := range b.order {
		result = append(result, b.instruments[name])
	}
	return result
}

// Available returns the instruments still held by the bank, in board order.
func (b *Bank) Available() []*Instrument {
	var result []*Instrument
	for _, name := range b.order {
		if b.holders[name] == BankHolder {
			result = append(result, b.instruments[name])
		}
	}
	return result
}

// HolderOf returns the current holder of an instrument
func (b *Bank) HolderOf(name string) (Holder, error) {
	holder, ok := b.holders[name]
	if !ok {
		return BankHolder, fmt.Errorf("%w: %s", ErrUnknownInstrument, name)
	}
	return holder, nil
}

// GroupSize returns the number of deeds in a color group
func (b *Bank) GroupSize(group string) int {
	return b.groupSizes[group]
}

// Groups returns the color group names, sorted
func (b *Bank) Groups() []string {
	groups := make([]string, 0, len(b.groupSizes))
	for g := range b.groupSizes {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// GroupMembers returns the deeds of a color group in board order
func (b *Bank) GroupMembers(group string) []*Instrument {
	var result []*Instrument
	for _, name := range b.order {
		inst := b.instruments[name]
		if inst.Kind() == KindDeed && inst.Group() == group {
			result = append(result, inst)
		}
	}
	return result
}

// transfer moves an instrument between holders. from must be the current
// holder; the player views are updated by the caller through Game.transfer.
func (b *Bank) transfer(name string, from, to Holder) error {
	current, ok := b.holders[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownInstrument, name)
	}
	if current != from {
		if from == BankHolder {
			return fmt.Errorf("%w: %s is held by %s", ErrAlreadyOwned, name, current)
		}
		return fmt.Errorf("%w: %s is not held by %s", ErrNotOwner, name, from)
	}
	b.holders[name] = to
	return nil
}
