package engine

import "fmt"

// SpaceKind tags the variants of a board space
type SpaceKind string

const (
	SpaceProperty    SpaceKind = "property"
	SpaceStation     SpaceKind = "station"
	SpaceUtility     SpaceKind = "utility"
	SpaceTax         SpaceKind = "tax"
	SpaceGoToJail    SpaceKind = "go_to_jail"
	SpaceJail        SpaceKind = "jail"
	SpaceStart       SpaceKind = "start"
	SpaceFreeParking SpaceKind = "free_parking"
	SpaceChance      SpaceKind = "chance"
	SpaceChest       SpaceKind = "chest"
)

// Ownable reports whether spaces of this kind carry an instrument.
func (k SpaceKind) Ownable() bool {
	switch k {
	case SpaceProperty, SpaceStation, SpaceUtility:
		return true
	}
	return false
}

// Space is one immutable square of the board.
type Space struct {
	position   int
	name       string
	kind       SpaceKind
	tax        int
	instrument *Instrument
}

func (s *Space) Position() int { return s.position }
func (s *Space) Name() string { return s.name }
func (s *Space) Kind() SpaceKind { return s.kind }
func (s *Space) Tax() int { return s.tax }
func (s *Space) Instrument() *Instrument { return s.instrument }
func (s *Space) Ownable() bool { return s.kind.Ownable() }
func (s *Space) DeckKind() (DeckKind, bool) { return deckForSpace(s.kind) }

// IsJailType is true for the jail and the go-to-jail corner.
func (s *Space) IsJailType() bool {
	return s.kind == SpaceJail || s.kind == SpaceGoToJail
}

func deckForSpace(kind SpaceKind) (DeckKind, bool) {
	switch kind {
	case SpaceChance:
		return DeckChance, true
	case SpaceChest:
		return DeckChest, true
	}
	return "", false
}

// Board is the fixed ring of 40 spaces.
type Board struct {
	spaces [BoardSize]*Space
}

// NewBoard builds the classic board, binding ownable spaces to the bank's instruments
func NewBoard(bank *Bank) (*Board, error) {
	return newBoardFromLayout(classicLayout, bank)
}

func newBoardFromLayout(layout []spaceSpec, bank *Bank) (*Board, error) {
	if len(layout) != BoardSize {
		return nil, fmt.Errorf("%w: board must have %d spaces, got %d", ErrMalformedBoard, BoardSize, len(layout))
	}
	b := &Board{}
	for pos, row := range layout {
		space := &Space{position: pos, name: row.name, kind: row.kind, tax: row.tax}
		switch row.kind {
		case SpaceProperty, SpaceStation, SpaceUtility:
			inst := bank.Instrument(row.name)
			if inst == nil {
				return nil, fmt.Errorf("%w: no instrument named %q for position %d", ErrMalformedBoard, row.name, pos)
			}
			space.instrument = inst
		case SpaceTax:
			if row.tax <= 0 {
				return nil, fmt.Errorf("%w: tax space %q at %d has no charge", ErrMalformedBoard, row.name, pos)
			}
		case SpaceGoToJail, SpaceJail, SpaceStart, SpaceFreeParking, SpaceChance, SpaceChest:
		default:
			return nil, fmt.Errorf("%w: unknown space kind %q at %d", ErrMalformedBoard, row.kind, pos)
		}
		b.spaces[pos] = space
	}
	if b.spaces[StartPosition].kind != SpaceStart || b.spaces[JailPosition].kind != SpaceJail ||
		b.spaces[GoToJailPosition].kind != SpaceGoToJail {
		return nil, fmt.Errorf("%w: start, jail and go-to-jail must sit at %d, %d and %d",
			ErrMalformedBoard, StartPosition, JailPosition, GoToJailPosition)
	}
	return b, nil
}

// Space returns the space at a position, wrapping out-of-range values
func (b *Board) Space(position int) *Space {
	return b.spaces[wrap(position)]
}

// SpaceByName finds the first space with the given name
func (b *Board) SpaceByName(name string) (*Space, bool) {
	for _, s := range b.spaces {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// Spaces returns all spaces in position order
func (b *Board) Spaces() []*Space {
	result := make([]*Space, BoardSize)
	copy(result, b.spaces[:])
	return result
}

// Nearest returns the first space of kind strictly ahead of from, walking forward.
func (b *Board) Nearest(kind SpaceKind, from int) (*Space, bool) {
	for step := 1; step <= BoardSize; step++ {
		s := b.spaces[wrap(from+step)]
		if s.kind == kind {
			return s, true
		}
	}
	return nil, false
}

func wrap(position int) int {
	position %= BoardSize
	if position < 0 {
		position += BoardSize
	}
	return position
}
