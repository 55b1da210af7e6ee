package engine

import "fmt"

// InstrumentKind tags the ownable variants
type InstrumentKind string

const (
	KindDeed    InstrumentKind = "deed"
	KindStation InstrumentKind = "station"
	KindUtility InstrumentKind = "utility"
)

// HotelLevel is the improvement level of a deed carrying a hotel.
const HotelLevel = MaxHouses + 1

// DeedTerms holds the immutable pricing of a color-grouped deed.
type DeedTerms struct {
	Group     string `json:"group"`
	Rents     []int  `json:"rents"` // level 0..4 houses, then hotel
	HouseCost int    `json:"house_cost"`
	HotelCost int    `json:"hotel_cost"`
}

// Instrument is an ownable title. Deed-only state lives behind Terms and the
// improvement counters; stations and utilities leave them zero.
type Instrument struct {
	name          string
	kind          InstrumentKind
	price         int
	mortgageValue int
	mortgaged     bool

	terms  *DeedTerms
	houses int
	hotel  int
}

// NewDeed creates a color-grouped property
func NewDeed(name string, price, mortgageValue int, terms DeedTerms) (*Instrument, error) {
	if len(terms.Rents) != HotelLevel+1 {
		return nil, fmt.Errorf("deed %q: rent table must have %d entries, got %d", name, HotelLevel+1, len(terms.Rents))
	}
	if terms.Group == "" {
		return nil, fmt.Errorf("deed %q: color group is required", name)
	}
	rents := make([]int, len(terms.Rents))
	copy(rents, terms.Rents)
	terms.Rents = rents
	inst, err := newInstrument(name, KindDeed, price, mortgageValue)
	if err != nil {
		return nil, err
	}
	inst.terms = &terms
	return inst, nil
}

// NewStation creates a transit station
func NewStation(name string, price, mortgageValue int) (*Instrument, error) {
	return newInstrument(name, KindStation, price, mortgageValue)
}

// NewUtility creates a utility company
func NewUtility(name string, price, mortgageValue int) (*Instrument, error) {
	return newInstrument(name, KindUtility, price, mortgageValue)
}

func newInstrument(name string, kind InstrumentKind, price, mortgageValue int) (*Instrument, error) {
	if name == "" {
		return nil, fmt.Errorf("instrument name is required")
	}
	if price <= 0 || mortgageValue < 0 {
		return nil, fmt.Errorf("instrument %q: invalid price %d or mortgage value %d", name, price, mortgageValue)
	}
	return &Instrument{name: name, kind: kind, price: price, mortgageValue: mortgageValue}, nil
}

func (i *Instrument) Name() string { return i.name }
func (i *Instrument) Kind() InstrumentKind { return i.kind }
func (i *Instrument) Price() int { return i.price }
func (i *Instrument) MortgageValue() int { return i.mortgageValue }
func (i *Instrument) Mortgaged() bool { return i.mortgaged }
func (i *Instrument) Houses() int { return i.houses }
func (i *Instrument) Hotel() int { return i.hotel }

// Terms returns the deed terms, or nil for stations and utilities.
func (i *Instrument) Terms() *DeedTerms { return i.terms }

// Group returns the color group of a deed, empty otherwise.
func (i *Instrument) Group() string {
	if i.terms == nil {
		return ""
	}
	return i.terms.Group
}

// Level is the current improvement level: houses, or HotelLevel with a hotel.
func (i *Instrument) Level() int {
	if i.hotel > 0 {
		return HotelLevel
	}
	return i.houses
}

// Improved reports whether the deed carries any building.
func (i *Instrument) Improved() bool {
	return i.houses > 0 || i.hotel > 0
}

// Rent returns the table value for a level, clamped to the table bounds.
func (i *Instrument) Rent(level int) int {
	if i.terms == nil || len(i.terms.Rents) == 0 {
		return 0
	}
	if level < 0 {
		level = 0
	}
	if level > len(i.terms.Rents)-1 {
		level = len(i.terms.Rents) - 1
	}
	return i.terms.Rents[level]
}

// CanAddHouse reports whether one more house fits on this deed.
func (i *Instrument) CanAddHouse() bool {
	return i.kind == KindDeed && !i.mortgaged && i.houses < MaxHouses && i.hotel == 0
}

// CanAddHotel reports whether the four houses can be swapped for a hotel.
func (i *Instrument) CanAddHotel() bool {
	return i.kind == KindDeed && !i.mortgaged && i.houses == MaxHouses && i.hotel == 0
}

// AddHouse places one house
func (i *Instrument) AddHouse() error {
	if !i.CanAddHouse() {
		return fmt.Errorf("%w: %s has %d houses and %d hotel", ErrCannotBuild, i.name, i.houses, i.hotel)
	}
	i.houses++
	return nil
}

// AddHotel replaces four houses with a hotel
func (i *Instrument) AddHotel() error {
	if !i.CanAddHotel() {
		return fmt.Errorf("%w: %s needs %d houses for a hotel, has %d", ErrCannotBuild, i.name, MaxHouses, i.houses)
	}
	i.houses = 0
	i.hotel = 1
	return nil
}

// RemoveBuilding takes down the top improvement: a hotel goes back to four
// houses, otherwise one house is removed. It returns the level removed.
func (i *Instrument) RemoveBuilding() (int, error) {
	switch {
	case i.hotel > 0:
		i.hotel = 0
		i.houses = MaxHouses
		return HotelLevel, nil
	case i.houses > 0:
		i.houses--
		return i.houses + 1, nil
	default:
		return 0, fmt.Errorf("%w: %s has no buildings", ErrCannotBuild, i.name)
	}
}

// ResetImprovements zeroes both counters
func (i *Instrument) ResetImprovements() {
	i.houses = 0
	i.hotel = 0
}

func (i *Instrument) setMortgaged(v bool) { i.mortgaged = v }
