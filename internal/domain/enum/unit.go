package enum

// Unit is the unit of measure an item is sold in.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitLiter    Unit = "liter"
	UnitPiece    Unit = "piece"
	UnitPack     Unit = "pack"
)

// Units lists all valid units of measure.
func Units() []Unit {
	return []Unit{UnitKilogram, UnitLiter, UnitPiece, UnitPack}
}

// Valid reports whether u is a member of the closed unit set.
func (u Unit) Valid() bool {
	for _, v := range Units() {
		if u == v {
			return true
		}
	}
	return false
}

func (u Unit) String() string {
	return string(u)
}
