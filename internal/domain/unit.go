package domain

// Unit is a measurement unit name as shown in the unit dropdown.
type Unit string

// Supported units. Names are case-sensitive.
const (
	Milliliter Unit = "ml"
	Liter      Unit = "L"
	FluidOunce Unit = "fl oz"
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Ounce      Unit = "oz"
	Pound      Unit = "lb"
)

// Family groups units that can be converted into each other.
type Family string

const (
	FamilyVolume Family = "volume"
	FamilyMass   Family = "mass"
)

// UnitFamily is a family with its units in display order.
type UnitFamily struct {
	Family Family `json:"family" yaml:"family"`
	Units  []Unit `json:"units" yaml:"units"`
}

// ConvertRequest represents a single unit conversion request
type ConvertRequest struct {
	Quantity float64 `json:"quantity"`
	From     Unit    `json:"from" binding:"required"`
	To       Unit    `json:"to" binding:"required"`
}

// ConvertResult is the outcome of a successful conversion
type ConvertResult struct {
	Quantity float64 `json:"quantity" yaml:"quantity"`
	From     Unit    `json:"from" yaml:"from"`
	To       Unit    `json:"to" yaml:"to"`
	Result   float64 `json:"result" yaml:"result"`
}
