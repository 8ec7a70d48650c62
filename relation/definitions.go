package relation

// HaloMassDefinitions lists the halo mass definitions Galacticus accepts in
// the haloMassDefinition attribute.
var HaloMassDefinitions = []string{
	"spherical collapse",
	"virial",
	"Bryan & Norman (1998)",
	"200 * mean density",
	"200 * critical density",
	"500 * mean density",
	"500 * critical density",
	"1000 * mean density",
	"1000 * critical density",
}

// ValidHaloMassDefinition reports whether definition is one of the standard
// Galacticus halo mass definitions.
func ValidHaloMassDefinition(definition string) bool {
	for _, d := range HaloMassDefinitions {
		if d == definition {
			return true
		}
	}
	return false
}

// Descriptions maps dataset names to the description attribute text stored
// with them.
var Descriptions = map[string]string{
	"massHalo":                  "Halo mass",
	"massStellar":               "Stellar mass",
	"massStellarError":          "Uncertainty in stellar mass",
	"massStellarScatter":        "Intrinsic scatter in stellar mass",
	"massStellarScatterError":   "Uncertainty in intrinsic scatter",
	"massBlackHole":             "Black hole mass",
	"massBlackHoleError":        "Uncertainty in black hole mass",
	"massBlackHoleScatter":      "Intrinsic scatter in black hole mass",
	"massBlackHoleScatterError": "Uncertainty in intrinsic scatter",
}

// SI conversion factors for the unitsInSI attribute Galacticus reads.
const (
	// MsunInKilograms converts solar masses to kilograms.
	MsunInKilograms = 1.98847e30
	// DexInSI is the conversion factor for dex, which is dimensionless.
	DexInSI = 1.0
)

// UnitsInSI returns the SI conversion factor for a dataset name: solar
// masses for the mass columns, dimensionless for the scatter columns.
func UnitsInSI(dataset string) float64 {
	switch dataset {
	case "massHalo", "massStellar", "massStellarError",
		"massBlackHole", "massBlackHoleError":
		return MsunInKilograms
	default:
		return DexInSI
	}
}
