package spectral

// SI physical constants used by the PSATD update.
const (
	SpeedOfLight = 2.99792458e8    // m/s
	Eps0         = 8.8541878128e-12 // F/m
)
