package spectral

import "fmt"

// FieldIndex names the spectral-domain field slots. The transverse E, B and
// J components are stored in the rotating (+/-) combinations
// F+/- = (Fr +/- i*Ftheta)/2; rho is carried at both the old and the new
// time level for the charge-conserving source terms.
type FieldIndex int

const (
	Ep FieldIndex = iota
	Em
	Ez
	Bp
	Bm
	Bz
	Jp
	Jm
	Jz
	RhoOld
	RhoNew

	numFields
)

// NumFields is the number of spectral-domain field slots a caller must
// allocate per azimuthal mode.
const NumFields = int(numFields)

// FieldData owns the spectral-domain representation of all field slots for
// every azimuthal mode. Each (field, mode) pair is a row-major (Nkr x Nkz)
// complex block.
type FieldData struct {
	NModes   int
	Nkr, Nkz int

	data [][]complex128 // [field][mode*Nkr*Nkz ...]
}

// NewFieldData allocates zeroed spectral storage.
func NewFieldData(modes, nkr, nkz int) *FieldData {
	if modes <= 0 || nkr <= 0 || nkz <= 0 {
		panic(fmt.Sprintf("spectral: malformed spectral extents modes=%d nkr=%d nkz=%d", modes, nkr, nkz))
	}
	f := &FieldData{NModes: modes, Nkr: nkr, Nkz: nkz}
	f.data = make([][]complex128, numFields)
	for i := range f.data {
		f.data[i] = make([]complex128, modes*nkr*nkz)
	}
	return f
}

// Slice returns the (Nkr x Nkz) block of one field for one azimuthal mode.
func (f *FieldData) Slice(fi FieldIndex, mode int) []complex128 {
	if fi < 0 || fi >= numFields {
		panic(fmt.Sprintf("spectral: field index %d out of range", fi))
	}
	if mode < 0 || mode >= f.NModes {
		panic(fmt.Sprintf("spectral: azimuthal mode %d out of range [0,%d)", mode, f.NModes))
	}
	n := f.Nkr * f.Nkz
	return f.data[fi][mode*n : (mode+1)*n]
}

// At reads one spectral value.
func (f *FieldData) At(fi FieldIndex, mode, ir, iz int) complex128 {
	return f.Slice(fi, mode)[ir*f.Nkz+iz]
}

// Set writes one spectral value.
func (f *FieldData) Set(fi FieldIndex, mode, ir, iz int, v complex128) {
	f.Slice(fi, mode)[ir*f.Nkz+iz] = v
}
