package beam

import "errors"

// Configuration errors. They are returned by constructors, before any field
// evaluation takes place, and can be matched with errors.Is.
var (
	ErrNonPositiveWaveNumber = errors.New("beam: wave number must be positive")
	ErrNonPositiveWidth      = errors.New("beam: beam width must be positive")
	ErrBadParameter          = errors.New("beam: invalid profile parameter")
	ErrNilProfile            = errors.New("beam: nil spectral profile")
)
