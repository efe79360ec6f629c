package quantum

import "github.com/go-faster/errors"

var (
	// ErrInvalidGateSpec is returned for malformed gate descriptors. The
	// simulator state is untouched when it is returned.
	ErrInvalidGateSpec = errors.New("invalid gate spec")
	// ErrInvalidConfiguration is returned for an unsupported register size
	// or initial basis index.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

func invalidGate(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidGateSpec, format, args...)
}

func invalidConfig(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}
