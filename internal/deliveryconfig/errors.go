package deliveryconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigLoad is matched by every error returned from Load.
	ErrConfigLoad = errors.New("delivery config could not be loaded")
	// ErrInvalidTable is returned by Table.Validate for tables with blank names.
	ErrInvalidTable = errors.New("delivery config contains blank product or method names")
)

const (
	reasonNotExist   = "file does not exist"
	reasonNotRegular = "file is not readable"
	reasonMalformed  = "malformed content"
	reasonIO         = "I/O error occurred"
)

// LoadError describes why a delivery config file was rejected.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("failed to read %s delivery config: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrConfigLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrConfigLoad
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
