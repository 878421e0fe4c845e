package analyzer

import "errors"

// ErrNoBaseline is returned when analysis is requested before a baseline is set
var ErrNoBaseline = errors.New("no baseline set")
