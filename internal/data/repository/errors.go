// Package repository defines sentinel errors shared across repositories
// so the service layer can distinguish failure cases without parsing
// messages.
package repository

import "errors"

// ErrNotFound is returned by mutating operations whose target row does
// not exist. Read operations keep the (nil, nil) convention instead.
var ErrNotFound = errors.New("record not found")

// ErrBelowBooked is returned when a total-ticket resize would shrink
// capacity below the quantity already sold.
var ErrBelowBooked = errors.New("new total below booked quantity")
