//go:build !linux || !cgo

package liblxc

import "errors"

// New returns an error: the native binding is only available on Linux with
// cgo enabled.
func New() (Caller, error) {
	return nil, errors.New("the native lxc binding requires linux and cgo")
}
