package container

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/quadrifoglio/lxc-go/internal/model"
)

// checkText validates that a host string can cross the boundary as a
// null-terminated buffer.
func checkText(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("text contains an embedded NUL byte: %w", model.ErrNotValid)
	}

	return nil
}

// decodeText copies a boundary buffer into a host string. The source buffer
// belongs to the calling scope and must not be read again after this.
func decodeText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("boundary buffer is not valid UTF-8: %w", model.ErrUnknown)
	}

	return string(b), nil
}

// readSized runs the boundary's two-call sized-read protocol: a probe with no
// destination buffer returns the required byte count, then a second call
// fills an allocated buffer. The two calls have no atomicity guarantee, the
// value can change in between; that race belongs to the wrapped protocol and
// is not papered over here.
func readSized(probeFill func(buf []byte) int) (string, error) {
	n := probeFill(nil)
	if n < 0 {
		return "", model.ErrUnknown
	}
	if n == 0 {
		// Defined but empty value.
		return "", nil
	}

	// One extra byte: the native side writes its own terminator.
	buf := make([]byte, n+1)
	filled := probeFill(buf)
	if filled < 0 {
		return "", model.ErrUnknown
	}
	if filled > n {
		// The value grew between probe and fill, keep what fits.
		filled = n
	}

	return decodeText(bytes.TrimRight(buf[:filled], "\x00"))
}
