package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrifoglio/lxc-go/internal/model"
)

func TestCheckText(t *testing.T) {
	tests := map[string]struct {
		text   string
		expErr bool
	}{
		"Plain text is valid":          {text: "calice"},
		"Empty text is valid":          {text: ""},
		"Text with UTF-8 is valid":     {text: "caché"},
		"Embedded NUL byte is invalid": {text: "cal\x00ice", expErr: true},
		"Leading NUL byte is invalid":  {text: "\x00calice", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := checkText(tt.text)

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDecodeText(t *testing.T) {
	tests := map[string]struct {
		buf     []byte
		expText string
		expErr  bool
	}{
		"Valid buffer decodes": {buf: []byte("tamer"), expText: "tamer"},
		"Empty buffer decodes": {buf: nil, expText: ""},
		"Invalid UTF-8 fails":  {buf: []byte{0xff, 0xfe}, expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			text, err := decodeText(tt.buf)

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrUnknown)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expText, text)
			}
		})
	}
}

func TestReadSized(t *testing.T) {
	tests := map[string]struct {
		probeFill func(buf []byte) int
		expText   string
		expErr    bool
	}{
		"Negative probe is an error": {
			probeFill: func(buf []byte) int { return -1 },
			expErr:    true,
		},

		"Zero probe is a defined but empty value": {
			probeFill: func(buf []byte) int { return 0 },
			expText:   "",
		},

		"Fill copies the value and a trailing terminator": {
			probeFill: func(buf []byte) int {
				value := "tamer"
				if len(buf) == 0 {
					return len(value)
				}
				copy(buf, value)
				buf[len(value)] = 0
				return len(value)
			},
			expText: "tamer",
		},

		"Negative fill after a successful probe is an error": {
			probeFill: func() func(buf []byte) int {
				calls := 0
				return func(buf []byte) int {
					calls++
					if calls == 1 {
						return 5
					}
					return -1
				}
			}(),
			expErr: true,
		},

		"Value grown between probe and fill keeps what fits": {
			probeFill: func(buf []byte) int {
				grown := "tamer-and-more"
				if len(buf) == 0 {
					return 5 // probe saw the short value
				}
				n := copy(buf, grown)
				return n
			},
			expText: "tamer",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			text, err := readSized(tt.probeFill)

			if tt.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expText, text)
			}
		})
	}
}
