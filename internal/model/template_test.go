package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrifoglio/lxc-go/internal/model"
)

func TestTemplateOption(t *testing.T) {
	tests := map[string]struct {
		template   func() *model.Template
		expOptions []string
	}{
		"No options": {
			template:   func() *model.Template { return model.NewTemplate("busybox") },
			expOptions: nil,
		},

		"Paired options keep insertion order": {
			template: func() *model.Template {
				return model.NewTemplate("download").
					Option("-d", "alpine").
					Option("-r", "3.6").
					Option("-a", "amd64")
			},
			expOptions: []string{"-d", "alpine", "-r", "3.6", "-a", "amd64"},
		},

		"Bare flags are allowed": {
			template: func() *model.Template {
				return model.NewTemplate("download").
					Option("--no-validate").
					Option("-d", "alpine")
			},
			expOptions: []string{"--no-validate", "-d", "alpine"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tpl := tt.template()
			assert.Equal(t, tt.expOptions, tpl.Options)
		})
	}
}

func TestTemplateValidate(t *testing.T) {
	tests := map[string]struct {
		template model.Template
		expErr   bool
	}{
		"Template with a name is valid": {
			template: *model.NewTemplate("download"),
		},

		"Template without a name is invalid": {
			template: model.Template{},
			expErr:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.template.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := map[string]struct {
		snapshot model.Snapshot
		expErr   bool
	}{
		"Complete snapshot is valid": {
			snapshot: model.Snapshot{Name: "snap0", Timestamp: "2024:05:01 10:00:00"},
		},

		"Missing name is invalid": {
			snapshot: model.Snapshot{Timestamp: "2024:05:01 10:00:00"},
			expErr:   true,
		},

		"Missing timestamp is invalid": {
			snapshot: model.Snapshot{Name: "snap0"},
			expErr:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.snapshot.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
