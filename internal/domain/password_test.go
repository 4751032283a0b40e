package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "correct horse battery", wantErr: false},
		{name: "exactly minimum length", password: "12ab!@CD", wantErr: false},
		{name: "too short", password: "short1!", wantErr: true},
		{name: "too long", password: strings.Repeat("a", 129), wantErr: true},
		{name: "common password", password: "password", wantErr: true},
		{name: "common password mixed case", password: "PassWord", wantErr: true},
		{name: "common word inside longer password ok", password: "password-but-longer", wantErr: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
