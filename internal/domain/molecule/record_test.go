package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSMILES(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CCO.Na", "CCO"},
		{"CCO", "CCO"},
		{"  CCO \t", "CCO"},
		{".Na", ""},
		{"", ""},
		{"C1=CC=CC=C1.Cl.Cl", "C1=CC=CC=C1"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SanitizeSMILES(tc.in), "input %q", tc.in)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aspirin", "aspirin"},
		{" mol 1 ", "mol_1"},
		{`a/b\c:d`, "a_b_c_d"},
		{`x*y?z"w`, "x_y_z_w"},
		{"a<b>c|d", "a_b_c_d"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SanitizeName(tc.in), "input %q", tc.in)
	}
}
