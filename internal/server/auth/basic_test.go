package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBasic(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		email    string
		password string
		ok       bool
	}{
		{name: "valid", header: "Basic Ym9iQGR5bGFuLmNvbTp0b3RvMTIzNCE=", email: "bob@dylan.com", password: "toto1234!", ok: true},
		{name: "password with colon", header: "Basic Ym9iQGR5bGFuLmNvbTp0b3RvOjEyMzQh", email: "bob@dylan.com", password: "toto:1234!", ok: true},
		{name: "empty header", header: ""},
		{name: "wrong scheme", header: "Bearer Ym9iQGR5bGFuLmNvbTp0b3RvMTIzNCE="},
		{name: "bad base64", header: "Basic !!!"},
		{name: "no colon", header: "Basic bm9jb2xvbg=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, password, ok := ParseBasic(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.email, email)
			assert.Equal(t, tt.password, password)
		})
	}
}
