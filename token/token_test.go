package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdentifier(t *testing.T) {
	tests := []struct {
		ident string
		want  Type
	}{
		{"if", KEYWORD},
		{"else", KEYWORD},
		{"while", KEYWORD},
		{"true", BOOL},
		{"false", BOOL},
		{"and", AND},
		{"or", OR},
		{"not", NOT},
		{"is", IS},
		{"in", IN},
		{"foo", IDENTIFIER},
		{"x1", IDENTIFIER},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LookupIdentifier(tt.ident), tt.ident)
	}
}

func TestTokenIsKeyword(t *testing.T) {
	assert.True(t, Token{Type: KEYWORD}.IsKeyword())
	assert.False(t, Token{Type: IDENTIFIER}.IsKeyword())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
}
