// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestSplitArgs covers quoting and escaping.
*/
func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"words", "set genre Драма", []string{"set", "genre", "Драма"}},
		{"extra spaces", "  plays   ", []string{"plays"}},
		{"quoted", `search "Бай Ганьо"`, []string{"search", "Бай Ганьо"}},
		{"quoted value", `bg="Премиера в София"`, []string{"bg=Премиера в София"}},
		{"empty quotes", `caption ""`, []string{"caption", ""}},
		{"escaped space", `download play 3 my\ script.pdf`, []string{"download", "play", "3", "my script.pdf"}},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitArgs_UnterminatedQuote(t *testing.T) {
	_, err := splitArgs(`search "Хъшове`)
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, raw := range []string{"0", "-3", "abc", ""} {
		_, err := parseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestKeyValues(t *testing.T) {
	values := keyValues([]string{"BG=Премиера", "en=", "stray"})

	assert.Equal(t, map[string]string{"bg": "Премиера", "en": ""}, values)
}
