package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAttribution(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short name", "Jane Doe", "© Jane Doe"},
		{"empty", "", "© Wikimedia Commons"},
		{"whitespace only", "   ", "© Wikimedia Commons"},
		{"footnote marker stripped", "Jane Doe[a] et al", "© Jane Doe"},
		{"long name truncated at word", "Alexander von Humboldt Society", "© Alexander von ..."},
		{"long single token truncated hard", "Pneumonoultramicroscopicsilico", "© Pneumonoultramicrosc ..."},
		{"exactly twenty runes", "12345678901234567890", "© 12345678901234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatAttribution(tt.in))
		})
	}
}
