package postgres

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_NumericSinPrecisionFija(t *testing.T) {
	assert.NotRegexp(t, `NUMERIC\s*\(`, schemaSQL)
	for _, col := range []string{"total TYPE NUMERIC", "requested_qty TYPE NUMERIC", "quantity TYPE NUMERIC"} {
		assert.Contains(t, schemaSQL, col)
	}
}

func TestRoleIDPatterns(t *testing.T) {
	tests := []struct {
		prefix  string
		roleID  string
		matches bool
		suffix  int64
	}{
		{"w", "w12", true, 12},
		{"w", "w1", true, 1},
		{"w", "w", false, 0},
		{"w", "wx1", false, 0},
		{"w", "w1a", false, 0},
		{"w", "w1234567890123456789", false, 0},
		{"w", "w123456789012345678", true, 123456789012345678},
		{"r", "rp3", false, 0},
		{"rp", "rp3", true, 3},
		{"ae", "a3", false, 0},
		{"ngo", "ngo07", true, 7},
	}
	for _, tt := range tests {
		t.Run(tt.prefix+"/"+tt.roleID, func(t *testing.T) {
			match, capture := roleIDPatterns(tt.prefix)
			assert.Equal(t, tt.matches, regexp.MustCompile(match).MatchString(tt.roleID))
			if !tt.matches {
				return
			}
			sub := regexp.MustCompile(capture).FindStringSubmatch(tt.roleID)
			require.Len(t, sub, 2)
			n, err := strconv.ParseInt(sub[1], 10, 64)
			require.NoError(t, err)
			assert.Equal(t, tt.suffix, n)
		})
	}
}

func TestRoleIDPatterns_EscapaPrefijo(t *testing.T) {
	match, _ := roleIDPatterns("a.b")
	re := regexp.MustCompile(match)
	assert.True(t, re.MatchString("a.b4"))
	assert.False(t, re.MatchString("axb4"))
}
