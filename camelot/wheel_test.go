package camelot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeForKeyNameAnchors(t *testing.T) {
	assert.Equal(t, "8A", CodeForKeyName("A", true))
	assert.Equal(t, "8B", CodeForKeyName("C", false))
	assert.Equal(t, "1A", CodeForKeyName("G#", true))
	assert.Equal(t, "12B", CodeForKeyName("E", false))
}

func TestCodeForKeyNameEnharmonics(t *testing.T) {
	// Flat and sharp spellings of the same tonic share a wheel position
	assert.Equal(t, CodeForKeyName("G#", true), CodeForKeyName("Ab", true))
	assert.Equal(t, CodeForKeyName("C#", false), CodeForKeyName("Db", false))
	assert.Equal(t, CodeForKeyName("A#", true), CodeForKeyName("Bb", true))
}

func TestCodeForKeyNameUnknownFallsBack(t *testing.T) {
	assert.Equal(t, DefaultCode, CodeForKeyName("H", true))
	assert.Equal(t, DefaultCode, CodeForKeyName("", false))
}

func TestCodeForKeyRoundTrip(t *testing.T) {
	for tonic := 0; tonic < Positions; tonic++ {
		for _, minor := range []bool{true, false} {
			code := CodeForKey(tonic, minor)
			require.True(t, IsValid(code), "code %q for tonic %d", code, tonic)

			gotTonic, gotMinor, ok := KeyForCode(code)
			require.True(t, ok)
			assert.Equal(t, tonic, gotTonic)
			assert.Equal(t, minor, gotMinor)
		}
	}
}

func TestCodeForKeyOutOfRange(t *testing.T) {
	assert.Equal(t, DefaultCode, CodeForKey(-1, true))
	assert.Equal(t, DefaultCode, CodeForKey(12, false))
}

func TestIsValid(t *testing.T) {
	for _, code := range []string{"1A", "8A", "12B", "10A"} {
		assert.True(t, IsValid(code), code)
	}
	for _, code := range []string{"", "0A", "13B", "8C", "8a", "A8", "08A"} {
		assert.False(t, IsValid(code), code)
	}
}

func TestCompatible(t *testing.T) {
	assert.Equal(t, []string{"8A", "7A", "9A", "8B"}, Compatible("8A"))
	assert.Equal(t, []string{"8B", "7B", "9B", "8A"}, Compatible("8B"))
}

func TestCompatibleWrapsAroundWheel(t *testing.T) {
	assert.Equal(t, []string{"1A", "12A", "2A", "1B"}, Compatible("1A"))
	assert.Equal(t, []string{"12B", "11B", "1B", "12A"}, Compatible("12B"))
}

func TestCompatibleContainsSelfAndRelative(t *testing.T) {
	for tonic := 0; tonic < Positions; tonic++ {
		for _, minor := range []bool{true, false} {
			code := CodeForKey(tonic, minor)

			compatible := Compatible(code)
			require.Len(t, compatible, 4)
			assert.Equal(t, code, compatible[0])

			// The relative key sits at the same number, opposite mode
			opposite := compatible[3]
			assert.Equal(t, code[:len(code)-1], opposite[:len(opposite)-1])
			assert.NotEqual(t, code[len(code)-1], opposite[len(opposite)-1])
		}
	}
}

func TestCompatibleMalformed(t *testing.T) {
	assert.Empty(t, Compatible("13A"))
	assert.Empty(t, Compatible("nope"))
	assert.Empty(t, Compatible(""))
}
