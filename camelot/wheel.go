// Package camelot maps musical keys to Camelot-style harmonic-mixing
// codes and answers compatibility queries over the wheel. Codes are a
// wheel position 1-12 plus a mode suffix: A for minor, B for major.
package camelot

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultCode is the fixed fallback when a key cannot be resolved to a
// wheel entry.
const DefaultCode = "1A"

// Positions is the number of wheel positions per mode
const Positions = 12

var codePattern = regexp.MustCompile(`^([1-9]|1[0-2])[AB]$`)

// Wheel entries keyed by note name. Both sharp and flat spellings of
// the five accidental tonics resolve to the same position.
var minorCodes = map[string]string{
	"G#": "1A", "Ab": "1A",
	"D#": "2A", "Eb": "2A",
	"A#": "3A", "Bb": "3A",
	"F":  "4A",
	"C":  "5A",
	"G":  "6A",
	"D":  "7A",
	"A":  "8A",
	"E":  "9A",
	"B":  "10A",
	"F#": "11A", "Gb": "11A",
	"C#": "12A", "Db": "12A",
}

var majorCodes = map[string]string{
	"B":  "1B",
	"F#": "2B", "Gb": "2B",
	"C#": "3B", "Db": "3B",
	"G#": "4B", "Ab": "4B",
	"D#": "5B", "Eb": "5B",
	"A#": "6B", "Bb": "6B",
	"F":  "7B",
	"C":  "8B",
	"G":  "9B",
	"D":  "10B",
	"A":  "11B",
	"E":  "12B",
}

// enharmonics pairs the alternative spellings of accidental tonics
var enharmonics = map[string]string{
	"C#": "Db", "Db": "C#",
	"D#": "Eb", "Eb": "D#",
	"F#": "Gb", "Gb": "F#",
	"G#": "Ab", "Ab": "G#",
	"A#": "Bb", "Bb": "A#",
}

// sharpNames spells pitch classes 0-11 with sharps
var sharpNames = [Positions]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// IsValid reports whether a string is a canonical Camelot code
func IsValid(code string) bool {
	return codePattern.MatchString(code)
}

// CodeForKeyName resolves a tonic name and mode to a wheel code. The
// name is tried as given, then under its enharmonic spelling; a name
// matching neither falls back to DefaultCode rather than failing.
func CodeForKeyName(name string, minor bool) string {
	table := majorCodes
	if minor {
		table = minorCodes
	}

	if code, ok := table[name]; ok {
		return code
	}

	if alt, ok := enharmonics[name]; ok {
		if code, ok := table[alt]; ok {
			return code
		}
	}

	return DefaultCode
}

// CodeForKey resolves a tonic pitch class (0=C .. 11=B) and mode to a
// wheel code.
func CodeForKey(tonic int, minor bool) string {
	if tonic < 0 || tonic >= Positions {
		return DefaultCode
	}
	return CodeForKeyName(sharpNames[tonic], minor)
}

// KeyForCode returns the tonic pitch class and mode a code denotes.
// The ok result is false for malformed codes.
func KeyForCode(code string) (tonic int, minor bool, ok bool) {
	number, suffix, err := parse(code)
	if err != nil {
		return 0, false, false
	}

	minor = suffix == 'A'
	table := majorCodes
	if minor {
		table = minorCodes
	}

	target := fmt.Sprintf("%d%c", number, suffix)
	for pc, name := range sharpNames {
		if table[name] == target {
			return pc, minor, true
		}
	}

	return 0, false, false
}

// Compatible returns the harmonically compatible codes for a code, in
// order: the code itself, its lower and upper numeric neighbors on the
// same mode (wrapping at 1/12), and the relative key (same number,
// opposite mode). A malformed code yields an empty result rather than
// an error.
func Compatible(code string) []string {
	number, suffix, err := parse(code)
	if err != nil {
		return []string{}
	}

	lower := number - 1
	if lower < 1 {
		lower = Positions
	}
	upper := number + 1
	if upper > Positions {
		upper = 1
	}

	opposite := byte('A')
	if suffix == 'A' {
		opposite = 'B'
	}

	return []string{
		fmt.Sprintf("%d%c", number, suffix),
		fmt.Sprintf("%d%c", lower, suffix),
		fmt.Sprintf("%d%c", upper, suffix),
		fmt.Sprintf("%d%c", number, opposite),
	}
}

// parse splits a code into wheel number and mode suffix
func parse(code string) (int, byte, error) {
	if !codePattern.MatchString(code) {
		return 0, 0, fmt.Errorf("malformed camelot code: %q", code)
	}

	suffix := code[len(code)-1]
	number, err := strconv.Atoi(code[:len(code)-1])
	if err != nil {
		return 0, 0, err
	}

	return number, suffix, nil
}
