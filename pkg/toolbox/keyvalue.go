package toolbox

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyValue is one pair produced by ParseKeyValue.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// DeserializeKeyValue splits input such as "name=john&age=50" into out using
// elemSep between a key and its value and itemSep between pairs.
//
// It returns false when a key has no element separator after it or when a key
// repeats. Pairs scanned before the failure stay in out; a repeated key keeps
// its first value. Empty input succeeds without touching out.
func DeserializeKeyValue(input string, elemSep, itemSep rune, out map[string]string) bool {
	err := scanKeyValue(input, elemSep, itemSep, func(key, value string) bool {
		if _, exists := out[key]; exists {
			return false
		}
		out[key] = value
		return true
	})
	return err == nil
}

// ParseKeyValue is DeserializeKeyValue with an ordered result and a
// descriptive error. On failure it returns the pairs accepted so far along
// with ErrMalformedPair or ErrDuplicateKey.
func ParseKeyValue(input string, elemSep, itemSep rune) ([]KeyValue, error) {
	var pairs []KeyValue
	seen := make(map[string]struct{})
	err := scanKeyValue(input, elemSep, itemSep, func(key, value string) bool {
		if _, exists := seen[key]; exists {
			return false
		}
		seen[key] = struct{}{}
		pairs = append(pairs, KeyValue{Key: key, Value: value})
		return true
	})
	return pairs, err
}

// scanKeyValue walks input left to right and hands each pair to emit.
// emit returns false to reject a duplicate key.
func scanKeyValue(input string, elemSep, itemSep rune, emit func(key, value string) bool) error {
	elemLen := utf8.RuneLen(elemSep)
	itemLen := utf8.RuneLen(itemSep)
	if elemLen < 0 || itemLen < 0 {
		return fmt.Errorf("%w: separators must be valid runes", ErrMalformedPair)
	}

	begin := 0
	for begin < len(input) {
		end := strings.IndexRune(input[begin:], elemSep)
		if end < 0 {
			return fmt.Errorf("%w: no %q after key at offset %d", ErrMalformedPair, elemSep, begin)
		}
		key := input[begin : begin+end]
		keyAt := begin
		begin += end + elemLen

		var value string
		end = strings.IndexRune(input[begin:], itemSep)
		if end < 0 {
			value = input[begin:]
			begin = len(input)
		} else {
			value = input[begin : begin+end]
			begin += end + itemLen
		}

		if !emit(key, value) {
			return fmt.Errorf("%w: %q at offset %d", ErrDuplicateKey, key, keyAt)
		}
	}
	return nil
}
