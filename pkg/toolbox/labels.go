package toolbox

import "fmt"

// KeyVal pairs an integer key with a display label, for small static lookup
// tables such as
//
//	var caseOpts = toolbox.LabelTable{
//		{Key: 0, Value: "upper"},
//		{Key: 1, Value: "lower"},
//		{Key: 2, Value: "mixed"},
//	}
type KeyVal struct {
	Key   int    `json:"key" yaml:"key" mapstructure:"key"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// LabelTable is an ordered, read-only set of KeyVal records.
type LabelTable []KeyVal

// Lookup returns the label for key. Unknown keys report false instead of
// indexing out of range.
func (t LabelTable) Lookup(key int) (string, bool) {
	for _, kv := range t {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Validate reports the first key that appears more than once.
func (t LabelTable) Validate() error {
	seen := make(map[int]struct{}, len(t))
	for _, kv := range t {
		if _, dup := seen[kv.Key]; dup {
			return fmt.Errorf("%w: label key %d", ErrDuplicateKey, kv.Key)
		}
		seen[kv.Key] = struct{}{}
	}
	return nil
}
