package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/toolbox"
)

var (
	kvElemSep string
	kvItemSep string
	kvOutput  string
)

var kvCmd = &cobra.Command{
	Use:   "kv <input>",
	Short: "Parse a key-value string",
	Long: `Parse a string such as "name=john&age=50" into ordered key-value pairs.

The separators default to kv.element_separator and kv.item_separator from the
config file ("=" and "&"). A key with no element separator after it, or a
repeated key, fails the parse; the pairs read before the failure are still
printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		elem, item, err := kvSeparators()
		if err != nil {
			return finish(cmd, args, "", err)
		}

		pairs, parseErr := toolbox.ParseKeyValue(args[0], elem, item)
		if len(pairs) > 0 || parseErr == nil {
			if err := render(cmd.OutOrStdout(), kvOutput, kvView(pairs)); err != nil {
				return finish(cmd, args, "", err)
			}
		}
		if parseErr != nil {
			return finish(cmd, args, "", fmt.Errorf("parsing key-value input: %w", parseErr))
		}
		return finish(cmd, args, fmt.Sprintf("%d pairs", len(pairs)), nil)
	},
}

// kvSeparators resolves the separators from flags, then config, then defaults.
func kvSeparators() (rune, rune, error) {
	elem, item := kvElemSep, kvItemSep
	if Config != nil {
		if elem == "" {
			elem = Config.KV.ElementSeparator
		}
		if item == "" {
			item = Config.KV.ItemSeparator
		}
	}
	elemRune, err := singleRune("element separator", orDefault(elem, "="))
	if err != nil {
		return 0, 0, err
	}
	itemRune, err := singleRune("item separator", orDefault(item, "&"))
	if err != nil {
		return 0, 0, err
	}
	if elemRune == itemRune {
		return 0, 0, fmt.Errorf("element and item separators must differ, both are %q", elemRune)
	}
	return elemRune, itemRune, nil
}

func singleRune(name, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func kvView(pairs []toolbox.KeyValue) view {
	var b strings.Builder
	rows := make([][]string, 0, len(pairs))
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", p.Key, p.Value)
		rows = append(rows, []string{p.Key, p.Value})
	}
	if pairs == nil {
		pairs = []toolbox.KeyValue{}
	}
	return view{
		Text:    b.String(),
		Data:    pairs,
		Headers: []string{"KEY", "VALUE"},
		Rows:    rows,
	}
}

func init() {
	kvCmd.Flags().StringVarP(&kvElemSep, "elem", "e", "", "separator between a key and its value")
	kvCmd.Flags().StringVarP(&kvItemSep, "item", "i", "", "separator between pairs")
	kvCmd.Flags().StringVarP(&kvOutput, "output", "o", formatText, "output format (text, json, yaml, table)")
	rootCmd.AddCommand(kvCmd)
}
