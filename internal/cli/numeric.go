package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/toolbox"
)

var (
	binaryBits int
	binaryFull bool
	equalPlace int
)

var digitsCmd = &cobra.Command{
	Use:   "digits <number>",
	Short: "Count the decimal digits of an integer",
	Long: `Count the decimal digits of an integer by repeated division.

The sign is not counted and 0 has zero digits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countDigitsArg(args[0])
		if err != nil {
			return finish(cmd, args, "", err)
		}
		result := strconv.Itoa(n)
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return finish(cmd, args, result, nil)
	},
}

func countDigitsArg(s string) (int, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return toolbox.CountDigits(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as an integer: %w", s, err)
	}
	return toolbox.CountDigits(v), nil
}

var binaryCmd = &cobra.Command{
	Use:   "binary <number>",
	Short: "Render an integer as a bit string",
	Long: `Render the bit pattern of an integer, most significant bit first and padded
to the width given by --bits (8, 16, 32 or 64).

By default only the low half of the bits is shown; pass --full for all of them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, err := binaryString(args[0], binaryBits, !binaryFull)
		if err != nil {
			return finish(cmd, args, "", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), bits)
		return finish(cmd, args, bits, nil)
	},
}

// binaryString parses s at the given width, accepting both signed and
// unsigned spellings so that -1 and 255 both fit in 8 bits.
func binaryString(s string, width int, shorten bool) (string, error) {
	switch width {
	case 8, 16, 32, 64:
	default:
		return "", fmt.Errorf("unsupported width %d (use 8, 16, 32 or 64)", width)
	}

	var u uint64
	if v, err := strconv.ParseInt(s, 10, width); err == nil {
		u = uint64(v)
	} else if v, uerr := strconv.ParseUint(s, 10, width); uerr == nil {
		u = v
	} else {
		return "", fmt.Errorf("parsing %q as a %d-bit integer: %w", s, width, err)
	}

	switch width {
	case 8:
		return toolbox.NumberAsBinary(uint8(u), shorten), nil
	case 16:
		return toolbox.NumberAsBinary(uint16(u), shorten), nil
	case 32:
		return toolbox.NumberAsBinary(uint32(u), shorten), nil
	default:
		return toolbox.NumberAsBinary(u, shorten), nil
	}
}

var equalCmd = &cobra.Command{
	Use:   "equal <a> <b>",
	Short: "Compare two reals to n decimal places",
	Long: `Report whether |a-b| < 10^-places, compared in single precision.

This is a tolerance check, not a comparison of the first n decimals.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			return finish(cmd, args, "", fmt.Errorf("parsing %q: %w", args[0], err))
		}
		b, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return finish(cmd, args, "", fmt.Errorf("parsing %q: %w", args[1], err))
		}
		result := strconv.FormatBool(toolbox.EqualToNDecimalPlaces(float32(a), float32(b), equalPlace))
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return finish(cmd, args, result, nil)
	},
}

func init() {
	binaryCmd.Flags().IntVar(&binaryBits, "bits", 32, "integer width in bits (8, 16, 32 or 64)")
	binaryCmd.Flags().BoolVar(&binaryFull, "full", false, "render every bit instead of the low half")
	equalCmd.Flags().IntVarP(&equalPlace, "places", "n", 2, "number of decimal places")

	rootCmd.AddCommand(digitsCmd)
	rootCmd.AddCommand(binaryCmd)
	rootCmd.AddCommand(equalCmd)
}
