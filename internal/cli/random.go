package cli

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/models"
	"github.com/xhanalabs/xl/pkg/toolbox"
	"golang.org/x/exp/constraints"
)

// maxRandomCount caps how many values one invocation may generate.
const maxRandomCount = 1000

var (
	randomCount    int
	randomSeed     string
	randomType     string
	randomAlphabet string
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate random test data",
	Long: `Generate random integers, reals, fixed-length numbers, strings and UUIDs.

Values come from an engine seeded by the operating system's entropy source,
so runs are not reproducible. Pass --seed to replay a sequence instead.`,
}

var randomIntCmd = &cobra.Command{
	Use:   "int <min> <max>",
	Short: "Random integer in [min, max]",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := randomSetup()
		if err != nil {
			return finish(cmd, args, "", err)
		}
		values, err := randomIntegers(r, orDefault(randomType, "int"), args[0], args[1], randomCount)
		return emitValues(cmd, args, values, err)
	},
}

var randomRealCmd = &cobra.Command{
	Use:   "real <min> <max>",
	Short: "Random real in [min, max)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := randomSetup()
		if err != nil {
			return finish(cmd, args, "", err)
		}
		values, err := randomReals(r, orDefault(randomType, "float64"), args[0], args[1], randomCount)
		return emitValues(cmd, args, values, err)
	},
}

var randomNumberCmd = &cobra.Command{
	Use:   "number <length>",
	Short: "Random integer with exactly <length> digits",
	Long: `Generate an integer with exactly <length> decimal digits and no leading zero.

The length must be below the digit count of the type's maximum value, so
int32 accepts 1-9 and int64 accepts 1-18.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		length, err := strconv.Atoi(args[0])
		if err != nil {
			return finish(cmd, args, "", fmt.Errorf("parsing length %q: %w", args[0], err))
		}
		r, err := randomSetup()
		if err != nil {
			return finish(cmd, args, "", err)
		}
		values, err := randomNumbers(r, orDefault(randomType, "int64"), length, randomCount)
		return emitValues(cmd, args, values, err)
	},
}

var randomStringCmd = &cobra.Command{
	Use:   "string <length>",
	Short: "Random string drawn from an alphabet",
	Long: `Generate a string of <length> characters drawn with replacement from
--alphabet, or from random.alphabet in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		length, err := strconv.Atoi(args[0])
		if err != nil {
			return finish(cmd, args, "", fmt.Errorf("parsing length %q: %w", args[0], err))
		}
		r, err := randomSetup()
		if err != nil {
			return finish(cmd, args, "", err)
		}
		alphabet := randomAlphabet
		if alphabet == "" && Config != nil {
			alphabet = Config.Random.Alphabet
		}
		alphabet = orDefault(alphabet, models.DefaultAlphabet)

		values := make([]string, 0, randomCount)
		for i := 0; i < randomCount; i++ {
			var s string
			if r != nil {
				s, err = toolbox.StringOfLengthN(r, length, alphabet)
			} else {
				s, err = toolbox.RandomStringOfLengthN(length, alphabet)
			}
			if err != nil {
				return finish(cmd, args, "", err)
			}
			values = append(values, s)
		}
		return emitValues(cmd, args, values, nil)
	},
}

var randomUUIDCmd = &cobra.Command{
	Use:   "uuid",
	Short: "Random version 4 UUID",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := randomSetup(); err != nil {
			return finish(cmd, args, "", err)
		}
		values := make([]string, randomCount)
		for i := range values {
			values[i] = toolbox.RandomUUID()
		}
		return emitValues(cmd, args, values, nil)
	},
}

// emitValues prints one value per line and records them.
func emitValues(cmd *cobra.Command, args []string, values []string, err error) error {
	if err != nil {
		return finish(cmd, args, "", err)
	}
	result := strings.Join(values, "\n")
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return finish(cmd, args, result, nil)
}

// randomSetup checks --count and returns a deterministic engine when --seed
// is set. A nil engine selects the entropy-seeded helpers.
func randomSetup() (*rand.Rand, error) {
	if randomCount < 1 || randomCount > maxRandomCount {
		return nil, fmt.Errorf("%w: --count must be between 1 and %d, got %d", toolbox.ErrConfig, maxRandomCount, randomCount)
	}
	if randomSeed == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(randomSeed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing seed %q: %w", randomSeed, err)
	}
	return toolbox.NewSeededRand(seed), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func randomIntegers(r *rand.Rand, kind, lo, hi string, count int) ([]string, error) {
	switch kind {
	case "int":
		return drawIntegers(r, lo, hi, count, parseSigned[int](strconv.IntSize))
	case "int8":
		return drawIntegers(r, lo, hi, count, parseSigned[int8](8))
	case "int16":
		return drawIntegers(r, lo, hi, count, parseSigned[int16](16))
	case "int32":
		return drawIntegers(r, lo, hi, count, parseSigned[int32](32))
	case "int64":
		return drawIntegers(r, lo, hi, count, parseSigned[int64](64))
	case "uint":
		return drawIntegers(r, lo, hi, count, parseUnsigned[uint](strconv.IntSize))
	case "uint8":
		return drawIntegers(r, lo, hi, count, parseUnsigned[uint8](8))
	case "uint16":
		return drawIntegers(r, lo, hi, count, parseUnsigned[uint16](16))
	case "uint32":
		return drawIntegers(r, lo, hi, count, parseUnsigned[uint32](32))
	case "uint64":
		return drawIntegers(r, lo, hi, count, parseUnsigned[uint64](64))
	default:
		return nil, fmt.Errorf("unsupported integer type %q", kind)
	}
}

func parseSigned[T constraints.Signed](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 10, bits)
		return T(v), err
	}
}

func parseUnsigned[T constraints.Unsigned](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 10, bits)
		return T(v), err
	}
}

func drawIntegers[T toolbox.Integer](r *rand.Rand, loArg, hiArg string, count int, parse func(string) (T, error)) ([]string, error) {
	lo, err := parse(loArg)
	if err != nil {
		return nil, fmt.Errorf("parsing min %q: %w", loArg, err)
	}
	hi, err := parse(hiArg)
	if err != nil {
		return nil, fmt.Errorf("parsing max %q: %w", hiArg, err)
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var v T
		if r != nil {
			v, err = toolbox.IntegerFromRange(r, lo, hi)
		} else {
			v, err = toolbox.RandomIntegerFromRange(lo, hi)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, toolbox.ToString(v))
	}
	return out, nil
}

func randomReals(r *rand.Rand, kind, lo, hi string, count int) ([]string, error) {
	switch kind {
	case "float32":
		return drawReals[float32](r, lo, hi, count, 32)
	case "float64":
		return drawReals[float64](r, lo, hi, count, 64)
	default:
		return nil, fmt.Errorf("unsupported real type %q", kind)
	}
}

func drawReals[T toolbox.Float](r *rand.Rand, loArg, hiArg string, count, bits int) ([]string, error) {
	lo, err := strconv.ParseFloat(loArg, bits)
	if err != nil {
		return nil, fmt.Errorf("parsing min %q: %w", loArg, err)
	}
	hi, err := strconv.ParseFloat(hiArg, bits)
	if err != nil {
		return nil, fmt.Errorf("parsing max %q: %w", hiArg, err)
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var v T
		if r != nil {
			v, err = toolbox.RealFromRange(r, T(lo), T(hi))
		} else {
			v, err = toolbox.RandomRealFromRange(T(lo), T(hi))
		}
		if err != nil {
			return nil, err
		}
		out = append(out, toolbox.ToString(v))
	}
	return out, nil
}

func randomNumbers(r *rand.Rand, kind string, length, count int) ([]string, error) {
	switch kind {
	case "int":
		return drawNumbers[int](r, length, count)
	case "int8":
		return drawNumbers[int8](r, length, count)
	case "int16":
		return drawNumbers[int16](r, length, count)
	case "int32":
		return drawNumbers[int32](r, length, count)
	case "int64":
		return drawNumbers[int64](r, length, count)
	case "uint":
		return drawNumbers[uint](r, length, count)
	case "uint8":
		return drawNumbers[uint8](r, length, count)
	case "uint16":
		return drawNumbers[uint16](r, length, count)
	case "uint32":
		return drawNumbers[uint32](r, length, count)
	case "uint64":
		return drawNumbers[uint64](r, length, count)
	default:
		return nil, fmt.Errorf("unsupported integer type %q", kind)
	}
}

func drawNumbers[T toolbox.Integer](r *rand.Rand, length, count int) ([]string, error) {
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var (
			v   T
			err error
		)
		if r != nil {
			v, err = toolbox.NumberOfLengthN[T](r, length)
		} else {
			v, err = toolbox.RandomNumberOfLengthN[T](length)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, toolbox.ToString(v))
	}
	return out, nil
}

func init() {
	randomCmd.PersistentFlags().IntVarP(&randomCount, "count", "c", 1, "number of values to generate")
	randomCmd.PersistentFlags().StringVar(&randomSeed, "seed", "", "seed for a reproducible sequence")
	randomCmd.PersistentFlags().StringVarP(&randomType, "type", "t", "", "numeric type (int, int8..int64, uint, uint8..uint64, float32, float64)")
	randomStringCmd.Flags().StringVarP(&randomAlphabet, "alphabet", "a", "", "characters to draw from")

	randomCmd.AddCommand(randomIntCmd)
	randomCmd.AddCommand(randomRealCmd)
	randomCmd.AddCommand(randomNumberCmd)
	randomCmd.AddCommand(randomStringCmd)
	randomCmd.AddCommand(randomUUIDCmd)
	rootCmd.AddCommand(randomCmd)
}
