// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the side-effect-free xl helpers as tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/xhanalabs/xl/pkg/models"
	"github.com/xhanalabs/xl/pkg/toolbox"
)

// maxCount caps how many values a single tool call may generate.
const maxCount = 1000

// Server wraps the toolbox and exposes it as MCP tools.
type Server struct {
	server *gomcp.Server
	cfg    *models.Config
}

// NewServer creates a new MCP server. cfg supplies the default alphabet,
// separators and label table; nil uses built-in defaults.
func NewServer(cfg *models.Config, version string) *Server {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = &models.Config{}
	}

	s := &Server{cfg: cfg}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "xl", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type randomIntegerInput struct {
	Min   int64 `json:"min" jsonschema:"inclusive lower bound"`
	Max   int64 `json:"max" jsonschema:"inclusive upper bound"`
	Count int   `json:"count,omitempty" jsonschema:"number of values to generate (default 1, at most 1000)"`
}

type randomIntegerOutput struct {
	Values []int64 `json:"values,omitempty"`
}

type randomRealInput struct {
	Min   float64 `json:"min" jsonschema:"inclusive lower bound"`
	Max   float64 `json:"max" jsonschema:"exclusive upper bound"`
	Count int     `json:"count,omitempty" jsonschema:"number of values to generate (default 1, at most 1000)"`
}

type randomRealOutput struct {
	Values []float64 `json:"values,omitempty"`
}

type randomNumberInput struct {
	Length int    `json:"length" jsonschema:"exact number of decimal digits"`
	Type   string `json:"type,omitempty" jsonschema:"integer type bounding the length: int32 (1-9 digits) or int64 (1-18 digits, the default)"`
	Count  int    `json:"count,omitempty" jsonschema:"number of values to generate (default 1, at most 1000)"`
}

type randomNumberOutput struct {
	Values []int64 `json:"values,omitempty"`
}

type randomStringInput struct {
	Length   int    `json:"length" jsonschema:"number of characters"`
	Alphabet string `json:"alphabet,omitempty" jsonschema:"characters to draw from; defaults to the configured alphabet"`
	Count    int    `json:"count,omitempty" jsonschema:"number of values to generate (default 1, at most 1000)"`
}

type randomStringOutput struct {
	Values []string `json:"values,omitempty"`
}

type randomUUIDInput struct {
	Count int `json:"count,omitempty" jsonschema:"number of values to generate (default 1, at most 1000)"`
}

type randomUUIDOutput struct {
	UUIDs []string `json:"uuids,omitempty"`
}

type parseKeyValueInput struct {
	Input            string `json:"input" jsonschema:"text such as name=john&age=50"`
	ElementSeparator string `json:"element_separator,omitempty" jsonschema:"single character between a key and its value (default =)"`
	ItemSeparator    string `json:"item_separator,omitempty" jsonschema:"single character between pairs (default &)"`
}

type parseKeyValueOutput struct {
	Pairs []toolbox.KeyValue `json:"pairs"`
	Count int                `json:"count"`
}

type numberAsBinaryInput struct {
	Number int64 `json:"number" jsonschema:"integer to render"`
	Bits   int   `json:"bits,omitempty" jsonschema:"integer width: 8, 16, 32 (default) or 64"`
	Full   bool  `json:"full,omitempty" jsonschema:"render every bit instead of the low half"`
}

type numberAsBinaryOutput struct {
	Binary string `json:"binary"`
}

type countDigitsInput struct {
	Number int64 `json:"number" jsonschema:"integer whose decimal digits are counted; the sign is ignored"`
}

type countDigitsOutput struct {
	Digits int `json:"digits"`
}

type emptyInput struct{}

type timestampOutput struct {
	Timestamp string `json:"timestamp"`
}

type platformOutput struct {
	Platform string `json:"platform"`
}

type lookupLabelInput struct {
	Key int `json:"key" jsonschema:"integer key in the configured label table"`
}

type lookupLabelOutput struct {
	Label string `json:"label"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "random_integer",
		Description: "Generate uniformly distributed random integers in the inclusive range [min, max].",
	}, s.handleRandomInteger)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "random_real",
		Description: "Generate uniformly distributed random reals in the half-open range [min, max).",
	}, s.handleRandomReal)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "random_number",
		Description: "Generate random integers with exactly the requested number of decimal digits and no leading zero.",
	}, s.handleRandomNumber)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "random_string",
		Description: "Generate random strings of the given length drawn with replacement from an alphabet.",
	}, s.handleRandomString)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "random_uuid",
		Description: "Generate random version 4 UUIDs for test identifiers.",
	}, s.handleRandomUUID)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "parse_key_value",
		Description: "Parse a string such as name=john&age=50 into ordered key-value pairs. Repeated keys and keys without a value separator are errors.",
	}, s.handleParseKeyValue)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "number_as_binary",
		Description: "Render an integer's bit pattern, most significant bit first, padded to the chosen width.",
	}, s.handleNumberAsBinary)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "count_digits",
		Description: "Count the decimal digits of an integer. Zero has zero digits.",
	}, s.handleCountDigits)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "current_timestamp",
		Description: "Return the server's local time as HH:MM:SS.mmm.",
	}, s.handleCurrentTimestamp)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "platform_name",
		Description: "Return the name of the platform the server was built for (windows, linux, android, bsd, aix, ios, osx, solaris).",
	}, s.handlePlatformName)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "lookup_label",
		Description: "Look up the label for an integer key in the configured label table.",
	}, s.handleLookupLabel)
}

// --- Tool handlers ---

func (s *Server) handleRandomInteger(_ context.Context, _ *gomcp.CallToolRequest, input randomIntegerInput) (*gomcp.CallToolResult, randomIntegerOutput, error) {
	n, err := normalizeCount(input.Count)
	if err != nil {
		return errorResult(err.Error()), randomIntegerOutput{}, nil
	}

	out := randomIntegerOutput{Values: make([]int64, 0, n)}
	for i := 0; i < n; i++ {
		v, err := toolbox.RandomIntegerFromRange(input.Min, input.Max)
		if err != nil {
			return errorResult(fmt.Sprintf("generating integer in [%d, %d]: %s", input.Min, input.Max, err)), randomIntegerOutput{}, nil
		}
		out.Values = append(out.Values, v)
	}
	return nil, out, nil
}

func (s *Server) handleRandomReal(_ context.Context, _ *gomcp.CallToolRequest, input randomRealInput) (*gomcp.CallToolResult, randomRealOutput, error) {
	n, err := normalizeCount(input.Count)
	if err != nil {
		return errorResult(err.Error()), randomRealOutput{}, nil
	}

	out := randomRealOutput{Values: make([]float64, 0, n)}
	for i := 0; i < n; i++ {
		v, err := toolbox.RandomRealFromRange(input.Min, input.Max)
		if err != nil {
			return errorResult(fmt.Sprintf("generating real in [%g, %g): %s", input.Min, input.Max, err)), randomRealOutput{}, nil
		}
		out.Values = append(out.Values, v)
	}
	return nil, out, nil
}

func (s *Server) handleRandomNumber(_ context.Context, _ *gomcp.CallToolRequest, input randomNumberInput) (*gomcp.CallToolResult, randomNumberOutput, error) {
	n, err := normalizeCount(input.Count)
	if err != nil {
		return errorResult(err.Error()), randomNumberOutput{}, nil
	}

	var draw func() (int64, error)
	switch input.Type {
	case "", "int64":
		draw = func() (int64, error) { return toolbox.RandomNumberOfLengthN[int64](input.Length) }
	case "int32":
		draw = func() (int64, error) {
			v, err := toolbox.RandomNumberOfLengthN[int32](input.Length)
			return int64(v), err
		}
	default:
		return errorResult(fmt.Sprintf("unsupported type %q: must be int32 or int64", input.Type)), randomNumberOutput{}, nil
	}

	out := randomNumberOutput{Values: make([]int64, 0, n)}
	for i := 0; i < n; i++ {
		v, err := draw()
		if err != nil {
			return errorResult(fmt.Sprintf("generating %d-digit number: %s", input.Length, err)), randomNumberOutput{}, nil
		}
		out.Values = append(out.Values, v)
	}
	return nil, out, nil
}

func (s *Server) handleRandomString(_ context.Context, _ *gomcp.CallToolRequest, input randomStringInput) (*gomcp.CallToolResult, randomStringOutput, error) {
	n, err := normalizeCount(input.Count)
	if err != nil {
		return errorResult(err.Error()), randomStringOutput{}, nil
	}

	alphabet := input.Alphabet
	if alphabet == "" {
		alphabet = s.cfg.Random.Alphabet
	}
	if alphabet == "" {
		alphabet = models.DefaultAlphabet
	}

	out := randomStringOutput{Values: make([]string, 0, n)}
	for i := 0; i < n; i++ {
		v, err := toolbox.RandomStringOfLengthN(input.Length, alphabet)
		if err != nil {
			return errorResult(fmt.Sprintf("generating string of length %d: %s", input.Length, err)), randomStringOutput{}, nil
		}
		out.Values = append(out.Values, v)
	}
	return nil, out, nil
}

func (s *Server) handleRandomUUID(_ context.Context, _ *gomcp.CallToolRequest, input randomUUIDInput) (*gomcp.CallToolResult, randomUUIDOutput, error) {
	n, err := normalizeCount(input.Count)
	if err != nil {
		return errorResult(err.Error()), randomUUIDOutput{}, nil
	}

	out := randomUUIDOutput{UUIDs: make([]string, n)}
	for i := range out.UUIDs {
		out.UUIDs[i] = toolbox.RandomUUID()
	}
	return nil, out, nil
}

func (s *Server) handleParseKeyValue(_ context.Context, _ *gomcp.CallToolRequest, input parseKeyValueInput) (*gomcp.CallToolResult, parseKeyValueOutput, error) {
	elem, err := separator("element_separator", input.ElementSeparator, s.cfg.KV.ElementSeparator, '=')
	if err != nil {
		return errorResult(err.Error()), emptyPairs(), nil
	}
	item, err := separator("item_separator", input.ItemSeparator, s.cfg.KV.ItemSeparator, '&')
	if err != nil {
		return errorResult(err.Error()), emptyPairs(), nil
	}
	if elem == item {
		return errorResult(fmt.Sprintf("element and item separators must differ, both are %q", elem)), emptyPairs(), nil
	}

	pairs, err := toolbox.ParseKeyValue(input.Input, elem, item)
	if pairs == nil {
		pairs = []toolbox.KeyValue{}
	}
	out := parseKeyValueOutput{Pairs: pairs, Count: len(pairs)}
	if err != nil {
		// pairs read before the failure are kept, as in `xl kv`
		msg := fmt.Sprintf("parsing key-value input: %s", err)
		if len(pairs) > 0 {
			accepted := make([]string, len(pairs))
			for i, p := range pairs {
				accepted[i] = p.Key + string(elem) + p.Value
			}
			msg += fmt.Sprintf(" (accepted %d pairs: %s)", len(pairs), strings.Join(accepted, string(item)))
		}
		res := errorResult(msg)
		res.StructuredContent = out
		return res, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleNumberAsBinary(_ context.Context, _ *gomcp.CallToolRequest, input numberAsBinaryInput) (*gomcp.CallToolResult, numberAsBinaryOutput, error) {
	shorten := !input.Full
	var bits string
	switch input.Bits {
	case 8:
		bits = toolbox.NumberAsBinary(int8(input.Number), shorten)
	case 16:
		bits = toolbox.NumberAsBinary(int16(input.Number), shorten)
	case 0, 32:
		bits = toolbox.NumberAsBinary(int32(input.Number), shorten)
	case 64:
		bits = toolbox.NumberAsBinary(input.Number, shorten)
	default:
		return errorResult(fmt.Sprintf("unsupported width %d: must be 8, 16, 32 or 64", input.Bits)), numberAsBinaryOutput{}, nil
	}
	return nil, numberAsBinaryOutput{Binary: bits}, nil
}

func (s *Server) handleCountDigits(_ context.Context, _ *gomcp.CallToolRequest, input countDigitsInput) (*gomcp.CallToolResult, countDigitsOutput, error) {
	return nil, countDigitsOutput{Digits: toolbox.CountDigits(input.Number)}, nil
}

func (s *Server) handleCurrentTimestamp(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, timestampOutput, error) {
	return nil, timestampOutput{Timestamp: toolbox.CurrentTimestamp()}, nil
}

func (s *Server) handlePlatformName(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, platformOutput, error) {
	return nil, platformOutput{Platform: toolbox.PlatformName()}, nil
}

func (s *Server) handleLookupLabel(_ context.Context, _ *gomcp.CallToolRequest, input lookupLabelInput) (*gomcp.CallToolResult, lookupLabelOutput, error) {
	label, ok := s.cfg.Labels.Lookup(input.Key)
	if !ok {
		return errorResult(fmt.Sprintf("no label for key %d", input.Key)), lookupLabelOutput{}, nil
	}
	return nil, lookupLabelOutput{Label: label}, nil
}

// --- Helpers ---

func normalizeCount(n int) (int, error) {
	switch {
	case n == 0:
		return 1, nil
	case n < 0 || n > maxCount:
		return 0, fmt.Errorf("count must be between 1 and %d, got %d", maxCount, n)
	default:
		return n, nil
	}
}

// separator picks the first non-empty of the request value and the
// configured value, falling back to def.
func separator(name, requested, configured string, def rune) (rune, error) {
	s := requested
	if s == "" {
		s = configured
	}
	if s == "" {
		return def, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func emptyPairs() parseKeyValueOutput {
	return parseKeyValueOutput{Pairs: []toolbox.KeyValue{}}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
