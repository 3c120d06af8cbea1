package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/toolbox"
	"gopkg.in/yaml.v3"
)

var (
	labelsFile   string
	labelsOutput string
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Look up integer-keyed labels",
	Long: `Work with the integer-keyed label table from the 'labels' section of the
config file, or from a YAML file passed with --file:

  labels:
    - key: 0
      value: upper
    - key: 1
      value: lower`,
}

var labelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every label",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadLabels()
		if err != nil {
			return finish(cmd, args, "", err)
		}
		if err := render(cmd.OutOrStdout(), labelsOutput, labelsView(table)); err != nil {
			return finish(cmd, args, "", err)
		}
		return finish(cmd, args, fmt.Sprintf("%d labels", len(table)), nil)
	},
}

var labelsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the label for a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := strconv.Atoi(args[0])
		if err != nil {
			return finish(cmd, args, "", fmt.Errorf("parsing key %q: %w", args[0], err))
		}
		table, err := loadLabels()
		if err != nil {
			return finish(cmd, args, "", err)
		}
		label, ok := table.Lookup(key)
		if !ok {
			return finish(cmd, args, "", fmt.Errorf("no label for key %d", key))
		}
		fmt.Fprintln(cmd.OutOrStdout(), label)
		return finish(cmd, args, label, nil)
	},
}

type labelsDocument struct {
	Labels toolbox.LabelTable `yaml:"labels"`
}

// loadLabels reads --file when given and falls back to the config.
func loadLabels() (toolbox.LabelTable, error) {
	if labelsFile == "" {
		if Config == nil {
			return nil, nil
		}
		return Config.Labels, nil
	}

	data, err := os.ReadFile(labelsFile)
	if err != nil {
		return nil, fmt.Errorf("reading labels file: %w", err)
	}
	var doc labelsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing labels file %s: %w", labelsFile, err)
	}
	if err := doc.Labels.Validate(); err != nil {
		return nil, fmt.Errorf("validating labels file %s: %w", labelsFile, err)
	}
	return doc.Labels, nil
}

func labelsView(table toolbox.LabelTable) view {
	var b strings.Builder
	rows := make([][]string, 0, len(table))
	for i, kv := range table {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d\t%s", kv.Key, kv.Value)
		rows = append(rows, []string{strconv.Itoa(kv.Key), kv.Value})
	}
	if b.Len() == 0 {
		b.WriteString("No labels configured.")
	}
	if table == nil {
		table = toolbox.LabelTable{}
	}
	return view{
		Text:    b.String(),
		Data:    labelsDocument{Labels: table},
		Headers: []string{"KEY", "LABEL"},
		Rows:    rows,
	}
}

func init() {
	labelsCmd.PersistentFlags().StringVarP(&labelsFile, "file", "f", "", "read labels from this YAML file instead of the config")
	labelsListCmd.Flags().StringVarP(&labelsOutput, "output", "o", formatText, "output format (text, json, yaml, table)")

	labelsCmd.AddCommand(labelsListCmd)
	labelsCmd.AddCommand(labelsGetCmd)
	rootCmd.AddCommand(labelsCmd)
}
