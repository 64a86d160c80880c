package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func newShowCmd() *cobra.Command {
	var (
		catalogPath string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the course catalog document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(catalogPath)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			var out []byte
			switch format {
			case formatJSON:
				out, err = json.MarshalIndent(c.Document(), "", "  ")
				out = append(out, '\n')
			case formatYAML:
				out, err = yaml.Marshal(c.Document())
			default:
				return fmt.Errorf("unsupported format %q, use %s or %s", format, formatJSON, formatYAML)
			}
			if err != nil {
				return fmt.Errorf("failed to encode catalog: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", envOrDefault(envVarCatalog, ""), "catalog document to print instead of the built-in one")
	cmd.Flags().StringVarP(&format, "format", "o", formatJSON, "output format (json or yaml)")

	return cmd
}
