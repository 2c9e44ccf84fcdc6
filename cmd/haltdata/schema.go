package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-trading-halt/internal/datasource"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const schemaName = "trading-halt-source-config.json"

// sampleConfig mirrors SourceConfig with every optional field spelled out.
type sampleConfig struct {
	DataFolder     string `yaml:"data_folder"`
	TimeZone       string `yaml:"time_zone"`
	PreMarketStart string `yaml:"pre_market_start"`
	PostMarketEnd  string `yaml:"post_market_end"`
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the data source config JSON schema and a sample config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "Directory receiving the schema and sample config",
				Value: "config",
			},
		},
		Action: schemaAction,
	}
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output")
	config := datasource.EmptyConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaPath := filepath.Join(outputDir, schemaName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	fmt.Fprintf(cmd.Root().Writer, "Schema generated at %s\n", schemaPath)

	// An existing sample config is left alone.
	samplePath := filepath.Join(outputDir, "trading-halt-source-config.yaml")
	if _, err := os.Stat(samplePath); !os.IsNotExist(err) {
		return nil
	}

	yamlBytes, err := yaml.Marshal(sampleConfig{
		DataFolder:     "data",
		TimeZone:       config.TimeZone,
		PreMarketStart: "04:00",
		PostMarketEnd:  "20:00",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
	if err := os.WriteFile(samplePath, yamlBytes, 0644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	fmt.Fprintf(cmd.Root().Writer, "Sample config generated at %s\n", samplePath)

	return nil
}
