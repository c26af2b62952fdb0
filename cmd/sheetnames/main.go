// Package main provides the CLI entry point for sheetnames-go.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames"
	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/models"
	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/output"
)

var (
	outputPath     string
	pretty         bool
	lastCell       bool
	lastValueCell  bool
	cellFlags      []string
	leftTitleFlags []string
	topTitleFlags  []string
	password       string
	promptPassword bool
)

func main() {
	setupEnvironment()

	rootCmd := &cobra.Command{
		Use:   "sheetnames [input ...]",
		Short: "List worksheet names and probe cells in spreadsheet files",
		Long: `sheetnames-go walks spreadsheet files (.xlsx, .xlsm, .xls, .csv), emits one
record per worksheet, and can probe last-cell positions, fixed cells, and
title-relative values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Write one pretty-printed JSON array instead of JSON lines")
	rootCmd.Flags().BoolVar(&lastCell, "last-cell", false, "Attach LastRow/LastColumn of each sheet's used range")
	rootCmd.Flags().BoolVar(&lastValueCell, "last-value-cell", false, "Attach LastRow/LastColumn of the last cells holding values")
	rootCmd.Flags().StringArrayVar(&cellFlags, "cell", nil, "Attach a cell value as NAME=REF (repeatable)")
	rootCmd.Flags().StringArrayVar(&leftTitleFlags, "left-title", nil, "Attach the value right of a title cell as NAME=TITLE (repeatable)")
	rootCmd.Flags().StringArrayVar(&topTitleFlags, "top-title", nil, "Attach the value below a title cell as NAME=TITLE (repeatable)")
	rootCmd.Flags().StringVar(&password, "password", "", "Workbook password for protected files (default: $SHEETNAMES_PASSWORD)")
	rootCmd.Flags().BoolVar(&promptPassword, "prompt-password", false, "Prompt for the workbook password on start")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	if password == "" {
		password = getEnvWithDefault("SHEETNAMES_PASSWORD", "")
	}

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	batch, err := sheetnames.StartBatch(sheetnames.BatchConfig{
		Password:       password,
		PromptPassword: promptPassword,
	})
	if err != nil {
		return fmt.Errorf("batch start failed: %w", err)
	}
	defer batch.End()

	inputs := make(chan interface{})
	go func() {
		defer close(inputs)
		for _, arg := range args {
			inputs <- arg
		}
	}()

	records, diags, err := batch.Stream(inputs, opts)
	if err != nil {
		return err
	}

	enc := output.NewEncoder(out)
	var collected []models.SheetRecord
	failed := 0

	for records != nil || diags != nil {
		select {
		case rec, ok := <-records:
			if !ok {
				records = nil
				continue
			}
			if pretty {
				collected = append(collected, rec)
				continue
			}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		case derr, ok := <-diags:
			if !ok {
				diags = nil
				continue
			}
			failed++
			log.Error().Err(derr).Msg("File failed")
		}
	}

	if pretty {
		data, err := output.ToJSON(collected, true)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(out, string(data))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(args))
	}
	return nil
}

func buildOptions() (sheetnames.Options, error) {
	opts := sheetnames.Options{
		FindLastCell:      lastCell,
		FindLastValueCell: lastValueCell,
	}

	for _, spec := range cellFlags {
		field, ref, err := splitSpec(spec)
		if err != nil {
			return opts, fmt.Errorf("--cell %q: %w", spec, err)
		}
		opts.Cells = append(opts.Cells, sheetnames.CellProbe{Field: field, Ref: ref})
	}
	for _, spec := range leftTitleFlags {
		field, title, err := splitSpec(spec)
		if err != nil {
			return opts, fmt.Errorf("--left-title %q: %w", spec, err)
		}
		opts.LeftTitles = append(opts.LeftTitles, sheetnames.TitleProbe{Field: field, Title: title})
	}
	for _, spec := range topTitleFlags {
		field, title, err := splitSpec(spec)
		if err != nil {
			return opts, fmt.Errorf("--top-title %q: %w", spec, err)
		}
		opts.TopTitles = append(opts.TopTitles, sheetnames.TitleProbe{Field: field, Title: title})
	}

	return opts, opts.Validate()
}

// splitSpec splits a NAME=VALUE flag argument.
func splitSpec(spec string) (string, string, error) {
	name, value, found := strings.Cut(spec, "=")
	if !found || name == "" {
		return "", "", fmt.Errorf("expected NAME=VALUE")
	}
	return name, value, nil
}
