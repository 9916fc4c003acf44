// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-papers/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [affiliation...]",
	Short: "Classify affiliation strings as company or academic",
	Long: `Classify runs the affiliation heuristic on each argument and prints the
verdict. With no arguments it reads one affiliation per line from stdin.
Useful for tuning keyword table overrides before a full fetch.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("tables", "", "YAML file overriding the built-in classification keyword tables")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	tables, err := loadTables(cmd)
	if err != nil {
		return err
	}
	c := classify.New(tables)

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		for _, aff := range args {
			printVerdict(out, c, aff)
		}
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		printVerdict(out, c, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}

func printVerdict(w io.Writer, c *classify.Classifier, affiliation string) {
	result := c.Classify(affiliation)
	if result.IsCompany {
		fmt.Fprintf(w, "company\t%s\t%s\n", result.CompanyName, affiliation)
	} else {
		fmt.Fprintf(w, "academic\t\t%s\n", affiliation)
	}
}
