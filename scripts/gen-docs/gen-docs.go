// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

//go:generate go run gen-docs.go --path ../../docs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	tracemapcmd "github.com/telekom/tracemap/cmd"
)

const (
	formatMarkdown = "markdown"
	formatMan      = "man"
)

func main() {
	if err := newCmdGenDocs().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCmdGenDocs documents the tracemap command tree in the requested format
func newCmdGenDocs() *cobra.Command {
	var (
		path   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generate the documentation of the tracemap commands",
		RunE: func(_ *cobra.Command, _ []string) error {
			return generate(path, format)
		},
	}
	cmd.Flags().StringVar(&path, "path", "docs", "directory the documentation is written to")
	cmd.Flags().StringVar(&format, "format", formatMarkdown, "output format (markdown, man)")

	return cmd
}

func generate(path, format string) error {
	root := tracemapcmd.BuildCmd("")
	root.DisableAutoGenTag = true

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	var err error
	switch format {
	case formatMarkdown:
		err = doc.GenMarkdownTree(root, path)
	case formatMan:
		err = doc.GenManTree(root, &doc.GenManHeader{Title: "TRACEMAP", Section: "1"}, path)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to generate %s docs: %w", format, err)
	}
	return nil
}
