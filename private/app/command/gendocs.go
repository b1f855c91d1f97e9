// Copyright 2023 Anapaya Systems

package command

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// The generated markdown is post-processed for the docs site: the heading
// levels are shifted up by one so the command name renders as the page
// title.
var headings = []struct {
	search  *regexp.Regexp
	replace string
}{
	{search: regexp.MustCompile("\\)\\=\n\n## "), replace: ")=\n\n# "},
	{search: regexp.MustCompile("\n### "), replace: "## "},
	{search: regexp.MustCompile("\n#### "), replace: "### "},
	{search: regexp.MustCompile("\n##### "), replace: "#### "},
}

// NewGendocs builds the hidden gendocs command. It writes one markdown page
// per command in the tree, cross-linked through a hidden toctree on the
// parent page.
func NewGendocs(pather Pather) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "gendocs <directory>",
		Short:   "Generate the command documentation",
		Example: fmt.Sprintf("  %[1]s gendocs docs/command", pather.CommandPath()),
		Args:    cobra.ExactArgs(1),
		Hidden:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Root().DisableAutoGenTag = true

			directory := args[0]
			if err := os.MkdirAll(directory, 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			if err := writePages(cmd.Root(), directory); err != nil {
				return fmt.Errorf("generating documentation: %w", err)
			}
			return nil
		},
	}
	return cmd
}

func writePages(cmd *cobra.Command, dir string) error {
	var children []string
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		if err := writePages(c, dir); err != nil {
			return err
		}
		children = append(children, pageName(c))
	}

	var buf bytes.Buffer
	buf.WriteString("---\norphan: true\n---\n\n")
	fmt.Fprintf(&buf, "(app-%s)=\n\n", strings.ReplaceAll(cmd.CommandPath(), " ", "-"))
	if err := doc.GenMarkdown(cmd, &buf); err != nil {
		return err
	}
	if len(children) != 0 {
		buf.WriteString("```{toctree}\n---\nhidden: true\n---\n")
		buf.WriteString(strings.Join(children, "\n"))
		buf.WriteString("\n```\n")
	}

	raw := buf.Bytes()
	for _, h := range headings {
		raw = h.search.ReplaceAll(raw, []byte(h.replace))
	}
	return os.WriteFile(filepath.Join(dir, pageName(cmd)+".md"), raw, 0666)
}

func pageName(cmd *cobra.Command) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", "_")
}
