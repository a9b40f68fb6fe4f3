package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apinav/pkg/pipeline"
)

// execute loads the document named by arg and runs the pipeline on it.
func (c *CLI) execute(ctx context.Context, arg string, opts pipeline.Options) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	doc, err := c.loadDocument(ctx, runner, arg)
	if err != nil {
		return nil, err
	}
	return runner.Execute(ctx, doc, opts)
}

type tocOptions struct {
	hideSchemas  bool
	hideInternal bool
	json         bool
	interactive  bool
}

// tocCommand creates the toc command.
func (c *CLI) tocCommand() *cobra.Command {
	var o tocOptions
	cmd := &cobra.Command{
		Use:   "toc <document>",
		Short: "Print the table of contents of a document",
		Long: `Print the navigation tree of a document: an overview entry, the operations
grouped by tag and sub-tag, and the ungrouped operations.

With --interactive an entry can be picked; its slug is printed on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTOC(cmd, args[0], o)
		},
	}
	cmd.Flags().BoolVar(&o.hideSchemas, "hide-schemas", false, "omit schema models")
	cmd.Flags().BoolVar(&o.hideInternal, "hide-internal", false, "omit internal nodes")
	cmd.Flags().BoolVar(&o.json, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "pick an entry interactively")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")
	return cmd
}

func (c *CLI) runTOC(cmd *cobra.Command, arg string, o tocOptions) error {
	opts := c.baseOptions()
	opts.Outputs = []string{pipeline.OutputTOC}
	if cmd.Flags().Changed("hide-schemas") {
		opts.HideSchemas = o.hideSchemas
	}
	if cmd.Flags().Changed("hide-internal") {
		opts.HideInternal = o.hideInternal
	}

	result, err := c.execute(cmd.Context(), arg, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case o.json:
		return writeArtifact(out, "", result.Artifacts[pipeline.ArtifactName(pipeline.OutputTOC, pipeline.FormatJSON)])

	case o.interactive:
		final, err := tea.NewProgram(newTOCPicker(result.Tree, result.FirstSlug), tea.WithContext(cmd.Context())).Run()
		if err != nil {
			return err
		}
		if m, ok := final.(tocPicker); ok && m.Selected != nil {
			fmt.Fprintln(out, m.Selected.Slug)
		}
		return nil

	default:
		fmt.Fprintln(out, renderTOC(result.Root.Name, result.Tree))
		printDetail(out, "%d schemas available · first entry %s", result.SchemaCount, result.FirstSlug)
		return nil
	}
}
