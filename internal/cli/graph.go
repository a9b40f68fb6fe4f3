package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/apinav/pkg/errors"
	"github.com/matzehuels/apinav/pkg/pipeline"
)

type graphOptions struct {
	root     string
	format   string
	output   string
	detailed bool
	refresh  bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var o graphOptions
	cmd := &cobra.Command{
		Use:   "graph <document>",
		Short: "Render the relationship graph around a node",
		Long: `Render the nodes connected to a root node by the document's edges.

Formats: json (nodes and edges), dot (Graphviz source), svg and png.`,
		Example: `  apinav graph petstore.yaml --root pet-model --format svg -o pet.svg
  apinav graph https://example.com/api.json --format dot | dot -Tpdf > api.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], o)
		},
	}
	cmd.Flags().StringVar(&o.root, "root", "", "root node id (default: the service)")
	cmd.Flags().StringVarP(&o.format, "format", "f", pipeline.FormatJSON, "output format: json, dot, svg, png")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&o.detailed, "detailed", false, "include uris and levels in diagram labels")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached artifacts")
	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, arg string, o graphOptions) error {
	if err := errors.ValidateFormat(o.format, pipeline.FormatsFor(pipeline.OutputGraph)...); err != nil {
		return err
	}
	opts := c.baseOptions()
	opts.Outputs = []string{pipeline.OutputGraph}
	opts.Formats = []string{o.format}
	opts.Root = o.root
	opts.Detailed = o.detailed
	opts.Refresh = o.refresh

	prog := newProgress(c.Logger)
	result, err := c.execute(cmd.Context(), arg, opts)
	if err != nil {
		return err
	}
	data := result.Artifacts[pipeline.ArtifactName(pipeline.OutputGraph, o.format)]
	if err := writeArtifact(cmd.OutOrStdout(), o.output, data); err != nil {
		return err
	}
	if o.output != "" && o.output != "-" {
		prog.done("Rendered " + o.output)
	}
	return nil
}
