package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apinav/pkg/pipeline"
)

// inboundCommand creates the inbound command.
func (c *CLI) inboundCommand() *cobra.Command {
	var (
		subject string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "inbound <document>",
		Short: "List the nodes that reference a node",
		Long: `List the sources of every edge pointing at the subject node, bucketed by
kind: models, APIs, endpoints, articles and others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Outputs = []string{pipeline.OutputInbound}
			opts.Subject = subject

			result, err := c.execute(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if asJSON {
				data := result.Artifacts[pipeline.ArtifactName(pipeline.OutputInbound, pipeline.FormatJSON)]
				return writeArtifact(cmd.OutOrStdout(), "", data)
			}
			view := pipeline.NewInboundView(result.Subject.ID, *result.Inbound)
			fmt.Fprint(cmd.OutOrStdout(), renderInbound(view))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "subject node id (default: the service)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the index as JSON")
	return cmd
}
