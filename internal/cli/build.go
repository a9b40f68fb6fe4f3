package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apinav/pkg/errors"
	"github.com/matzehuels/apinav/pkg/httputil"
	"github.com/matzehuels/apinav/pkg/pipeline"
)

type buildOptions struct {
	outputs  string
	formats  string
	dir      string
	root     string
	subject  string
	detailed bool
	refresh  bool
	watch    bool
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var o buildOptions
	cmd := &cobra.Command{
		Use:   "build <document>",
		Short: "Write every artifact of a document to a directory",
		Long: `Run the whole pipeline and write each artifact as <output>.<format>.

Output/format pairs that do not exist (toc.svg, inbound.png, ...) are
skipped. With --watch the document is rebuilt whenever it changes.`,
		Example: `  apinav build petstore.yaml -d out --formats json,svg
  apinav build petstore.yaml -d out --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], o)
		},
	}
	cmd.Flags().StringVar(&o.outputs, "outputs", "", "comma-separated outputs: toc, graph, inbound (default all)")
	cmd.Flags().StringVar(&o.formats, "formats", "json", "comma-separated formats: json, dot, svg, png")
	cmd.Flags().StringVarP(&o.dir, "dir", "d", ".", "output directory")
	cmd.Flags().StringVar(&o.root, "root", "", "graph root node id")
	cmd.Flags().StringVar(&o.subject, "subject", "", "inbound subject node id (default: root)")
	cmd.Flags().BoolVar(&o.detailed, "detailed", false, "include uris and levels in diagram labels")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "rebuild when the document changes")
	return cmd
}

func (c *CLI) buildPipelineOptions(o buildOptions) pipeline.Options {
	opts := c.baseOptions()
	opts.Outputs = splitList(o.outputs)
	opts.Formats = splitList(o.formats)
	opts.Root = o.root
	opts.Subject = o.subject
	opts.Detailed = o.detailed
	opts.Refresh = o.refresh
	return opts
}

func (c *CLI) runBuild(cmd *cobra.Command, arg string, o buildOptions) error {
	if o.watch && (arg == stdinArg || httputil.IsURL(arg)) {
		return errors.New(errors.ErrCodeInvalidInput, "--watch needs a local document")
	}
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", o.dir)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if err := c.buildOnce(ctx, out, arg, o); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}

	printInfo(out, "watching %s", arg)
	return watchFile(ctx, arg, c.Logger, func() {
		if err := c.buildOnce(ctx, out, arg, o); err != nil {
			c.Logger.Error("rebuild failed", "error", errors.UserMessage(err))
		}
	})
}

// buildOnce runs the pipeline and writes its artifacts.
func (c *CLI) buildOnce(ctx context.Context, out io.Writer, arg string, o buildOptions) error {
	prog := newProgress(c.Logger)
	result, err := c.execute(ctx, arg, c.buildPipelineOptions(o))
	if err != nil {
		return err
	}

	names := make([]string, 0, len(result.Artifacts))
	for name := range result.Artifacts {
		names = append(names, name)
	}
	slices.Sort(names)

	printSuccess(out, "Built %s", arg)
	printStats(out, result.Stats, result.CacheInfo)
	for _, name := range names {
		if err := errors.ValidatePath(name); err != nil {
			return err
		}
		path := filepath.Join(o.dir, name)
		if err := os.WriteFile(path, result.Artifacts[name], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(out, path)
	}
	prog.done(fmt.Sprintf("Wrote %d artifacts", len(names)))
	return nil
}
