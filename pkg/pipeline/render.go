package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/apinav/pkg/errors"
	"github.com/matzehuels/apinav/pkg/io"
	"github.com/matzehuels/apinav/pkg/render/nodelink"
)

// Render encodes one computed view of result. The view must have been
// computed, i.e. output must have been requested from Execute.
func Render(ctx context.Context, output, format string, result *Result, opts Options) ([]byte, error) {
	if !Supports(output, format) {
		return nil, errors.New(errors.ErrCodeUnsupported, "output %s cannot be rendered as %s", output, format)
	}

	switch output {
	case OutputTOC:
		if result.Tree == nil {
			return nil, errors.New(errors.ErrCodeInternal, "table of contents not computed")
		}
		return encodeJSON(TOCView{
			Items:       result.Tree,
			FirstSlug:   result.FirstSlug,
			SchemaCount: result.SchemaCount,
		})

	case OutputInbound:
		if result.Inbound == nil {
			return nil, errors.New(errors.ErrCodeInternal, "inbound index not computed")
		}
		return encodeJSON(NewInboundView(result.Subject.ID, *result.Inbound))

	case OutputGraph:
		if result.Graph == nil {
			return nil, errors.New(errors.ErrCodeInternal, "graph not computed")
		}
		if format == FormatJSON {
			return encodeJSON(result.Graph)
		}
		dot := nodelink.ToDOT(*result.Graph, nodelink.Options{Detailed: opts.Detailed})
		switch format {
		case FormatDOT:
			return []byte(dot), nil
		case FormatSVG:
			return nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			return nodelink.RenderPNG(ctx, dot)
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "output %s cannot be rendered as %s", output, format)
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := io.WriteJSON(v, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
