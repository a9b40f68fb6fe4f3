package inbound

import (
	"net/url"
	"strings"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
)

// pathsMarker separates the document location from the encoded path of an
// operation uri, as in "/openapi.yaml/paths/~1users~1{id}/get".
const pathsMarker = "/paths/"

// Subtitle returns the secondary display line of an inbound source.
//
// For operations it is "METHOD /decoded/path", built from the uri segment
// after the paths marker: the last segment is the method, the rest is a JSON
// pointer fragment. Other kinds, and operation uris that carry no method
// segment after the marker, use the uri verbatim.
func Subtitle(from apidoc.Endpoint) string {
	if apidoc.Canonical(from.Type) != apidoc.KindOperation {
		return from.URI
	}

	_, rest, ok := strings.Cut(from.URI, pathsMarker)
	if !ok {
		return from.URI
	}
	i := strings.LastIndex(rest, "/")
	if i < 0 || i == len(rest)-1 {
		return from.URI
	}
	method, path := rest[i+1:], rest[:i]
	return strings.ToUpper(method) + " " + decodePointerFragment(path)
}

// decodePointerFragment percent-decodes s and then unescapes JSON pointer
// tokens (~1 to "/", then ~0 to "~"). Malformed percent escapes are kept.
func decodePointerFragment(s string) string {
	if unescaped, err := url.PathUnescape(s); err == nil {
		s = unescaped
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}
