package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/errors"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatForPath returns the document format implied by path's extension.
func FormatForPath(path string) (string, error) {
	if err := errors.ValidateDocumentFilename(filepath.Base(path)); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// ReadDocument decodes a document from r in the given format.
//
// The service must carry an id; everything else is optional. ReadDocument
// does not close r.
func ReadDocument(r io.Reader, format string) (*apidoc.Document, error) {
	if err := errors.ValidateFormat(format, FormatJSON, FormatYAML); err != nil {
		return nil, err
	}

	var doc apidoc.Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		err = json.NewDecoder(r).Decode(&doc)
	}
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s document", format)
	}

	if doc.Service.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document has no service id")
	}
	return &doc, nil
}

// ImportDocument reads the document at path, choosing the decoder by file
// extension.
func ImportDocument(path string) (*apidoc.Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	doc, err := ReadDocument(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return doc, nil
}
