// Package io reads API description documents and writes JSON results.
//
// # Document Format
//
// A document bundles a service with the resolved edges between its nodes:
//
//	{
//	  "service": {
//	    "id": "svc", "uri": "/", "name": "Pet Store", "tags": ["pets"],
//	    "children": [
//	      {"id": "op1", "type": "http_operation", "uri": "/paths/~1pets/get",
//	       "name": "List pets", "tags": ["pets"], "data": {"method": "get"}},
//	      {"id": "m1", "type": "model", "uri": "/schemas/Pet", "name": "Pet",
//	       "data": {"x-internal": false}}
//	    ]
//	  },
//	  "edges": [
//	    {"id": "e1",
//	     "from": {"id": "op1", "type": "http_operation", "name": "List pets",
//	              "uri": "/paths/~1pets/get", "path": "/responses/200", "version": "1.0"},
//	     "to": {"id": "m1", "type": "model", "name": "Pet", "uri": "/schemas/Pet"},
//	     "depth": 1}
//	  ]
//	}
//
// The same structure may be written as YAML. Unknown fields are ignored.
//
// # Import
//
// [ImportDocument] picks the decoder from the file extension (.json, .yaml,
// .yml); [ReadDocument] decodes from any reader in an explicit format.
// Decode failures carry the INVALID_DOCUMENT code, missing files
// FILE_NOT_FOUND.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write any value as indented JSON. They are
// used for table-of-contents, graph and inbound artifacts alike.
package io
