// Package inbound indexes the edges that point at a single subject node, for
// an "inbound dependencies" panel.
//
// [Build] buckets edges by the canonical kind of their source node. Buckets
// come in a fixed order (Models, APIs, Endpoints, Articles, Others) and are
// always present; an empty bucket reports [Bucket.Disabled]. Sources of an
// unrecognized kind land in the Others bucket, so no edge is ever dropped.
//
// Within a bucket, entries are sorted by source uri using plain byte-wise
// comparison; equal uris keep their input order.
//
// Each entry carries a display subtitle (see [Subtitle]): operations read as
// "GET /users/{id}", everything else shows its uri verbatim.
package inbound
