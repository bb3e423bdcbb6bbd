// Package solr implements driven.IndexSource on top of the solr-go JSON
// client.
//
// Documents are read through the JSON Request API with offset/limit
// paging and the schema from {core}/schema/fields. Every request goes
// through a transport that throttles with a token bucket, backs off when
// Solr answers 429 or 503 and reports other failures as *APIError.
package solr
