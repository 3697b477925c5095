// Package lexsearch is an SDK for querying a policy document corpus held in
// a Vespa search engine. Results come back grouped into families of related
// documents, with hits at document or passage granularity, and support
// two-level pagination over families and passages.
package lexsearch
