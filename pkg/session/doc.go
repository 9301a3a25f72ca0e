/*
Package session serialises reattach runs per document.

Two runs on the same document must never interleave their mutations. Guard
holds a reference-counted local mutex per document ID and, when configured,
a distributed lock so that several replicas sharing a backend agree too.
*/
package session
