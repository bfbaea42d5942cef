// Package reembed recomputes the vectors of stored practices and knowledge
// base documents, for example after switching embedding models.
//
// Records are listed from a Store, embedded in batches with retry and
// exponential backoff, normalized to unit length and written back. Progress
// is reported to an io.Writer.
package reembed
