// Package ingestion loads knowledge sources into the document store.
//
// The Pipeline type manages the ingestion workflow for a source:
//   - Splitting its text into overlapping chunks
//   - Storing each chunk as a document keyed by its content
//   - Generating chunk embeddings in batches on a worker pool
//   - Recording a checkpoint so an unchanged source is skipped next time
//
// Chunks already stored are neither duplicated nor re-embedded, so
// re-ingesting a source is idempotent.
package ingestion
