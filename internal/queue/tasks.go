package queue

const TypeDocumentIngest = "document:ingest"

// DocumentIngestPayload identifies a stored document whose ingestion
// should run (again) in the worker.
type DocumentIngestPayload struct {
	DocumentID string `json:"document_id"`
}
