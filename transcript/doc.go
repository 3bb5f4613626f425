// Package transcript provides storage for finished run results. The
// in-memory implementation suits tests and ephemeral demo processes;
// production deployments supply a durable core.TranscriptStore.
package transcript
