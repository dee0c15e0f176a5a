// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kb defines the collaborator interfaces consumed by the harness
// and provides two implementations: an HTTP client for a remote
// knowledge-base server and a local SQLite-backed store.
package kb

import (
	"context"
	"errors"

	"github.com/meshintel/kbcheck/pkg/types"
)

// ErrUnreachable signals that a collaborator could not be contacted at
// all. The harness treats it as a phase-level connectivity failure.
var ErrUnreachable = errors.New("collaborator unreachable")

// Storage is the knowledge-base capability consumed by the harness.
// Bulk inserts are not guaranteed idempotent by the collaborator:
// retried batches may introduce duplicates, which the integrity
// auditor surfaces.
type Storage interface {
	// BulkInsert submits one batch in a single call.
	BulkInsert(ctx context.Context, records []types.PaperRecord) error

	// Query issues a semantic search and returns hits ordered by
	// descending relevance.
	Query(ctx context.Context, text string, filters map[string]string, topK int) ([]types.SearchHit, error)

	// ScanAll returns every resident record.
	ScanAll(ctx context.Context) ([]types.PaperRecord, error)

	// Sample returns up to n resident records.
	Sample(ctx context.Context, n int) ([]types.PaperRecord, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error
}

// Agent is the AI question-answering capability consumed by the harness.
type Agent interface {
	// Ask sends one natural-language question and returns the response text.
	Ask(ctx context.Context, question string) (string, error)
}
