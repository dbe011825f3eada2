// Package datasource defines the seam between the pipeline and wherever the
// raw dataset bytes live. The cleaning run consumes exactly one source, opened
// once; a failed Open is fatal to the run.
package datasource

import (
	"context"
	"io"
)

// Source provides the raw CSV bytes for one pipeline run.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
