// Package csvfile is the flat-file sink of the pipeline. The cleaned table
// and its variants terminate here; there is no other persistence layer.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"

	"deliveryetl/internal/frame"
)

// Variant pairs an output file name with the dataframe to write into it.
type Variant struct {
	Name  string
	Frame dataframe.DataFrame
}

// Writer writes CSV files into a single output directory.
type Writer struct{ dir string }

// NewWriter returns a Writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer { return &Writer{dir: dir} }

// Write renders one dataframe to <dir>/<name>. Missing float cells export as
// empty fields, not the literal "NaN".
func (w *Writer) Write(name string, df dataframe.DataFrame) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", w.dir, err)
	}
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(frame.Render(df)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// WriteAll writes the given variants. The files are independent, so they are
// written concurrently; the first error cancels the remaining writes and is
// returned.
func (w *Writer) WriteAll(ctx context.Context, variants []Variant) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, v := range variants {
		v := v
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return w.Write(v.Name, v.Frame)
		})
	}
	return g.Wait()
}
