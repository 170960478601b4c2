// Package runner drives the probe sweep: one query per (image, absent object,
// prompt variant) tuple, with results persisted as one atomic collection per
// (model, prompt variant) pair.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/mirage/internal/groundtruth"
	"github.com/agenthands/mirage/internal/llm"
	"github.com/agenthands/mirage/internal/prompts"
	"github.com/agenthands/mirage/internal/record"
	"github.com/agenthands/mirage/internal/retry"
)

// Dispatcher issues one query per tuple: it renders the prompt variant for
// the object and sends it with the image through the bounded-retry wrapper.
// It carries no mutable state, so it is safe to use concurrently for
// distinct tuples.
type Dispatcher struct {
	client  llm.VisionClient
	retrier *retry.Retrier
	catalog prompts.Catalog
}

func NewDispatcher(client llm.VisionClient, retrier *retry.Retrier, catalog prompts.Catalog) *Dispatcher {
	return &Dispatcher{
		client:  client,
		retrier: retrier,
		catalog: catalog,
	}
}

func (d *Dispatcher) Model() string { return d.client.Model() }

// Dispatch returns the trimmed raw answer for one (image, object, variant)
// tuple, or the retry wrapper's terminal error.
func (d *Dispatcher) Dispatch(ctx context.Context, image []byte, object, variant string) (string, error) {
	prompt, err := d.catalog.Render(variant, object)
	if err != nil {
		return "", err
	}
	raw, err := d.retrier.Do(ctx, func() (string, error) {
		return d.client.Answer(ctx, prompt, image)
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Runner sweeps the ground-truth entries for one prompt variant at a time.
type Runner struct {
	Dispatcher    *Dispatcher
	Store         *record.Store
	Entries       []groundtruth.Entry
	ImageRoot     string
	TargetFolders []string
	Log           *zap.Logger
}

func New(dispatcher *Dispatcher, store *record.Store, entries []groundtruth.Entry, imageRoot string, targetFolders []string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		Dispatcher:    dispatcher,
		Store:         store,
		Entries:       entries,
		ImageRoot:     imageRoot,
		TargetFolders: targetFolders,
		Log:           log,
	}
}

type probeKey struct {
	Foldername, Filename, Object string
}

// Run probes every (entry, absent object) pair for one prompt variant and
// persists the collection in a single atomic write. Iteration is
// ground-truth file order outer, object-list order inner, so run logs are
// reproducible.
//
// A missing image is a data-availability gap: the entry is skipped with a
// warning and the run continues. Any dispatch failure is fatal for the whole
// run and nothing is persisted, so aggregators never see a partial run.
func (r *Runner) Run(ctx context.Context, variant string) ([]record.QueryRecord, error) {
	model := r.Dispatcher.Model()
	log := r.Log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("model", model),
		zap.String("prompt", variant),
	)

	allowed := make(map[string]bool, len(r.TargetFolders))
	for _, f := range r.TargetFolders {
		allowed[f] = true
	}

	seen := make(map[probeKey]bool)
	results := []record.QueryRecord{}
	for _, entry := range r.Entries {
		if len(allowed) > 0 && !allowed[entry.Foldername] {
			continue
		}

		imagePath := filepath.Join(r.ImageRoot, entry.Foldername, entry.Filename)
		image, err := os.ReadFile(imagePath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("missing image, skipping", zap.String("path", imagePath))
				continue
			}
			return nil, fmt.Errorf("read image %q: %w", imagePath, err)
		}

		for _, object := range entry.Absent {
			key := probeKey{entry.Foldername, entry.Filename, object}
			if seen[key] {
				log.Warn("duplicate ground-truth probe, keeping first",
					zap.String("image", entry.Filename),
					zap.String("object", object))
				continue
			}
			seen[key] = true

			log.Info("dispatching",
				zap.String("image", entry.Filename),
				zap.String("object", object))

			raw, err := r.Dispatcher.Dispatch(ctx, image, object, variant)
			if err != nil {
				return nil, fmt.Errorf("dispatch %s/%s object %q: %w", entry.Foldername, entry.Filename, object, err)
			}

			results = append(results, record.QueryRecord{
				Model:        model,
				Prompt:       variant,
				Filename:     entry.Filename,
				Foldername:   entry.Foldername,
				Object:       object,
				Flag:         0,
				GPTRawAnswer: raw,
			})
		}
	}

	path, err := r.Store.Save(model, variant, results)
	if err != nil {
		return nil, err
	}
	log.Info("run persisted", zap.String("file", path), zap.Int("records", len(results)))
	return results, nil
}
