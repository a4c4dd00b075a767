package cognet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/cognet-graph/internal/app/cognet/artifact"
	"github.com/heartmarshall/cognet-graph/internal/app/cognet/corpus"
	"github.com/heartmarshall/cognet-graph/internal/app/cognet/edges"
	"github.com/heartmarshall/cognet-graph/internal/app/cognet/normalize"
	"github.com/heartmarshall/cognet-graph/internal/app/cognet/resolve"
	"github.com/heartmarshall/cognet-graph/internal/config"
	"github.com/heartmarshall/cognet-graph/internal/domain"
	"github.com/heartmarshall/cognet-graph/pkg/ctxutil"
)

// Phase names in canonical execution order.
const (
	PhaseNormalize   = "normalize"
	PhaseLoadEntries = "load-entries"
	PhaseLanguages   = "languages"
	PhaseExport      = "export"
	PhaseEdges       = "edges"
	PhaseLoadEdges   = "load-edges"
)

var allPhases = []string{PhaseNormalize, PhaseLoadEntries, PhaseLanguages, PhaseExport, PhaseEdges, PhaseLoadEdges}

// storePhases talk to the database and are skipped in dry-run mode.
var storePhases = map[string]bool{
	PhaseLoadEntries: true,
	PhaseLanguages:   true,
	PhaseExport:      true,
	PhaseLoadEdges:   true,
}

// Phases returns all phase names in execution order.
func Phases() []string {
	return slices.Clone(allPhases)
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Emitted   int
	Inserted  int64
	Skipped   int
	Malformed int
	Duration  time.Duration
	Err       error
}

// Pipeline runs the cognet phases sequentially against one configuration.
type Pipeline struct {
	log     *slog.Logger
	store   CognateStore
	namer   LanguageNamer
	cfg     config.PipelineConfig
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline. store may be nil when cfg.DryRun is set.
func NewPipeline(log *slog.Logger, store CognateStore, namer LanguageNamer, cfg config.PipelineConfig) *Pipeline {
	return &Pipeline{
		log:     log,
		store:   store,
		namer:   namer,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run, still in canonical order. The first failing phase stops the run.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}

	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = uuid.New()
		ctx = ctxutil.WithRunID(ctx, runID)
	}
	log := p.log.With(slog.String("run_id", runID.String()))

	for _, phase := range toRun {
		if p.cfg.DryRun && storePhases[phase] {
			log.Info("phase skipped (dry run)", slog.String("phase", phase))
			p.results[phase] = PhaseResult{}
			continue
		}

		start := time.Now()
		log.Info("starting phase", slog.String("phase", phase))

		result := p.runPhase(ctxutil.WithPhase(ctx, phase), phase)
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			log.Error("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return fmt.Errorf("phase %s: %w", phase, result.Err)
		}

		log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("emitted", result.Emitted),
			slog.Int64("inserted", result.Inserted),
			slog.Int("skipped", result.Skipped),
			slog.Int("malformed", result.Malformed),
			slog.Duration("duration", result.Duration),
		)
	}

	log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func selectPhases(phases []string) ([]string, error) {
	if len(phases) == 0 {
		return allPhases, nil
	}
	filter := make(map[string]bool, len(phases))
	for _, ph := range phases {
		ph = strings.TrimSpace(ph)
		if !slices.Contains(allPhases, ph) {
			return nil, fmt.Errorf("unknown phase %q (known: %s)", ph, strings.Join(allPhases, ", "))
		}
		filter[ph] = true
	}
	var filtered []string
	for _, ph := range allPhases {
		if filter[ph] {
			filtered = append(filtered, ph)
		}
	}
	return filtered, nil
}

func (p *Pipeline) runPhase(ctx context.Context, phase string) PhaseResult {
	if storePhases[phase] && p.store == nil {
		return PhaseResult{Err: fmt.Errorf("no store configured")}
	}

	switch phase {
	case PhaseNormalize:
		return p.runNormalize()
	case PhaseLoadEntries:
		return p.runLoadEntries(ctx)
	case PhaseLanguages:
		return p.runLanguages(ctx)
	case PhaseExport:
		return p.runExport(ctx)
	case PhaseEdges:
		return p.runEdges()
	case PhaseLoadEdges:
		return p.runLoadEdges(ctx)
	}
	return PhaseResult{Err: fmt.Errorf("unknown phase %q", phase)}
}

// runNormalize splits the corpus into unique word entries.
func (p *Pipeline) runNormalize() PhaseResult {
	in, err := os.Open(p.cfg.CorpusPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open corpus: %w", err)}
	}
	defer in.Close()

	n := normalize.New()
	var scan corpus.Stats

	err = writeArtifact(p.cfg.EntriesPath, func(w io.Writer) error {
		ew, err := artifact.NewEntryWriter(w)
		if err != nil {
			return err
		}
		scan, err = corpus.Scan(in, p.log, func(rec corpus.Record) error {
			for _, e := range n.Add(rec) {
				if err := ew.Write(e); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		return ew.Flush()
	})
	if err != nil {
		return PhaseResult{Malformed: scan.Malformed, Err: err}
	}

	stats := n.Stats()
	return PhaseResult{
		Emitted:   stats.Emitted,
		Skipped:   stats.Duplicates,
		Malformed: scan.Malformed,
	}
}

// runLoadEntries copies the entries artifact into the cognates table.
func (p *Pipeline) runLoadEntries(ctx context.Context) PhaseResult {
	in, err := os.Open(p.cfg.EntriesPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open entries: %w", err)}
	}
	defer in.Close()

	src, err := artifact.NewEntrySource(in)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("read entries %s: %w", p.cfg.EntriesPath, err)}
	}

	res, err := p.store.LoadEntries(ctx, src)
	if err != nil {
		return PhaseResult{Err: err}
	}
	return PhaseResult{Inserted: res.Rows}
}

// runLanguages stores a display name for every language in the entries artifact.
func (p *Pipeline) runLanguages(ctx context.Context) PhaseResult {
	in, err := os.Open(p.cfg.EntriesPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open entries: %w", err)}
	}
	defer in.Close()

	codes, err := artifact.Languages(in)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("read entries %s: %w", p.cfg.EntriesPath, err)}
	}

	var result PhaseResult
	langs := make([]domain.Language, 0, len(codes))
	for _, code := range codes {
		name, ok := p.namer.Name(code)
		if !ok {
			p.log.Debug("no name for language", slog.String("code", code))
			result.Skipped++
			continue
		}
		langs = append(langs, domain.Language{Code: code, Name: name})
	}
	result.Emitted = len(langs)

	result.Inserted, err = p.store.UpsertLanguages(ctx, langs)
	if err != nil {
		result.Err = err
	}
	return result
}

// runExport writes the persisted entries to the snapshot artifact.
func (p *Pipeline) runExport(ctx context.Context) PhaseResult {
	entries, err := p.store.ExportEntries(ctx)
	if err != nil {
		return PhaseResult{Err: err}
	}

	err = writeArtifact(p.cfg.SnapshotPath, func(w io.Writer) error {
		return artifact.WriteSnapshot(w, entries)
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	return PhaseResult{Emitted: len(entries)}
}

// runEdges resolves corpus pairs against the snapshot and writes canonical edges.
func (p *Pipeline) runEdges() PhaseResult {
	snap, err := os.Open(p.cfg.SnapshotPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open snapshot: %w", err)}
	}
	idx, err := resolve.LoadIndex(snap)
	snap.Close()
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("load snapshot %s: %w", p.cfg.SnapshotPath, err)}
	}

	idxStats := idx.Stats()
	p.log.Info("snapshot indexed",
		slog.Int("rows", idxStats.Rows),
		slog.Int("keys", idx.Len()),
		slog.Int("overwritten", idxStats.Overwritten),
	)

	in, err := os.Open(p.cfg.CorpusPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open corpus: %w", err)}
	}
	defer in.Close()

	b := edges.NewBuilder(idx)
	var scan corpus.Stats

	err = writeArtifact(p.cfg.EdgesPath, func(w io.Writer) error {
		ew, err := artifact.NewEdgeWriter(w)
		if err != nil {
			return err
		}
		scan, err = corpus.Scan(in, p.log, func(rec corpus.Record) error {
			if e, ok := b.Add(rec); ok {
				return ew.Write(e)
			}
			return nil
		})
		if err != nil {
			return err
		}
		return ew.Flush()
	})
	if err != nil {
		return PhaseResult{Malformed: scan.Malformed, Err: err}
	}

	stats := b.Stats()
	p.log.Debug("edges built",
		slog.Int("unresolved", stats.Unresolved),
		slog.Int("duplicates", stats.Duplicates),
	)
	return PhaseResult{
		Emitted:   stats.Emitted,
		Skipped:   stats.Unresolved + stats.Duplicates,
		Malformed: scan.Malformed,
	}
}

// runLoadEdges copies the edge artifact into the edges table.
func (p *Pipeline) runLoadEdges(ctx context.Context) PhaseResult {
	in, err := os.Open(p.cfg.EdgesPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open edges: %w", err)}
	}
	defer in.Close()

	src, err := artifact.NewEdgeSource(in)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("read edges %s: %w", p.cfg.EdgesPath, err)}
	}

	res, err := p.store.LoadEdges(ctx, src)
	if err != nil {
		return PhaseResult{Err: err}
	}
	return PhaseResult{Inserted: res.Rows}
}

// writeArtifact writes to a temporary file next to path and renames it into
// place only if fn succeeds.
func writeArtifact(path string, fn func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := fn(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
