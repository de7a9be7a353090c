package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/amlich/internal/logger"
	"github.com/guttosm/amlich/internal/storage"
)

const (
	filePattern      = "*_HOLIDAYS.csv"
	defaultBatchSize = 500
	maxParallelFiles = 7
)

// ErrNoFiles is returned when the input directory holds no holiday files.
var ErrNoFiles = errors.New("no holiday files found")

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.HolidayRepository {
	return storage.NewHolidayRepository(db)
}

// ProcessDirectory loads every custom holiday file in dir into the database.
//
//   - dir: directory containing "<name>_HOLIDAYS.csv" files.
//   - db:  open *sql.DB (PostgreSQL).
//
// Behavior:
//   - Files are processed concurrently, at most min(7, NumCPU) at a time unless parallel is set.
//   - A file already present in the ingestion log is skipped unless force is set,
//     in which case its previous rows are deleted and it is reloaded.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	repo := repoCtor(db)

	files, err := filepath.Glob(filepath.Join(dir, filePattern))
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}
	sort.Strings(files)

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Msg("ingestion start")

	maxParallel := maxParallelFiles
	if parallel > 0 {
		if parallel < maxParallel {
			maxParallel = parallel
		}
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, f := range files {
		g.Go(func() error {
			return ingestFile(gctx, repo, f, i, len(files), force)
		})
	}

	return g.Wait()
}

func ingestFile(ctx context.Context, repo storage.HolidayRepository, path string, idx, total int, force bool) error {
	start := time.Now()
	base := filepath.Base(path)
	log := logger.Component("ingestion").With().Str("file", base).Int("idx", idx+1).Int("total", total).Logger()
	log.Info().Msg("file start")

	// Idempotency: skip if already ingested, unless force
	exists, err := repo.HasIngestionForSource(base)
	if err != nil {
		log.Error().Err(err).Msg("check ingestion log failed")
		return fmt.Errorf("file %s: check ingestion log: %w", path, err)
	}
	if exists && !force {
		log.Info().Bool("skipped", true).Msg("already ingested")
		return nil
	}
	if exists {
		if err := repo.DeleteHolidaysBySource(base); err != nil {
			log.Error().Err(err).Msg("delete existing failed")
			return fmt.Errorf("file %s: delete existing: %w", path, err)
		}
	}

	rows, err := parseAndPersistFile(ctx, path, repo, defaultBatchSize)
	if err != nil {
		log.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
		return fmt.Errorf("file %s: %w", path, err)
	}
	if err := repo.UpsertIngestionLog(base, rows); err != nil {
		log.Error().Err(err).Msg("update ingestion log failed")
		return fmt.Errorf("file %s: upsert ingestion log: %w", path, err)
	}
	log.Info().Int("rows", rows).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
	return nil
}
