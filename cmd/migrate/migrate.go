package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"storefront-backend/internal/config"
	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
)

type Result struct {
	Kind    string
	Success int
	Skipped int
	Failed  int
}

// importedReview lets a missing isActive default to true.
type importedReview struct {
	models.Review
	IsActive *bool `json:"isActive"`
}

// checkTarget rejects targets that would not keep the imported records.
func checkTarget(cfg *config.Config, dir string) error {
	switch {
	case cfg.ReadOnly:
		return errors.New("STORAGE_READONLY is set, nothing can be imported")
	case cfg.StorageDriver == config.DriverMemory:
		return errors.New("memory storage is discarded on exit, pick a persistent STORAGE_DRIVER")
	case cfg.StorageDriver == config.DriverFile && filepath.Clean(dir) == filepath.Clean(cfg.DataDir):
		return errors.New("source and target are the same data dir, pick another STORAGE_DRIVER or -dir")
	}
	return nil
}

// Run imports every data file found in dir into st and leaves a .backup copy
// next to each imported file the first time it runs.
func Run(ctx context.Context, dir string, st storage.Store) ([]Result, error) {
	var results []Result

	branches, err := storage.ReadCollectionFile[models.Branch](filepath.Join(dir, storage.BranchesFile), "branches")
	if err != nil {
		return results, err
	}
	results = append(results, importRows(ctx, "branches", st.Branches(), branches))

	slides, err := storage.ReadCollectionFile[models.Slide](filepath.Join(dir, storage.SlidesFile), "slides")
	if err != nil {
		return results, err
	}
	results = append(results, importRows(ctx, "slides", st.Slides(), slides))

	raw, err := storage.ReadCollectionFile[importedReview](filepath.Join(dir, storage.ReviewsFile), "reviews")
	if err != nil {
		return results, err
	}
	reviews := make([]models.Review, len(raw))
	for i, r := range raw {
		reviews[i] = r.Review
		reviews[i].IsActive = r.IsActive == nil || *r.IsActive
	}
	results = append(results, importRows[models.Review](ctx, "reviews", st.Reviews(), reviews))

	contact, err := storage.ReadContactFile(filepath.Join(dir, storage.ContactFile))
	if err != nil {
		return results, err
	}
	if contact != nil {
		res := Result{Kind: "contact", Success: 1}
		if _, err := st.Contact().Update(ctx, func(c *models.Contact) { *c = *contact }); err != nil {
			log.Error().Err(err).Msg("failed to import contact")
			res = Result{Kind: "contact", Failed: 1}
		}
		results = append(results, res)
	}

	for _, name := range []string{storage.BranchesFile, storage.SlidesFile, storage.ReviewsFile, storage.ContactFile} {
		if err := backupOnce(filepath.Join(dir, name)); err != nil {
			return results, err
		}
	}
	return results, nil
}

func importRows[T any](ctx context.Context, kind string, c storage.Collection[T], rows []T) Result {
	res := Result{Kind: kind}
	for i := range rows {
		err := c.Insert(ctx, &rows[i])
		switch {
		case err == nil:
			res.Success++
		case errors.Is(err, storage.ErrExists):
			res.Skipped++
		default:
			res.Failed++
			log.Error().Err(err).Str("kind", kind).Int("index", i).Msg("failed to import record")
		}
	}
	return res
}

// backupOnce copies path to path.backup unless the source is missing or a
// backup already exists.
func backupOnce(path string) error {
	backup := path + ".backup"
	if _, err := os.Stat(backup); err == nil {
		return nil
	}

	src, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	dst, err := os.Create(backup)
	if err != nil {
		return fmt.Errorf("failed to create backup %s: %w", backup, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to write backup %s: %w", backup, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to write backup %s: %w", backup, err)
	}
	log.Info().Str("file", backup).Msg("backup written")
	return nil
}
