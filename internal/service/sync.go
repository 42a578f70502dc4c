package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thankimquy/FOODORDER/internal/domain"
	"github.com/thankimquy/FOODORDER/internal/excel"
	"github.com/thankimquy/FOODORDER/internal/snapshot"
	"go.uber.org/zap"
)

// SyncService sits at the import/export boundary. Every import path decodes
// first and only touches the store through ReplaceAll once the caller has
// confirmed the destructive replacement.
type SyncService struct {
	store  *StoreService
	codec  *excel.Codec
	logger *zap.SugaredLogger
}

func NewSyncService(store *StoreService, codec *excel.Codec, logger *zap.SugaredLogger) *SyncService {
	return &SyncService{
		store:  store,
		codec:  codec,
		logger: logger,
	}
}

func (s *SyncService) currentSnapshot(ctx context.Context) (domain.Snapshot, error) {
	foods, err := s.store.Foods(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{Foods: foods, Orders: orders}, nil
}

func (s *SyncService) ExportExcel(ctx context.Context, w io.Writer) error {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return err
	}

	return s.codec.Write(w, snap)
}

// ExportExcelFile re-encodes the whole store and overwrites the sync target.
// Failures are reported as ErrSyncWrite so the auto-sync worker can treat
// them as non-fatal.
func (s *SyncService) ExportExcelFile(ctx context.Context, path string) error {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSyncWrite, err)
	}

	var buf bytes.Buffer
	if err := s.codec.Write(&buf, snap); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSyncWrite, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSyncWrite, err)
	}

	return nil
}

// ImportExcel decodes the workbook and, when confirmed, replaces the store.
// Without confirmation the decoded snapshot is returned for preview and the
// store is left untouched.
func (s *SyncService) ImportExcel(ctx context.Context, r io.Reader, confirm bool) (domain.Snapshot, bool, error) {
	snap, err := s.codec.Decode(r)
	if err != nil {
		return domain.Snapshot{}, false, err
	}

	if !confirm {
		return snap, false, nil
	}

	if err := s.store.ReplaceAll(ctx, snap); err != nil {
		return domain.Snapshot{}, false, err
	}

	return snap, true, nil
}

func (s *SyncService) ExportSnapshot(ctx context.Context, w io.Writer) error {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return err
	}

	return snapshot.Encode(w, snap)
}

func (s *SyncService) ImportSnapshot(ctx context.Context, r io.Reader, confirm bool) (domain.Snapshot, bool, error) {
	snap, err := snapshot.Decode(r)
	if err != nil {
		return domain.Snapshot{}, false, err
	}

	if !confirm {
		return snap, false, nil
	}

	if err := s.store.ReplaceAll(ctx, snap); err != nil {
		return domain.Snapshot{}, false, err
	}

	return snap, true, nil
}

// MigrateFromLegacy reads the previous storage generation once at startup.
// A missing file means nothing to migrate; the file is never deleted, so the
// legacy data stays auditable.
func (s *SyncService) MigrateFromLegacy(ctx context.Context, path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open legacy store: %w", err)
	}
	defer f.Close()

	snap, err := snapshot.Decode(f)
	if err != nil {
		return false, err
	}

	migrated, err := s.store.MigrateIfEmpty(ctx, snap)
	if err != nil {
		return false, err
	}

	if migrated {
		s.logger.Infow("migrated legacy store", "path", path, "foods", len(snap.Foods), "orders", len(snap.Orders))
	}

	return migrated, nil
}
