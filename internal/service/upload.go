package service

import (
	"context"
	"strings"
	"time"

	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/alimikegami/apparel-store/pkg/utils"
	"github.com/rs/zerolog/log"
)

const (
	MaxImageSize    int64 = 5_000_000
	MaxReviewImages       = 5
)

// validateImages accepts image/* files up to MaxImageSize. limit <= 0 means any count.
func validateImages(files []dto.FileUpload, limit int) error {
	if limit > 0 && len(files) > limit {
		return errs.WithMessage(errs.ErrTooManyFiles, "Too many files, at most %d images are allowed", limit)
	}

	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			return errs.ErrNotAnImage
		}
		if f.Size > MaxImageSize || int64(len(f.Content)) > MaxImageSize {
			return errs.ErrFileSizeExceedingLimit
		}
	}

	return nil
}

// uploadSet remembers what it stored so a failed write can take the files back.
type uploadSet struct {
	storage ObjectStorage
	keys    []string
}

func newUploadSet(storage ObjectStorage) *uploadSet {
	return &uploadSet{storage: storage}
}

func (u *uploadSet) add(ctx context.Context, ownerID string, color string, file dto.FileUpload) (string, error) {
	key := utils.BuildObjectKey(ownerID, color, file.FieldName, file.FileName, time.Now())

	url, err := u.storage.Upload(ctx, key, file)
	if err != nil {
		return "", err
	}

	u.keys = append(u.keys, key)
	return url, nil
}

// rollback is best effort: a failed delete is logged and the rest still run.
func (u *uploadSet) rollback(ctx context.Context) {
	for _, key := range u.keys {
		if !u.storage.DeleteByKey(ctx, key) {
			log.Ctx(ctx).Warn().Str("component", "rollback").Str("key", key).Msg("Failed to remove uploaded file")
		}
	}
	u.keys = nil
}

func deleteStoredImages(ctx context.Context, storage ObjectStorage, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if !storage.DeleteByKey(ctx, utils.KeyFromURL(url)) {
			log.Ctx(ctx).Warn().Str("component", "deleteStoredImages").Str("url", url).Msg("Failed to remove stored image")
		}
	}
}

// unreferenced lists the entries of before that are missing from after.
func unreferenced(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, url := range after {
		keep[url] = struct{}{}
	}

	var out []string
	for _, url := range before {
		if _, ok := keep[url]; !ok {
			out = append(out, url)
		}
	}
	return out
}
