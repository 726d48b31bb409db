package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"microblog/internal/store"
)

type MediaService struct {
	store *store.Store
}

func NewMediaService(s *store.Store) *MediaService {
	return &MediaService{store: s}
}

// Register stores the reference of an uploaded file. The row stays
// unattached until a tweet claims it.
func (s *MediaService) Register(ctx context.Context, name string) (uint, error) {
	if name == "" {
		return 0, BadRequest("media name is empty")
	}
	var mediaID uint
	err := s.store.WithTx(ctx, func(tx *gorm.DB) error {
		media := store.Media{Name: name}
		if err := tx.Omit(clause.Associations).Create(&media).Error; err != nil {
			return fmt.Errorf("failed to insert media: %w", err)
		}
		mediaID = media.ID
		return nil
	})
	return mediaID, err
}
