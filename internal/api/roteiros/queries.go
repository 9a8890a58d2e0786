package roteiros

import (
	domain "roteiro-backend/internal/domain/roteiros"
	"roteiro-backend/internal/domain/tags"

	"gorm.io/gorm"
)

// replaceRoteiroTags rewrites the roteiro-level tag set: delete all, insert
// the submitted ids. No diffing.
func replaceRoteiroTags(tx *gorm.DB, roteiroID uint, tagIDs []uint) error {
	if err := tx.Exec("DELETE FROM roteiro_tags WHERE roteiro_id = ?", roteiroID).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := tx.Exec("INSERT INTO roteiro_tags (roteiro_id, tag_id) VALUES (?, ?)", roteiroID, tagID).Error; err != nil {
			return err
		}
	}
	return nil
}

// replaceCenaTags does the same for a single cena.
func replaceCenaTags(tx *gorm.DB, cenaID uint, tagIDs []uint) error {
	if err := tx.Exec("DELETE FROM cena_tags WHERE cena_id = ?", cenaID).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := tx.Exec("INSERT INTO cena_tags (cena_id, tag_id) VALUES (?, ?)", cenaID, tagID).Error; err != nil {
			return err
		}
	}
	return nil
}

// loadCenas returns a roteiro's rows in print order with tags resolved.
func loadCenas(db *gorm.DB, roteiroID uint) ([]domain.Cena, error) {
	var cenas []domain.Cena
	err := db.Preload("Tags").
		Where("roteiro_id = ?", roteiroID).
		Order("ordem ASC").
		Find(&cenas).Error
	if err != nil {
		return nil, err
	}
	for i := range cenas {
		if cenas[i].Tags == nil {
			cenas[i].Tags = []tags.Tag{}
		}
	}
	return cenas, nil
}
