package scope

import "gorm.io/gorm"

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func OrderByUploadDesc(db *gorm.DB) *gorm.DB {
	return db.Order("upload_time DESC")
}
