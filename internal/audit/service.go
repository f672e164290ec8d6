package audit

import (
	"encoding/json"

	"rental-backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	EntityProperty = "property"
	EntityCustomer = "customer"
)

type LogOptions struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog: verilen db/tx üzerinde audit kaydı yazar. Mutasyonla aynı
// transaction içinde çağrılırsa ikisi birlikte commit/rollback olur.
func WriteLog(db *gorm.DB, opts LogOptions) error {
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	// description kolonu size:255
	description := opts.Description
	if r := []rune(description); len(r) > 255 {
		description = string(r[:255])
	}

	log := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := db.Create(&log).Error; err != nil {
		return errors.Wrap(err, "audit log kaydedilemedi")
	}
	return nil
}

// ListLogs: en yeni kayıt önce. Boş entityType / sıfır entityID filtre uygulamaz.
func ListLogs(db *gorm.DB, entityType string, entityID uint) ([]models.AuditLog, error) {
	q := db.Model(&models.AuditLog{})
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if entityID > 0 {
		q = q.Where("entity_id = ?", entityID)
	}

	var logs []models.AuditLog
	if err := q.Order("id DESC").Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "audit loglar listelenemedi")
	}
	return logs, nil
}
