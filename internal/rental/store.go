package rental

import (
	"context"
	"fmt"

	"rental-backend/internal/audit"
	"rental-backend/internal/config"
	"rental-backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrPropertyInUse: restrict politikasında müşterisi olan mülk silinemez
var ErrPropertyInUse = errors.New("mülke bağlı müşteri kaydı var")

// Store: properties / customers tabloları üzerindeki işlemler
type Store struct {
	db           *gorm.DB
	deletePolicy string
}

func NewStore(db *gorm.DB, deletePolicy string) *Store {
	if deletePolicy == "" {
		deletePolicy = config.DeletePolicyOrphan
	}
	return &Store{db: db, deletePolicy: deletePolicy}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) DeletePolicy() string { return s.deletePolicy }

func (s *Store) CreateProperty(ctx context.Context, title, description string, price *float64) (*models.Property, error) {
	property := models.Property{
		Title:       title,
		Description: description,
		Price:       price,
		Status:      models.PropertyAvailable,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return errors.Wrap(err, "mülk kaydedilemedi")
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  audit.EntityProperty,
			EntityID:    property.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Mülk eklendi: %s", property.Title),
			After:       property,
		})
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	properties := make([]models.Property, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&properties).Error; err != nil {
		return nil, errors.Wrap(err, "mülkler listelenemedi")
	}
	return properties, nil
}

// DeleteProperty: olmayan id hata değildir. Müşteri kayıtlarına etkisi
// deletePolicy'ye bağlıdır (orphan / cascade / restrict).
func (s *Store) DeleteProperty(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		err := tx.First(&property, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "mülk okunamadı")
		}

		description := fmt.Sprintf("Mülk silindi: %s", property.Title)
		switch s.deletePolicy {
		case config.DeletePolicyRestrict:
			var count int64
			if err := tx.Model(&models.Customer{}).Where("property_id = ?", id).Count(&count).Error; err != nil {
				return errors.Wrap(err, "müşteri kayıtları sayılamadı")
			}
			if count > 0 {
				return errors.Wrapf(ErrPropertyInUse, "mülk %d, %d müşteri", id, count)
			}
		case config.DeletePolicyCascade:
			res := tx.Where("property_id = ?", id).Delete(&models.Customer{})
			if res.Error != nil {
				return errors.Wrap(res.Error, "bağlı müşteriler silinemedi")
			}
			if res.RowsAffected > 0 {
				description += fmt.Sprintf(" (%d bağlı müşteri ile birlikte)", res.RowsAffected)
			}
		}

		if err := tx.Delete(&models.Property{}, id).Error; err != nil {
			return errors.Wrap(err, "mülk silinemedi")
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  audit.EntityProperty,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: description,
			Before:      property,
		})
	})
}

// AssignCustomer: müşteri ekleme + mülkü "rented" yapma tek transaction'da.
// Mülkün varlığı kontrol edilmez.
func (s *Store) AssignCustomer(ctx context.Context, name, contact string, propertyID uint, date string) (*models.Customer, error) {
	customer := models.Customer{
		Name:        name,
		Contact:     contact,
		PropertyID:  propertyID,
		BillingDate: date,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return errors.Wrap(err, "müşteri kaydedilemedi")
		}
		if err := tx.Model(&models.Property{}).
			Where("id = ?", propertyID).
			Update("status", models.PropertyRented).Error; err != nil {
			return errors.Wrap(err, "mülk durumu güncellenemedi")
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  audit.EntityCustomer,
			EntityID:    customer.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Müşteri eklendi: %s -> mülk %d", customer.Name, propertyID),
			After:       customer,
		})
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListBilling: customers LEFT JOIN properties. Silinmiş mülke bağlı müşteri
// satırları da döner (p_name boş, price null), müşteri silinene kadar.
func (s *Store) ListBilling(ctx context.Context) ([]models.BillingRow, error) {
	rows := make([]models.BillingRow, 0)
	err := s.db.WithContext(ctx).
		Table("customers AS c").
		Select("c.id AS id, COALESCE(p.title, '') AS property_name, c.name AS customer_name, p.price AS price, c.contact AS contact, c.billing_date AS date, c.property_id AS property_id").
		Joins("LEFT JOIN properties AS p ON c.property_id = p.id").
		Order("c.id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "fatura kayıtları listelenemedi")
	}
	return rows, nil
}

// DeleteCustomer: önce bağlı mülkü "available" yapar, sonra müşteriyi siler.
// Olmayan id hata değildir.
func (s *Store) DeleteCustomer(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		err := tx.First(&customer, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "müşteri okunamadı")
		}

		if err := tx.Model(&models.Property{}).
			Where("id = ?", customer.PropertyID).
			Update("status", models.PropertyAvailable).Error; err != nil {
			return errors.Wrap(err, "mülk durumu geri alınamadı")
		}
		if err := tx.Delete(&models.Customer{}, id).Error; err != nil {
			return errors.Wrap(err, "müşteri silinemedi")
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  audit.EntityCustomer,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Müşteri silindi: %s", customer.Name),
			Before:      customer,
		})
	})
}
