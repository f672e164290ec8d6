package database

import (
	"fmt"

	"rental-backend/internal/config"
	"rental-backend/internal/models"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables: uygulamanın sahip olduğu tablolar, oluşturma sırasıyla
var Tables = []interface{}{
	&models.Property{},
	&models.Customer{},
	&models.AuditLog{},
}

// Open: DB_DRIVER'a göre bağlantı açar ve eksik tabloları oluşturur.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("desteklenmeyen DB_DRIVER: %s", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "veritabanına bağlanılamadı")
	}

	// sqlite: tek bağlantı, yazmalar aynı handle üzerinde sıraya girer
	if cfg.DBDriver != "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "sql.DB alınamadı")
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}

	zap.S().Infof("Veritabanı bağlantısı başarılı, driver: %s", dialector.Name())
	return db, nil
}

// EnsureSchema: "CREATE TABLE IF NOT EXISTS" davranışı.
// Var olan tablolara dokunulmaz (AutoMigrate kolon değiştirebildiği için kullanılmıyor).
func EnsureSchema(db *gorm.DB) error {
	m := db.Migrator()
	for _, table := range Tables {
		if m.HasTable(table) {
			continue
		}
		if err := m.CreateTable(table); err != nil {
			return errors.Wrapf(err, "tablo oluşturulamadı: %T", table)
		}
		zap.S().Infof("Tablo oluşturuldu: %T", table)
	}
	return nil
}

// Close: alttaki sql.DB bağlantısını kapatır
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
