package models

// Customer - kiracı. PropertyID referansı veritabanında zorlanmaz (FK yok).
type Customer struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:text" json:"name"`
	Contact     string `gorm:"type:text" json:"contact"`
	PropertyID  uint   `gorm:"type:integer" json:"property_id"`
	BillingDate string `gorm:"column:billing_date;type:text" json:"date"`
}

func (Customer) TableName() string { return "customers" }

// BillingRow: customers ⨝ properties görünümü (fatura ekranı)
type BillingRow struct {
	ID           uint     `json:"id" csv:"id"`
	PropertyName string   `json:"p_name" csv:"property"`
	CustomerName string   `json:"c_name" csv:"customer"`
	Price        *float64 `json:"price" csv:"price"`
	Contact      string   `json:"contact" csv:"contact"`
	Date         string   `json:"date" csv:"date"`
	PropertyID   uint     `json:"p_id" csv:"property_id"`
}
