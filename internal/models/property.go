package models

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyRented    PropertyStatus = "rented"
)

// Property - kiralık mülk
// Price nullable: eski istemcilerin yazdığı satırlarda fiyat boş olabilir.
type Property struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id" csv:"id"`
	Title       string         `gorm:"type:text" json:"title" csv:"title"`
	Description string         `gorm:"type:text" json:"description" csv:"description"`
	Price       *float64       `json:"price" csv:"price"`
	Status      PropertyStatus `gorm:"type:text;default:'available'" json:"status" csv:"status"`
}

func (Property) TableName() string { return "properties" }
