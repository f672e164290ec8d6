package export

import (
	"rental-backend/internal/rental"

	"github.com/gofiber/fiber/v2"
)

// GET /api/export/:file  (properties.csv, properties.xlsx, billing.csv, billing.xlsx)
func ExportHandler(store *rental.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file := c.Params("file")

		var (
			data        []byte
			contentType string
			err         error
		)
		switch file {
		case "properties.csv", "properties.xlsx":
			properties, lerr := store.ListProperties(c.UserContext())
			if lerr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, lerr.Error())
			}
			if file == "properties.csv" {
				data, err = PropertiesCSV(properties)
				contentType = ContentTypeCSV
			} else {
				data, err = PropertiesXLSX(properties)
				contentType = ContentTypeXLSX
			}
		case "billing.csv", "billing.xlsx":
			rows, lerr := store.ListBilling(c.UserContext())
			if lerr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, lerr.Error())
			}
			if file == "billing.csv" {
				data, err = BillingCSV(rows)
				contentType = ContentTypeCSV
			} else {
				data, err = BillingXLSX(rows)
				contentType = ContentTypeXLSX
			}
		default:
			return fiber.NewError(fiber.StatusNotFound, "Bilinmeyen export: "+file)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Attachment(file)
		c.Set(fiber.HeaderContentType, contentType)
		return c.Send(data)
	}
}
