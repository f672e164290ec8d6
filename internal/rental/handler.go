package rental

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// POST /api/add-property  {title, description, price}
func CreatePropertyHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Content-Type bakılmaz, gövde her zaman JSON okunur (BodyParser değil)
		body, err := decodePayload(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		title, err := body.String("title")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		description, err := body.String("description")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		price, err := body.OptionalFloat("price")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		property, err := store.CreateProperty(c.UserContext(), title, description, price)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		zap.S().Infof("Mülk eklendi id=%d title=%q", property.ID, property.Title)
		return c.JSON(fiber.Map{"status": "success"})
	}
}

// GET /api/properties
func ListPropertiesHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		properties, err := store.ListProperties(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(properties)
	}
}

// DELETE /api/properties/:id
func DeletePropertyHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := store.DeleteProperty(c.UserContext(), id); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		zap.S().Infof("Mülk silindi id=%d policy=%s", id, store.DeletePolicy())
		return c.JSON(fiber.Map{"status": "deleted"})
	}
}

// POST /api/add-customer  {name, contact, property_id, date}
func CreateCustomerHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := decodePayload(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		name, err := body.String("name")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		contact, err := body.String("contact")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		propertyID, err := body.Uint("property_id")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		date, err := body.String("date")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		customer, err := store.AssignCustomer(c.UserContext(), name, contact, propertyID, date)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		zap.S().Infof("Müşteri eklendi id=%d property_id=%d", customer.ID, customer.PropertyID)
		return c.JSON(fiber.Map{"status": "success"})
	}
}

// GET /api/billing-data
func ListBillingHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := store.ListBilling(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rows)
	}
}

// DELETE /api/billing/:id
func DeleteCustomerHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := store.DeleteCustomer(c.UserContext(), id); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		zap.S().Infof("Müşteri silindi id=%d", id)
		return c.JSON(fiber.Map{"status": "deleted"})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Geçersiz id: "+raw)
	}
	return uint(id), nil
}
