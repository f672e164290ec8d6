package server

import (
	"os"
	"path/filepath"

	"rental-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// StaticRoute: GET path -> diskteki dosya + sabit content type
type StaticRoute struct {
	Path        string
	File        string
	ContentType string
}

type assetDir int

const (
	templatesDir assetDir = iota
	staticDir
)

var staticTable = []struct {
	path        string
	dir         assetDir
	name        string
	contentType string
}{
	{"/", templatesDir, "index.html", "text/html"},
	{"/add-property", templatesDir, "add_property.html", "text/html"},
	{"/property-list", templatesDir, "property_list.html", "text/html"},
	{"/customer-details", templatesDir, "customer_details.html", "text/html"},
	{"/billing", templatesDir, "billing.html", "text/html"},
	{"/static/style.css", staticDir, "style.css", "text/css"},
	{"/static/script.js", staticDir, "script.js", "application/javascript"},
	{"/templates/header.html", templatesDir, "header.html", "text/html"},
	{"/templates/footer.html", templatesDir, "footer.html", "text/html"},
}

// StaticRoutes: tabloyu config'teki klasörlere göre çözer (başlangıçta bir kez)
func StaticRoutes(cfg *config.Config) []StaticRoute {
	routes := make([]StaticRoute, 0, len(staticTable))
	for _, r := range staticTable {
		dir := cfg.TemplatesDir
		if r.dir == staticDir {
			dir = cfg.StaticDir
		}
		routes = append(routes, StaticRoute{
			Path:        r.path,
			File:        filepath.Join(dir, r.name),
			ContentType: r.contentType,
		})
	}
	return routes
}

// serveFile: dosyayı her istekte byte-byte okur; yoksa 404
func serveFile(route StaticRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := os.ReadFile(route.File)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dosya bulunamadı: "+route.Path)
		}
		c.Set(fiber.HeaderContentType, route.ContentType)
		return c.Send(data)
	}
}
