package export

import (
	"rental-backend/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func PropertiesCSV(properties []models.Property) ([]byte, error) {
	return marshalCSV(&properties)
}

func BillingCSV(rows []models.BillingRow) ([]byte, error) {
	return marshalCSV(&rows)
}

func marshalCSV(rows any) ([]byte, error) {
	out, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return nil, errors.Wrap(err, "csv oluşturulamadı")
	}
	return out, nil
}

func PropertiesXLSX(properties []models.Property) ([]byte, error) {
	rows := make([][]any, 0, len(properties))
	for _, p := range properties {
		rows = append(rows, []any{p.ID, p.Title, p.Description, priceCell(p.Price), string(p.Status)})
	}
	return writeXLSX("Properties", []any{"id", "title", "description", "price", "status"}, rows)
}

func BillingXLSX(billing []models.BillingRow) ([]byte, error) {
	rows := make([][]any, 0, len(billing))
	for _, b := range billing {
		rows = append(rows, []any{b.ID, b.PropertyName, b.CustomerName, priceCell(b.Price), b.Contact, b.Date, b.PropertyID})
	}
	return writeXLSX("Billing", []any{"id", "property", "customer", "price", "contact", "date", "property_id"}, rows)
}

func priceCell(p *float64) any {
	if p == nil {
		return ""
	}
	return *p
}

func writeXLSX(sheet string, header []any, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "sheet adı verilemedi")
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "başlık yazılamadı")
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "satır %d yazılamadı", i+1)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "xlsx oluşturulamadı")
	}
	return buf.Bytes(), nil
}
