// Package reports reads and writes the spreadsheets staff exchange with the service.
package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	AdvertisementsSheet = "Advertisements"
	CategoriesSheet     = "Categories"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var advertisementHeader = []interface{}{
	"Advertisement ID", "House ID", "Title", "Location", "Owner", "Categories",
	"Price", "Approved", "Rented", "Requested", "Reviews", "Created At",
}

// WriteAdvertisements renders ads as a single-sheet workbook to w.
func WriteAdvertisements(w io.Writer, ads []models.Advertisement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AdvertisementsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(AdvertisementsSheet, "A1", &advertisementHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(AdvertisementsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, ad := range ads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := advertisementRow(ad)
		if err := f.SetSheetRow(AdvertisementsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write advertisement %d: %w", ad.ID, err)
		}
	}

	if err := f.SetColWidth(AdvertisementsSheet, "C", "D", 30); err != nil {
		return err
	}
	if err := f.SetPanes(AdvertisementsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func advertisementRow(ad models.Advertisement) []interface{} {
	var houseID uint
	var title, location, owner, categories, price string
	if h := ad.House; h != nil {
		houseID = h.ID
		title = h.Title
		location = h.Location
		price = h.Price.StringFixed(2)
		names := make([]string, 0, len(h.Categories))
		for _, c := range h.Categories {
			names = append(names, c.Name)
		}
		categories = strings.Join(names, ", ")
		if h.Owner != nil {
			owner = h.Owner.User.Username
		}
	} else {
		houseID = ad.HouseID
	}

	return []interface{}{
		ad.ID, houseID, title, location, owner, categories,
		price, yesNo(ad.IsApproved), yesNo(ad.IsRented), yesNo(ad.IsRequested),
		len(ad.Reviews), ad.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ReadCategories reads category rows (name, optional slug) from the Categories
// sheet, or the first sheet when there is none. The first row is a header.
func ReadCategories(r io.Reader) ([]models.Category, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := CategoriesSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	var categories []models.Category
	for i, row := range rows {
		if i == 0 || len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		c := models.Category{Name: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			c.Slug = strings.TrimSpace(row[1])
		}
		categories = append(categories, c)
	}
	return categories, nil
}
