package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"menu-service/internal/engine"
	"menu-service/internal/models"
)

// ExportHandler serves the denormalized menu snapshot, either as JSON
// or as a downloadable CSV/XLSX file.
type ExportHandler struct {
	exporter *engine.Exporter
}

func NewExportHandler(exporter *engine.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// ExportMenu exports an outlet's full menu
// GET /api/v1/outlets/:outletId/menu/export?format=json|csv|xlsx
func (h *ExportHandler) ExportMenu(c *gin.Context) {
	snapshot, err := h.exporter.Export(tenantID(c), c.Param("outletId"))
	if err != nil {
		if err == engine.ErrOutletNotFound {
			respondError(c, http.StatusNotFound, "OUTLET_NOT_FOUND", "Outlet not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		h.writeCSV(c, snapshot)
	case "xlsx":
		h.writeXLSX(c, snapshot)
	default:
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: snapshot})
	}
}

// writeCSV downloads the item list as CSV. Categories, add-ons and
// combos do not fit a single flat sheet, so the CSV export covers
// items only; use xlsx or json for the complete graph.
func (h *ExportHandler) writeCSV(c *gin.Context, snapshot *models.MenuSnapshot) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=menu_export.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"name", "categoryName", "description", "itemType", "dietType", "price", "priceMode", "taxPercent", "addOnNames", "displayOrder", "isActive", "isAvailable"})
	for _, item := range snapshot.Items {
		writer.Write(itemCSVRow(item))
	}
}

func itemCSVRow(item models.ItemSnapshot) []string {
	categoryName := ""
	if item.CategoryName != nil {
		categoryName = *item.CategoryName
	}
	description := ""
	if item.Description != nil {
		description = *item.Description
	}
	return []string{
		item.Name,
		categoryName,
		description,
		string(item.ItemType),
		string(item.DietType),
		strconv.FormatFloat(item.Price, 'f', 2, 64),
		string(item.PriceMode),
		strconv.FormatFloat(item.TaxPercent, 'f', 2, 64),
		strings.Join(item.AddOnNames, "|"),
		strconv.Itoa(item.DisplayOrder),
		strconv.FormatBool(item.IsActive),
		strconv.FormatBool(item.IsAvailable),
	}
}

// writeXLSX downloads the full snapshot as a workbook with one sheet
// per entity kind.
func (h *ExportHandler) writeXLSX(c *gin.Context, snapshot *models.MenuSnapshot) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Items")
	writeSheetHeader(f, "Items", []string{"Name", "Category", "Description", "Type", "Diet", "Price", "Price Mode", "Tax %", "Add-Ons", "Order", "Active", "Available"})
	for i, item := range snapshot.Items {
		row := itemCSVRow(item)
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue("Items", cell, value)
		}
	}

	f.NewSheet("Categories")
	writeSheetHeader(f, "Categories", []string{"Name", "Description", "Order", "Active"})
	for i, cat := range snapshot.Categories {
		description := ""
		if cat.Description != nil {
			description = *cat.Description
		}
		setRow(f, "Categories", i+2, cat.Name, description, cat.DisplayOrder, cat.IsActive)
	}

	f.NewSheet("AddOns")
	writeSheetHeader(f, "AddOns", []string{"Name", "Price", "Category Tag", "Order", "Active"})
	for i, addOn := range snapshot.AddOns {
		tag := ""
		if addOn.CategoryTag != nil {
			tag = *addOn.CategoryTag
		}
		setRow(f, "AddOns", i+2, addOn.Name, addOn.Price, tag, addOn.DisplayOrder, addOn.IsActive)
	}

	f.NewSheet("Combos")
	writeSheetHeader(f, "Combos", []string{"Name", "Type", "Items", "Original Price", "Price", "Active"})
	for i, combo := range snapshot.Combos {
		setRow(f, "Combos", i+2, combo.Name, string(combo.Type), comboLinesText(combo), combo.OriginalPrice, combo.Price, combo.IsActive)
	}

	idx, _ := f.GetSheetIndex("Items")
	f.SetActiveSheet(idx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=menu_export.xlsx")
	f.Write(c.Writer)
}

func writeSheetHeader(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
}

func setRow(f *excelize.File, sheet string, rowNum int, values ...interface{}) {
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
		f.SetCellValue(sheet, cell, value)
	}
}

func comboLinesText(combo models.ComboSnapshot) string {
	lines := make([]string, 0, len(combo.Items)+len(combo.LineItems))
	for _, line := range combo.Items {
		lines = append(lines, fmt.Sprintf("%dx %s", line.Quantity, line.Name))
	}
	for _, line := range combo.LineItems {
		lines = append(lines, fmt.Sprintf("%dx %s", line.Quantity, line.Name))
	}
	return strings.Join(lines, ", ")
}
