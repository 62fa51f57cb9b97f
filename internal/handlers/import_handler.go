package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"menu-service/internal/engine"
	"menu-service/internal/events"
	"menu-service/internal/models"
)

// ImportHandler exposes the bulk import pipeline: a JSON batch endpoint
// for heterogeneous records, a file endpoint for CSV/XLSX item sheets,
// and the downloadable templates that match the sheet format.
type ImportHandler struct {
	importer  *engine.Importer
	publisher *events.Publisher
}

func NewImportHandler(importer *engine.Importer, publisher *events.Publisher) *ImportHandler {
	return &ImportHandler{
		importer:  importer,
		publisher: publisher,
	}
}

// ImportMenu imports a JSON batch of menu records into an outlet
// POST /api/v1/outlets/:outletId/menu/import
func (h *ImportHandler) ImportMenu(c *gin.Context) {
	var req models.ImportMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	summary, err := h.importer.Run(tenantID(c), c.Param("outletId"), req.Records, req.Options)
	if err != nil {
		if err == engine.ErrOutletNotFound {
			respondError(c, http.StatusNotFound, "OUTLET_NOT_FOUND", "Outlet not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "IMPORT_FAILED", err.Error())
		return
	}

	h.publishCompleted(c, summary)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: summary})
}

// ImportMenuFile imports menu items from an uploaded CSV or XLSX file
// POST /api/v1/outlets/:outletId/menu/import/file
func (h *ImportHandler) ImportMenuFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "Please upload a CSV or Excel file")
		return
	}
	defer file.Close()

	opts := models.ImportOptions{
		DryRun:                  c.DefaultPostForm("dryRun", "false") == "true",
		CreateMissingCategories: c.DefaultPostForm("createMissingCategories", "false") == "true",
		OnDuplicate:             models.DuplicateStrategy(c.DefaultPostForm("onDuplicate", "skip")),
	}

	filename := strings.ToLower(header.Filename)
	var rows []map[string]string
	switch {
	case strings.HasSuffix(filename, ".csv"):
		rows, err = parseCSV(file)
	case strings.HasSuffix(filename, ".xlsx"):
		rows, err = parseXLSX(file)
	default:
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "Only CSV and XLSX files are supported")
		return
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", err.Error())
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_FILE", "The file contains no data rows")
		return
	}

	records := make([]models.ImportRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}

	summary, err := h.importer.Run(tenantID(c), c.Param("outletId"), records, opts)
	if err != nil {
		if err == engine.ErrOutletNotFound {
			respondError(c, http.StatusNotFound, "OUTLET_NOT_FOUND", "Outlet not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "IMPORT_FAILED", err.Error())
		return
	}

	h.publishCompleted(c, summary)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: summary})
}

func (h *ImportHandler) publishCompleted(c *gin.Context, summary *models.ImportSummary) {
	if h.publisher == nil {
		return
	}
	_ = h.publisher.PublishImportCompleted(c.Request.Context(), tenantID(c), c.Param("outletId"), actorID(c),
		summary.Created, summary.Updated, summary.Skipped, summary.Failed, summary.DryRun)
}

// GetImportTemplate returns the import template definition or file
// GET /api/v1/menu/import/template
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	template := models.MenuImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c, template)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

// generateCSVTemplate downloads a CSV template (headers only)
func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=menu_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)
}

// generateXLSXTemplate downloads an Excel template with an
// instructions sheet describing each column.
func (h *ImportHandler) generateXLSXTemplate(c *gin.Context, template models.ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Menu Items"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(sheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Menu Import Instructions")
	f.SetCellValue("Instructions", "A3", "You can reference categories by UUID (categoryId) or by name (categoryName).")
	f.SetCellValue("Instructions", "A4", "With createMissingCategories enabled, unknown category names are auto-created.")
	f.SetCellValue("Instructions", "A5", "Duplicate items (same name and price) follow the onDuplicate policy: skip, update or create.")

	f.SetCellValue("Instructions", "A7", "Column Definitions:")
	f.SetCellValue("Instructions", "A8", "Column")
	f.SetCellValue("Instructions", "B8", "Description")
	f.SetCellValue("Instructions", "C8", "Required")
	f.SetCellValue("Instructions", "D8", "Type")
	f.SetCellValue("Instructions", "E8", "Example")

	for i, col := range template.Columns {
		row := i + 9
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), col.Description)
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}

	f.SetColWidth("Instructions", "A", "A", 25)
	f.SetColWidth("Instructions", "B", "B", 60)
	f.SetColWidth("Instructions", "C", "C", 15)
	f.SetColWidth("Instructions", "D", "D", 15)
	f.SetColWidth("Instructions", "E", "E", 40)

	sheetIdx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=menu_import_template.xlsx")

	f.Write(c.Writer)
}

// recordFromRow maps a parsed sheet row onto an import record. Invalid
// numeric fields become zero values and fail validation downstream in
// the pipeline, where the failure lands in the row ledger.
func recordFromRow(row map[string]string) models.ImportRecord {
	price, _ := strconv.ParseFloat(row["price"], 64)
	record := models.ImportRecord{
		Name:  row["name"],
		Price: price,
	}
	if v := row["description"]; v != "" {
		record.Description = &v
	}
	if v := row["categoryid"]; v != "" {
		record.CategoryID = &v
	}
	if v := row["categoryname"]; v != "" {
		record.CategoryName = &v
	}
	if v := row["itemtype"]; v != "" {
		itemType := models.ItemType(strings.ToUpper(v))
		record.ItemType = &itemType
	}
	if v := row["diettype"]; v != "" {
		dietType := models.DietType(strings.ToUpper(v))
		record.DietType = &dietType
	}
	if v := row["pricemode"]; v != "" {
		priceMode := models.PriceMode(strings.ToUpper(v))
		record.PriceMode = &priceMode
	}
	if v := row["taxpercent"]; v != "" {
		if tax, err := strconv.ParseFloat(v, 64); err == nil {
			record.TaxPercent = &tax
		}
	}
	if v := row["displayorder"]; v != "" {
		if order, err := strconv.Atoi(v); err == nil {
			record.DisplayOrder = &order
		}
	}
	return record
}

// parseCSV parses a CSV file into rows keyed by normalized header
func parseCSV(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
		headers[i] = strings.TrimSuffix(headers[i], " *")
	}

	var rows []map[string]string
	lineNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
		lineNum++
	}

	return rows, nil
}

// parseXLSX parses an Excel file into rows keyed by normalized header
func parseXLSX(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, "Menu Items") {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
		headers[i] = strings.TrimSuffix(headers[i], " *")
	}

	var rows []map[string]string
	for _, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
