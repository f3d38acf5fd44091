package admin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"curryleaf-backend/internal/audit"
	"curryleaf-backend/internal/manager"
	"curryleaf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Name", "Description", "Price", "Category", "Popular", "Available"}

// GET /api/admin/menu/export
//
// Streams the current menu as an .xlsx workbook.
func ExportMenuHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := m.MenuItems(c.Context())
		if err != nil {
			return writeError(c, err)
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		for col, h := range exportHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for row, it := range items {
			values := []any{it.Name, it.Description, it.Price, it.Category, it.IsPopular, it.IsAvailable}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		filename := fmt.Sprintf("menu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return f.Write(c)
	}
}

// POST /api/admin/menu/import?replace=true (multipart field "file")
//
// Reads an .xlsx workbook in the export layout and imports its rows. With
// replace=true the whole menu is substituted; otherwise rows are appended.
func ImportMenuHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "A file is required: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open file: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read Excel file: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no sheets")
		}
		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read sheet: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file is empty")
		}

		// Skip the header row if the first cell looks like one.
		startIndex := 0
		if len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "name") {
			startIndex = 1
		}

		var inputs []manager.MenuItemInput
		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			in := manager.MenuItemInput{Name: strings.TrimSpace(row[0])}
			if len(row) > 1 {
				in.Description = strings.TrimSpace(row[1])
			}
			if len(row) > 2 {
				in.Price, _ = strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
			}
			if len(row) > 3 {
				in.Category = strings.TrimSpace(row[3])
			}
			if len(row) > 4 {
				in.IsPopular = parseBoolCell(row[4])
			}
			if len(row) > 5 {
				avail := parseBoolCell(row[5])
				in.IsAvailable = &avail
			}
			inputs = append(inputs, in)
		}
		if len(inputs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No importable rows found")
		}

		replace := c.Query("replace") == "true"
		n, err := m.ImportMenu(c.Context(), inputs, replace)
		if err != nil {
			return writeError(c, err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "menu_item", EntityID: "all",
			Action:      models.AuditActionImport,
			Description: fmt.Sprintf("imported %d menu items from %s (replace=%v)", n, fileHeader.Filename, replace),
		})

		return c.JSON(fiber.Map{"imported": n, "replace": replace})
	}
}

func parseBoolCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "x":
		return true
	}
	return false
}
