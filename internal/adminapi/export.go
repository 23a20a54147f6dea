package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/partscatalog/internal/webserver"
)

var exportHeaders = []string{"ID", "Item", "Description", "Brand", "Model", "Code", "Tags", "Image", "Available", "Created"}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// exportProducts writes the whole catalog as an xlsx attachment.
func (s *Server) exportProducts(c echo.Context) error {
	products, err := s.repo.ListAll(c.Request().Context())
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	xlsx := excelize.NewFile()
	const sheet = "Products"
	xlsx.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		xlsx.SetCellValue(sheet, excelize.ToAlphaString(i)+"1", header)
	}

	for row, p := range products {
		line := strconv.Itoa(row + 2)
		axis := func(col int) string {
			return excelize.ToAlphaString(col) + line
		}
		xlsx.SetCellValue(sheet, axis(0), p.ID)
		if p.ItemNumber != nil {
			xlsx.SetCellValue(sheet, axis(1), *p.ItemNumber)
		}
		xlsx.SetCellValue(sheet, axis(2), p.Description)
		xlsx.SetCellValue(sheet, axis(3), strOrEmpty(p.Brand))
		xlsx.SetCellValue(sheet, axis(4), strOrEmpty(p.Model))
		xlsx.SetCellValue(sheet, axis(5), strOrEmpty(p.Code))
		xlsx.SetCellValue(sheet, axis(6), strings.Join(p.Tags, ", "))
		xlsx.SetCellValue(sheet, axis(7), strOrEmpty(p.ImageURL))
		xlsx.SetCellValue(sheet, axis(8), p.IsAvailable)
		xlsx.SetCellValue(sheet, axis(9), p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return xlsx.Write(c.Response())
}
