package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/partscatalog/internal/catalog"
	"github.com/talkincode/partscatalog/internal/webserver"
)

// tagList accepts tags either as a JSON array of strings or as a single
// comma-separated string. Anything else degrades to an empty list.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var values []string
	if err := jsoniter.Unmarshal(data, &values); err == nil {
		out := make([]string, 0, len(values))
		for _, v := range values {
			if v != "" {
				out = append(out, v)
			}
		}
		*t = out
		return nil
	}

	var joined string
	if err := jsoniter.Unmarshal(data, &joined); err == nil {
		var out []string
		for _, v := range strings.Split(joined, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		*t = out
		return nil
	}

	*t = nil
	return nil
}

type productPayload struct {
	ItemNumber  *int64  `json:"itemNumber"`
	Description string  `json:"description" validate:"required,min=1"`
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	Code        *string `json:"code"`
	Tags        tagList `json:"tags"`
	ImageURL    *string `json:"imageUrl"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (p *productPayload) toRepo() catalog.ProductPayload {
	available := true
	if p.IsAvailable != nil {
		available = *p.IsAvailable
	}
	return catalog.ProductPayload{
		ItemNumber:  p.ItemNumber,
		Description: p.Description,
		Brand:       p.Brand,
		Model:       p.Model,
		Code:        p.Code,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
		IsAvailable: available,
	}
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func (s *Server) listProducts(c echo.Context) error {
	query := catalog.NewPageQuery(
		c.QueryParam("search"),
		c.QueryParam("page"),
		c.QueryParam("pageSize"),
	)

	result, err := s.repo.List(c.Request().Context(), query)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return webserver.OK(c, result)
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	product, err := s.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	if product == nil {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return webserver.OK(c, product)
}

func (s *Server) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	payload.Description = strings.TrimSpace(payload.Description)
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}

	product, err := s.repo.Create(c.Request().Context(), payload.toRepo())
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return webserver.Created(c, product)
}

func (s *Server) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	payload.Description = strings.TrimSpace(payload.Description)
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}

	product, err := s.repo.Update(c.Request().Context(), id, payload.toRepo())
	if errors.Is(err, catalog.ErrNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return webserver.OK(c, product)
}

func (s *Server) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	err = s.repo.Delete(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return webserver.OK(c, map[string]interface{}{"success": true})
}
