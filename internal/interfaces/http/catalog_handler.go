package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cardstock-pro/internal/application/dto"
	"github.com/tu-usuario/cardstock-pro/internal/application/usecase"
)

// CatalogHandler alta y consulta de estaciones y catálogo (protegido).
type CatalogHandler struct {
	stations *usecase.StationUseCase
	catalog  *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(stations *usecase.StationUseCase, catalog *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{stations: stations, catalog: catalog}
}

type createStationRequest struct {
	Name              string `json:"name"`
	MinStockThreshold int    `json:"min_stock_threshold"`
}

// CreateStation godoc
// @Summary      Registrar una estación
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stations [post]
func (h *CatalogHandler) CreateStation(c *fiber.Ctx) error {
	var in createStationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.stations.Create(c.Context(), in.Name, in.MinStockThreshold)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": s.ID, "name": s.Name})
}

// ListStations godoc
// @Summary      Listar estaciones
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   map[string]interface{}
// @Router       /api/stations [get]
func (h *CatalogHandler) ListStations(c *fiber.Ctx) error {
	list, err := h.stations.List(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "stations": list})
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory godoc
// @Summary      Registrar una categoría de tarjeta
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in createCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.catalog.CreateCategory(c.Context(), in.Name)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": cat.ID, "name": cat.Name})
}

type createTypeRequest struct {
	CategoryID   string `json:"category_id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	QuotaTicket  int    `json:"quota_ticket"`
	ValidityDays int    `json:"validity_days"`
}

// CreateType godoc
// @Summary      Registrar un tipo de tarjeta
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/types [post]
func (h *CatalogHandler) CreateType(c *fiber.Ctx) error {
	var in createTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio inválido"})
	}
	t, err := h.catalog.CreateType(c.Context(), in.CategoryID, in.Name, price, in.QuotaTicket, in.ValidityDays)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": t.ID, "name": t.Name})
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  map[string]interface{}
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "categories": list})
}

// ListTypes godoc
// @Summary      Listar tipos (opcionalmente por categoría)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "filtrar por categoría"
// @Success      200  {array}  map[string]interface{}
// @Router       /api/catalog/types [get]
func (h *CatalogHandler) ListTypes(c *fiber.Ctx) error {
	list, err := h.catalog.ListTypes(c.Context(), c.Query("category_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "types": list})
}
