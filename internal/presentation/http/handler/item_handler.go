package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/application/service"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/internal/presentation/http/dto/response"
	"github.com/kevmogita/duka-pos/pkg/pagination"
)

// ItemHandler handles catalog item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func listItemParams(c *gin.Context) *repository.ItemFilterParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	return &repository.ItemFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:   c.Query("search"),
		Category: c.Query("category"),
		LowStock: c.Query("low_stock") == "true",
	}
}

// List handles listing the sellable catalog. Deactivated items are hidden;
// clerks only ever see what they can ring up.
func (h *ItemHandler) List(c *gin.Context) {
	params := listItemParams(c)
	params.ActiveOnly = true

	result, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// ListAll handles listing the full catalog, deactivated items included
func (h *ItemHandler) ListAll(c *gin.Context) {
	params := listItemParams(c)
	params.ActiveOnly = c.Query("active_only") == "true"

	result, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// Create handles adding an item to the catalog
func (h *ItemHandler) Create(c *gin.Context) {
	var req struct {
		Code      string  `json:"code" binding:"required"`
		Name      string  `json:"name" binding:"required"`
		Category  string  `json:"category" binding:"required"`
		Unit      string  `json:"unit" binding:"required"`
		UnitPrice float64 `json:"unit_price"`
		CostPrice float64 `json:"cost_price"`
		Stock     int     `json:"stock"`
		MinStock  int     `json:"min_stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		Code:      req.Code,
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		CostPrice: req.CostPrice,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Get handles getting a single item
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Update handles updating an item's catalog fields
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req struct {
		Name      *string  `json:"name"`
		Category  *string  `json:"category"`
		Unit      *string  `json:"unit"`
		UnitPrice *float64 `json:"unit_price"`
		CostPrice *float64 `json:"cost_price"`
		MinStock  *int     `json:"min_stock"`
		IsActive  *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), id, &service.UpdateItemInput{
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		CostPrice: req.CostPrice,
		MinStock:  req.MinStock,
		IsActive:  req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles deleting an item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}

// GetLowStock handles listing items at or below their minimum stock level
func (h *ItemHandler) GetLowStock(c *gin.Context) {
	items, err := h.itemService.GetLowStockItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", items)
}

// AdjustStock handles manual stock adjustments (restock or write-off)
func (h *ItemHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", item)
}
