package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/application/service"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/internal/presentation/http/dto/response"
	"github.com/kevmogita/duka-pos/pkg/pagination"
)

// SaleHandler handles checkout and ledger HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	statsService   *service.StatsService
	receiptService *service.ReceiptService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(
	saleService *service.SaleService,
	statsService *service.StatsService,
	receiptService *service.ReceiptService,
) *SaleHandler {
	return &SaleHandler{
		saleService:    saleService,
		statsService:   statsService,
		receiptService: receiptService,
	}
}

// Create handles processing a checkout
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Items []struct {
			ItemID   *uuid.UUID `json:"item_id"`
			ItemCode string     `json:"item_code"`
			Quantity int        `json:"quantity"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.SaleLineInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleLineInput{
			ItemID:   item.ItemID,
			ItemCode: item.ItemCode,
			Quantity: item.Quantity,
		}
	}

	sale, err := h.saleService.ProcessSale(c.Request.Context(), &service.ProcessSaleInput{
		ClerkID:   *userID,
		ClerkName: GetFullName(c),
		Items:     items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale processed successfully", sale)
}

// List handles listing ledger entries
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if clerkIDStr := c.Query("clerk_id"); clerkIDStr != "" {
		if clerkID, err := uuid.Parse(clerkIDStr); err == nil {
			params.ClerkID = &clerkID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			// Include the whole end day
			endDate = endDate.Add(24*time.Hour - time.Nanosecond)
			params.EndDate = &endDate
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single ledger entry
func (h *SaleHandler) Get(c *gin.Context) {
	idStr := c.Param("id")

	// Allow lookup by transaction number as well as by ID
	if id, err := uuid.Parse(idStr); err == nil {
		sale, err := h.saleService.GetSale(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Sale retrieved successfully", sale)
		return
	}

	sale, err := h.saleService.GetSaleByTransactionNumber(c.Request.Context(), idStr)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// Statistics handles the sales statistics query
func (h *SaleHandler) Statistics(c *gin.Context) {
	filter := &service.StatisticsFilter{
		ItemRef: c.Query("item"),
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			filter.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			endDate = endDate.Add(24*time.Hour - time.Nanosecond)
			filter.EndDate = &endDate
		}
	}

	stats, err := h.statsService.GetStatistics(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statistics retrieved successfully", stats)
}

// PrintReceipt handles reprinting a sale receipt
func (h *SaleHandler) PrintReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.receiptService.PrintSaleReceipt(c.Request.Context(), id)
	if err != nil {
		if sale != nil {
			// Sale found but the printer failed; return the sale anyway
			response.OK(c, "Printer unavailable; receipt data returned", sale)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", sale)
}

// PrinterStatus reports printer configuration and connectivity
func (h *SaleHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", h.receiptService.GetPrinterStatus())
}
