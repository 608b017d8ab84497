package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/config"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/pkg/apperror"
	"github.com/kevmogita/duka-pos/pkg/printer"
)

// ReceiptService formats sale receipts and sends them to the thermal printer.
type ReceiptService struct {
	printer  printer.Printer
	saleRepo repository.SaleRepository
	store    config.StoreConfig
	width    int
	ptype    string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(p printer.Printer, saleRepo repository.SaleRepository, cfg *config.Config) *ReceiptService {
	width := cfg.Printer.Width
	if width <= 0 {
		width = 32
	}
	return &ReceiptService{
		printer:  p,
		saleRepo: saleRepo,
		store:    cfg.Store,
		width:    width,
		ptype:    cfg.Printer.Type,
	}
}

// PrinterStatus reports printer configuration and connectivity.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetPrinterStatus returns printer connection status.
func (s *ReceiptService) GetPrinterStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.ptype != "none" && s.ptype != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.ptype,
	}
}

// PrintSaleReceipt fetches a sale and prints its receipt. The formatted text
// is returned as well, so the API can show the receipt when no printer is
// attached.
func (s *ReceiptService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	data := s.formatReceipt(sale)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (sale %s): %v", saleID, err)
		return sale, fmt.Errorf("failed to print receipt: %w", err)
	}

	return sale, nil
}

// formatReceipt converts a sale into ESC/POS bytes.
func (s *ReceiptService) formatReceipt(sale *entity.Sale) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(s.store.Name).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if s.store.Address != "" {
		doc.Text(s.store.Address)
	}
	if s.store.Phone != "" {
		doc.Text(s.store.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", sale.TransactionNumber).
		KeyValue("Date:", sale.SaleDate.Format("2006-01-02 15:04")).
		KeyValue("Clerk:", sale.ClerkName)

	doc.Separator('-')

	for _, line := range sale.Items {
		doc.ItemLine(line.Quantity, line.ItemName, s.money(line.TotalPrice))
		if line.Quantity > 1 {
			doc.TextF("  @ %s each", s.money(line.UnitPrice))
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", s.money(sale.TotalAmount)).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Thank you, come again!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}

func (s *ReceiptService) money(cents int64) string {
	return fmt.Sprintf("%s %.2f", s.store.Currency, float64(cents)/100)
}
