package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/printer"
	"github.com/sangkips/pos-ledger/pkg/utils"
	"go.uber.org/zap"
)

// ReceiptService renders sales as thermal receipts
type ReceiptService struct {
	printer  printer.Printer
	saleRepo repository.SaleRepository
	header   entity.ReceiptHeader
	columns  int
	log      *zap.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	header entity.ReceiptHeader,
	columns int,
	log *zap.Logger,
) *ReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptService{
		printer:  p,
		saleRepo: saleRepo,
		header:   header,
		columns:  columns,
		log:      log,
	}
}

// ReceiptPreview is a receipt with the lines it prints
type ReceiptPreview struct {
	Receipt *entity.Receipt `json:"receipt"`
	Text    []string        `json:"text"`
}

func (s *ReceiptService) loadSale(ctx context.Context, saleID uuid.UUID) (*entity.SaleTransaction, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// BuildReceipt composes the printable view of a sale
func (s *ReceiptService) BuildReceipt(sale *entity.SaleTransaction) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:        s.header,
		ReceiptNo:     utils.GenerateReceiptNo("R-", sale.ID.String()),
		Date:          sale.Date.Format("2006-01-02 15:04"),
		PaymentMethod: sale.PaymentMethod,
		Subtotal:      sale.Subtotal.String(),
		Discount:      sale.Discount.String(),
		Total:         sale.Total.String(),
		Lines:         make([]entity.ReceiptLine, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		line := entity.ReceiptLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.FinalPricePerItem.String(),
			Total:     item.TotalItemPrice.String(),
		}
		for _, m := range item.ChosenModifiers {
			line.Modifiers = append(line.Modifiers, m.OptionName)
		}
		receipt.Lines = append(receipt.Lines, line)
	}
	return receipt
}

// FormatReceipt lays a receipt out on a ticket
func FormatReceipt(r *entity.Receipt, columns int) *printer.Ticket {
	t := printer.NewTicket(columns)
	t.Title(r.Header.StoreName)
	if r.Header.Address != "" {
		t.Center(r.Header.Address)
	}
	if r.Header.Phone != "" {
		t.Center(r.Header.Phone)
	}
	t.Rule().
		Columns("Receipt", r.ReceiptNo).
		Columns("Date", r.Date).
		Rule()

	for _, line := range r.Lines {
		t.Columns(fmt.Sprintf("%dx %s", line.Quantity, line.Name), line.Total)
		for _, m := range line.Modifiers {
			t.Line("   + " + m)
		}
	}

	t.Rule().Columns("Subtotal", r.Subtotal)
	if r.Discount != "0.00" {
		t.Columns("Discount", "-"+r.Discount)
	}
	t.Emphasis(true).Columns("TOTAL", r.Total).Emphasis(false).
		Columns("Paid by", r.PaymentMethod).
		Feed(1).
		Center("Thank you!").
		Feed(3).
		Cut()
	return t
}

// Preview renders a sale's receipt without printing it
func (s *ReceiptService) Preview(ctx context.Context, saleID uuid.UUID) (*ReceiptPreview, error) {
	sale, err := s.loadSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	receipt := s.BuildReceipt(sale)
	return &ReceiptPreview{Receipt: receipt, Text: FormatReceipt(receipt, s.columns).Text()}, nil
}

// Print sends a sale's receipt to the configured printer. The receipt is
// returned even when printing fails.
func (s *ReceiptService) Print(ctx context.Context, saleID uuid.UUID) (*ReceiptPreview, error) {
	sale, err := s.loadSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	receipt := s.BuildReceipt(sale)
	ticket := FormatReceipt(receipt, s.columns)
	preview := &ReceiptPreview{Receipt: receipt, Text: ticket.Text()}

	if err := s.printer.Print(ctx, ticket.Bytes()); err != nil {
		s.log.Error("receipt print failed",
			zap.String("sale_id", saleID.String()), zap.Error(err))
		return preview, apperror.Wrap(apperror.ErrPrinterUnavailable, "Failed to print receipt: "+err.Error())
	}
	return preview, nil
}

// PrinterReady reports whether the printer looks reachable
func (s *ReceiptService) PrinterReady() bool {
	return s.printer.Ready()
}
