package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"
	"github.com/ppanchal5698/expense-tracker/internal/store"
	"github.com/ppanchal5698/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler writes the owner's filtered expenses as CSV or XLSX.
// It accepts the same filter parameters as the expense listing.
type ExportHandler struct {
	Store *store.Store
}

func NewExportHandler(s *store.Store) *ExportHandler {
	return &ExportHandler{Store: s}
}

var exportHeaders = []string{"Date", "Category", "Amount", "Payment Method", "Description", "Tags", "Notes"}

// categoryNames resolves the owner's category id -> name map once per export.
func (h *ExportHandler) categoryNames(owner uint) (map[uint]string, error) {
	cats, err := h.Store.ListCategories(owner)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(cats))
	for i := range cats {
		names[cats[i].ID] = cats[i].Name
	}
	return names, nil
}

func exportRow(e *models.Expense, names map[uint]string) []string {
	return []string{
		e.ExpenseDate.Format("2006-01-02"),
		names[e.CategoryID],
		e.Amount.StringFixed(2),
		e.PaymentMethod,
		e.Description,
		strings.Join(e.Tags, ","),
		e.Notes,
	}
}

// ExportCSV streams the filtered expenses as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	expenses, err := h.Store.FilteredExpenses(user.ID, filter)
	if err != nil {
		storeError(c, err)
		return
	}
	names, err := h.categoryNames(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range expenses {
		writer.Write(exportRow(&expenses[i], names))
	}
}

// ExportXLSX writes the filtered expenses as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	expenses, err := h.Store.FilteredExpenses(user.ID, filter)
	if err != nil {
		storeError(c, err)
		return
	}
	names, err := h.categoryNames(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range expenses {
		row := idx + 2
		for col, val := range exportRow(&expenses[idx], names) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "D", 14)
	f.SetColWidth(sheetName, "E", "G", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
