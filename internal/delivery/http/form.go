package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/unitprice/backend/internal/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// formTemplates parses the comparison page templates
func formTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl"))
}

// formPage is the data rendered into index.tmpl
type formPage struct {
	Sheet      *domain.Sheet
	Alerts     []string
	Comparison *domain.Comparison
}

// ShowForm renders an empty comparison sheet
func (h *Handler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", formPage{Sheet: h.sheets.NewSheet()})
}

// SubmitForm applies the pressed button to the posted sheet and re-renders it.
// Actions: "add", "base", "calculate" and "delete:N".
func (h *Handler) SubmitForm(c *gin.Context) {
	sheet := h.readSheet(c)
	page := formPage{Sheet: sheet}

	action := c.PostForm("action")
	switch {
	case action == "add":
		if err := h.sheets.AddProduct(sheet); err != nil {
			page.Alerts = append(page.Alerts, alertText(err))
		}
	case action == "base":
		if sheet.BaseUnit() == "" {
			page.Alerts = append(page.Alerts, alertText(domain.ErrBaseUnitRequired))
			break
		}
		if err := h.sheets.SetBaseUnit(sheet, sheet.BaseUnit()); err != nil {
			page.Alerts = append(page.Alerts, alertText(err))
		}
	case strings.HasPrefix(action, "delete:"):
		n, err := strconv.Atoi(strings.TrimPrefix(action, "delete:"))
		if err == nil {
			err = h.sheets.RemoveProduct(sheet, n)
		}
		if err != nil {
			page.Alerts = append(page.Alerts, alertText(domain.ErrRowNotFound))
		}
	case action == "calculate":
		comparison, err := h.sheets.Calculate(c.Request.Context(), sheet)
		if err != nil {
			page.Alerts = append(page.Alerts, alertText(err))
			break
		}
		page.Comparison = comparison
		for _, r := range comparison.Results {
			if !r.Valid() {
				page.Alerts = append(page.Alerts, fmt.Sprintf("%s: %s", r.Label, r.Error))
			}
		}
	default:
		page.Alerts = append(page.Alerts, alertText(domain.ErrInvalidRequest))
	}

	c.HTML(http.StatusOK, "index.tmpl", page)
}

// maxFormRows bounds the posted row count
const maxFormRows = 100

// readSheet rebuilds the sheet from the posted priceN/quantityN/unitN fields
func (h *Handler) readSheet(c *gin.Context) *domain.Sheet {
	count, err := strconv.Atoi(c.PostForm("rows"))
	if err != nil || count < 1 {
		count = 1
	}
	if count > maxFormRows {
		count = maxFormRows
	}

	converter := h.pricing.Converter()
	sheet := &domain.Sheet{Rows: make([]domain.ProductRow, 0, count)}
	for n := 1; n <= count; n++ {
		row := domain.ProductRow{Number: n}
		row.Price = c.PostForm(row.PriceField())
		row.Quantity = c.PostForm(row.QuantityField())
		row.Unit = domain.Unit(c.PostForm(row.UnitField()))
		sheet.Rows = append(sheet.Rows, row)
	}

	base := sheet.BaseUnit()
	for i := range sheet.Rows {
		if i == 0 || !converter.IsKnown(base) {
			sheet.Rows[i].Options = converter.Units()
			continue
		}
		sheet.Rows[i].Options = converter.CompatibleUnits(base)
	}
	return sheet
}

// alertText capitalizes an error message for display
func alertText(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
