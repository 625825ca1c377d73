package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order_compare/internal/interfaces/http/view"
)

// PageHandler serves the HTML dashboards.
type PageHandler struct {
	svc ComparisonService
}

func NewPageHandler(svc ComparisonService) *PageHandler {
	return &PageHandler{svc: svc}
}

func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", view.NewIndexPage("", h.svc.Stores(), nil, nil))
}

func (h *PageHandler) SubmitPairs(c *gin.Context) {
	input := c.PostForm("input")
	pairs, warnings := h.svc.ParsePairs(input)

	page := view.NewIndexPage(input, h.svc.Stores(), pairs, warnings)
	if len(pairs) == 0 {
		page.Error = "No valid order pairs found."
	}
	c.HTML(http.StatusOK, "index.html", page)
}

func (h *PageHandler) Compare(c *gin.Context) {
	pair, err := h.svc.NewPair(c.Query("factory"), c.Query("shop"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "compare.html", view.ComparePage{Title: "Comparison", Error: err.Error()})
		return
	}

	result, err := h.svc.CompareOrders(c.Request.Context(), pair)
	if err != nil {
		_ = c.Error(err)
		c.HTML(StatusFor(err), "compare.html", view.ComparePage{Title: "Comparison", Error: err.Error()})
		return
	}

	c.HTML(http.StatusOK, "compare.html", view.NewComparePage(result, c.Request.URL.Query()))
}

func (h *PageHandler) FactoryOrder(c *gin.Context) {
	fo, err := h.svc.FactoryOrder(c.Request.Context(), c.Query("id"))
	if err != nil {
		_ = c.Error(err)
		c.HTML(StatusFor(err), "factory.html", view.FactoryPage{Error: err.Error()})
		return
	}
	c.HTML(http.StatusOK, "factory.html", view.NewFactoryPage(fo))
}
