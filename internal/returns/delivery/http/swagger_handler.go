package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the Retail Backoffice
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateReturn godoc
// @Summary Record a return
// @Description Record a return against an order or a product and adjust stock
// @Tags Returns
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{user_id=int,id=int,type=string,reason=string,otherReason=string,quantity=int} true "Return data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/returns [post]
func (h *ReturnsHandler) CreateReturnDoc() {}

// ListReturns godoc
// @Summary List returns
// @Description Get recorded returns for this route's source kind with pagination
// @Tags Returns
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/returns [get]
func (h *ReturnsHandler) ListReturnsDoc() {}

// UpdateReturn godoc
// @Summary Amend a return
// @Description Change the quantity or reason of a recorded return; stock is re-adjusted by the difference
// @Tags Returns
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{return_id=int,user_id=int,quantity=int,reason=string,otherReason=string} true "Updated return data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/returns [put]
func (h *ReturnsHandler) UpdateReturnDoc() {}

// DeleteReturn godoc
// @Summary Delete a return
// @Description Remove a recorded return and reverse its stock effect
// @Tags Returns
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{return_id=int,user_id=int} true "Return reference"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/returns [delete]
func (h *ReturnsHandler) DeleteReturnDoc() {}

// CreateOrderReplacement godoc
// @Summary Create a replacement order
// @Description Create a new order replacing a previous one, with items, stock decrements and the replace record in one transaction
// @Tags Replacements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{user_id=int,original_order_id=int,original_product_id=int,payment_method=string,amount_given=number,total_price=number,reason=string,items=array} true "Replacement order data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/replacements [post]
func (h *ReturnsHandler) CreateOrderReplacementDoc() {}

// CreateProductReplacement godoc
// @Summary Record a product-only replacement
// @Description Swap a product for another without creating a new order
// @Tags Replacements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{user_id=int,original_order_id=int,original_product_id=int,replacement_product_id=int,quantity=int,reason=string} true "Product replacement data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/replacements/product [post]
func (h *ReturnsHandler) CreateProductReplacementDoc() {}

// ReturnsByReason godoc
// @Summary Returns grouped by reason
// @Description Aggregate recorded returns by reason for the dashboard
// @Tags Reports
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/reports/returns-by-reason [get]
func (h *ReturnsHandler) ReturnsByReasonDoc() {}

// ReturnsByMonth godoc
// @Summary Returns grouped by month
// @Description Aggregate recorded returns by calendar month for the dashboard
// @Tags Reports
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/reports/returns-by-month [get]
func (h *ReturnsHandler) ReturnsByMonthDoc() {}

// ReplacementsByMonth godoc
// @Summary Replacements grouped by month
// @Description Aggregate replacement records by calendar month for the dashboard
// @Tags Reports
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/reports/replacements-by-month [get]
func (h *ReturnsHandler) ReplacementsByMonthDoc() {}
