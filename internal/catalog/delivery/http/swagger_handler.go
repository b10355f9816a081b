package http

// CreateProduct godoc
// @Summary Create new product
// @Description Create a new product with an opening stock quantity (Admin only)
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,sku=string,unit_price=number,initial_quantity=int,category_id=int,supplier_id=int} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *CatalogHandler) CreateProductDoc() {}

// ListProducts godoc
// @Summary List products
// @Description Get products with optional category filter and pagination
// @Tags Catalog
// @Produce json
// @Param category_id query int false "Category filter"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/products [get]
func (h *CatalogHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Description Get a specific product by its ID
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// UpdateProduct godoc
// @Summary Update product
// @Description Update product fields; stock changes go through the inventory ledger, not this route (Admin only)
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{name=string,description=string,unit_price=number,category_id=int,supplier_id=int,is_active=bool} true "Product data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [put]
func (h *CatalogHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete product
// @Description Delete a product (Admin only)
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProductDoc() {}
