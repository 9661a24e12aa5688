package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/repositories"
	"github.com/aymanhs/souq/app/services"
	"github.com/aymanhs/souq/pkg/bind"
	"github.com/aymanhs/souq/pkg/middleware"
	"github.com/aymanhs/souq/pkg/reqid"
	"github.com/aymanhs/souq/pkg/response"
	"github.com/aymanhs/souq/pkg/storage"
	"github.com/aymanhs/souq/pkg/validate"
)

const maxUploadBytes = 32 << 20 // 32 MB across all files

type ProductController struct {
	products  *services.ProductService
	purchases *services.PurchaseService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{
		products:  services.NewProductService(db),
		purchases: services.NewPurchaseService(db),
	}
}

// Index lists products with optional search, price window, seller filter
// and sorting. Prices are in minor units.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.ProductFilter{
		Search:   q.Get("search"),
		PriceMin: queryInt64(r, "priceMin", 0),
		PriceMax: queryInt64(r, "priceMax", 0),
		SellerID: uint(queryInt64(r, "seller", 0)),
		SortBy:   q.Get("sortBy"),
		Order:    q.Get("order"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 20),
	}

	products, total, err := c.products.List(filter)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     filter.Page,
	})
}

// Show returns one product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.Get(uintParam(r, "id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"product": product})
}

// Store creates a product. Accepts JSON, or multipart/form-data when the
// cover and gallery images are uploaded inline; uploaded files go through
// the storage disk and only their URLs are persisted.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromCtx(r.Context())

	in, ok := c.bindProductInput(w, r)
	if !ok {
		return
	}

	product, err := c.products.Create(id.UserID, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, map[string]interface{}{"product": product})
}

// Update replaces the mutable fields of a product.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := c.bindProductInput(w, r)
	if !ok {
		return
	}

	product, err := c.products.Update(uintParam(r, "id"), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"product": product})
}

// Destroy removes a product from the catalogue.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(uintParam(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Product deleted"})
}

type buyInput struct {
	Quantity   int   `json:"quantity"   validate:"required,integer,gte=1"`
	TotalPrice int64 `json:"totalPrice" validate:"required,gte=1"`
}

// Buy purchases the product in the URL for the authenticated caller.
// totalPrice is the amount the caller expects to pay, in minor units.
func (c *ProductController) Buy(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromCtx(r.Context())

	var in buyInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	result, err := c.purchases.Buy(r.Context(), id.UserID, uintParam(r, "id"), in.Quantity, in.TotalPrice)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"purchase": result})
}

// bindProductInput reads a ProductInput from either a JSON body or a
// multipart form with file uploads. Returns ok=false after writing the
// error response.
func (c *ProductController) bindProductInput(w http.ResponseWriter, r *http.Request) (services.ProductInput, bool) {
	var in services.ProductInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var err error
		in, err = parseProductForm(r)
		if err != nil {
			response.Fail(w, http.StatusBadRequest, err.Error())
			return in, false
		}
		if errs := validate.Struct(&in); validate.HasErrors(errs) {
			response.ValidationFailed(w, errs)
			return in, false
		}
		return in, true
	}

	if errs, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return in, false
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return in, false
	}
	return in, true
}

func parseProductForm(r *http.Request) (services.ProductInput, error) {
	var in services.ProductInput

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return in, err
	}

	in.Title = r.FormValue("title")
	in.Description = r.FormValue("description")
	in.Price, _ = strconv.ParseInt(r.FormValue("price"), 10, 64)
	in.Quantity, _ = strconv.Atoi(r.FormValue("quantity"))

	if file, header, err := r.FormFile("cover"); err == nil {
		url, err := saveUpload(file, header)
		if err != nil {
			return in, err
		}
		in.CoverImage = url
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				return in, err
			}
			url, err := saveUpload(file, header)
			if err != nil {
				return in, err
			}
			in.Images = append(in.Images, url)
		}
	}

	return in, nil
}

// saveUpload streams one uploaded file onto the configured storage disk
// and returns its public URL.
func saveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	defer file.Close()

	path := "products/" + reqid.New() + strings.ToLower(filepath.Ext(header.Filename))
	if err := storage.PutStream(path, io.LimitReader(file, maxUploadBytes)); err != nil {
		return "", err
	}
	return storage.URL(path), nil
}
