package webapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/creatorstack/storefront/internal/upload"
)

// createProduct runs a multipart submission through the upload flow. The flow
// validates field by field; the first failure comes back as a 400 with the
// user-visible reason and nothing is persisted.
func (h *Handler) createProduct(c echo.Context) error {
	who, authed := currentIdentity(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to upload products", nil)
	}

	in := upload.Input{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Category:    c.FormValue("category"),
		Featured:    cast.ToBool(c.FormValue("featured")),
	}

	productFile, closeProduct, err := formAttachment(c, "file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read product file", err.Error())
	}
	if closeProduct != nil {
		defer closeProduct()
	}
	in.ProductFile = productFile

	imageFile, closeImage, err := formAttachment(c, "image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read product image", err.Error())
	}
	if closeImage != nil {
		defer closeImage()
	}
	in.ImageFile = imageFile

	product, err := h.flow.Submit(c.Request().Context(), who, in)
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", verr.Reason, verr.Field)
		}
		return fail(c, http.StatusBadGateway, "UPLOAD_FAILED", "Failed to upload product. Please try again.", err.Error())
	}
	return ok(c, product)
}

// formAttachment opens the named multipart file if present. A missing part is
// not an error here; the flow decides whether the attachment was required.
func formAttachment(c echo.Context, field string) (*upload.File, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// echo surfaces an absent part as an error; treat any of them as absent.
		return nil, nil, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &upload.File{Name: fh.Filename, Content: src}, func() { _ = src.Close() }, nil
}
