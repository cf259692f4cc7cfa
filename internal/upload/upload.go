// Package upload implements the product creation flow: validate the
// submission, hand the file bytes to the storage collaborator, persist the new
// record, and notify mounted views.
package upload

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/creatorstack/storefront/internal/domain"
	"github.com/creatorstack/storefront/internal/eventbus"
	"github.com/creatorstack/storefront/internal/store"
	"github.com/creatorstack/storefront/pkg/ids"
)

// Storage is the external file-storage collaborator. Upload returns the public
// URL of the stored object.
type Storage interface {
	Upload(ctx context.Context, content io.Reader, path string, upsert bool) (publicURL string, err error)
}

// File is one attachment from the submission form.
type File struct {
	Name    string
	Content io.Reader
}

// Input is a raw form submission. Price arrives as the entered string and is
// parsed during validation.
type Input struct {
	Title       string
	Description string
	Price       string
	Category    string
	Featured    bool
	ProductFile *File
	ImageFile   *File
}

// ValidationError carries the user-visible reason a submission was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Flow runs submissions through validating -> uploading -> persisted. A failed
// validation or collaborator call leaves the record store untouched.
type Flow struct {
	store   store.RecordStore
	bus     *eventbus.Bus
	storage Storage
}

func NewFlow(st store.RecordStore, bus *eventbus.Bus, storage Storage) *Flow {
	return &Flow{store: st, bus: bus, storage: storage}
}

// Submit validates in, uploads its attachments, appends the new record to the
// store, and publishes the product.created topic exactly once before
// returning. The checks run in a fixed order and the first failure
// short-circuits with no mutation.
func (f *Flow) Submit(ctx context.Context, who domain.Identity, in Input) (domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Product{}, invalid("title", "Product title is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return domain.Product{}, invalid("description", "Product description is required")
	}
	if strings.TrimSpace(in.Price) == "" {
		return domain.Product{}, invalid("price", "Price is required")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil {
		return domain.Product{}, invalid("price", "Price must be a number")
	}
	if price < 0 {
		return domain.Product{}, invalid("price", "Price must not be negative")
	}
	if !domain.ValidCategory(in.Category) {
		return domain.Product{}, invalid("category", "Category must be course, video, ebook or template")
	}
	if in.ProductFile == nil {
		return domain.Product{}, invalid("file", "Please attach your digital product file")
	}

	now := time.Now()

	fileURL, err := f.storage.Upload(ctx, in.ProductFile.Content,
		fmt.Sprintf("products/%s/%d-%s", who.ID, now.UnixMilli(), in.ProductFile.Name), true)
	if err != nil {
		zap.L().Error("product file upload failed",
			zap.String("userId", who.ID), zap.Error(err))
		return domain.Product{}, fmt.Errorf("upload product file: %w", err)
	}

	imageURL := ""
	if in.ImageFile != nil {
		imageURL, err = f.storage.Upload(ctx, in.ImageFile.Content,
			fmt.Sprintf("product-images/%s/%d-%s", who.ID, now.UnixMilli(), in.ImageFile.Name), true)
		if err != nil {
			zap.L().Error("product image upload failed",
				zap.String("userId", who.ID), zap.Error(err))
			return domain.Product{}, fmt.Errorf("upload product image: %w", err)
		}
	}

	product := domain.Product{
		ID:          ids.NewProductID(),
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		FileURL:     fileURL,
		CreatorID:   who.ID,
		CreatedAt:   now.UTC().Format(time.RFC3339),
		Category:    in.Category,
		Featured:    in.Featured,
	}

	// Read-modify-write, not atomic. An already-uploaded file is not cleaned
	// up when the record write fails; the orphan is accepted.
	records := f.store.Load()
	records = append(records, product)
	if err := f.store.Save(records); err != nil {
		return domain.Product{}, fmt.Errorf("persist product record: %w", err)
	}

	f.bus.Publish(eventbus.TopicProductCreated, product)

	zap.L().Info("product created",
		zap.String("productId", product.ID),
		zap.String("userId", who.ID),
		zap.String("category", product.Category))
	return product, nil
}
