package upload_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstack/storefront/internal/catalog"
	"github.com/creatorstack/storefront/internal/domain"
	"github.com/creatorstack/storefront/internal/eventbus"
	"github.com/creatorstack/storefront/internal/store"
	"github.com/creatorstack/storefront/internal/upload"
)

type fakeStorage struct {
	uploads []string
	err     error
}

func (f *fakeStorage) Upload(_ context.Context, content io.Reader, path string, _ bool) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.Copy(io.Discard, content); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, path)
	return "https://cdn.example.test/" + path, nil
}

func validInput() upload.Input {
	return upload.Input{
		Title:       "Rust for Systems Programmers",
		Description: "From ownership to unsafe, with real projects.",
		Price:       "49.50",
		Category:    domain.CategoryEbook,
		ProductFile: &upload.File{Name: "rust-book.pdf", Content: strings.NewReader("pdf-bytes")},
	}
}

func creator() domain.Identity {
	return domain.Identity{ID: "u1", Email: "creator@example.test"}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*upload.Input)
		wantField string
	}{
		{"MissingTitle", func(in *upload.Input) { in.Title = "  " }, "title"},
		{"MissingDescription", func(in *upload.Input) { in.Description = "" }, "description"},
		{"MissingPrice", func(in *upload.Input) { in.Price = "" }, "price"},
		{"UnparseablePrice", func(in *upload.Input) { in.Price = "free" }, "price"},
		{"NegativePrice", func(in *upload.Input) { in.Price = "-1" }, "price"},
		{"UnknownCategory", func(in *upload.Input) { in.Category = "podcast" }, "category"},
		{"MissingProductFile", func(in *upload.Input) { in.ProductFile = nil }, "file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemStore()
			storage := &fakeStorage{}
			flow := upload.NewFlow(st, eventbus.New(), storage)

			in := validInput()
			tc.mutate(&in)

			_, err := flow.Submit(context.Background(), creator(), in)
			var verr *upload.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
			assert.Empty(t, st.Load(), "validation failure must not mutate the store")
			assert.Empty(t, storage.uploads, "validation failure must not reach storage")
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	st := store.NewMemStore()
	bus := eventbus.New()
	storage := &fakeStorage{}
	flow := upload.NewFlow(st, bus, storage)

	created := 0
	bus.Subscribe(eventbus.TopicProductCreated, func(detail interface{}) {
		created++
		p, ok := detail.(domain.Product)
		require.True(t, ok)
		require.Len(t, st.Load(), 1, "record must be persisted before the created event fires")
		assert.Equal(t, st.Load()[0].ID, p.ID)
	})

	product, err := flow.Submit(context.Background(), creator(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 1, created, "created event fires exactly once, before Submit returns")
	assert.True(t, strings.HasPrefix(product.ID, "prod_"))
	assert.Equal(t, "Rust for Systems Programmers", product.Title)
	assert.Equal(t, 49.50, product.Price)
	assert.Equal(t, domain.CategoryEbook, product.Category)
	assert.Equal(t, "u1", product.CreatorID)
	assert.Contains(t, product.FileURL, "products/u1/")
	assert.Empty(t, product.ImageURL)

	_, err = time.Parse(time.RFC3339, product.CreatedAt)
	assert.NoError(t, err)

	records := st.Load()
	require.Len(t, records, 1)
	assert.Equal(t, product, records[0])
}

func TestSubmitUploadsOptionalImage(t *testing.T) {
	storage := &fakeStorage{}
	flow := upload.NewFlow(store.NewMemStore(), eventbus.New(), storage)

	in := validInput()
	in.ImageFile = &upload.File{Name: "cover.png", Content: strings.NewReader("png-bytes")}

	product, err := flow.Submit(context.Background(), creator(), in)
	require.NoError(t, err)
	assert.Contains(t, product.ImageURL, "product-images/u1/")
	require.Len(t, storage.uploads, 2)
	assert.Contains(t, storage.uploads[0], "rust-book.pdf")
	assert.Contains(t, storage.uploads[1], "cover.png")
}

func TestSubmitStorageFailureLeavesStoreUntouched(t *testing.T) {
	st := store.NewMemStore()
	bus := eventbus.New()
	flow := upload.NewFlow(st, bus, &fakeStorage{err: errors.New("bucket unavailable")})

	events := 0
	bus.Subscribe(eventbus.TopicProductCreated, func(interface{}) { events++ })

	_, err := flow.Submit(context.Background(), creator(), validInput())
	require.Error(t, err)
	var verr *upload.ValidationError
	assert.False(t, errors.As(err, &verr), "collaborator failures are not validation errors")
	assert.Empty(t, st.Load())
	assert.Zero(t, events)
}

func TestSubmittedProductIsQueryable(t *testing.T) {
	st := store.NewMemStore()
	flow := upload.NewFlow(st, eventbus.New(), &fakeStorage{})
	svc := catalog.New(st)

	product, err := flow.Submit(context.Background(), creator(), validInput())
	require.NoError(t, err)

	bySearch := svc.Query("rust", domain.CategoryAll)
	require.Len(t, bySearch, 1)
	assert.Equal(t, product.ID, bySearch[0].ID)

	byCategory := svc.Query("", domain.CategoryEbook)
	ids := make([]string, 0, len(byCategory))
	for _, p := range byCategory {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, product.ID)
}

func TestSubmitGeneratesDistinctIDs(t *testing.T) {
	st := store.NewMemStore()
	flow := upload.NewFlow(st, eventbus.New(), &fakeStorage{})

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		in := validInput()
		in.ProductFile = &upload.File{Name: "f.pdf", Content: strings.NewReader("x")}
		p, err := flow.Submit(context.Background(), creator(), in)
		require.NoError(t, err)
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}
