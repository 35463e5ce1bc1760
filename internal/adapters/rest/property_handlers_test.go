package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"real-estate-catalog/internal/adapters/rest"
	"real-estate-catalog/internal/core/domain"
	"real-estate-catalog/internal/core/port"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testBaseURL = "http://localhost:8080"

// Фейковые use case'ы с программируемым поведением.

type fakeListUC struct {
	properties []domain.Property
	err        error
	gotFilters domain.PropertyFilters
}

func (f *fakeListUC) Execute(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	f.gotFilters = filters
	return f.properties, f.err
}

type fakeGetUC struct {
	property *domain.Property
	err      error
}

func (f *fakeGetUC) Execute(ctx context.Context, id string) (*domain.Property, error) {
	return f.property, f.err
}

type fakeCreateUC struct {
	property *domain.Property
	err      error
	gotInput *domain.CreatePropertyInput
}

func (f *fakeCreateUC) Execute(ctx context.Context, input domain.CreatePropertyInput) (*domain.Property, error) {
	f.gotInput = &input
	return f.property, f.err
}

type fakeDeleteUC struct {
	err error
}

func (f *fakeDeleteUC) Execute(ctx context.Context, id string) error {
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(msg string, fields port.Fields)             {}
func (nopLogger) Warn(msg string, fields port.Fields)             {}
func (nopLogger) Error(msg string, err error, fields port.Fields) {}
func (nopLogger) Debug(msg string, fields port.Fields)            {}
func (nopLogger) WithFields(fields port.Fields) port.LoggerPort   { return nopLogger{} }

type fakes struct {
	list   *fakeListUC
	get    *fakeGetUC
	create *fakeCreateUC
	del    *fakeDeleteUC
}

func newRouter(f fakes) http.Handler {
	if f.list == nil {
		f.list = &fakeListUC{}
	}
	if f.get == nil {
		f.get = &fakeGetUC{}
	}
	if f.create == nil {
		f.create = &fakeCreateUC{}
	}
	if f.del == nil {
		f.del = &fakeDeleteUC{}
	}

	h := rest.NewPropertyHandler(f.list, f.get, f.create, f.del, testBaseURL)

	r := chi.NewRouter()
	r.Get("/api/properties", h.ListProperties)
	r.Get("/api/properties/{propertyID}", h.GetProperty)
	r.Post("/api/properties", h.CreateProperty)
	r.Delete("/api/properties/{propertyID}", h.DeleteProperty)
	return r
}

func sampleProperty() domain.Property {
	return domain.Property{
		ID:       primitive.NewObjectID(),
		OwnerID:  "o1",
		Name:     "Villa Sol",
		Address:  "1 Main",
		Price:    100000,
		ImageKey: "images/abc.png",
	}
}

func TestListProperties(t *testing.T) {
	t.Run("returns dto list with resolved image urls", func(t *testing.T) {
		property := sampleProperty()
		router := newRouter(fakes{list: &fakeListUC{properties: []domain.Property{property}}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body []map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(body) != 1 {
			t.Fatalf("len(body) = %d, want 1", len(body))
		}
		if got := body[0]["imageUrl"]; got != testBaseURL+"/images/abc.png" {
			t.Errorf("imageUrl = %v, want %s/images/abc.png", got, testBaseURL)
		}
		if got := body[0]["idOwner"]; got != "o1" {
			t.Errorf("idOwner = %v, want o1", got)
		}
	})

	t.Run("passes query filters to the use case", func(t *testing.T) {
		listUC := &fakeListUC{}
		router := newRouter(fakes{list: listUC})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties?name=villa&minPrice=150", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if listUC.gotFilters.Name == nil || *listUC.gotFilters.Name != "villa" {
			t.Errorf("name filter = %v, want 'villa'", listUC.gotFilters.Name)
		}
		if listUC.gotFilters.MinPrice == nil || *listUC.gotFilters.MinPrice != 150 {
			t.Errorf("minPrice filter = %v, want 150", listUC.gotFilters.MinPrice)
		}
		if listUC.gotFilters.Address != nil || listUC.gotFilters.MaxPrice != nil {
			t.Error("unset filters must stay nil")
		}
	})

	t.Run("invalid price parameter", func(t *testing.T) {
		router := newRouter(fakes{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties?minPrice=abc", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("use case failure maps to 500", func(t *testing.T) {
		router := newRouter(fakes{list: &fakeListUC{err: errors.New("cursor timeout")}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("500 body carries trace id", func(t *testing.T) {
		router := newRouter(fakes{list: &fakeListUC{err: errors.New("cursor timeout")}})
		wrapped := rest.LoggerMiddleware(nopLogger{})(router)

		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body["trace_id"] == "" {
			t.Error("500 body lacks trace_id")
		}
	})
}

func TestGetProperty(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		property := sampleProperty()
		router := newRouter(fakes{get: &fakeGetUC{property: &property}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/"+property.ID.Hex(), nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body["id"] != property.ID.Hex() {
			t.Errorf("id = %v, want %s", body["id"], property.ID.Hex())
		}
		if body["price"] != 100000.0 {
			t.Errorf("price = %v, want 100000", body["price"])
		}
	})

	t.Run("absent", func(t *testing.T) {
		router := newRouter(fakes{get: &fakeGetUC{err: domain.ErrPropertyNotFound}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/unknown", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

// multipartBody собирает multipart-форму создания объекта.
func multipartBody(t *testing.T, fields map[string]string, imageFileName string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField(%s) error = %v", key, err)
		}
	}
	if imageFileName != "" {
		part, err := writer.CreateFormFile("image", imageFileName)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := io.Copy(part, strings.NewReader("fake-image-bytes")); err != nil {
			t.Fatalf("writing image part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return buf, writer.FormDataContentType()
}

func TestCreateProperty(t *testing.T) {
	validFields := map[string]string{
		"idOwner": "o1",
		"name":    "Test",
		"address": "1 Main",
		"price":   "100000",
	}

	t.Run("created", func(t *testing.T) {
		property := sampleProperty()
		createUC := &fakeCreateUC{property: &property}
		router := newRouter(fakes{create: createUC})

		body, contentType := multipartBody(t, validFields, "house.png")
		req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("Location"); got != "/api/properties/"+property.ID.Hex() {
			t.Errorf("Location = %q, want /api/properties/%s", got, property.ID.Hex())
		}

		if createUC.gotInput == nil {
			t.Fatal("use case was not invoked")
		}
		if createUC.gotInput.Price != 100000 {
			t.Errorf("price = %v, want 100000", createUC.gotInput.Price)
		}
		if string(createUC.gotInput.ImageBytes) != "fake-image-bytes" {
			t.Errorf("image bytes = %q", createUC.gotInput.ImageBytes)
		}

		var dto map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if url, _ := dto["imageUrl"].(string); !strings.HasPrefix(url, testBaseURL+"/") {
			t.Errorf("imageUrl = %q, want prefix %s/", url, testBaseURL)
		}
	})

	t.Run("duplicate maps to 409 with message", func(t *testing.T) {
		router := newRouter(fakes{create: &fakeCreateUC{err: domain.ErrPropertyExists}})

		body, contentType := multipartBody(t, validFields, "house.png")
		req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "already exists") {
			t.Errorf("body %q lacks conflict message", rec.Body.String())
		}
	})

	t.Run("infrastructure failure maps to 500", func(t *testing.T) {
		router := newRouter(fakes{create: &fakeCreateUC{err: errors.New("insert failed")}})

		body, contentType := multipartBody(t, validFields, "house.png")
		req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("validation failures map to 400", func(t *testing.T) {
		tests := []struct {
			name      string
			fields    map[string]string
			imageName string
		}{
			{"missing name", map[string]string{"address": "1 Main", "price": "10"}, "house.png"},
			{"missing address", map[string]string{"name": "Test", "price": "10"}, "house.png"},
			{"missing price", map[string]string{"name": "Test", "address": "1 Main"}, "house.png"},
			{"price not a number", map[string]string{"name": "Test", "address": "1 Main", "price": "ten"}, "house.png"},
			{"negative price", map[string]string{"name": "Test", "address": "1 Main", "price": "-5"}, "house.png"},
			{"missing image", validFields, ""},
			{"bad image extension", validFields, "house.gif"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				createUC := &fakeCreateUC{}
				router := newRouter(fakes{create: createUC})

				body, contentType := multipartBody(t, tt.fields, tt.imageName)
				req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
				req.Header.Set("Content-Type", contentType)

				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				if rec.Code != http.StatusBadRequest {
					t.Errorf("status = %d, want 400", rec.Code)
				}
				if createUC.gotInput != nil {
					t.Error("use case must not run on invalid input")
				}
			})
		}
	})
}

func TestDeleteProperty(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		router := newRouter(fakes{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/properties/abc", nil))

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("absent", func(t *testing.T) {
		router := newRouter(fakes{del: &fakeDeleteUC{err: domain.ErrPropertyNotFound}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/properties/abc", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
