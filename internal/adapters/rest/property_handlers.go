package rest

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"real-estate-catalog/internal/contextkeys"
	"real-estate-catalog/internal/core/domain"
	"real-estate-catalog/internal/core/port"
	"real-estate-catalog/internal/core/port/usecases_port"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Лимит размера загружаемой картинки.
const maxImageSize = 10 << 20 // 10MB

type PropertyHandler struct {
	listPropertiesUC usecases_port.ListPropertiesUseCase
	getPropertyUC    usecases_port.GetPropertyUseCase
	createPropertyUC usecases_port.CreatePropertyUseCase
	deletePropertyUC usecases_port.DeletePropertyUseCase

	publicBaseURL string
}

func NewPropertyHandler(
	listPropertiesUC usecases_port.ListPropertiesUseCase,
	getPropertyUC usecases_port.GetPropertyUseCase,
	createPropertyUC usecases_port.CreatePropertyUseCase,
	deletePropertyUC usecases_port.DeletePropertyUseCase,
	publicBaseURL string) *PropertyHandler {
	return &PropertyHandler{
		listPropertiesUC: listPropertiesUC,
		getPropertyUC:    getPropertyUC,
		createPropertyUC: createPropertyUC,
		deletePropertyUC: deletePropertyUC,
		publicBaseURL:    publicBaseURL,
	}
}

// ListProperties обрабатывает GET /api/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	// --- Шаг 1: Парсим query-параметры ---
	query := r.URL.Query()

	minPrice, err := parseFloat(query, "minPrice")
	if err != nil {
		logger.Warn("Invalid minPrice parameter", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid minPrice parameter")
		return
	}
	maxPrice, err := parseFloat(query, "maxPrice")
	if err != nil {
		logger.Warn("Invalid maxPrice parameter", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid maxPrice parameter")
		return
	}

	filters := domain.PropertyFilters{
		Name:     parseString(query, "name"),
		Address:  parseString(query, "address"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "ListProperties",
	})
	handlerLogger.Debug("Processing request to list properties", nil)

	// --- Шаг 2: Вызываем use-case ---
	properties, err := h.listPropertiesUC.Execute(r.Context(), filters)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONInternalError(w, r.Context(), err.Error())
		return
	}

	handlerLogger.Info("Successfully listed properties", port.Fields{
		"total_found": len(properties),
	})

	// --- Шаг 3: Маппим результат в DTO и отправляем JSON ---
	RespondWithJSON(w, http.StatusOK, toPropertyResponseList(properties, h.publicBaseURL))
}

// GetProperty обрабатывает GET /api/properties/{propertyID}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID := chi.URLParam(r, "propertyID")

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "GetProperty",
		"property_id": propertyID,
	})
	handlerLogger.Debug("Processing request to get property", nil)

	property, err := h.getPropertyUC.Execute(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			handlerLogger.Warn("Property not found", nil)
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONInternalError(w, r.Context(), err.Error())
		return
	}

	handlerLogger.Info("Successfully fetched property", nil)

	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property, h.publicBaseURL))
}

// CreateProperty обрабатывает POST /api/properties (multipart/form-data)
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "CreateProperty",
	})
	handlerLogger.Debug("Processing request to create property", nil)

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		handlerLogger.Warn("Invalid multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	input, validationErr := h.parseCreateForm(r)
	if validationErr != "" {
		handlerLogger.Warn("Create request validation failed", port.Fields{"reason": validationErr})
		WriteJSONError(w, http.StatusBadRequest, validationErr)
		return
	}

	property, err := h.createPropertyUC.Execute(r.Context(), *input)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyExists) {
			handlerLogger.Warn("Duplicate property", port.Fields{"name": input.Name, "address": input.Address})
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONInternalError(w, r.Context(), err.Error())
		return
	}

	handlerLogger.Info("Property created", port.Fields{"property_id": property.ID.Hex()})

	w.Header().Set("Location", "/api/properties/"+property.ID.Hex())
	RespondWithJSON(w, http.StatusCreated, toPropertyResponse(*property, h.publicBaseURL))
}

// parseCreateForm валидирует multipart-форму создания объекта.
// Вторым значением возвращает текст ошибки валидации ("" - форма корректна).
func (h *PropertyHandler) parseCreateForm(r *http.Request) (*domain.CreatePropertyInput, string) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return nil, "Field 'name' is required"
	}

	address := strings.TrimSpace(r.FormValue("address"))
	if address == "" {
		return nil, "Field 'address' is required"
	}

	priceStr := r.FormValue("price")
	if priceStr == "" {
		return nil, "Field 'price' is required"
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return nil, "Field 'price' must be a number"
	}
	if price < 0 {
		return nil, "Field 'price' must not be negative"
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "Image file is required"
	}
	defer file.Close()

	if header.Size > maxImageSize {
		return nil, "Image file is too large"
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return nil, "Invalid image format. Only JPG, JPEG, PNG, WEBP allowed"
	}

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, "Failed to read image file"
	}

	return &domain.CreatePropertyInput{
		OwnerID:       strings.TrimSpace(r.FormValue("idOwner")),
		Name:          name,
		Address:       address,
		Price:         price,
		ImageBytes:    imageBytes,
		ImageFileName: header.Filename,
	}, ""
}

// DeleteProperty обрабатывает DELETE /api/properties/{propertyID}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	propertyID := chi.URLParam(r, "propertyID")

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "DeleteProperty",
		"property_id": propertyID,
	})
	handlerLogger.Debug("Processing request to delete property", nil)

	if err := h.deletePropertyUC.Execute(r.Context(), propertyID); err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			handlerLogger.Warn("Property not found", nil)
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONInternalError(w, r.Context(), err.Error())
		return
	}

	handlerLogger.Info("Property deleted", nil)

	w.WriteHeader(http.StatusNoContent)
}
