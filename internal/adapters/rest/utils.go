package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"real-estate-catalog/internal/contextkeys"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	// формируем объект ошибки
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// WriteJSONInternalError отправляет 500, добавляя в тело trace_id запроса:
// по нему клиент может сослаться на конкретную запись в логах.
func WriteJSONInternalError(w http.ResponseWriter, ctx context.Context, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)

	payload := map[string]string{"error": message}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		payload["trace_id"] = traceID
	}
	json.NewEncoder(w).Encode(payload)
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// parseString возвращает указатель на значение query-параметра
// или nil, если параметр не задан.
func parseString(query url.Values, key string) *string {
	value := query.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

// parseFloat возвращает указатель на число из query-параметра.
// Ошибку парсинга отдаем наверх, чтобы хендлер ответил 400.
func parseFloat(query url.Values, key string) (*float64, error) {
	valueStr := query.Get(key)
	if valueStr == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
