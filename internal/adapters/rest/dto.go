package rest

import (
	"real-estate-catalog/internal/core/domain"
	"strings"
)

// PropertyResponse - DTO объекта недвижимости в ответах API.
type PropertyResponse struct {
	ID       string  `json:"id"`
	IDOwner  string  `json:"idOwner"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// toPropertyResponse маппит доменную сущность в DTO.
// Относительный ключ картинки разворачивается в абсолютный URL здесь,
// в момент ответа, а не при сохранении: записи в базе не привязаны к хосту.
func toPropertyResponse(p domain.Property, publicBaseURL string) PropertyResponse {
	imageURL := ""
	if p.ImageKey != "" {
		imageURL = strings.TrimSuffix(publicBaseURL, "/") + "/" + p.ImageKey
	}

	return PropertyResponse{
		ID:       p.ID.Hex(),
		IDOwner:  p.OwnerID,
		Name:     p.Name,
		Address:  p.Address,
		Price:    p.Price,
		ImageURL: imageURL,
	}
}

func toPropertyResponseList(properties []domain.Property, publicBaseURL string) []PropertyResponse {
	responses := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		responses[i] = toPropertyResponse(p, publicBaseURL)
	}
	return responses
}
