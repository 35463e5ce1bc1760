package domain

import "errors"

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases.
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyExists   = errors.New("a property with this name and address already exists")
)
