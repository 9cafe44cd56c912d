package domain

// Значения по умолчанию
const (
	DefaultRole             = RoleUser
	DefaultDurationHours    = 1
	DefaultMaxDurationHours = 24
	DefaultCurrency         = "INR"

	// SlotsPerRow количество мест в ряду при кодировке "буква ряда + номер места"
	SlotsPerRow = 10
)

// Форматы
const (
	TimeFormat = "2006-01-02T15:04:05Z07:00"
)
