package entity

// Weather погода в точке, упрощённая до того, что нужно для подбора одежды.
type Weather struct {
	Temperature    float64 `json:"temperature"`
	Condition      string  `json:"condition"`
	Recommendation string  `json:"recommendation"`
	City           string  `json:"city"`
}

// WeatherInput то, что клиент присылает в подбор образа. Поля необязательные.
type WeatherInput struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Condition   *string  `json:"condition,omitempty"`
}
