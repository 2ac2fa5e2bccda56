package entity

// TemperatureBand диапазон температур с базовым советом.
// Below == nil означает «всё, что выше предыдущих диапазонов».
type TemperatureBand struct {
	Below          *float64 `yaml:"below"`
	Advice         string   `yaml:"advice"`
	Recommendation string   `yaml:"recommendation"`
}

// OutfitRules правила подбора одежды по температуре.
type OutfitRules struct {
	Bands        []TemperatureBand `yaml:"bands"`
	DefaultStyle string            `yaml:"default_style"`
	Confidence   string            `yaml:"confidence"`
}

// Band возвращает первый диапазон, в который попадает температура.
func (r OutfitRules) Band(temp float64) TemperatureBand {
	for _, b := range r.Bands {
		if b.Below == nil || temp < *b.Below {
			return b
		}
	}
	if len(r.Bands) == 0 {
		return TemperatureBand{}
	}
	return r.Bands[len(r.Bands)-1]
}

// OutfitSuggestion совет по образу.
type OutfitSuggestion struct {
	Suggestion        string `json:"suggestion"`
	Confidence        string `json:"confidence"`
	WeatherConsidered bool   `json:"weather_considered"`
	Details           string `json:"details,omitempty"`
}

// DefaultOutfitRules правила демо-версии: холодно ниже 10°, прохладно ниже 20°.
func DefaultOutfitRules() OutfitRules {
	cold, cool := 10.0, 20.0
	return OutfitRules{
		Bands: []TemperatureBand{
			{Below: &cold, Advice: "Cold weather: Wear heavy jacket and layers", Recommendation: "Bundle up, it's cold outside"},
			{Below: &cool, Advice: "Cool weather: Light jacket recommended", Recommendation: "Take a light jacket"},
			{Advice: "Warm weather: T-shirt and light clothing perfect", Recommendation: "Perfect weather for light clothing"},
		},
		DefaultStyle: "casual",
		Confidence:   "85%",
	}
}
