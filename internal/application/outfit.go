package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"drip-backend/internal/domain/entity"
	"drip-backend/internal/domain/port"
)

const (
	defaultTemperature = 20.0
	defaultCondition   = "Clear"
)

// OutfitService подбирает образ по температуре.
type OutfitService struct {
	rules     entity.OutfitRules
	describer port.OutfitDescriber
}

// NewOutfitService создаёт сервис подбора. describer может быть nil.
func NewOutfitService(rules entity.OutfitRules, describer port.OutfitDescriber) *OutfitService {
	return &OutfitService{rules: rules, describer: describer}
}

// Suggest собирает совет вида "{совет} - Style: {стиль} - Condition: {погода}".
func (s *OutfitService) Suggest(ctx context.Context, in entity.WeatherInput, style string) *entity.OutfitSuggestion {
	temp := defaultTemperature
	if in.Temperature != nil {
		temp = *in.Temperature
	}
	condition := defaultCondition
	if in.Condition != nil && strings.TrimSpace(*in.Condition) != "" {
		condition = *in.Condition
	}
	style = strings.TrimSpace(style)
	if style == "" {
		style = s.rules.DefaultStyle
	}

	base := s.rules.Band(temp).Advice
	out := &entity.OutfitSuggestion{
		Suggestion:        fmt.Sprintf("%s - Style: %s - Condition: %s", base, style, condition),
		Confidence:        s.rules.Confidence,
		WeatherConsidered: true,
	}

	if s.describer != nil {
		details, err := s.describer.Describe(ctx, entity.Weather{Temperature: temp, Condition: condition}, style)
		if err != nil {
			// совет без подробностей лучше, чем ошибка
			log.Printf("Error describing outfit: %v", err)
		} else {
			out.Details = details
		}
	}

	return out
}
