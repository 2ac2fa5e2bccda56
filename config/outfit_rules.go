package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"drip-backend/internal/domain/entity"
)

// LoadOutfitRules читает правила подбора одежды из YAML.
// Пустой путь означает правила по умолчанию.
func LoadOutfitRules(path string) (entity.OutfitRules, error) {
	if path == "" {
		return entity.DefaultOutfitRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entity.OutfitRules{}, fmt.Errorf("read outfit rules: %w", err)
	}
	return ParseOutfitRules(data)
}

// ParseOutfitRules разбирает YAML и дополняет пропущенные поля значениями по умолчанию.
func ParseOutfitRules(data []byte) (entity.OutfitRules, error) {
	var rules entity.OutfitRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return entity.OutfitRules{}, fmt.Errorf("parse outfit rules: %w", err)
	}

	def := entity.DefaultOutfitRules()
	if len(rules.Bands) == 0 {
		rules.Bands = def.Bands
	}
	if rules.DefaultStyle == "" {
		rules.DefaultStyle = def.DefaultStyle
	}
	if rules.Confidence == "" {
		rules.Confidence = def.Confidence
	}

	// пороги должны идти по возрастанию, без порога только последний
	for i, b := range rules.Bands {
		if b.Advice == "" {
			return entity.OutfitRules{}, fmt.Errorf("outfit rules: band %d has no advice", i)
		}
		if b.Below == nil && i != len(rules.Bands)-1 {
			return entity.OutfitRules{}, errors.New("outfit rules: only the last band may omit 'below'")
		}
		if i > 0 && b.Below != nil && *b.Below <= *rules.Bands[i-1].Below {
			return entity.OutfitRules{}, fmt.Errorf("outfit rules: band %d threshold is not increasing", i)
		}
	}

	return rules, nil
}
