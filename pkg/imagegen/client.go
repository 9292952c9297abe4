package imagegen

import (
	"context"
	"fmt"

	"sectorlens/internal/model"
)

const promptQualifiers = "economic landscape, modern and vibrant, high quality"

type Generator interface {
	Generate(ctx context.Context, prompt string) (*model.Image, error)
	Name() string
}

// Caption is the short description returned to the browser alongside the image.
func Caption(sector, country string) string {
	return fmt.Sprintf("Professional illustration of %s sector in %s", sector, country)
}

func BuildPrompt(sector, country string) string {
	return Caption(sector, country) + ", " + promptQualifiers
}
