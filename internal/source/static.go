package source

import (
	"context"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/mock"
	"NewsToChat/internal/ports"
)

// StaticName is the registry name of the built-in article set.
const StaticName = "static"

// StaticSource serves the built-in fallback articles.
type StaticSource struct{}

var _ ports.ArticleSource = StaticSource{}

func (StaticSource) Name() string { return StaticName }

func (StaticSource) Articles(context.Context) ([]domain.Article, error) {
	return mock.Articles(), nil
}
