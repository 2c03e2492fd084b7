package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_api/internal/events"
	"github.com/Skotchmaster/ecommerce_api/internal/logging"
	"github.com/Skotchmaster/ecommerce_api/internal/models"
	"github.com/Skotchmaster/ecommerce_api/internal/repo"
	"github.com/Skotchmaster/ecommerce_api/internal/search"
	"github.com/Skotchmaster/ecommerce_api/internal/transport"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Indexer  *search.Indexer
}

func (s *CatalogService) publish(ctx context.Context, eventType string, productID int, name string) {
	event := map[string]any{
		"type":      eventType,
		"productID": productID,
		"name":      name,
	}
	if err := s.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(productID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

// AddProduct requires the name and price keys to be present in the
// payload. An empty name is accepted, a missing one is not, and a
// rejected payload never reaches the database.
func (s *CatalogService) AddProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == nil || req.Price == nil {
		return nil, ErrInvalidProduct
	}

	prod := models.Product{
		Name:  *req.Name,
		Price: *req.Price,
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	s.publish(ctx, "product_created", prod.ID, prod.Name)
	s.Indexer.Index(ctx, &prod)
	return &prod, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return prod, err
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.ProductSummary, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]models.ProductSummary, len(items))
	for i, p := range items {
		list[i] = p.Summary()
	}
	return list, nil
}

// UpdateProduct checks existence before touching the payload and
// applies only the fields present in it. An empty patch still commits
// and reports success.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, req transport.PatchProductRequest) (*models.Product, error) {
	prod, err := s.Repo.PatchProduct(ctx, id, req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "product_updated", prod.ID, prod.Name)
	s.Indexer.Index(ctx, prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	s.publish(ctx, "product_deleted", id, "")
	s.Indexer.Delete(ctx, id)
	return nil
}
