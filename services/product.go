package services

import (
	"context"

	"go-storefront/models"
)

// ProductService passes catalog operations through to the resource store.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.Products(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.products.ProductByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	return s.products.CreateProduct(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error) {
	updated, err := s.products.UpdateProduct(ctx, id, fields)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		if notFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
