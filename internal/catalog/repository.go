package catalog

import (
	"context"
	"errors"

	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"github.com/talkincode/partscatalog/internal/domain"
	"gorm.io/gorm"
)

// ErrNotFound reports an update/delete against a product id that does not
// exist. Callers translate it to a 404 distinct from validation failures.
var ErrNotFound = pkgerrors.New("product not found")

// ProductPayload is a full replacement of a product's mutable fields.
// Every call supplies all fields, there is no partial patch.
type ProductPayload struct {
	ItemNumber  *int64
	Description string
	Brand       *string
	Model       *string
	Code        *string
	Tags        []string
	ImageURL    *string
	IsAvailable bool
}

// PageResult is one page of catalog results plus the independent total.
type PageResult struct {
	Products   []domain.Product `json:"products"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"totalPages"`
}

// ProductRepository handles product persistence
type ProductRepository interface {
	// Create inserts a product, normalizing tags first
	Create(ctx context.Context, payload ProductPayload) (*domain.Product, error)

	// Update replaces all mutable fields, ErrNotFound when id is missing
	Update(ctx context.Context, id int64, payload ProductPayload) (*domain.Product, error)

	// Delete permanently removes a product, ErrNotFound when id is missing
	Delete(ctx context.Context, id int64) error

	// GetByID returns (nil, nil) when the product does not exist
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List counts and fetches one page under the same filter within a
	// single read transaction
	List(ctx context.Context, query PageQuery) (*PageResult, error)

	// ListAll returns every product in catalog order (used by the
	// spreadsheet export)
	ListAll(ctx context.Context) ([]domain.Product, error)

	// Count returns the number of products in the store
	Count(ctx context.Context) (int64, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) apply(product *domain.Product, payload ProductPayload) {
	product.ItemNumber = payload.ItemNumber
	product.Description = payload.Description
	product.Brand = payload.Brand
	product.Model = payload.Model
	product.Code = payload.Code
	product.Tags = pq.StringArray(NormalizeTags(payload.Tags))
	product.ImageURL = payload.ImageURL
	product.IsAvailable = payload.IsAvailable
}

func (r *GormProductRepository) Create(ctx context.Context, payload ProductPayload) (*domain.Product, error) {
	var product domain.Product
	r.apply(&product, payload)
	if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create product")
	}
	return &product, nil
}

func (r *GormProductRepository) Update(ctx context.Context, id int64, payload ProductPayload) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query product")
	}

	r.apply(&product, payload)
	if err := r.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "update product")
	}
	return &product, nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query product")
	}
	return &product, nil
}

// List runs the count and the page fetch inside one transaction so both
// observe the same snapshot and the total cannot drift from the page
// under concurrent writes.
func (r *GormProductRepository) List(ctx context.Context, query PageQuery) (*PageResult, error) {
	var total int64
	var products []domain.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := query.ApplyFilter(tx.Model(&domain.Product{})).Count(&total).Error; err != nil {
			return err
		}
		return query.ApplyFilter(tx.Model(&domain.Product{})).
			Order(ProductOrder).
			Offset(query.Skip()).
			Limit(query.Take).
			Find(&products).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list products")
	}

	if products == nil {
		products = []domain.Product{}
	}
	return &PageResult{
		Products:   products,
		Total:      total,
		TotalPages: TotalPages(total, query.Take),
	}, nil
}

func (r *GormProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Order(ProductOrder).
		Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list all products")
	}
	return products, nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error
	if err != nil {
		return 0, pkgerrors.Wrap(err, "count products")
	}
	return total, nil
}
