package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/satheeshds/invoicing/blob"
	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/logging"
	"github.com/satheeshds/invoicing/models"
	"github.com/satheeshds/invoicing/validation"
)

type ProductService struct {
	products db.Collection
	images   blob.Uploader
}

func NewProductService(products db.Collection, images blob.Uploader) *ProductService {
	if images == nil {
		images = blob.Disabled{}
	}
	return &ProductService{products: products, images: images}
}

// List returns every product, inactive ones included.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	docs, err := s.products.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return db.DecodeAll[models.Product](docs)
}

func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Product{}, err
	}
	return s.get(ctx, oid)
}

func (s *ProductService) get(ctx context.Context, oid primitive.ObjectID) (models.Product, error) {
	var p models.Product
	raw, err := s.products.FindOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if errors.Is(err, db.ErrNoDocuments) {
		return p, fmt.Errorf("product %s: %w", oid.Hex(), ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("fetching product %s: %w", oid.Hex(), err)
	}
	if err := bson.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decoding product %s: %w", oid.Hex(), err)
	}
	return p, nil
}

// Create stores a new, active product. When img is non-nil it is uploaded
// first and its URL saved as image_url; a failed upload stores nothing.
func (s *ProductService) Create(ctx context.Context, input models.ProductInput, img *blob.Image) (models.Product, error) {
	if verr := validation.ValidateStruct(&input); verr != nil {
		return models.Product{}, verr
	}

	p := input.NewProduct()
	if img != nil {
		url, err := s.upload(ctx, *img)
		if err != nil {
			return models.Product{}, err
		}
		p.ImageURL = &url
	}

	id, err := s.products.InsertOne(ctx, p)
	if err != nil {
		return models.Product{}, fmt.Errorf("inserting product: %w", err)
	}
	p.ID = id

	logging.Ctx(ctx).Info().Str("product_id", id.Hex()).Str("name", p.Name).Msg("product created")
	return p, nil
}

// Update applies the set fields of patch, plus a new image when img is
// non-nil, and returns the stored result.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch, img *blob.Image) (models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Product{}, err
	}
	if patch.IsEmpty() && img == nil {
		return models.Product{}, ErrEmptyUpdate
	}
	if verr := validation.ValidateStruct(&patch); verr != nil {
		return models.Product{}, verr
	}

	set := bson.M(patch.Fields())
	if img != nil {
		// Images are only uploaded for products that exist.
		if _, err := s.get(ctx, oid); err != nil {
			return models.Product{}, err
		}
		url, err := s.upload(ctx, *img)
		if err != nil {
			return models.Product{}, err
		}
		set["image_url"] = url
	}

	matched, err := s.products.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return models.Product{}, fmt.Errorf("updating product %s: %w", id, err)
	}
	if matched == 0 {
		return models.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	logging.Ctx(ctx).Info().Str("product_id", id).Int("fields", len(set)).Msg("product updated")
	return s.get(ctx, oid)
}

func (s *ProductService) upload(ctx context.Context, img blob.Image) (string, error) {
	url, err := s.images.Upload(ctx, img)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	return url, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("product %q: %w", id, ErrInvalidID)
	}
	return oid, nil
}
