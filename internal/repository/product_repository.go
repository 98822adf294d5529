package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/models"
)

// SearchPageSize is the fixed number of products per search page.
const SearchPageSize = 15

// ProductRepository handles database operations related to products,
// including the public search aggregation.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

// Get fetches a product by id. Returns nil when no document matches.
func (r *ProductRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// GetAll returns every product in the collection.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Create inserts a new product with its derived slug.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	now := time.Now().UTC()
	product.Slug = models.Slugify(product.Name)
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert product")
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

// Patch applies the given fields and returns the updated document.
func (r *ProductRepository) Patch(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrEmptyPatch
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Product", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to patch product: %w", err)
	}
	return &product, nil
}

// Delete removes a product and returns the deleted document.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewNotFound("Product", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return &product, nil
}

// Put inserts a product verbatim, keeping an existing id.
func (r *ProductRepository) Put(ctx context.Context, product *models.Product) (*models.Product, error) {
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to put product: %w", err)
	}
	return product, nil
}

// searchFilter builds the case-insensitive substring match for a query.
// The query is quoted so user input cannot inject regex metacharacters.
func searchFilter(query string) bson.M {
	pattern := fmt.Sprintf("(?i)(%s)", regexp.QuoteMeta(query))
	return bson.M{"name": bson.M{"$regex": pattern}}
}

// searchPipeline builds the aggregation for one page of results with
// genres joined from the tags collection.
func searchPipeline(query string, page int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: searchFilter(query)}},
		{{Key: "$skip", Value: (page - 1) * SearchPageSize}},
		{{Key: "$limit", Value: int64(SearchPageSize)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "tags",
			"localField":   "genres",
			"foreignField": "_id",
			"as":           "genres",
		}}},
		{{Key: "$unset", Value: "genres._id"}},
	}
}

// SearchResult is one product row with genres resolved to tag documents.
type SearchResult struct {
	ID                  primitive.ObjectID         `bson:"_id" json:"_id"`
	Type                string                     `bson:"type" json:"type"`
	Name                string                     `bson:"name" json:"name"`
	Slug                string                     `bson:"slug" json:"slug"`
	RequiredAge         int                        `bson:"required_age" json:"required_age"`
	ShortDescription    string                     `bson:"short_description" json:"short_description"`
	DetailedDescription string                     `bson:"detailed_description" json:"detailed_description"`
	SupportedLanguages  string                     `bson:"supported_languages" json:"supported_languages"`
	Developers          []string                   `bson:"developers" json:"developers"`
	Publishers          []string                   `bson:"publishers" json:"publishers"`
	Platforms           []primitive.ObjectID       `bson:"platforms" json:"platforms"`
	Genres              []bson.M                   `bson:"genres" json:"genres"`
	ReleaseDate         string                     `bson:"release_date" json:"release_date"`
	Media               models.ProductMedia        `bson:"media" json:"media"`
	Requirements        models.ProductRequirements `bson:"requirements" json:"requirements"`
	CreatedAt           time.Time                  `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time                  `bson:"updated_at" json:"updated_at"`
}

// Search runs the paged name search and returns the page plus the total
// number of matching products.
func (r *ProductRepository) Search(ctx context.Context, query string, page int64) ([]SearchResult, int64, error) {
	cursor, err := r.collection.Aggregate(ctx, searchPipeline(query, page))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer cursor.Close(ctx)

	results := []SearchResult{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search results: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, searchFilter(query))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}
	return results, total, nil
}
