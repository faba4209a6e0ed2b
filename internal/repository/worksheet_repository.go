package repository

import (
	"context"

	"worksheet-gateway/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WorksheetRepository struct {
	Col *mongo.Collection
}

func NewWorksheetRepository(db *mongo.Database) *WorksheetRepository {
	return &WorksheetRepository{Col: db.Collection("worksheets")}
}

func (r *WorksheetRepository) Create(ctx context.Context, ws *models.SavedWorksheet) error {
	_, err := r.Col.InsertOne(ctx, ws)
	return err
}

func (r *WorksheetRepository) FindAll(ctx context.Context) ([]models.SavedWorksheet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var sheets []models.SavedWorksheet
	for cur.Next(ctx) {
		var ws models.SavedWorksheet
		if err := cur.Decode(&ws); err != nil {
			return nil, err
		}
		sheets = append(sheets, ws)
	}
	return sheets, nil
}

func (r *WorksheetRepository) FindByID(ctx context.Context, id string) (*models.SavedWorksheet, error) {
	var ws models.SavedWorksheet
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&ws)
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorksheetRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
