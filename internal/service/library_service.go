package service

import (
	"context"
	"time"

	"worksheet-gateway/internal/models"
	"worksheet-gateway/internal/repository"

	"github.com/google/uuid"
)

// LibraryService stores finished worksheets so they can be reopened later.
type LibraryService struct {
	Repo *repository.WorksheetRepository
}

func NewLibraryService(repo *repository.WorksheetRepository) *LibraryService {
	return &LibraryService{Repo: repo}
}

func (s *LibraryService) SaveWorksheet(ctx context.Context, ws *models.SavedWorksheet) error {
	if ws.ID == "" {
		ws.ID = uuid.NewString()
	}
	ws.CreatedAt = time.Now().UTC()
	return s.Repo.Create(ctx, ws)
}

func (s *LibraryService) ListWorksheets(ctx context.Context) ([]models.SavedWorksheet, error) {
	return s.Repo.FindAll(ctx)
}

func (s *LibraryService) GetWorksheet(ctx context.Context, id string) (*models.SavedWorksheet, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *LibraryService) DeleteWorksheet(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
