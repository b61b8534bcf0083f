package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserTestService interface {
	GetAllTests(ctx context.Context) ([]dto.TestResponseDTO, error)
	GetTestDetails(ctx context.Context, testID string) (*dto.TestResponseDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
}

func NewUserTestService(testRepo repository.TestRepository) UserTestService {
	return &userTestService{testRepo: testRepo}
}

func (s *userTestService) GetAllTests(ctx context.Context) ([]dto.TestResponseDTO, error) {
	tests, err := s.testRepo.FindAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all tests from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	resp := []dto.TestResponseDTO{}
	if err := copier.Copy(&resp, &tests); err != nil {
		return nil, fmt.Errorf("error preparing tests response: %w", err)
	}
	return resp, nil
}

func (s *userTestService) GetTestDetails(ctx context.Context, testID string) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByID(dbctx.Context{Ctx: ctx}, testID)
	if err != nil {
		return nil, notFoundOr(err, "GetTestDetails", "test %s not found", testID)
	}
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test details response: %w", err)
	}
	return &resp, nil
}
