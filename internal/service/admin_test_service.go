package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/schooltest/internal/apperr"
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/lshigami/schooltest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTestService interface {
	CreateTest(ctx context.Context, p auth.Principal, req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(ctx context.Context, p auth.Principal, req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	const op = "CreateTest"
	if err := requireStaff(p, op); err != nil {
		return nil, err
	}
	test := model.Test{
		ID:        strings.TrimSpace(req.ID),
		Type:      strings.ToLower(strings.TrimSpace(req.Type)),
		Name:      strings.TrimSpace(req.Name),
		TeacherID: p.SubjectID,
		Subject:   req.Subject,
		Grade:     req.Grade,
		Class:     req.Class,
	}
	if test.Type == "" || test.Name == "" {
		return nil, apperr.New(apperr.KindInvalidArgument, op, "type and name are required")
	}
	if test.ID == "" {
		test.ID = uuid.NewString()
	}

	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.testRepo.FindByID(dbc, test.ID); err == nil {
		return nil, apperr.New(apperr.KindInvalidArgument, op, "test %s already exists", test.ID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.testRepo.Create(dbc, &test); err != nil {
		log.Error().Err(err).Str("testID", test.ID).Msg("Failed to create test in repository")
		return nil, fmt.Errorf("error creating test: %w", err)
	}
	log.Info().Str("testID", test.ID).Str("type", test.Type).Msg("Test registered")

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, &test); err != nil {
		return nil, fmt.Errorf("error preparing test response: %w", err)
	}
	return &resp, nil
}
