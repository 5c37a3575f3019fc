package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/core/services"
)

type LearningServiceTestSuite struct {
	suite.Suite
	mockRepo *MockMappingRepository
	service  portssvc.LearningSvcFacade
	ctx      context.Context
}

func (s *LearningServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockMappingRepository)
	s.service = services.NewLearningService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *LearningServiceTestSuite) txn() domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn-1",
		Narration:     "NEFT/DR/HDFC0001234/MERCURE MEDI SURGE/N12345678",
	}
}

func (s *LearningServiceTestSuite) TestLearn_InsertsNewPatterns() {
	s.mockRepo.On("FindMappingByPattern", s.ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)

	var inserted []domain.NameMapping
	s.mockRepo.On("UpsertMapping", s.ctx, mock.Anything).Run(func(args mock.Arguments) {
		inserted = append(inserted, args.Get(1).(domain.NameMapping))
	}).Return(nil)

	err := s.service.Learn(s.ctx, s.txn(), "Mercure Medi Surge Pvt Ltd", "")

	s.Require().NoError(err)
	s.Require().NotEmpty(inserted)
	patterns := make(map[string]bool)
	for _, m := range inserted {
		patterns[m.OriginalPattern] = true
		s.Equal("Mercure Medi Surge Pvt Ltd", m.CorrectedName)
		s.Equal(domain.MinConfidence, m.Confidence)
		s.NotEmpty(m.MappingID)
	}
	s.True(patterns["mercure medi surge"], "transfer-template extraction must be learned")
}

func (s *LearningServiceTestSuite) TestLearn_BumpsExistingConfidence() {
	existing := &domain.NameMapping{
		MappingID:       "m1",
		OriginalPattern: "mercure medi surge",
		CorrectedName:   "Mercure Medi Surge Pvt Ltd",
		Confidence:      3,
		LastUsedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	s.mockRepo.On("FindMappingByPattern", s.ctx, "mercure medi surge").Return(existing, nil)
	s.mockRepo.On("FindMappingByPattern", s.ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)

	var bumped *domain.NameMapping
	s.mockRepo.On("UpsertMapping", s.ctx, mock.MatchedBy(func(m domain.NameMapping) bool {
		return m.MappingID == "m1"
	})).Run(func(args mock.Arguments) {
		m := args.Get(1).(domain.NameMapping)
		bumped = &m
	}).Return(nil)
	s.mockRepo.On("UpsertMapping", s.ctx, mock.Anything).Return(nil)

	err := s.service.Learn(s.ctx, s.txn(), "Mercure Medi Surge Pvt Ltd", "")

	s.Require().NoError(err)
	s.Require().NotNil(bumped)
	s.Equal(4, bumped.Confidence)
	s.True(bumped.LastUsedAt.After(existing.CreatedAt))
}

func (s *LearningServiceTestSuite) TestLearn_ConfidenceClampedAtMax() {
	existing := &domain.NameMapping{
		MappingID:       "m1",
		OriginalPattern: "mercure medi surge",
		CorrectedName:   "Mercure Medi Surge Pvt Ltd",
		Confidence:      domain.MaxConfidence,
	}
	s.mockRepo.On("FindMappingByPattern", s.ctx, "mercure medi surge").Return(existing, nil)
	s.mockRepo.On("FindMappingByPattern", s.ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)
	s.mockRepo.On("UpsertMapping", s.ctx, mock.MatchedBy(func(m domain.NameMapping) bool {
		return m.MappingID == "m1" && m.Confidence == domain.MaxConfidence
	})).Return(nil)
	s.mockRepo.On("UpsertMapping", s.ctx, mock.Anything).Return(nil)

	err := s.service.Learn(s.ctx, s.txn(), "Mercure Medi Surge Pvt Ltd", "")

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *LearningServiceTestSuite) TestLearn_CorrectionMapsOldLabel() {
	s.mockRepo.On("FindMappingByPattern", s.ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)

	oldLabelLearned := false
	s.mockRepo.On("UpsertMapping", s.ctx, mock.Anything).Run(func(args mock.Arguments) {
		m := args.Get(1).(domain.NameMapping)
		if m.OriginalPattern == "mercure medical" {
			oldLabelLearned = true
			s.Equal("Mercure Medi Surge Pvt Ltd", m.CorrectedName)
		}
	}).Return(nil)

	err := s.service.Learn(s.ctx, s.txn(), "Mercure Medi Surge Pvt Ltd", "Mercure Medical")

	s.Require().NoError(err)
	s.True(oldLabelLearned, "the previous label must map to the corrected name")
}

func (s *LearningServiceTestSuite) TestLearn_BlankNameIsNoOp() {
	err := s.service.Learn(s.ctx, s.txn(), "   ", "Old Name")

	s.Require().NoError(err)
	s.mockRepo.AssertNotCalled(s.T(), "UpsertMapping", mock.Anything, mock.Anything)
}

func (s *LearningServiceTestSuite) TestLearn_SameNameIsNoOp() {
	err := s.service.Learn(s.ctx, s.txn(), "Mercure Medi Surge", "mercure  medi surge")

	s.Require().NoError(err)
	s.mockRepo.AssertNotCalled(s.T(), "UpsertMapping", mock.Anything, mock.Anything)
}

func (s *LearningServiceTestSuite) TestLearn_FailuresIsolatedPerPattern() {
	s.mockRepo.On("FindMappingByPattern", s.ctx, mock.Anything).Return(nil, apperrors.ErrNotFound)

	succeeded := 0
	s.mockRepo.On("UpsertMapping", s.ctx, mock.Anything).Return(errors.New("write failed")).Once()
	s.mockRepo.On("UpsertMapping", s.ctx, mock.Anything).Run(func(mock.Arguments) {
		succeeded++
	}).Return(nil)

	err := s.service.Learn(s.ctx, s.txn(), "Mercure Medi Surge Pvt Ltd", "")

	s.Require().Error(err, "informational error reports the partial failure")
	s.Positive(succeeded, "remaining patterns must still be written")
}

func TestLearningServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LearningServiceTestSuite))
}
