package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/core/services"
)

type DirectoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDirectoryRepository
	service  portssvc.DirectorySvcFacade
	ctx      context.Context
}

func (s *DirectoryServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockDirectoryRepository)
	s.service = services.NewDirectoryService(s.mockRepo, 0)
	s.ctx = context.Background()
}

func (s *DirectoryServiceTestSuite) TestMatchDirectory_RanksByProportion() {
	s.mockRepo.On("ListPartyNames", s.ctx).Return([]string{
		"Acme Distributors",
		"Mercure Medi Surge",
		"Surge Protection Supplies",
	}, nil).Once()

	matches, err := s.service.MatchDirectory(s.ctx, "NEFT/DR/HDFC0001234/MERCURE MEDI SURGE/N12345678", 3)

	s.Require().NoError(err)
	s.Require().NotEmpty(matches)
	// All three of Mercure's significant tokens appear; only one of the
	// supplies entry's three does.
	s.Equal("Mercure Medi Surge", matches[0])
	s.NotContains(matches, "Acme Distributors")
}

func (s *DirectoryServiceTestSuite) TestMatchDirectory_DirectoryOrderBreaksTies() {
	s.mockRepo.On("ListPartyNames", s.ctx).Return([]string{
		"Ravi Traders",
		"Ravi Stores",
	}, nil).Once()

	matches, err := s.service.MatchDirectory(s.ctx, "IMPS 4521 from ravi 324", 3)

	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal("Ravi Traders", matches[0])
}

func (s *DirectoryServiceTestSuite) TestMatchDirectory_MaxResults() {
	s.mockRepo.On("ListPartyNames", s.ctx).Return([]string{
		"Alpha Beta One", "Alpha Beta Two", "Alpha Beta Three", "Alpha Beta Four",
	}, nil).Once()

	matches, err := s.service.MatchDirectory(s.ctx, "payment to alpha beta", 2)

	s.Require().NoError(err)
	s.Len(matches, 2)
}

func (s *DirectoryServiceTestSuite) TestMatchDirectory_CachesAcrossCalls() {
	s.mockRepo.On("ListPartyNames", s.ctx).Return([]string{"Mercure Medi Surge"}, nil).Once()

	_, err := s.service.MatchDirectory(s.ctx, "mercure payment", 3)
	s.Require().NoError(err)
	_, err = s.service.MatchDirectory(s.ctx, "another mercure payment", 3)
	s.Require().NoError(err)

	s.mockRepo.AssertNumberOfCalls(s.T(), "ListPartyNames", 1)
}

func (s *DirectoryServiceTestSuite) TestMatchDirectory_ServesStaleOnRefreshFailure() {
	svc := services.NewDirectoryService(s.mockRepo, 1) // 1ns TTL: always stale
	s.mockRepo.On("ListPartyNames", s.ctx).Return([]string{"Mercure Medi Surge"}, nil).Once()
	s.mockRepo.On("ListPartyNames", s.ctx).Return(nil, errors.New("connection refused")).Once()

	first, err := svc.MatchDirectory(s.ctx, "mercure medi surge", 3)
	s.Require().NoError(err)
	s.Require().Len(first, 1)

	second, err := svc.MatchDirectory(s.ctx, "mercure medi surge", 3)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *DirectoryServiceTestSuite) TestMatchDirectory_FailsWithNothingCached() {
	s.mockRepo.On("ListPartyNames", s.ctx).Return(nil, errors.New("connection refused")).Once()

	_, err := s.service.MatchDirectory(s.ctx, "mercure", 3)

	s.Require().Error(err)
}

func (s *DirectoryServiceTestSuite) TestAddParty_DuplicateName() {
	s.mockRepo.On("ListParties", s.ctx).Return([]domain.Party{
		{PartyID: "p1", Name: "Mercure Medi Surge"},
	}, nil).Once()

	_, err := s.service.AddParty(s.ctx, "mercure medi surge")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockRepo.AssertNotCalled(s.T(), "SaveParty", mock.Anything, mock.Anything)
}

func (s *DirectoryServiceTestSuite) TestAddParty_InvalidatesCache() {
	s.mockRepo.On("ListPartyNames", s.ctx).Return([]string{}, nil).Once()
	_, err := s.service.MatchDirectory(s.ctx, "mercure", 3)
	s.Require().NoError(err)

	s.mockRepo.On("ListParties", s.ctx).Return([]domain.Party{}, nil).Once()
	s.mockRepo.On("SaveParty", s.ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == "Mercure Medi Surge" && p.IsActive
	})).Return(nil).Once()

	party, err := s.service.AddParty(s.ctx, " Mercure Medi Surge ")
	s.Require().NoError(err)
	s.NotEmpty(party.PartyID)

	// The next match must re-read the directory, not serve the stale
	// (empty) cached list.
	s.mockRepo.On("ListPartyNames", s.ctx).Return([]string{"Mercure Medi Surge"}, nil).Once()
	matches, err := s.service.MatchDirectory(s.ctx, "mercure medi surge payment", 3)
	s.Require().NoError(err)
	s.Equal([]string{"Mercure Medi Surge"}, matches)
}

func TestDirectoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DirectoryServiceTestSuite))
}
