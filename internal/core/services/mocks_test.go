package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByExternalReference(ctx context.Context, reference string, excludeTxnID string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference, excludeTxnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockMappingRepository is a mock type for the MappingRepository interface
type MockMappingRepository struct {
	mock.Mock
}

func (m *MockMappingRepository) UpsertMapping(ctx context.Context, mapping domain.NameMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockMappingRepository) FindMappingByPattern(ctx context.Context, pattern string) (*domain.NameMapping, error) {
	args := m.Called(ctx, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NameMapping), args.Error(1)
}

func (m *MockMappingRepository) ListMappings(ctx context.Context) ([]domain.NameMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NameMapping), args.Error(1)
}

// MockDirectoryRepository is a mock type for the DirectoryRepository interface
type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) ListPartyNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectoryRepository) ListParties(ctx context.Context) ([]domain.Party, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockDirectoryRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

// MockLearningSvc is a mock type for the LearningSvcFacade interface
type MockLearningSvc struct {
	mock.Mock
}

func (m *MockLearningSvc) Learn(ctx context.Context, txn domain.Transaction, confirmedName, previousName string) error {
	args := m.Called(ctx, txn, confirmedName, previousName)
	return args.Error(0)
}

// MockMappingSvc is a mock type for the MappingSvcFacade interface
type MockMappingSvc struct {
	mock.Mock
}

func (m *MockMappingSvc) Resolve(ctx context.Context, candidate string) (string, bool, error) {
	args := m.Called(ctx, candidate)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockMappingSvc) ListMappings(ctx context.Context) ([]domain.NameMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NameMapping), args.Error(1)
}

// MockDirectorySvc is a mock type for the DirectorySvcFacade interface
type MockDirectorySvc struct {
	mock.Mock
}

func (m *MockDirectorySvc) MatchDirectory(ctx context.Context, narrationText string, maxResults int) ([]string, error) {
	args := m.Called(ctx, narrationText, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectorySvc) ListParties(ctx context.Context) ([]domain.Party, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockDirectorySvc) AddParty(ctx context.Context, name string) (*domain.Party, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
