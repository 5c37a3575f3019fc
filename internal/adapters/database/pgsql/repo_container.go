package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the repository set backed by one pgx pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewPgxTransactionRepository(pool),
		MappingRepo:     NewPgxMappingRepository(pool),
		DirectoryRepo:   NewPgxPartyRepository(pool),
	}
}
