package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/dto"
	"github.com/saralbooks/bank_recon_app/internal/utils/narration"
)

// compositeNarrationLen is how much narration goes into the fallback dedup
// key for records without a usable identifier.
const compositeNarrationLen = 24

// reconService implements ReconSvcFacade. All write paths funnel through
// persist, which re-asserts the immutable ingestion fields so no
// transition (or copy bug) can drift them.
type reconService struct {
	BaseService
	txnRepo  portsrepo.TransactionRepository
	learning portssvc.LearningSvcFacade

	sessions *editSessionTracker
	flusher  *referenceFlusher

	// snapshot is the last good full read of the store, served when the
	// store is unreachable. Overwrites are deferred while edits are open.
	snapMu   sync.RWMutex
	snapshot []domain.Transaction
}

// ReconOption is a functional option for configuring the recon service.
type ReconOption func(*reconService)

// WithLearningService attaches the training engine invoked on party-name
// confirmations.
func WithLearningService(learning portssvc.LearningSvcFacade) ReconOption {
	return func(s *reconService) { s.learning = learning }
}

// WithReferenceQuietPeriod overrides the debounce quiet period for
// buffered external-reference edits.
func WithReferenceQuietPeriod(quiet time.Duration) ReconOption {
	return func(s *reconService) {
		s.flusher = newReferenceFlusher(quiet, s.flushReference)
	}
}

// NewReconService creates the reconciliation state machine with the
// provided options.
func NewReconService(txnRepo portsrepo.TransactionRepository, options ...ReconOption) portssvc.ReconSvcFacade {
	svc := &reconService{
		txnRepo:  txnRepo,
		sessions: newEditSessionTracker(),
	}
	svc.flusher = newReferenceFlusher(DefaultQuietPeriod, svc.flushReference)
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconSvcFacade = (*reconService)(nil)

// --- ingestion ---

func (s *reconService) IngestBatch(ctx context.Context, records []dto.IngestRecord) ([]domain.Transaction, error) {
	if len(records) == 0 {
		return []domain.Transaction{}, nil
	}

	existing, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read store before ingestion")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	existingIDs := make(map[string]struct{}, len(existing))
	existingKeys := make(map[string]struct{}, len(existing))
	for i := range existing {
		existingIDs[existing[i].TransactionID] = struct{}{}
		existingKeys[compositeKey(existing[i].Date, existing[i].Amount.String(), existing[i].Narration, existing[i].BankReference)] = struct{}{}
	}

	now := time.Now().UTC()
	var txns []domain.Transaction
	seen := make(map[string]struct{})
	skipped := 0
	for _, rec := range records {
		date, err := time.Parse(dto.IngestDateLayout, strings.TrimSpace(rec.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", apperrors.ErrValidation, rec.Date)
		}
		if rec.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive, kind carries the sign", apperrors.ErrValidation)
		}

		// Dedup by primary identifier first; records without one fall
		// back to a composite key. First occurrence wins.
		id := strings.TrimSpace(rec.TransactionID)
		key := id
		if key == "" {
			key = compositeKey(date, rec.Amount.String(), rec.Narration, rec.BankReference)
		}
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}

		if id != "" {
			if _, stored := existingIDs[id]; stored {
				skipped++
				continue
			}
		} else {
			if _, stored := existingKeys[key]; stored {
				skipped++
				continue
			}
			id = uuid.NewString()
		}

		txns = append(txns, domain.Transaction{
			TransactionID:         id,
			Date:                  date,
			Amount:                rec.Amount,
			Kind:                  domain.TransactionKind(strings.ToUpper(rec.Kind)),
			Narration:             rec.Narration,
			BankReference:         strings.TrimSpace(rec.BankReference),
			AddedToExternalSystem: false,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	}

	if len(txns) > 0 {
		if err := s.txnRepo.SaveTransactions(ctx, txns); err != nil {
			s.LogError(ctx, err, "Failed to save ingested batch", slog.Int("count", len(txns)))
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
		}
	}
	s.LogInfo(ctx, "Batch ingested",
		slog.Int("received", len(records)),
		slog.Int("created", len(txns)),
		slog.Int("skipped", skipped))
	return txns, nil
}

func compositeKey(date time.Time, amount, narrationText, bankReference string) string {
	n := narration.Normalize(narrationText)
	if len(n) > compositeNarrationLen {
		n = n[:compositeNarrationLen]
	}
	return strings.Join([]string{date.Format(dto.IngestDateLayout), amount, n, strings.TrimSpace(bankReference)}, "|")
}

// dedupOnLoad drops later duplicates from a loaded batch, keyed by id with
// the composite fallback. First occurrence wins.
func dedupOnLoad(txns []domain.Transaction) []domain.Transaction {
	seen := make(map[string]struct{}, len(txns))
	out := make([]domain.Transaction, 0, len(txns))
	for i := range txns {
		key := strings.TrimSpace(txns[i].TransactionID)
		if key == "" {
			key = compositeKey(txns[i].Date, txns[i].Amount.String(), txns[i].Narration, txns[i].BankReference)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, txns[i])
	}
	return out
}

// --- reads ---

func (s *reconService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		// Retryable: serve the last good snapshot when there is one.
		s.snapMu.RLock()
		snap := s.snapshot
		s.snapMu.RUnlock()
		if len(snap) > 0 {
			s.LogWarn(ctx, "Record store unreachable, serving snapshot",
				slog.String("error", err.Error()),
				slog.Int("count", len(snap)))
			return snap, nil
		}
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	deduped := dedupOnLoad(txns)
	// A fresh full read doubles as a refresh, but never mid-edit.
	s.sessions.DeferRefresh(func() { s.storeSnapshot(deduped) })
	return deduped, nil
}

func (s *reconService) GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, txnID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", txnID))
		}
		return nil, err
	}
	return txn, nil
}

// Refresh re-reads the full transaction set into the snapshot. While any
// edit session is open the reload is queued, not dropped, and runs when
// the last session ends.
func (s *reconService) Refresh(ctx context.Context) {
	s.sessions.DeferRefresh(func() {
		txns, err := s.txnRepo.ListTransactions(ctx)
		if err != nil {
			s.LogWarn(ctx, "Background refresh failed", slog.String("error", err.Error()))
			return
		}
		s.storeSnapshot(dedupOnLoad(txns))
	})
}

func (s *reconService) storeSnapshot(txns []domain.Transaction) {
	s.snapMu.Lock()
	s.snapshot = txns
	s.snapMu.Unlock()
}

// --- transitions ---

// persist writes the mutable fields of updated, re-asserting every
// immutable ingestion field from orig so no transition can drift them.
// Whenever the write would land the transaction in the Completed state
// under a new reference, the duplicate-reference guard re-runs against the
// authoritative store first.
func (s *reconService) persist(ctx context.Context, orig domain.Transaction, updated domain.Transaction) (*domain.Transaction, error) {
	updated.TransactionID = orig.TransactionID
	updated.Date = orig.Date
	updated.Amount = orig.Amount
	updated.Kind = orig.Kind
	updated.Narration = orig.Narration
	updated.BankReference = orig.BankReference
	updated.CreatedAt = orig.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if updated.IsCompleted() &&
		(!orig.IsCompleted() || strings.TrimSpace(updated.ExternalReference) != strings.TrimSpace(orig.ExternalReference)) {
		if err := s.checkReferenceConflict(ctx, orig.TransactionID, updated.ExternalReference); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.UpdateTransaction(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to persist transaction",
			slog.String("transaction_id", orig.TransactionID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return &updated, nil
}

// checkReferenceConflict scans the authoritative store, not a local cache:
// two sessions racing on the same reference must see each other's
// committed state.
func (s *reconService) checkReferenceConflict(ctx context.Context, excludeTxnID, reference string) error {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil
	}
	other, err := s.txnRepo.FindByExternalReference(ctx, ref, excludeTxnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	if other == nil {
		return nil
	}
	return &apperrors.DuplicateReferenceError{
		Reference: ref,
		Conflict: domain.ReferenceConflict{
			TransactionID: other.TransactionID,
			Date:          other.Date,
			Amount:        other.Amount,
			PartyName:     other.PartyName,
		},
	}
}

func (s *reconService) Confirm(ctx context.Context, txnID, externalReference string) (*domain.Transaction, error) {
	ref := strings.TrimSpace(externalReference)
	if ref == "" {
		return nil, fmt.Errorf("%w: external reference is required to confirm", apperrors.ErrValidation)
	}

	txn, err := s.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(txn.PartyName) == "" {
		return nil, fmt.Errorf("%w: party name is required to confirm", apperrors.ErrValidation)
	}

	updated := *txn
	updated.AddedToExternalSystem = true
	updated.ExternalReference = ref
	updated.Hold = false

	saved, err := s.persist(ctx, *txn, updated)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Transaction confirmed",
		slog.String("transaction_id", txnID),
		slog.String("external_reference", ref))
	return saved, nil
}

func (s *reconService) Cancel(ctx context.Context, txnID string) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}

	updated := *txn
	updated.AddedToExternalSystem = false
	updated.ExternalReference = ""

	saved, err := s.persist(ctx, *txn, updated)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Transaction confirmation cancelled", slog.String("transaction_id", txnID))
	return saved, nil
}

func (s *reconService) SetHold(ctx context.Context, txnID string, hold bool) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}

	updated := *txn
	updated.Hold = hold
	return s.persist(ctx, *txn, updated)
}

func (s *reconService) SetSelfTransfer(ctx context.Context, txnID string, selfTransfer bool) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}

	updated := *txn
	updated.SelfTransfer = selfTransfer
	return s.persist(ctx, *txn, updated)
}

func (s *reconService) UpdatePartyName(ctx context.Context, txnID, partyName string) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(partyName)
	previous := txn.PartyName

	updated := *txn
	updated.PartyName = name

	saved, err := s.persist(ctx, *txn, updated)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: a learning failure never rolls back the edit.
	if s.learning != nil && name != "" {
		if lerr := s.learning.Learn(ctx, *saved, name, previous); lerr != nil {
			s.LogWarn(ctx, "Learning pass finished with failures",
				slog.String("transaction_id", txnID),
				slog.String("error", lerr.Error()))
		}
	}
	return saved, nil
}

func (s *reconService) UpdateExternalReference(ctx context.Context, txnID, reference string) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}

	updated := *txn
	updated.ExternalReference = strings.TrimSpace(reference)
	return s.persist(ctx, *txn, updated)
}

// QueueExternalReference buffers a free-text reference edit; the flusher
// persists the final value after the quiet period.
func (s *reconService) QueueExternalReference(txnID, reference string) {
	s.flusher.Queue(txnID, reference)
}

// flushReference is the flusher callback; it runs outside any request, so
// failures only log.
func (s *reconService) flushReference(ctx context.Context, txnID, reference string) error {
	_, err := s.UpdateExternalReference(ctx, txnID, reference)
	if err != nil {
		s.LogWarn(ctx, "Debounced reference flush failed, will retry",
			slog.String("transaction_id", txnID),
			slog.String("error", err.Error()))
	}
	return err
}

func (s *reconService) BeginEdit(txnID string) { s.sessions.Begin(txnID) }
func (s *reconService) EndEdit(txnID string)   { s.sessions.End(txnID) }
