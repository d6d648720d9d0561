package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	domain "tablebanking/internal/domain/loan"
	"tablebanking/internal/domain/member"
	"tablebanking/internal/domain/settings"
	"tablebanking/internal/domain/uow"
	"tablebanking/internal/ledger"
	"tablebanking/internal/usecase/dashboard"
	"tablebanking/pkg/id"
	"tablebanking/pkg/money"
)

// PoolLockKey guards the read-evaluate-insert sequence of loan approval.
const PoolLockKey = "pool"

// ErrBusy means the pool lock could not be taken in time.
var ErrBusy = errors.New("loan approvals are busy, retry later")

type SettingsResolver interface {
	ResolveWith(ctx context.Context, repo settings.Repository) (ledger.Settings, error)
}

type Usecase struct {
	repos    uow.Repos
	uow      uow.UnitOfWork
	lock     uow.Locker
	settings SettingsResolver
	clock    money.Clock
}

// NewUsecase: repos serve plain reads, tx runs every write.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, lock uow.Locker, s SettingsResolver, clock money.Clock) *Usecase {
	return &Usecase{repos: repos, uow: tx, lock: lock, settings: s, clock: clock}
}

// Create runs the approval guard and inserts the loan as Ongoing. The pool
// lock makes concurrent approvals observe each other's principal.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	unlock, err := u.lock.Lock(ctx, PoolLockKey)
	if err != nil {
		log.Printf("loan create: pool lock: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBusy, err)
	}
	defer unlock()

	today := u.clock.Today()
	issue := in.IssueDate
	if issue.IsZero() {
		issue = today
	}

	var dto *LoanDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := u.settings.ResolveWith(ctx, r.Settings)
		if err != nil {
			return err
		}
		m, err := r.Members.GetByMemberID(ctx, in.MemberID)
		if err != nil {
			return err
		}
		contributions, err := r.Pool.MemberContributions(ctx, in.MemberID)
		if err != nil {
			return err
		}
		hasFee, err := r.Pool.HasRegistrationFee(ctx, in.MemberID)
		if err != nil {
			return err
		}
		snap, err := dashboard.Snapshot(ctx, r, today, s.FixedTerm)
		if err != nil {
			return err
		}

		approval, err := ledger.EvaluateLoanRequest(ledger.LoanRequest{
			MemberID:          in.MemberID,
			Amount:            in.Amount,
			AnnualRatePercent: in.InterestRate,
			IssueDate:         issue,
			DueDate:           in.DueDate,
			Strategy:          in.Strategy,
		}, ledger.MemberContext{
			Status:             m.Status,
			HasRegistrationFee: hasFee,
			TotalContributions: contributions,
		}, snap, s, today)
		if err != nil {
			if rej, ok := ledger.AsRejection(err); ok {
				log.Printf("loan create: member %s rejected: %s", in.MemberID, rej.Reason)
			}
			return err
		}

		l := &domain.Loan{
			LoanID:            id.New(),
			MemberID:          in.MemberID,
			Principal:         approval.Loan.Principal,
			AnnualRatePercent: approval.Loan.AnnualRatePercent,
			Strategy:          approval.Loan.Strategy,
			IssueDate:         approval.Loan.IssueDate,
			DueDate:           approval.Loan.DueDate,
			Status:            approval.Loan.Status,
			ApprovedBy:        in.ApprovedBy,
			StatusUpdatedAt:   time.Now().UTC(),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l, approval.State)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns the loan with its state recomputed as of asOf (today when zero).
func (u *Usecase) Get(ctx context.Context, loanID string, asOf time.Time) (*LoanDTO, error) {
	l, err := u.repos.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	reps, err := u.repos.Repayments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	s, err := u.settings.ResolveWith(ctx, u.repos.Settings)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = u.clock.Today()
	}
	st, err := ledger.ComputeLoanState(l.Ledger(), domain.LedgerRepayments(reps), asOf, s.FixedTerm)
	if err != nil {
		return nil, err
	}
	return toDTO(l, st), nil
}

func (u *Usecase) List(ctx context.Context, f domain.Filter) ([]LoanDTO, error) {
	if f.Status != "" && !ledger.LoanStatus(f.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ledger.ErrValidation, f.Status)
	}
	loans, err := u.repos.Loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	records, err := dashboard.Records(ctx, u.repos.Repayments, loans)
	if err != nil {
		return nil, err
	}
	s, err := u.settings.ResolveWith(ctx, u.repos.Settings)
	if err != nil {
		return nil, err
	}
	today := u.clock.Today()
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		st, err := ledger.ComputeLoanState(records[i].Loan, records[i].Repayments, today, s.FixedTerm)
		if err != nil {
			return nil, fmt.Errorf("loan %s: %w", loans[i].LoanID, err)
		}
		st.Events = nil
		st.Schedule = nil
		out = append(out, *toDTO(&loans[i], st))
	}
	return out, nil
}

// Update edits a loan's terms. The edit is refused when the recorded
// repayments would exceed the recomputed total.
func (u *Usecase) Update(ctx context.Context, loanID string, in UpdateLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		s, err := u.settings.ResolveWith(ctx, r.Settings)
		if err != nil {
			return err
		}
		reps, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}

		edited := *l
		if in.Principal != nil {
			edited.Principal = money.Round(*in.Principal)
		}
		if in.InterestRate != nil {
			edited.AnnualRatePercent = *in.InterestRate
		}
		if in.IssueDate != nil {
			edited.IssueDate = money.DateOf(*in.IssueDate)
		}
		if in.DueDate != nil {
			edited.DueDate = money.DateOf(*in.DueDate)
		}

		st, err := ledger.CheckEdit(l.Ledger(), edited.Ledger(), domain.LedgerRepayments(reps), u.clock.Today(), s.FixedTerm)
		if err != nil {
			return err
		}
		if st.Status != edited.Status {
			edited.Status = st.Status
			edited.StatusUpdatedAt = time.Now().UTC()
		}
		if err := r.Loans.Save(ctx, &edited); err != nil {
			return err
		}
		dto = toDTO(&edited, st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// UpdateStatus applies an admin status change through the state machine.
func (u *Usecase) UpdateStatus(ctx context.Context, loanID string, to ledger.LoanStatus) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		s, err := u.settings.ResolveWith(ctx, r.Settings)
		if err != nil {
			return err
		}
		reps, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		st, err := ledger.ComputeLoanState(l.Ledger(), domain.LedgerRepayments(reps), u.clock.Today(), s.FixedTerm)
		if err != nil {
			return err
		}
		if err := ledger.Transition(l.Status, to, st.IsFullySettled()); err != nil {
			return err
		}
		if l.Status != to {
			l.Status = to
			l.StatusUpdatedAt = time.Now().UTC()
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}
		st.Status = to
		dto = toDTO(l, st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes the loan and its repayments.
func (u *Usecase) Delete(ctx context.Context, loanID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		return r.Loans.Delete(ctx, l)
	})
}

// Schedule is the flat-principal amortization table for an existing loan.
func (u *Usecase) Schedule(ctx context.Context, loanID string) ([]ledger.AmortizationRow, error) {
	l, err := u.repos.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return u.Preview(ctx, l.Principal, l.IssueDate)
}

// Preview computes a schedule without touching any loan.
func (u *Usecase) Preview(ctx context.Context, principal decimal.Decimal, issueDate time.Time) ([]ledger.AmortizationRow, error) {
	s, err := u.settings.ResolveWith(ctx, u.repos.Settings)
	if err != nil {
		return nil, err
	}
	if issueDate.IsZero() {
		issueDate = u.clock.Today()
	}
	return ledger.PreviewSchedule(principal, issueDate, s.FixedTerm)
}

// IsNotFound reports lookups that missed a loan or a member.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, member.ErrNotFound)
}
