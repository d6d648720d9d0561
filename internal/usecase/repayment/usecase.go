package repayment

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "tablebanking/internal/domain/loan"
	"tablebanking/internal/domain/settings"
	"tablebanking/internal/domain/uow"
	"tablebanking/internal/ledger"
	"tablebanking/pkg/id"
	"tablebanking/pkg/money"
)

type SettingsResolver interface {
	ResolveWith(ctx context.Context, repo settings.Repository) (ledger.Settings, error)
}

type Usecase struct {
	repos    uow.Repos
	uow      uow.UnitOfWork
	settings SettingsResolver
	clock    money.Clock
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, s SettingsResolver, clock money.Clock) *Usecase {
	return &Usecase{repos: repos, uow: tx, settings: s, clock: clock}
}

// Record stores a repayment under the loan's row lock and moves an Ongoing
// loan to Completed once its balance reaches zero.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*RecordedDTO, error) {
	today := u.clock.Today()
	paidOn := in.PaymentDate
	if paidOn.IsZero() {
		paidOn = today
	}
	paidOn = money.DateOf(paidOn)
	if paidOn.After(today) {
		return nil, fmt.Errorf("%w: payment date %s is in the future", ledger.ErrValidation, money.FormatDate(paidOn))
	}

	var dto *RecordedDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		switch l.Status {
		case ledger.StatusOngoing, ledger.StatusDefaulted:
		default:
			return fmt.Errorf("%w: cannot record a repayment on a %s loan", ledger.ErrInvalidTransition, l.Status)
		}
		s, err := u.settings.ResolveWith(ctx, r.Settings)
		if err != nil {
			return err
		}
		rows, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		existing := domain.LedgerRepayments(rows)
		next := ledger.Repayment{Amount: money.Round(in.Amount), PaymentDate: paidOn}
		if err := ledger.CheckRepayment(l.Ledger(), existing, next, s); err != nil {
			if rej, ok := ledger.AsRejection(err); ok {
				log.Printf("repayment: loan %s rejected: %s", l.LoanID, rej.Reason)
			}
			return err
		}

		rep := &domain.Repayment{
			RepaymentID: id.New(),
			LoanID:      l.ID,
			AmountPaid:  next.Amount,
			PaymentDate: paidOn,
			RecordedBy:  in.RecordedBy,
		}
		if err := r.Repayments.Create(ctx, rep); err != nil {
			return err
		}

		st, err := ledger.ComputeLoanState(l.Ledger(), append(existing, next), today, s.FixedTerm)
		if err != nil {
			return err
		}
		if st.Status != l.Status {
			l.Status = st.Status
			l.StatusUpdatedAt = time.Now().UTC()
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}
		dto = &RecordedDTO{Repayment: toDTO(l.LoanID, rep), LoanState: st}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// History lists a loan's repayments with the replayed state.
func (u *Usecase) History(ctx context.Context, loanID string) (*HistoryDTO, error) {
	l, err := u.repos.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	rows, err := u.repos.Repayments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	s, err := u.settings.ResolveWith(ctx, u.repos.Settings)
	if err != nil {
		return nil, err
	}
	st, err := ledger.ComputeLoanState(l.Ledger(), domain.LedgerRepayments(rows), u.clock.Today(), s.FixedTerm)
	if err != nil {
		return nil, err
	}
	out := &HistoryDTO{LoanID: l.LoanID, Repayments: make([]RepaymentDTO, 0, len(rows)), LoanState: st}
	for i := range rows {
		out.Repayments = append(out.Repayments, toDTO(l.LoanID, &rows[i]))
	}
	return out, nil
}

func toDTO(loanID string, r *domain.Repayment) RepaymentDTO {
	return RepaymentDTO{
		RepaymentID: r.RepaymentID,
		LoanID:      loanID,
		AmountPaid:  r.AmountPaid,
		PaymentDate: money.FormatDate(r.PaymentDate),
		RecordedBy:  r.RecordedBy,
		CreatedAt:   r.CreatedAt,
	}
}
