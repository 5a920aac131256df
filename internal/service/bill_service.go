// Package service exposes a bill Session over Connect RPC.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplitter/internal/bill"
	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/money"
	"github.com/mmynk/billsplitter/internal/report"
)

// BillService implements the Connect BillService on top of one bill Session.
type BillService struct {
	session *bill.Session
}

// NewBillService creates a new BillService backed by session.
func NewBillService(session *bill.Session) *BillService {
	return &BillService{session: session}
}

var invalidArgumentErrors = []error{
	bill.ErrEmptyName,
	bill.ErrNameTooLong,
	bill.ErrDuplicateName,
	bill.ErrEmptyDescription,
	bill.ErrInvalidAmount,
	bill.ErrNoParticipantsSelected,
	bill.ErrUnknownPayer,
	bill.ErrUnknownParticipant,
	bill.ErrDuplicateSelection,
	bill.ErrInvalidShare,
	bill.ErrSplitMismatch,
	bill.ErrInvalidDate,
}

// connectError maps session errors onto Connect codes.
func connectError(err error) *connect.Error {
	for _, target := range invalidArgumentErrors {
		if errors.Is(err, target) {
			return connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	switch {
	case errors.Is(err, bill.ErrParticipantNotFound), errors.Is(err, bill.ErrExpenseNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, bill.ErrParticipantInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// GetBill returns the current bill.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	slog.Debug("GetBill request received", "bill_key", s.session.Key())

	return connect.NewResponse(&GetBillResponse{
		Bill: billView(s.session.Snapshot()),
	}), nil
}

// UpdateBill changes the title and/or date of the bill.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[UpdateBillRequest]) (*connect.Response[UpdateBillResponse], error) {
	slog.Info("UpdateBill request received",
		"bill_key", s.session.Key(),
		"title_set", req.Msg.Title != nil,
		"date_set", req.Msg.Date != nil,
	)

	if err := s.session.UpdateDetails(ctx, req.Msg.Title, req.Msg.Date); err != nil {
		slog.Error("UpdateBill failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&UpdateBillResponse{
		Bill: billView(s.session.Snapshot()),
	}), nil
}

// AddParticipant adds a participant by name.
func (s *BillService) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	slog.Info("AddParticipant request received", "bill_key", s.session.Key(), "name", req.Msg.Name)

	p, err := s.session.AddParticipant(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("AddParticipant failed", "name", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&AddParticipantResponse{
		Participant: ParticipantView{ID: p.ID, Name: p.Name},
	}), nil
}

// RemoveParticipant removes a participant that no expense references.
func (s *BillService) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	slog.Info("RemoveParticipant request received", "bill_key", s.session.Key(), "participant_id", req.Msg.ParticipantID)

	if err := s.session.RemoveParticipant(ctx, req.Msg.ParticipantID); err != nil {
		slog.Error("RemoveParticipant failed", "participant_id", req.Msg.ParticipantID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&RemoveParticipantResponse{}), nil
}

// AddExpense validates and appends an expense.
func (s *BillService) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"bill_key", s.session.Key(),
		"description", req.Msg.Description,
		"amount", req.Msg.Amount,
		"paid_by", req.Msg.PaidBy,
		"split_equally", req.Msg.SplitEqually,
		"participants_count", len(req.Msg.ParticipantIDs),
	)

	expense, err := s.session.AddExpense(ctx, bill.ExpenseInput{
		Description:    req.Msg.Description,
		Amount:         req.Msg.Amount,
		PaidBy:         req.Msg.PaidBy,
		SplitEqually:   req.Msg.SplitEqually,
		ParticipantIDs: req.Msg.ParticipantIDs,
		CustomAmounts:  req.Msg.CustomAmounts,
	})
	if err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&AddExpenseResponse{
		Expense: expenseView(s.session.Snapshot(), expense),
	}), nil
}

// RemoveExpense deletes an expense.
func (s *BillService) RemoveExpense(ctx context.Context, req *connect.Request[RemoveExpenseRequest]) (*connect.Response[RemoveExpenseResponse], error) {
	slog.Info("RemoveExpense request received", "bill_key", s.session.Key(), "expense_id", req.Msg.ExpenseID)

	if err := s.session.RemoveExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Error("RemoveExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&RemoveExpenseResponse{}), nil
}

// PreviewSplit shows the equal shares and the unallocated custom amount for a
// form that has not been submitted. It never fails on incomplete input.
func (s *BillService) PreviewSplit(ctx context.Context, req *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	snap := s.session.Snapshot()

	shares := []SplitView{}
	if amount, err := money.Parse(req.Msg.Amount); err == nil && amount.IsPositive() {
		for _, split := range calculator.EqualSplits(amount, req.Msg.ParticipantIDs) {
			shares = append(shares, splitView(snap, split))
		}
	}

	return connect.NewResponse(&PreviewSplitResponse{
		EqualShares: shares,
		Remaining:   money.Format(bill.RemainingAmount(req.Msg.Amount, req.Msg.CustomAmounts)),
	}), nil
}

// GetResults returns balances and the settlement plan.
func (s *BillService) GetResults(ctx context.Context, req *connect.Request[GetResultsRequest]) (*connect.Response[GetResultsResponse], error) {
	snap := s.session.Snapshot()
	slog.Debug("GetResults request received",
		"bill_key", s.session.Key(),
		"participants", len(snap.Participants),
		"expenses", len(snap.Expenses),
	)

	if len(snap.Participants) == 0 || len(snap.Expenses) == 0 {
		return connect.NewResponse(&GetResultsResponse{
			Empty:       true,
			Message:     report.EmptyMessage,
			Total:       money.Format(calculator.TotalExpenses(snap.Expenses)),
			Balances:    []BalanceView{},
			Settlements: []SettlementView{},
		}), nil
	}

	sheet, err := calculator.CalculateBalances(snap.Participants, snap.Expenses)
	if err != nil {
		slog.Error("GetResults failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	settlements := calculator.PlanSettlements(sheet)

	resp := &GetResultsResponse{
		Total:       money.Format(calculator.TotalExpenses(snap.Expenses)),
		Balances:    make([]BalanceView, 0, sheet.Len()),
		Settlements: make([]SettlementView, 0, len(settlements)),
	}
	for _, b := range sheet.Entries() {
		resp.Balances = append(resp.Balances, BalanceView{
			ParticipantID: b.ParticipantID,
			Name:          snap.ParticipantName(b.ParticipantID),
			NetBalance:    money.Format(b.NetBalance),
			TotalPaid:     money.Format(b.TotalPaid),
			TotalOwed:     money.Format(b.TotalOwed),
			Status:        report.BalanceStatus(b.NetBalance),
		})
	}
	for _, st := range settlements {
		resp.Settlements = append(resp.Settlements, SettlementView{
			From:     st.From,
			FromName: snap.ParticipantName(st.From),
			To:       st.To,
			ToName:   snap.ParticipantName(st.To),
			Amount:   money.Format(st.Amount),
			Text:     report.SettlementLine(snap, st),
		})
	}
	if len(settlements) == 0 {
		resp.Message = report.SettledMessage
	}

	slog.Debug("GetResults successful", "settlements", len(settlements))
	return connect.NewResponse(resp), nil
}

// GetSummary returns the total and who paid and owes what share of it.
func (s *BillService) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	snap := s.session.Snapshot()

	return connect.NewResponse(&GetSummaryResponse{
		Total:  money.Format(calculator.TotalExpenses(snap.Expenses)),
		PaidBy: shareViews(calculator.PaidBy(snap.Participants, snap.Expenses)),
		OwedBy: shareViews(calculator.OwedBy(snap.Participants, snap.Expenses)),
	}), nil
}

// ResetBill clears the bill. Reset is false when there was nothing to clear.
func (s *BillService) ResetBill(ctx context.Context, req *connect.Request[ResetBillRequest]) (*connect.Response[ResetBillResponse], error) {
	slog.Info("ResetBill request received", "bill_key", s.session.Key())

	reset, err := s.session.Reset(ctx)
	if err != nil {
		slog.Error("ResetBill failed", "error", err)
		return nil, connectError(err)
	}
	if !reset {
		slog.Info("Nothing to reset", "bill_key", s.session.Key())
	}

	return connect.NewResponse(&ResetBillResponse{
		Reset: reset,
		Bill:  billView(s.session.Snapshot()),
	}), nil
}

func billView(b *models.BillData) BillView {
	view := BillView{
		Title:        b.Title,
		Date:         b.Date,
		Participants: make([]ParticipantView, len(b.Participants)),
		Expenses:     make([]ExpenseView, len(b.Expenses)),
	}
	for i, p := range b.Participants {
		view.Participants[i] = ParticipantView{ID: p.ID, Name: p.Name}
	}
	for i, e := range b.Expenses {
		view.Expenses[i] = expenseView(b, e)
	}
	return view
}

func expenseView(b *models.BillData, e models.Expense) ExpenseView {
	view := ExpenseView{
		ID:          e.ID,
		Description: e.Description,
		Amount:      money.Format(e.Amount),
		PaidBy:      e.PaidBy,
		Splits:      make([]SplitView, len(e.Splits)),
	}
	if e.PaidBy != "" {
		view.PaidByName = b.ParticipantName(e.PaidBy)
	}
	for i, split := range e.Splits {
		view.Splits[i] = splitView(b, split)
	}
	return view
}

func splitView(b *models.BillData, split models.ExpenseSplit) SplitView {
	return SplitView{
		ParticipantID:   split.ParticipantID,
		ParticipantName: b.ParticipantName(split.ParticipantID),
		Amount:          money.Format(split.Amount),
		IsEqual:         split.IsEqual,
	}
}

func shareViews(shares []calculator.Share) []ShareView {
	out := make([]ShareView, len(shares))
	for i, sh := range shares {
		out[i] = ShareView{
			ParticipantID: sh.ParticipantID,
			Name:          sh.Name,
			Amount:        money.Format(sh.Amount),
			Percent:       sh.Percent.StringFixed(1),
		}
	}
	return out
}
