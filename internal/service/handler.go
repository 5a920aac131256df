package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BillServiceName is the fully-qualified name of the BillService.
const BillServiceName = "billsplitter.v1.BillService"

// Procedure paths of the BillService RPCs.
const (
	BillServiceGetBillProcedure           = "/billsplitter.v1.BillService/GetBill"
	BillServiceUpdateBillProcedure        = "/billsplitter.v1.BillService/UpdateBill"
	BillServiceAddParticipantProcedure    = "/billsplitter.v1.BillService/AddParticipant"
	BillServiceRemoveParticipantProcedure = "/billsplitter.v1.BillService/RemoveParticipant"
	BillServiceAddExpenseProcedure        = "/billsplitter.v1.BillService/AddExpense"
	BillServiceRemoveExpenseProcedure     = "/billsplitter.v1.BillService/RemoveExpense"
	BillServicePreviewSplitProcedure      = "/billsplitter.v1.BillService/PreviewSplit"
	BillServiceGetResultsProcedure        = "/billsplitter.v1.BillService/GetResults"
	BillServiceGetSummaryProcedure        = "/billsplitter.v1.BillService/GetSummary"
	BillServiceResetBillProcedure         = "/billsplitter.v1.BillService/ResetBill"
)

// NewBillServiceHandler builds an HTTP handler for every BillService RPC. It
// returns the path to mount the handler on.
func NewBillServiceHandler(svc *BillService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSONCodec()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(BillServiceGetBillProcedure, connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...))
	mux.Handle(BillServiceUpdateBillProcedure, connect.NewUnaryHandler(BillServiceUpdateBillProcedure, svc.UpdateBill, opts...))
	mux.Handle(BillServiceAddParticipantProcedure, connect.NewUnaryHandler(BillServiceAddParticipantProcedure, svc.AddParticipant, opts...))
	mux.Handle(BillServiceRemoveParticipantProcedure, connect.NewUnaryHandler(BillServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...))
	mux.Handle(BillServiceAddExpenseProcedure, connect.NewUnaryHandler(BillServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(BillServiceRemoveExpenseProcedure, connect.NewUnaryHandler(BillServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...))
	mux.Handle(BillServicePreviewSplitProcedure, connect.NewUnaryHandler(BillServicePreviewSplitProcedure, svc.PreviewSplit, opts...))
	mux.Handle(BillServiceGetResultsProcedure, connect.NewUnaryHandler(BillServiceGetResultsProcedure, svc.GetResults, opts...))
	mux.Handle(BillServiceGetSummaryProcedure, connect.NewUnaryHandler(BillServiceGetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(BillServiceResetBillProcedure, connect.NewUnaryHandler(BillServiceResetBillProcedure, svc.ResetBill, opts...))

	return "/" + BillServiceName + "/", mux
}

// BillServiceClient calls a BillService over HTTP.
type BillServiceClient struct {
	getBill           *connect.Client[GetBillRequest, GetBillResponse]
	updateBill        *connect.Client[UpdateBillRequest, UpdateBillResponse]
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
	addExpense        *connect.Client[AddExpenseRequest, AddExpenseResponse]
	removeExpense     *connect.Client[RemoveExpenseRequest, RemoveExpenseResponse]
	previewSplit      *connect.Client[PreviewSplitRequest, PreviewSplitResponse]
	getResults        *connect.Client[GetResultsRequest, GetResultsResponse]
	getSummary        *connect.Client[GetSummaryRequest, GetSummaryResponse]
	resetBill         *connect.Client[ResetBillRequest, ResetBillResponse]
}

// NewBillServiceClient creates a client for the BillService at baseURL
// (e.g. "http://localhost:8080").
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSONCodec()}, opts...)

	return &BillServiceClient{
		getBill:           connect.NewClient[GetBillRequest, GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		updateBill:        connect.NewClient[UpdateBillRequest, UpdateBillResponse](httpClient, baseURL+BillServiceUpdateBillProcedure, opts...),
		addParticipant:    connect.NewClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL+BillServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+BillServiceRemoveParticipantProcedure, opts...),
		addExpense:        connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+BillServiceAddExpenseProcedure, opts...),
		removeExpense:     connect.NewClient[RemoveExpenseRequest, RemoveExpenseResponse](httpClient, baseURL+BillServiceRemoveExpenseProcedure, opts...),
		previewSplit:      connect.NewClient[PreviewSplitRequest, PreviewSplitResponse](httpClient, baseURL+BillServicePreviewSplitProcedure, opts...),
		getResults:        connect.NewClient[GetResultsRequest, GetResultsResponse](httpClient, baseURL+BillServiceGetResultsProcedure, opts...),
		getSummary:        connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+BillServiceGetSummaryProcedure, opts...),
		resetBill:         connect.NewClient[ResetBillRequest, ResetBillResponse](httpClient, baseURL+BillServiceResetBillProcedure, opts...),
	}
}

func (c *BillServiceClient) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) UpdateBill(ctx context.Context, req *connect.Request[UpdateBillRequest]) (*connect.Response[UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *BillServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *BillServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *BillServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[RemoveExpenseRequest]) (*connect.Response[RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *BillServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetResults(ctx context.Context, req *connect.Request[GetResultsRequest]) (*connect.Response[GetResultsResponse], error) {
	return c.getResults.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *BillServiceClient) ResetBill(ctx context.Context, req *connect.Request[ResetBillRequest]) (*connect.Response[ResetBillResponse], error) {
	return c.resetBill.CallUnary(ctx, req)
}
