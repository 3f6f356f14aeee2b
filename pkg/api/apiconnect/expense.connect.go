package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/pkg/api"
)

const ExpenseServiceName = Package + ".ExpenseService"

const (
	ExpenseServiceCalculateSharesProcedure     = "/" + ExpenseServiceName + "/CalculateShares"
	ExpenseServiceValidateExpenseProcedure     = "/" + ExpenseServiceName + "/ValidateExpense"
	ExpenseServiceCreateExpenseProcedure       = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceGetExpenseProcedure          = "/" + ExpenseServiceName + "/GetExpense"
	ExpenseServiceUpdateExpenseProcedure       = "/" + ExpenseServiceName + "/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure       = "/" + ExpenseServiceName + "/DeleteExpense"
	ExpenseServiceListExpensesByGroupProcedure = "/" + ExpenseServiceName + "/ListExpensesByGroup"
)

// ExpenseServiceHandler is implemented by the expense service.
type ExpenseServiceHandler interface {
	CalculateShares(context.Context, *connect.Request[api.CalculateSharesRequest]) (*connect.Response[api.CalculateSharesResponse], error)
	ValidateExpense(context.Context, *connect.Request[api.ValidateExpenseRequest]) (*connect.Response[api.ValidateExpenseResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpensesByGroup(context.Context, *connect.Request[api.ListExpensesByGroupRequest]) (*connect.Response[api.ListExpensesByGroupResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for the expense service.
// Mount the returned handler at the returned path.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ExpenseServiceName + "/", serviceMux{
		ExpenseServiceCalculateSharesProcedure:     connect.NewUnaryHandler(ExpenseServiceCalculateSharesProcedure, svc.CalculateShares, opts...),
		ExpenseServiceValidateExpenseProcedure:     connect.NewUnaryHandler(ExpenseServiceValidateExpenseProcedure, svc.ValidateExpense, opts...),
		ExpenseServiceCreateExpenseProcedure:       connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:          connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceUpdateExpenseProcedure:       connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure:       connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceListExpensesByGroupProcedure: connect.NewUnaryHandler(ExpenseServiceListExpensesByGroupProcedure, svc.ListExpensesByGroup, opts...),
	}
}

// ExpenseServiceClient is a client for the expense service.
type ExpenseServiceClient interface {
	CalculateShares(context.Context, *connect.Request[api.CalculateSharesRequest]) (*connect.Response[api.CalculateSharesResponse], error)
	ValidateExpense(context.Context, *connect.Request[api.ValidateExpenseRequest]) (*connect.Response[api.ValidateExpenseResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpensesByGroup(context.Context, *connect.Request[api.ListExpensesByGroupRequest]) (*connect.Response[api.ListExpensesByGroupResponse], error)
}

// NewExpenseServiceClient constructs a client for the expense service at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &expenseServiceClient{
		calculateShares:     connect.NewClient[api.CalculateSharesRequest, api.CalculateSharesResponse](httpClient, baseURL+ExpenseServiceCalculateSharesProcedure, opts...),
		validateExpense:     connect.NewClient[api.ValidateExpenseRequest, api.ValidateExpenseResponse](httpClient, baseURL+ExpenseServiceValidateExpenseProcedure, opts...),
		createExpense:       connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:          connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		updateExpense:       connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense:       connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpensesByGroup: connect.NewClient[api.ListExpensesByGroupRequest, api.ListExpensesByGroupResponse](httpClient, baseURL+ExpenseServiceListExpensesByGroupProcedure, opts...),
	}
}

type expenseServiceClient struct {
	calculateShares     *connect.Client[api.CalculateSharesRequest, api.CalculateSharesResponse]
	validateExpense     *connect.Client[api.ValidateExpenseRequest, api.ValidateExpenseResponse]
	createExpense       *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense          *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	updateExpense       *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense       *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listExpensesByGroup *connect.Client[api.ListExpensesByGroupRequest, api.ListExpensesByGroupResponse]
}

func (c *expenseServiceClient) CalculateShares(ctx context.Context, req *connect.Request[api.CalculateSharesRequest]) (*connect.Response[api.CalculateSharesResponse], error) {
	return c.calculateShares.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ValidateExpense(ctx context.Context, req *connect.Request[api.ValidateExpenseRequest]) (*connect.Response[api.ValidateExpenseResponse], error) {
	return c.validateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpensesByGroup(ctx context.Context, req *connect.Request[api.ListExpensesByGroupRequest]) (*connect.Response[api.ListExpensesByGroupResponse], error) {
	return c.listExpensesByGroup.CallUnary(ctx, req)
}
