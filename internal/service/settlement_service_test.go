package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairshare/pkg/api"
)

func TestSettlements(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice, bob, mallory := env.register(t, "Alice"), env.register(t, "Bob"), env.register(t, "Mallory")
	group := env.createGroup(t, alice, "Roommates", bob)

	_, err := env.expenses.CreateExpense(ctx, as(alice, &api.CreateExpenseRequest{
		GroupID:       group.ID,
		Title:         "Rent",
		Total:         "1000",
		Participants:  []api.Participant{alice.Participant, bob.Participant},
		Contributions: []api.Contribution{{Participant: alice.Participant, Amount: "1000"}},
	}))
	require.NoError(t, err)

	createResp, err := env.settlements.CreateSettlement(ctx, as(bob, &api.CreateSettlementRequest{
		GroupID: group.ID,
		FromID:  bob.ID,
		ToID:    alice.ID,
		Amount:  "200",
		Note:    " first instalment ",
	}))
	require.NoError(t, err)
	settlement := createResp.Msg.Settlement
	assert.NotEmpty(t, settlement.ID)
	assert.Equal(t, "200.00", settlement.Amount)
	assert.Equal(t, "first instalment", settlement.Note)
	assert.Equal(t, bob.ID, settlement.CreatedBy)

	t.Run("settlement reduces debt", func(t *testing.T) {
		resp, err := env.groups.GetGroupBalances(ctx, as(alice, &api.GetGroupBalancesRequest{GroupID: group.ID}))
		require.NoError(t, err)
		assert.Equal(t, []*api.DebtEdge{{From: bob.ID, To: alice.ID, Amount: "300.00"}}, resp.Msg.Debts)
	})

	t.Run("list", func(t *testing.T) {
		resp, err := env.settlements.ListSettlements(ctx, as(alice, &api.ListSettlementsRequest{GroupID: group.ID}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Settlements, 1)
		assert.Equal(t, settlement, resp.Msg.Settlements[0])

		_, err = env.settlements.ListSettlements(ctx, as(mallory, &api.ListSettlementsRequest{GroupID: group.ID}))
		requireCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("delete reopens debt", func(t *testing.T) {
		_, err := env.settlements.DeleteSettlement(ctx, as(alice, &api.DeleteSettlementRequest{SettlementID: settlement.ID}))
		require.NoError(t, err)

		resp, err := env.groups.GetGroupBalances(ctx, as(alice, &api.GetGroupBalancesRequest{GroupID: group.ID}))
		require.NoError(t, err)
		assert.Equal(t, []*api.DebtEdge{{From: bob.ID, To: alice.ID, Amount: "500.00"}}, resp.Msg.Debts)

		_, err = env.settlements.DeleteSettlement(ctx, as(alice, &api.DeleteSettlementRequest{SettlementID: settlement.ID}))
		requireCode(t, err, connect.CodeNotFound)
	})
}

func TestCreateSettlement_Invalid(t *testing.T) {
	env := setupTestServer(t)
	alice, bob := env.register(t, "Alice"), env.register(t, "Bob")
	group := env.createGroup(t, alice, "Pair", bob)

	tests := []struct {
		name string
		req  *api.CreateSettlementRequest
		code connect.Code
	}{
		{"zero amount", &api.CreateSettlementRequest{GroupID: group.ID, FromID: bob.ID, ToID: alice.ID, Amount: "0"}, connect.CodeInvalidArgument},
		{"negative amount", &api.CreateSettlementRequest{GroupID: group.ID, FromID: bob.ID, ToID: alice.ID, Amount: "-5"}, connect.CodeInvalidArgument},
		{"malformed amount", &api.CreateSettlementRequest{GroupID: group.ID, FromID: bob.ID, ToID: alice.ID, Amount: "5 USD"}, connect.CodeInvalidArgument},
		{"amount over the maximum", &api.CreateSettlementRequest{GroupID: group.ID, FromID: bob.ID, ToID: alice.ID, Amount: "184467440737095516.17"}, connect.CodeInvalidArgument},
		{"same member", &api.CreateSettlementRequest{GroupID: group.ID, FromID: bob.ID, ToID: bob.ID, Amount: "5"}, connect.CodeInvalidArgument},
		{"outsider", &api.CreateSettlementRequest{GroupID: group.ID, FromID: "stranger", ToID: alice.ID, Amount: "5"}, connect.CodeInvalidArgument},
		{"unknown group", &api.CreateSettlementRequest{GroupID: "nope", FromID: bob.ID, ToID: alice.ID, Amount: "5"}, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.settlements.CreateSettlement(context.Background(), as(alice, tt.req))
			requireCode(t, err, tt.code)
		})
	}
}
