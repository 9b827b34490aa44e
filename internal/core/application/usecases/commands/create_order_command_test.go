package commands_test

import (
	"testing"

	"yuandi/internal/core/application/usecases/commands"
	"yuandi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	in := validInput()
	cmd, err := commands.NewCreateOrderCommand(in, "")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, in, cmd.Input())
	assert.Empty(t, cmd.OrderNumber())
}

func TestNewCreateOrderCommand_CopiesItems(t *testing.T) {
	in := validInput()
	cmd, err := commands.NewCreateOrderCommand(in, "")
	require.NoError(t, err)

	in.Items[0].ProductID = "changed"

	assert.Equal(t, "p1", cmd.Input().Items[0].ProductID)
}

func TestNewCreateOrderCommand_ExplicitNumber(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(validInput(), " ORD-240101-009 ")
	require.NoError(t, err)
	assert.Equal(t, "ORD-240101-009", cmd.OrderNumber())
}

func TestNewCreateOrderCommand_InvalidNumber(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(validInput(), "ORDER-1")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
