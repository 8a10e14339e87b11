package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/butterfly/internal/domain"
	m "github.com/mouse-blink/butterfly/internal/model"
)

func TestListCmd_UsesCache(t *testing.T) {
	cmd, mockWorkflow, _ := newMockedRoot(t, newListCmd())

	mockWorkflow.On("List", mock.MatchedBy(func(args domain.ListArgs) bool {
		return args.UseCache
	})).Return(nil)

	cmd.SetArgs([]string{"list", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_WithExcludePatterns(t *testing.T) {
	cmd, mockWorkflow, _ := newMockedRoot(t, newListCmd())

	mockWorkflow.On("List", mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Exclude) == 2 && args.Exclude[0] == `\.test\.` && args.Exclude[1] == "^/legacy/"
	})).Return(nil)

	cmd.SetArgs([]string{"list", "-x", `\.test\.`, "--exclude", "^/legacy/", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_NoCache(t *testing.T) {
	cmd, mockWorkflow, _ := newMockedRoot(t, newListCmd())

	mockWorkflow.On("List", domain.ListArgs{Paths: []m.Path{"./src"}, UseCache: false}).Return(nil)

	cmd.SetArgs([]string{"list", "--no-cache", "./src"})
	require.NoError(t, cmd.Execute())
}

func TestNewListCmd(t *testing.T) {
	cmd := newListCmd()

	assert.Equal(t, "list [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("exclude"))
	assert.NotNil(t, cmd.Flags().Lookup("no-cache"))
}
