package cli

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCmd(run RunFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "demo", RunE: Wrap(run), SilenceUsage: true, SilenceErrors: true}
	cmd.Flags().String("log-level", "error", "")
	AddIntFlag(cmd, "entropy", "e", 0, "")
	AddStringSliceFlag(cmd, "set", "s", nil, "")
	return cmd
}

func TestBindFlagsToViper(t *testing.T) {
	t.Setenv("PWQ_ENTROPY", "99")
	cmd := newCmd(func(*pwq_io.RuntimeContext, *cobra.Command, []string) error { return nil })
	v, err := NewViper(cmd)
	require.NoError(t, err)
	assert.Equal(t, 99, v.GetInt("entropy"), "environment fills unset flags")

	require.NoError(t, cmd.Flags().Set("entropy", "64"))
	assert.Equal(t, 64, v.GetInt("entropy"))
}

func TestStringSliceFlagKeepsCommas(t *testing.T) {
	cmd := newCmd(func(*pwq_io.RuntimeContext, *cobra.Command, []string) error { return nil })
	require.NoError(t, cmd.ParseFlags([]string{"--set", "badwords=a,b", "--set", "minlen=9"}))
	got, err := cmd.Flags().GetStringArray("set")
	require.NoError(t, err)
	assert.Equal(t, []string{"badwords=a,b", "minlen=9"}, got)
}

func TestWrapRunsAndCleansUp(t *testing.T) {
	cleaned := false
	cmd := newCmd(func(rc *pwq_io.RuntimeContext, _ *cobra.Command, args []string) error {
		require.NotNil(t, rc)
		assert.Equal(t, []string{"x"}, args)
		rc.OnExit(func() error { cleaned = true; return nil })
		return nil
	})
	cmd.SetArgs([]string{"x"})
	require.NoError(t, cmd.Execute())
	assert.True(t, cleaned)
}

func TestWrapRecoversPanic(t *testing.T) {
	cmd := newCmd(func(*pwq_io.RuntimeContext, *cobra.Command, []string) error { panic("kaboom") })
	cmd.SetArgs(nil)
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestWrapKeepsExpectedErrors(t *testing.T) {
	expected := pwq_err.NewExpectedError(errors.New("advisory"))
	cmd := newCmd(func(*pwq_io.RuntimeContext, *cobra.Command, []string) error { return expected })
	cmd.SetArgs(nil)
	err := cmd.Execute()
	assert.Same(t, expected, err)

	plain := errors.New("broken")
	cmd = newCmd(func(*pwq_io.RuntimeContext, *cobra.Command, []string) error { return plain })
	cmd.SetArgs(nil)
	err = cmd.Execute()
	assert.ErrorIs(t, err, plain)
	assert.NotSame(t, plain, err)
	assert.NotEmpty(t, cerr.GetReportableStackTrace(err))
}

func TestSignalHandlerCleanupOrder(t *testing.T) {
	h := NewSignalHandler(context.Background())
	var mu sync.Mutex
	var order []int
	for i := 1; i <= 3; i++ {
		h.RegisterCleanup(func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}
	h.Stop()
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.Error(t, h.Context().Err())
}
