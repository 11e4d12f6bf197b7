package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type status string

var (
	statusPending  = New(status("pending"))
	statusAccepted = New(status("accepted"))
)

func Test_ToEnum(t *testing.T) {
	got, err := ToEnum[status]("pending")
	require.NoError(t, err)
	require.Equal(t, statusPending, got)

	got, err = ToEnum[status]("accepted")
	require.NoError(t, err)
	require.Equal(t, statusAccepted, got)

	_, err = ToEnum[status]("unknown")
	require.Error(t, err)
}
