package labtests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nidaan-his/nidaan-his/internal/masterdata/shared"
)

func TestValidate(t *testing.T) {
	ok := LabTest{Code: "CBC", Name: "Complete Blood Count", Price: 500, CommissionRate: 50}
	require.NoError(t, validate(ok))

	require.ErrorIs(t, validate(LabTest{Name: "X"}), shared.ErrRequiredField)
	require.ErrorIs(t, validate(LabTest{Code: "X"}), shared.ErrRequiredField)
	require.Error(t, validate(LabTest{Code: "X", Name: "Y", Price: -1}))
	require.Error(t, validate(LabTest{Code: "X", Name: "Y", Price: 100, CommissionRate: 150}))
}
