package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string  `validate:"required,max=10"`
	Gender *string `validate:"omitempty,oneof=male female other"`
	Age    *int    `validate:"omitempty,gte=1,lte=120"`
}

func TestValidateStruct(t *testing.T) {
	require.Nil(t, ValidateStruct(sampleRequest{Name: "Budi"}))

	errs := ValidateStruct(sampleRequest{})
	require.NotNil(t, errs)
	require.Contains(t, errs, "Name")

	bad := "lainnya"
	errs = ValidateStruct(sampleRequest{Name: "Budi", Gender: &bad})
	require.Contains(t, errs, "Gender")

	tooOld := 200
	errs = ValidateStruct(sampleRequest{Name: "Budi", Age: &tooOld})
	require.Contains(t, errs, "Age")

	// Field optional yang tidak diisi tidak divalidasi
	require.Nil(t, ValidateStruct(sampleRequest{Name: "Budi", Gender: nil, Age: nil}))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	require.NotEqual(t, "rahasia123", hash)

	require.True(t, CheckPasswordHash("rahasia123", hash))
	require.False(t, CheckPasswordHash("salah", hash))
}
