package validator_test

import (
	"rendezvous/shared/failure"
	"rendezvous/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct {
	Plate     string  `json:"plate"     validate:"required,notblank"`
	Date      string  `json:"date"      validate:"required,datetime=2006-01-02"`
	Time      string  `json:"time"      validate:"required,clocktime"`
	Operation string  `json:"operation" validate:"required,oneof=import export"`
	IDs       []int64 `json:"ids"       validate:"omitempty,dive,gt=0"`
}

func valid() visit {
	return visit{Plate: "1234-AB-56", Date: "2030-03-12", Time: "09:30", Operation: "import"}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *visit)
		message string
	}{
		{"valid", func(*visit) {}, ""},
		{"missing plate", func(v *visit) { v.Plate = "" }, "plate is required"},
		{"blank plate", func(v *visit) { v.Plate = "   " }, "plate must not be blank"},
		{"bad date", func(v *visit) { v.Date = "12/03/2030" }, "date must match the layout 2006-01-02"},
		{"bad time", func(v *visit) { v.Time = "9h30" }, "time must be a time of day written HH:MM"},
		{"seconds accepted", func(v *visit) { v.Time = "09:30:00" }, ""},
		{"bad operation", func(v *visit) { v.Operation = "transit" }, "operation must be one of import export"},
		{"non positive id", func(v *visit) { v.IDs = []int64{1, 0} }, "ids[1] must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid()
			tt.mutate(&v)

			err := validator.ValidateStruct(&v)

			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			var f *failure.Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, 400, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestValidate(t *testing.T) {
	var v visit

	err := validator.Validate(strings.NewReader(`{"plate":"1234-AB-56","date":"2030-03-12","time":"22:00","operation":"export"}`), &v)
	require.NoError(t, err)
	assert.Equal(t, "22:00", v.Time)

	err = validator.Validate(strings.NewReader(`{"plate":`), &v)
	assert.ErrorContains(t, err, "failed to decode request body")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("validate", "oneof=validate cancel complete"))
	assert.Error(t, validator.ValidateVar("archive", "oneof=validate cancel complete"))
	assert.NoError(t, validator.ValidateVar("06:00", "clocktime"))
	assert.Error(t, validator.ValidateVar("25:00", "clocktime"))
}
