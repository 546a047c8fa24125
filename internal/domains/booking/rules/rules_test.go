package rules_test

import (
	"rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/booking/rules"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2030, 3, 12, 0, 0, 0, 0, time.UTC)

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		field string
		value string
		ok    bool
	}{
		{model.FieldDriverCode, "A123456", true},
		{model.FieldDriverCode, "AB123456", true},
		{model.FieldDriverCode, "ABC123456", false},
		{model.FieldDriverCode, "ab123456", false},
		{model.FieldDriverCode, "AB12345", false},
		{model.FieldPlate, "123-A-1", true},
		{model.FieldPlate, "1234-ABC-5678", true},
		{model.FieldPlate, "12-A-1", false},
		{model.FieldPlate, "1234-abc-5678", false},
		{model.FieldPlate, "1234-ABCD-1", false},
		{model.FieldContainerNumber, "MSCU1234567", true},
		{model.FieldContainerNumber, "MSC1234567", false},
		{model.FieldContainerNumber, "MSCU123456", false},
		{model.FieldOperation, "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			_, err := rules.CheckFormat(tt.field, tt.value)
			if tt.ok {
				assert.NoError(t, err)

				return
			}

			var formatErr *model.FormatError

			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tt.field, formatErr.Field)
		})
	}
}

func TestCheckFormat_TrimsButKeepsCase(t *testing.T) {
	value, err := rules.CheckPlate("  1234-AB-56 ")

	require.NoError(t, err)
	assert.Equal(t, "1234-AB-56", value)

	_, err = rules.CheckDriverCode(" ab123456")
	assert.Error(t, err)
}

func TestCheckDate(t *testing.T) {
	assert.NoError(t, rules.CheckDate(today, today))
	assert.NoError(t, rules.CheckDate(today.AddDate(0, 0, 1), today))
	assert.NoError(t, rules.CheckDate(today.Add(20*time.Hour), today.Add(1*time.Hour)), "same calendar day")

	var past *model.PastDateError
	assert.ErrorAs(t, rules.CheckDate(today.AddDate(0, 0, -1), today), &past)
}

func TestCheckTime(t *testing.T) {
	tests := []struct {
		at model.ClockTime
		ok bool
	}{
		{model.NewClockTime(5, 59), false},
		{model.NewClockTime(6, 0), true},
		{model.NewClockTime(14, 30), true},
		{model.NewClockTime(22, 0), true},
		{model.NewClockTime(22, 59), true},
		{model.NewClockTime(23, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.at.String(), func(t *testing.T) {
			err := rules.CheckTime(tt.at)
			if tt.ok {
				assert.NoError(t, err)

				return
			}

			var outOfHours *model.OutOfHoursError
			assert.ErrorAs(t, err, &outOfHours)
		})
	}
}

func validSchedule() model.Schedule {
	return model.Schedule{
		DriverCode:       "AB123456",
		Plate:            "1234-AB-56",
		ContainerNumber:  "MSCU1234567",
		TrafficDirection: model.DirectionInbound,
		ContainerState:   model.ContainerFull,
		Operation:        model.OperationImport,
		ScheduledDate:    today.AddDate(0, 0, 1),
		ScheduledTime:    model.NewClockTime(9, 0),
	}
}

func TestValidate(t *testing.T) {
	s := validSchedule()
	assert.NoError(t, rules.Validate(&s, today))
}

func TestValidate_AggregatesAllFailures(t *testing.T) {
	s := validSchedule()
	s.DriverCode = "bad"
	s.Plate = "bad"
	s.Operation = "transit"
	s.ScheduledDate = today.AddDate(0, 0, -1)
	s.ScheduledTime = model.NewClockTime(23, 0)

	err := rules.Validate(&s, today)

	var validation *model.ValidationError

	require.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Errors, 5)

	fields := []string{}
	for _, detail := range validation.Details().([]model.FieldError) {
		fields = append(fields, detail.Field)
	}

	assert.ElementsMatch(t, []string{
		model.FieldDriverCode, model.FieldPlate, model.FieldOperation, model.FieldScheduledDate, model.FieldScheduledTime,
	}, fields)
}

func TestValidatePartial(t *testing.T) {
	s := validSchedule()
	s.ScheduledDate = today.AddDate(0, 0, -3)

	assert.NoError(t, rules.ValidatePartial(&s, rules.Changes{Plate: true}, today), "untouched past date is not re-checked")
	assert.Error(t, rules.ValidatePartial(&s, rules.Changes{Date: true}, today))

	s.ScheduledTime = model.NewClockTime(23, 0)
	assert.Error(t, rules.ValidatePartial(&s, rules.Changes{Time: true}, today))
}

func TestChanges(t *testing.T) {
	assert.False(t, rules.Changes{}.Any())
	assert.False(t, rules.Changes{DriverCode: true}.Schedule())
	assert.True(t, rules.Changes{Time: true}.Schedule())
}
