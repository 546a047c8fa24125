package model_test

import (
	"rendezvous/internal/domains/booking/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Apply(t *testing.T) {
	statuses := []model.Status{model.StatusPending, model.StatusValidated, model.StatusCancelled, model.StatusCompleted}
	actions := []model.Action{model.ActionValidate, model.ActionCancel, model.ActionComplete}

	allowed := map[model.Status]map[model.Action]model.Status{
		model.StatusPending: {
			model.ActionValidate: model.StatusValidated,
			model.ActionCancel:   model.StatusCancelled,
		},
		model.StatusValidated: {
			model.ActionCancel:   model.StatusCancelled,
			model.ActionComplete: model.StatusCompleted,
		},
	}

	for _, from := range statuses {
		for _, action := range actions {
			t.Run(string(from)+"/"+string(action), func(t *testing.T) {
				next, err := from.Apply(action)

				want, ok := allowed[from][action]
				if ok {
					require.NoError(t, err)
					assert.Equal(t, want, next)

					return
				}

				var illegal *model.IllegalTransitionError

				require.ErrorAs(t, err, &illegal)
				assert.Equal(t, from, illegal.From)
				assert.Equal(t, action, illegal.Action)
				assert.Equal(t, from, next)
			})
		}
	}
}

func TestStatus_CompleteFromPendingIsIllegal(t *testing.T) {
	_, err := model.StatusPending.Apply(model.ActionComplete)

	assert.EqualError(t, err, "cannot complete a booking that is pending")
}

func TestStatus_Predicates(t *testing.T) {
	tests := []struct {
		status    model.Status
		active    bool
		terminal  bool
		deletable bool
	}{
		{model.StatusPending, true, false, true},
		{model.StatusValidated, true, false, true},
		{model.StatusCancelled, false, true, true},
		{model.StatusCompleted, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.True(t, tt.status.Valid())
			assert.Equal(t, tt.active, tt.status.IsActive())
			assert.Equal(t, tt.active, tt.status.Editable())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.deletable, tt.status.Deletable())
		})
	}

	assert.False(t, model.Status("archived").Valid())
}

func TestAction_Table(t *testing.T) {
	assert.ElementsMatch(t, []model.Status{model.StatusPending, model.StatusValidated}, model.ActionCancel.Sources())
	assert.Equal(t, model.StatusCompleted, model.ActionComplete.Target())
	assert.False(t, model.ActionEdit.IsTransition())

	action, ok := model.ParseAction("validate")
	assert.True(t, ok)
	assert.Equal(t, model.ActionValidate, action)

	_, ok = model.ParseAction("delete")
	assert.False(t, ok)
}
