package model_test

import (
	"testing"

	"github.com/pranavk/queuectl/internal/model"

	"github.com/stretchr/testify/require"
)

func TestParseJobStateValid(t *testing.T) {
	for _, s := range []model.JobState{model.StatePending, model.StateProcessing, model.StateCompleted, model.StateDead} {
		parsed, err := model.ParseJobState(s.String())
		require.NoError(t, err)
		require.Equal(t, s, parsed)
	}
}

func TestParseJobStateInvalid(t *testing.T) {
	_, err := model.ParseJobState("bogus")
	require.Error(t, err)
}
