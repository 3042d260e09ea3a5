package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserJobProbabilitiesList_ServeHTTP(t *testing.T) {
	probs := []command.JobProbability{
		{Job: testJobs[0].Job, Probability: 0.7, Similarity: 0.9, Distance: 0},
		{Job: testJobs[1].Job, Probability: 0.2, Similarity: 0.6, Distance: 12.5},
	}

	cases := []struct {
		name       string
		userID     string
		query      string
		wantReq    *command.ClassifyUserJobsRequest
		result     []command.JobProbability
		err        error
		wantStatus int
	}{
		{
			name:       "successful_classification",
			userID:     "200",
			query:      "?limit=2",
			wantReq:    &command.ClassifyUserJobsRequest{UserToken: 200, Limit: 2},
			result:     probs,
			wantStatus: http.StatusOK,
		},
		{
			name:       "model_not_fitted",
			userID:     "200",
			wantReq:    &command.ClassifyUserJobsRequest{UserToken: 200, Limit: 10},
			err:        domain.ErrNotFitted,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unlocatable_user",
			userID:     "300",
			wantReq:    &command.ClassifyUserJobsRequest{UserToken: 300, Limit: 10},
			err:        errors.Join(errors.New("building features"), domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad_limit",
			userID:     "200",
			query:      "?limit=x",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newMockCommand[command.ClassifyUserJobsRequest, []command.JobProbability](t)
			if tc.wantReq != nil {
				cmd.On("Execute", mock.Anything, *tc.wantReq).Return(tc.result, tc.err)
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+tc.userID+"/job-probabilities"+tc.query, nil)
			req = testContext()(req)
			req = mux.SetURLVars(req, map[string]string{"user_id": tc.userID})
			rec := httptest.NewRecorder()

			UserJobProbabilitiesList{Command: cmd}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusOK {
				return
			}

			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			var response JobProbabilitiesListResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			require.Len(t, response.Data, 2)
			assert.Equal(t, 10, response.Data[0].JobID)
			assert.Equal(t, 0.7, response.Data[0].Probability)
			assert.Equal(t, 0.9, response.Data[0].Score)
			assert.Equal(t, 12.5, response.Data[1].Distance)
		})
	}
}
