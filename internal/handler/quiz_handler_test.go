package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/amdc-hr/interview-intake/internal/models"
	"github.com/amdc-hr/interview-intake/internal/service"
)

func TestQuizPageWithoutSessionUsesPlaceholderName(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quiz", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		FullName  string `json:"full_name"`
		Questions []struct {
			ID      string   `json:"id"`
			Options []string `json:"options"`
		} `json:"questions"`
	}
	success, _ := decodeEnvelope(t, resp, &payload)
	require.True(t, success)
	require.Equal(t, "Candidate", payload.FullName)
	require.Len(t, payload.Questions, 35)
	require.Equal(t, []string{"A", "B", "C"}, payload.Questions[0].Options)
}

func TestSubmitQuizWithoutSessionScoresButDoesNotRecord(t *testing.T) {
	app, db := setupApp(t)

	answers := make(map[string]string)
	for question, option := range service.DefaultAnswerKey() {
		answers[question] = option
	}
	answers["q1"] = "X"

	resp, err := app.Test(quizSubmission(t, answers, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result resultPayload
	success, _ := decodeEnvelope(t, resp, &result)
	require.True(t, success)
	require.True(t, result.Finished)
	require.Equal(t, "Candidate", result.FullName)
	require.NotNil(t, result.Score)
	require.Equal(t, 34, *result.Score)

	// Without a resolvable candidate id no row is touched.
	var count int64
	require.NoError(t, db.Model(&models.Candidate{}).Where("marks_obtained IS NOT NULL").Count(&count).Error)
	require.Zero(t, count)
}

func TestTimeoutLandingWithoutSession(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test-complete", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result resultPayload
	success, _ := decodeEnvelope(t, resp, &result)
	require.True(t, success)
	require.False(t, result.Finished)
	require.Equal(t, "Candidate", result.FullName)
	require.Nil(t, result.Score)
	require.Nil(t, result.SubmittedAt)
}

func TestTimeoutLandingIsRepeatableAndDoesNotBlockSubmission(t *testing.T) {
	app, db := setupApp(t)

	resp, err := app.Test(detailsRequest(t, ashaFields()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	// Visiting the timeout landing twice persists nothing.
	for i := 0; i < 2; i++ {
		landingReq := httptest.NewRequest(http.MethodGet, "/test-complete", nil)
		landingReq.AddCookie(cookie)
		resp, err = app.Test(landingReq)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var row models.Candidate
	require.NoError(t, db.First(&row, 1).Error)
	require.Nil(t, row.MarksObtained)

	// A real submission afterwards still records the score.
	answers := map[string]string{"q1": "B", "q2": "C"}
	resp, err = app.Test(quizSubmission(t, answers, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&row, 1).Error)
	require.NotNil(t, row.MarksObtained)
	require.Equal(t, 2, *row.MarksObtained)
}
