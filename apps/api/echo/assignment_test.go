package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/testutil"
)

func Test_assignmentApi(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, app.usrRepo, "alice", "", true)
	bob := testutil.CreateUser(t, app.usrRepo, "bob", "", true)
	aliceToken := app.getToken(t, alice)
	bobToken := app.getToken(t, bob)

	essay := assignment.Assignment{ID: "a1", Name: "Essay", WeightPercent: 30, DueDate: "2026-02-15", Confidence: 2, EstHours: 6, CreatedAt: 1}
	quiz := assignment.Assignment{ID: "a2", Name: "Quiz", WeightPercent: 5, DueDate: "2026-02-11", Confidence: 4, EstHours: 1, CreatedAt: 2}
	require.NoError(t, app.asgRepo.WriteAll(ctx, alice.ID, []assignment.Assignment{essay, quiz}))

	notFound := marchallObj(t, httpErr{Error: "assignment not found"})

	app.run(t, []httpTest{
		{name: "auth required", path: "/v1/assignments", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "list", path: "/v1/assignments", token: aliceToken, wantData: marchallObj(t, []assignment.Assignment{essay, quiz})},
		{name: "list ordered", path: "/v1/assignments?ordering=dueDate", token: aliceToken, wantData: marchallObj(t, []assignment.Assignment{quiz, essay})},
		{
			name: "list bad ordering", path: "/v1/assignments?ordering=owner", token: aliceToken,
			wantCode: http.StatusBadRequest, wantData: []byte(`{"ordering": "cannot order by owner"}`),
		},
		{name: "list of another user", path: "/v1/assignments", token: bobToken, wantData: []byte(`[]`)},
		{name: "retrieve", path: "/v1/assignments/a1", token: aliceToken, wantData: marchallObj(t, essay)},
		{name: "retrieve of another user", path: "/v1/assignments/a1", token: bobToken, wantCode: http.StatusNotFound, wantData: notFound},
		{
			name: "create invalid", method: http.MethodPost, path: "/v1/assignments", token: aliceToken,
			body:     []byte(`{"name": " ", "dueDate": "tomorrow", "confidence": 9}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{
				"name": "this field cannot be blank",
				"dueDate": "dueDate must be a date formatted as YYYY-MM-DD",
				"confidence": "confidence must be 5 or less"
			}`),
		},
		{
			name: "update unknown", method: http.MethodPut, path: "/v1/assignments/nope", token: aliceToken,
			body: []byte(`{"confidence": 2}`), wantCode: http.StatusNotFound, wantData: notFound,
		},
		{name: "delete unknown", method: http.MethodDelete, path: "/v1/assignments/nope", token: aliceToken, wantCode: http.StatusNoContent},
	})

	t.Run("create", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/v1/assignments", bobToken, []byte(`{"name": "Lab report", "dueDate": "2026-02-20", "weightPercent": 15}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got assignment.Assignment
		decode(t, rec, &got)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Lab report", got.Name)
		assert.Equal(t, 15.0, got.WeightPercent)
		assert.Equal(t, assignment.DefaultConfidence, got.Confidence)

		items, err := app.asgRepo.ReadAll(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []assignment.Assignment{got}, items)
	})

	t.Run("update", func(t *testing.T) {
		rec := app.do(http.MethodPut, "/v1/assignments/a2", aliceToken, []byte(`{"estHours": 2.5, "dueDate": "2026-02-12"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		want := quiz
		want.EstHours = 2.5
		want.DueDate = "2026-02-12"
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, want)}, rec)
	})

	t.Run("delete", func(t *testing.T) {
		rec := app.do(http.MethodDelete, "/v1/assignments/a1", aliceToken)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		items, err := app.asgRepo.ReadAll(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "a2", items[0].ID)
	})
}
