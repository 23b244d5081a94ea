package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homecare-admin/internal/store"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRestyClient(t *testing.T) *resty.Client {
	t.Helper()
	srv := httptest.NewServer(setupAPI(t))
	t.Cleanup(srv.Close)
	// 不跟随 303，直接检查 Location
	return resty.New().
		SetBaseURL(srv.URL).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
}

func mutate(t *testing.T, resp *resty.Response, err error, location string) MutationResponse {
	t.Helper()
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode(), resp.String())
	assert.Equal(t, location, resp.Header().Get("Location"))
	var env envelope[MutationResponse]
	require.NoError(t, json.Unmarshal(resp.Body(), &env))
	return env.Result
}

func TestEndToEnd_AgencyToAssignment(t *testing.T) {
	c := newRestyClient(t)

	resp, err := c.R().SetBody(map[string]any{"name": "Care Agency"}).Post("/agencies")
	agency := mutate(t, resp, err, "/agencies")

	resp, err = c.R().SetBody(map[string]any{
		"name": "John Doe", "email": "john@example.com", "agency_id": agency.ID,
	}).Post("/case-managers")
	cm := mutate(t, resp, err, "/case-managers")

	resp, err = c.R().SetBody(map[string]any{
		"name": "AJ", "medicaid_id": "12345", "gender": "male", "dob": "1950-01-01",
		"address": "1 Main St", "primary_phone": "555-0100", "case_manager_id": cm.ID,
		"services": []map[string]any{{"agency_id": agency.ID, "type": "ADHC", "weekly_units": 6}},
	}).Post("/participants")
	participant := mutate(t, resp, err, "/participants")
	assert.Equal(t, "Participant created successfully.", participant.Notice)

	resp, err = c.R().SetBody(map[string]any{
		"participant_id": participant.ID, "agency_id": agency.ID, "type": "Home Care",
		"weekly_hours": 20, "start_date": "2025-03-01", "end_date": "2025-09-01", "status": "approved",
	}).Post("/services")
	svc := mutate(t, resp, err, "/services")

	resp, err = c.R().SetBody(map[string]any{"name": "Caregiver One", "available_hours": 40}).Post("/caregivers")
	caregiver := mutate(t, resp, err, "/caregivers")

	resp, err = c.R().SetBody(map[string]any{"caregiver_id": caregiver.ID, "assigned_hours": 20}).
		Post("/services/" + svc.ID + "/caregivers")
	assigned := mutate(t, resp, err, "/services/"+svc.ID)
	assert.Equal(t, "Caregiver assigned successfully.", assigned.Notice)

	// 重复分配
	resp, err = c.R().SetBody(map[string]any{"caregiver_id": caregiver.ID, "assigned_hours": 5}).
		Post("/services/" + svc.ID + "/caregivers")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
	var dup envelope[ValidationResponse]
	require.NoError(t, json.Unmarshal(resp.Body(), &dup))
	assert.Contains(t, dup.Result.Errors, "caregiver_id")

	resp, err = c.R().SetBody(map[string]any{"assigned_hours": 12}).
		Put("/services/" + svc.ID + "/caregivers/" + caregiver.ID)
	mutate(t, resp, err, "/services/"+svc.ID)

	var show envelope[struct {
		Participant struct {
			Name string `json:"name"`
		} `json:"participant"`
		Caregivers []struct {
			ID    string `json:"id"`
			Pivot struct {
				AssignedHours int `json:"assigned_hours"`
			} `json:"pivot"`
		} `json:"caregivers"`
	}]
	resp, err = c.R().SetResult(&show).Get("/services/" + svc.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "AJ", show.Result.Participant.Name)
	require.Len(t, show.Result.Caregivers, 1)
	assert.Equal(t, caregiver.ID, show.Result.Caregivers[0].ID)
	assert.Equal(t, 12, show.Result.Caregivers[0].Pivot.AssignedHours)

	var participantDetail envelope[struct {
		Services []struct {
			Type string `json:"type"`
		} `json:"services"`
	}]
	_, err = c.R().SetResult(&participantDetail).Get("/participants/" + participant.ID)
	require.NoError(t, err)
	assert.Len(t, participantDetail.Result.Services, 2)

	resp, err = c.R().Delete("/services/" + svc.ID + "/caregivers/" + caregiver.ID)
	removed := mutate(t, resp, err, "/services/"+svc.ID)
	assert.Equal(t, "Caregiver removed successfully.", removed.Notice)

	// 会话 cookie 由 resty 的 cookie jar 保存，index 读取到最后一条提示
	var index envelope[struct {
		Flash *store.Flash `json:"flash"`
	}]
	_, err = c.R().SetResult(&index).Get("/services")
	require.NoError(t, err)
	require.NotNil(t, index.Result.Flash)
	assert.Equal(t, "Caregiver removed successfully.", index.Result.Flash.Message)

	resp, err = c.R().Delete("/agencies/" + agency.ID)
	mutate(t, resp, err, "/agencies")

	resp, err = c.R().Get("/services/" + svc.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}
