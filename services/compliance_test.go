package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

func TestTimeEntryDurationDerivation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplianceService(db)
	user := seedUser(t, db, "asha")

	start := time.Date(2023, 10, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	entry, err := svc.CreateTimeEntry(context.Background(), user.ID, CreateTimeEntryInput{
		StartTime: start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	require.NotNil(t, entry.DurationHours)
	require.True(t, entry.DurationHours.Equal(dec("1.5")), "duration %s", entry.DurationHours)
	require.True(t, entry.IsBillable)
}

func TestTimeEntryEndBeforeStart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplianceService(db)
	user := seedUser(t, db, "asha")

	start := time.Date(2023, 10, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Minute)
	_, err := svc.CreateTimeEntry(context.Background(), user.ID, CreateTimeEntryInput{
		StartTime: start,
		EndTime:   &end,
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestOpenTimeEntryHasNoDuration(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplianceService(db)
	user := seedUser(t, db, "asha")

	entry, err := svc.CreateTimeEntry(context.Background(), user.ID, CreateTimeEntryInput{
		StartTime: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Nil(t, entry.DurationHours)
}

func TestTaskCompletionTimestamp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplianceService(db)

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{Title: "File GSTR-3B"})
	require.NoError(t, err)
	require.Equal(t, models.PriorityMedium, task.Priority)
	require.Nil(t, task.CompletedAt)

	completed := "completed"
	task, err = svc.UpdateTask(context.Background(), task.ID, UpdateTaskInput{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
}

func TestComplianceLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplianceService(db)
	client := seedClient(t, db, "Acme & Co")

	record, err := svc.CreateCompliance(context.Background(), CreateComplianceInput{
		Name:     "GSTR-1 October",
		Type:     "gst",
		ClientID: client.ID,
		DueDate:  time.Date(2023, 11, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, models.CompliancePending, record.Status)

	completed := "completed"
	record, err = svc.UpdateCompliance(context.Background(), record.ID, UpdateComplianceInput{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, models.ComplianceCompleted, record.Status)
	require.NotNil(t, record.CompletedAt)

	require.NoError(t, svc.DeleteCompliance(context.Background(), record.ID))
	_, err = svc.GetCompliance(context.Background(), record.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGSTReturnFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplianceService(db)
	a := seedClient(t, db, "Acme & Co")
	b := seedClient(t, db, "Bharat Traders")

	for _, clientID := range []uint{a.ID, a.ID, b.ID} {
		_, err := svc.CreateGSTReturn(context.Background(), CreateGSTReturnInput{
			ClientID:   clientID,
			ReturnType: "GSTR-3B",
			TaxPeriod:  "2023-10",
			DueDate:    time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	rets, err := svc.ListGSTReturns(context.Background(), 0, 100, a.ID, "")
	require.NoError(t, err)
	require.Len(t, rets, 2)

	rets, err = svc.ListGSTReturns(context.Background(), 0, 100, 0, "pending")
	require.NoError(t, err)
	require.Len(t, rets, 3)
}

func TestProjectUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewComplianceService(db)
	client := seedClient(t, db, "Acme & Co")

	project, err := svc.CreateProject(context.Background(), CreateProjectInput{
		Name:      "FY24 statutory audit",
		ClientID:  client.ID,
		StartDate: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "active", project.Status)

	onHold := "on_hold"
	project, err = svc.UpdateProject(context.Background(), project.ID, UpdateProjectInput{Status: &onHold})
	require.NoError(t, err)
	require.Equal(t, "on_hold", project.Status)

	require.NoError(t, svc.DeleteProject(context.Background(), project.ID))
	require.ErrorIs(t, svc.DeleteProject(context.Background(), project.ID), apperr.ErrNotFound)
}
