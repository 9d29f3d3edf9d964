package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytracker/backend/models"
	"studytracker/backend/repository"
)

func TestCreateGoal(t *testing.T) {
	f := newStudyFixture(t)
	ctx := context.Background()

	target, err := models.ParseDate("2025-06-01")
	require.NoError(t, err)

	milestone, err := f.repo.CreateGoal(ctx, f.ann, "Finish thesis", strPtr("writing"), models.Milestone{Progress: 10, TargetDate: &target})
	require.NoError(t, err)
	assert.Equal(t, models.GoalMilestone, milestone.Type)
	assert.Equal(t, models.Milestone{Progress: 10, TargetDate: &target}, milestone.Detail())

	daily, err := f.repo.CreateGoal(ctx, f.ann, "Read 20 pages", nil, models.Daily{})
	require.NoError(t, err)
	assert.Equal(t, models.GoalDaily, daily.Type)
	assert.Equal(t, models.Daily{}, daily.Detail())

	_, err = f.repo.CreateGoal(ctx, f.ann, "Too far", nil, models.Milestone{Progress: 101})
	assert.ErrorIs(t, err, repository.ErrBadRequest)

	_, err = f.repo.CreateGoal(ctx, f.ann, "  ", nil, models.Daily{})
	assert.ErrorIs(t, err, repository.ErrBadRequest)

	_, err = f.repo.CreateGoal(ctx, f.ann, "No kind", nil, nil)
	assert.ErrorIs(t, err, repository.ErrBadRequest)

	_, err = f.repo.CreateGoal(ctx, 999, "Orphan", nil, models.Daily{})
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)

	goals, err := f.repo.ListGoals(ctx, f.ann)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, milestone.ID, goals[0].ID)
	assert.Equal(t, daily.ID, goals[1].ID)

	others, err := f.repo.ListGoals(ctx, f.bob)
	require.NoError(t, err)
	assert.NotNil(t, others)
	assert.Empty(t, others)
}

func TestMarkGoalDoneTodayStreak(t *testing.T) {
	f := newStudyFixture(t)
	ctx := context.Background()

	goal, err := f.repo.CreateGoal(ctx, f.ann, "Read 20 pages", nil, models.Daily{})
	require.NoError(t, err)

	marked, alreadyDone, err := f.repo.MarkGoalDoneToday(ctx, goal.ID, f.ann)
	require.NoError(t, err)
	assert.False(t, alreadyDone)
	assert.Equal(t, 1, marked.Streak)
	require.NotNil(t, marked.LastDone)
	assert.Equal(t, "2025-03-10", *models.FormatDate(marked.LastDone))

	f.clock.Advance(3 * time.Hour)
	marked, alreadyDone, err = f.repo.MarkGoalDoneToday(ctx, goal.ID, f.ann)
	require.NoError(t, err)
	assert.True(t, alreadyDone)
	assert.Equal(t, 1, marked.Streak)

	f.clock.Advance(24 * time.Hour)
	marked, alreadyDone, err = f.repo.MarkGoalDoneToday(ctx, goal.ID, f.ann)
	require.NoError(t, err)
	assert.False(t, alreadyDone)
	assert.Equal(t, 2, marked.Streak)
	assert.Equal(t, "2025-03-11", *models.FormatDate(marked.LastDone))

	// A missed day does not reset the streak.
	f.clock.Advance(72 * time.Hour)
	marked, alreadyDone, err = f.repo.MarkGoalDoneToday(ctx, goal.ID, f.ann)
	require.NoError(t, err)
	assert.False(t, alreadyDone)
	assert.Equal(t, 3, marked.Streak)
	assert.Equal(t, "2025-03-14", *models.FormatDate(marked.LastDone))
}

func TestMarkGoalDoneTodayRejections(t *testing.T) {
	f := newStudyFixture(t)
	ctx := context.Background()

	milestone, err := f.repo.CreateGoal(ctx, f.ann, "Finish thesis", nil, models.Milestone{})
	require.NoError(t, err)
	daily, err := f.repo.CreateGoal(ctx, f.ann, "Read", nil, models.Daily{})
	require.NoError(t, err)

	_, _, err = f.repo.MarkGoalDoneToday(ctx, milestone.ID, f.ann)
	assert.ErrorIs(t, err, repository.ErrBadRequest)

	_, _, err = f.repo.MarkGoalDoneToday(ctx, daily.ID, f.bob)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, _, err = f.repo.MarkGoalDoneToday(ctx, 999, f.ann)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := f.repo.GetGoal(ctx, daily.ID, f.ann)
	require.NoError(t, err)
	assert.Zero(t, got.Streak)
	assert.Nil(t, got.LastDone)
}

func TestUpdateGoal(t *testing.T) {
	f := newStudyFixture(t)
	ctx := context.Background()

	milestone, err := f.repo.CreateGoal(ctx, f.ann, "Finish thesis", nil, models.Milestone{Progress: 10})
	require.NoError(t, err)
	daily, err := f.repo.CreateGoal(ctx, f.ann, "Read", nil, models.Daily{})
	require.NoError(t, err)

	target, err := models.ParseDate("2025-07-15")
	require.NoError(t, err)
	updated, err := f.repo.UpdateGoal(ctx, milestone.ID, f.ann, repository.GoalPatch{
		Progress:   intPtr(60),
		TargetDate: &target,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.Progress)
	assert.Equal(t, "2025-07-15", *models.FormatDate(updated.TargetDate))
	assert.Equal(t, "Finish thesis", updated.Title)

	_, err = f.repo.UpdateGoal(ctx, milestone.ID, f.ann, repository.GoalPatch{Progress: intPtr(-1)})
	assert.ErrorIs(t, err, repository.ErrBadRequest)

	_, err = f.repo.UpdateGoal(ctx, milestone.ID, f.ann, repository.GoalPatch{})
	assert.ErrorIs(t, err, repository.ErrBadRequest)

	_, err = f.repo.UpdateGoal(ctx, daily.ID, f.ann, repository.GoalPatch{Progress: intPtr(50)})
	assert.ErrorIs(t, err, repository.ErrBadRequest)

	renamed, err := f.repo.UpdateGoal(ctx, daily.ID, f.ann, repository.GoalPatch{Title: strPtr("Read 30 pages"), Category: strPtr("books")})
	require.NoError(t, err)
	assert.Equal(t, "Read 30 pages", renamed.Title)
	assert.Equal(t, "books", *renamed.Category)

	_, err = f.repo.UpdateGoal(ctx, daily.ID, f.bob, repository.GoalPatch{Title: strPtr("mine now")})
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, err = f.repo.UpdateGoal(ctx, 999, f.ann, repository.GoalPatch{Title: strPtr("ghost")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteGoal(t *testing.T) {
	f := newStudyFixture(t)
	ctx := context.Background()

	goal, err := f.repo.CreateGoal(ctx, f.ann, "Read", nil, models.Daily{})
	require.NoError(t, err)

	err = f.repo.DeleteGoal(ctx, goal.ID, f.bob)
	require.ErrorIs(t, err, repository.ErrForbidden)

	require.NoError(t, f.repo.DeleteGoal(ctx, goal.ID, f.ann))

	_, err = f.repo.GetGoal(ctx, goal.ID, f.ann)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = f.repo.DeleteGoal(ctx, goal.ID, f.ann)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateDailyGoalIgnoresZeroProgress(t *testing.T) {
	f := newStudyFixture(t)
	ctx := context.Background()

	daily, err := f.repo.CreateGoal(ctx, f.ann, "Drink water", strPtr("Health"), models.Daily{})
	require.NoError(t, err)

	updated, err := f.repo.UpdateGoal(ctx, daily.ID, f.ann, repository.GoalPatch{
		Title:    strPtr("Drink 2L of water"),
		Category: strPtr("Health"),
		Progress: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Drink 2L of water", updated.Title)
	assert.Equal(t, models.GoalDaily, updated.Type)
	assert.Zero(t, updated.Progress)

	unchanged, err := f.repo.UpdateGoal(ctx, daily.ID, f.ann, repository.GoalPatch{Progress: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Drink 2L of water", unchanged.Title)

	target, err := models.ParseDate("2025-04-01")
	require.NoError(t, err)
	_, err = f.repo.UpdateGoal(ctx, daily.ID, f.ann, repository.GoalPatch{Progress: intPtr(0), TargetDate: &target})
	assert.ErrorIs(t, err, repository.ErrBadRequest)
}

func TestMarkGoalDoneTodayUsesUTCDate(t *testing.T) {
	f := newStudyFixture(t)
	ctx := context.Background()

	goal, err := f.repo.CreateGoal(ctx, f.ann, "Read", nil, models.Daily{})
	require.NoError(t, err)

	// 23:30 on the 10th in UTC-5 is already the 11th in UTC.
	f.clock.Current = time.Date(2025, time.March, 10, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	marked, _, err := f.repo.MarkGoalDoneToday(ctx, goal.ID, f.ann)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", *models.FormatDate(marked.LastDone))
}
