package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytracker/backend/repository"
)

func TestCreateSubjectUniqueness(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateSubject(ctx, "Physics")
	require.NoError(t, err)

	_, err = repo.CreateSubject(ctx, "Physics")
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	_, err = repo.CreateSubject(ctx, "   ")
	assert.ErrorIs(t, err, repository.ErrBadRequest)
}

func TestListSubjectsOrderedByName(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	subjects, err := repo.ListSubjects(ctx)
	require.NoError(t, err)
	assert.NotNil(t, subjects)
	assert.Empty(t, subjects)

	for _, name := range []string{"Physics", "Art", "Mathematics"} {
		_, err := repo.CreateSubject(ctx, name)
		require.NoError(t, err)
	}

	subjects, err = repo.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 3)
	assert.Equal(t, "Art", subjects[0].Name)
	assert.Equal(t, "Mathematics", subjects[1].Name)
	assert.Equal(t, "Physics", subjects[2].Name)
}

func TestUpdateSubject(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	physics, err := repo.CreateSubject(ctx, "Physics")
	require.NoError(t, err)
	_, err = repo.CreateSubject(ctx, "Art")
	require.NoError(t, err)

	updated, err := repo.UpdateSubject(ctx, physics.ID, "Quantum Physics")
	require.NoError(t, err)
	assert.Equal(t, "Quantum Physics", updated.Name)

	_, err = repo.UpdateSubject(ctx, physics.ID, "Art")
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	_, err = repo.UpdateSubject(ctx, 999, "History")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.GetSubject(ctx, physics.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quantum Physics", got.Name)
}

func TestDeleteSubjectRestrictedWhileReferenced(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "ann", "a@x.com", "pw")
	require.NoError(t, err)
	subject, err := repo.CreateSubject(ctx, "Physics")
	require.NoError(t, err)
	session, err := repo.CreateStudySession(ctx, user.ID, subject.ID, 30, nil)
	require.NoError(t, err)

	err = repo.DeleteSubject(ctx, subject.ID)
	require.ErrorIs(t, err, repository.ErrConstraintViolation)

	_, err = repo.GetSubject(ctx, subject.ID)
	require.NoError(t, err, "subject must survive a rejected delete")

	require.NoError(t, repo.DeleteStudySession(ctx, session.ID, user.ID))
	require.NoError(t, repo.DeleteSubject(ctx, subject.ID))

	err = repo.DeleteSubject(ctx, subject.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
