package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/models"
	"devconnector/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{
		Env:            "test",
		DatabaseDriver: "sqlite",
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, repo *repositories.GORMUserRepository, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestGORMProfileRepository_UpsertCreatesThenMerges(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMProfileRepository(db)
	owner := createUser(t, users, "Ada", "ada@example.com")

	created, err := repo.Upsert(ctx, &models.Profile{
		UserID: owner.ID,
		Handle: "ada",
		Status: "Developer",
		Skills: []string{"go", "sql"},
	}, []string{"handle", "status", "skills"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ada", created.Handle)
	assert.Equal(t, []string{"go", "sql"}, created.Skills)
	require.NotNil(t, created.User)
	assert.Equal(t, "Ada", created.User.Name)
	assert.Empty(t, created.User.Email)

	updated, err := repo.Upsert(ctx, &models.Profile{
		UserID:  owner.ID,
		Handle:  "ada",
		Status:  "Senior Developer",
		Company: "ignored",
		Skills:  []string{"go"},
	}, []string{"handle", "status", "skills"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Empty(t, updated.Company, "columns outside the update list stay untouched")

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGORMProfileRepository_UpsertDuplicateHandle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMProfileRepository(db)
	a := createUser(t, users, "A", "a@example.com")
	b := createUser(t, users, "B", "b@example.com")

	cols := []string{"handle", "status", "skills"}
	_, err := repo.Upsert(ctx, &models.Profile{UserID: a.ID, Handle: "taken", Status: "x", Skills: []string{"go"}}, cols)
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, &models.Profile{UserID: b.ID, Handle: "taken", Status: "y", Skills: []string{"go"}}, cols)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = repo.GetByUserID(ctx, b.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProfileRepository_Patch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMProfileRepository(db)
	owner := createUser(t, users, "Ada", "ada@example.com")

	_, err := repo.Patch(ctx, &models.Profile{UserID: owner.ID, Company: "Acme"}, []string{"company"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.Upsert(ctx, &models.Profile{UserID: owner.ID, Handle: "ada", Status: "dev", Skills: []string{"go"}}, []string{"handle", "status", "skills"})
	require.NoError(t, err)

	patched, err := repo.Patch(ctx, &models.Profile{UserID: owner.ID, Company: "Acme"}, []string{"company"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", patched.Company)
	assert.Equal(t, "ada", patched.Handle)
	assert.Equal(t, "dev", patched.Status)
	assert.Equal(t, []string{"go"}, patched.Skills)
}

func TestGORMProfileRepository_Experience(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMProfileRepository(db)
	owner := createUser(t, users, "Ada", "ada@example.com")

	profile, err := repo.Upsert(ctx, &models.Profile{UserID: owner.ID, Handle: "ada", Status: "dev", Skills: []string{"go"}}, []string{"handle", "status", "skills"})
	require.NoError(t, err)
	assert.Empty(t, profile.Experience)

	first := &models.Experience{ProfileID: profile.ID, Title: "Eng", Company: "Acme"}
	require.NoError(t, repo.AddExperience(ctx, first))
	second := &models.Experience{ProfileID: profile.ID, Title: "Lead", Company: "Acme"}
	require.NoError(t, repo.AddExperience(ctx, second))
	assert.Greater(t, second.Seq, first.Seq)

	profile, err = repo.GetByUserID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, second.ID, profile.Experience[0].ID)
	assert.Equal(t, first.ID, profile.Experience[1].ID)

	removed, err := repo.RemoveExperience(ctx, profile.ID, "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.RemoveExperience(ctx, profile.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	profile, err = repo.GetByUserID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, first.ID, profile.Experience[0].ID)
}

func TestGORMUserRepository_DeleteCascades(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMProfileRepository(db)
	owner := createUser(t, users, "Ada", "ada@example.com")

	profile, err := repo.Upsert(ctx, &models.Profile{UserID: owner.ID, Handle: "ada", Status: "dev", Skills: []string{"go"}}, []string{"handle", "status", "skills"})
	require.NoError(t, err)
	require.NoError(t, repo.AddExperience(ctx, &models.Experience{ProfileID: profile.ID, Title: "Eng", Company: "Acme"}))

	require.NoError(t, users.Delete(ctx, owner.ID))

	_, err = users.GetByID(ctx, owner.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.GetByUserID(ctx, owner.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	var experiences int64
	require.NoError(t, db.Model(&models.Experience{}).Count(&experiences).Error)
	assert.Zero(t, experiences)
}

func TestGORMUserRepository_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	createUser(t, users, "Ada", "ada@example.com")

	err := users.Create(ctx, &models.User{Name: "Other", Email: "ada@example.com", Password: "hash"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	found, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)
}

func TestGORMProfileRepository_ExperienceOrderFollowsInsertSequence(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMProfileRepository(db)
	owner := createUser(t, users, "Ada", "ada@example.com")

	profile, err := repo.Upsert(ctx, &models.Profile{UserID: owner.ID, Handle: "ada", Status: "dev", Skills: []string{"go"}}, []string{"handle", "status", "skills"})
	require.NoError(t, err)

	var added []string
	for i := 0; i < 5; i++ {
		exp := &models.Experience{ProfileID: profile.ID, Title: fmt.Sprintf("Role %d", i), Company: "Acme"}
		require.NoError(t, repo.AddExperience(ctx, exp))
		added = append(added, exp.ID)
	}

	profile, err = repo.GetByUserID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, profile.Experience, len(added))
	for i, exp := range profile.Experience {
		assert.Equal(t, added[len(added)-1-i], exp.ID)
		if i > 0 {
			assert.Less(t, exp.Seq, profile.Experience[i-1].Seq)
		}
	}
}
