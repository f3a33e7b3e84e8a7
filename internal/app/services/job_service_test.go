package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushire/campushire/internal/app/models/dto"
	"github.com/campushire/campushire/internal/pkg/apperrors"
)

func newJobService(e *testEnv) *JobService {
	return NewJobService(e.jobs, e.authz)
}

func createJobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Design and run the services behind our hiring platform.",
		JobType:     "Engineering",
		Location:    "Remote",
		Experience:  "2+ years",
	}
}

func TestCreateJob(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	employerUser, employer := e.addEmployer("acme", "Acme Inc")

	resp, err := svc.Create(ctx, employerUser.ID, createJobRequest())
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", resp.Title)
	assert.True(t, resp.IsActive, "new postings default to active")
	assert.Equal(t, 1, resp.Vacancies, "vacancies default to one")
	require.NotNil(t, resp.Company)
	assert.Equal(t, "Acme Inc", resp.Company.Name)

	stored, _, err := e.jobs.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, employer.ID, stored.EmployerID, "ownership comes from the caller, not the payload")
}

func TestCreateJobRejectsNonEmployers(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	studentUser, _ := e.addStudent("jdoe", "S100", nil)

	_, err := svc.Create(ctx, studentUser.ID, createJobRequest())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateJobValidation(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	employerUser, _ := e.addEmployer("acme", "Acme Inc")

	t.Run("title too short", func(t *testing.T) {
		req := createJobRequest()
		req.Title = "Dev"
		_, err := svc.Create(ctx, employerUser.ID, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("description too short", func(t *testing.T) {
		req := createJobRequest()
		req.Description = "Write code"
		_, err := svc.Create(ctx, employerUser.ID, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("whitespace does not count", func(t *testing.T) {
		req := createJobRequest()
		req.Title = "  Dev   "
		_, err := svc.Create(ctx, employerUser.ID, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		req := createJobRequest()
		req.Title = "開発者" // three characters, nine bytes
		_, err := svc.Create(ctx, employerUser.ID, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		req = createJobRequest()
		req.Title = "エンジニア募集"
		_, err = svc.Create(ctx, employerUser.ID, req)
		assert.NoError(t, err)
	})
}

func TestListActiveHidesInactiveJobs(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	_, employer := e.addEmployer("acme", "Acme Inc")
	e.addJob(employer, "Backend Engineer", "Engineering", true)
	e.addJob(employer, "Closed Position", "Engineering", false)

	resp, err := svc.ListActive(ctx, dto.JobFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Backend Engineer", resp.Jobs[0].Title)
	assert.Equal(t, int64(1), resp.Pagination.TotalItems)
}

func TestListActiveFilters(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	_, employer := e.addEmployer("acme", "Acme Inc")
	backend := e.addJob(employer, "Backend Engineer", "Engineering", true)
	backend.Location = "Berlin"
	frontend := e.addJob(employer, "Frontend Engineer", "Engineering", true)
	frontend.Location = "Remote"
	backend.DetailedExperience = "Hands-on Kubernetes operations in production"
	e.addJob(employer, "Product Designer", "Design", true)

	t.Run("by category", func(t *testing.T) {
		resp, err := svc.ListActive(ctx, dto.JobFilter{JobType: "Design"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Product Designer", resp.Jobs[0].Title)
	})

	t.Run("by location substring", func(t *testing.T) {
		resp, err := svc.ListActive(ctx, dto.JobFilter{Location: "berl"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Backend Engineer", resp.Jobs[0].Title)
	})

	t.Run("by search term", func(t *testing.T) {
		resp, err := svc.ListActive(ctx, dto.JobFilter{Search: "frontend"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Frontend Engineer", resp.Jobs[0].Title)
	})

	t.Run("search covers detailed experience", func(t *testing.T) {
		resp, err := svc.ListActive(ctx, dto.JobFilter{Search: "kubernetes"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Backend Engineer", resp.Jobs[0].Title)
	})

	t.Run("by category substring", func(t *testing.T) {
		resp, err := svc.ListActive(ctx, dto.JobFilter{JobType: "des"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Product Designer", resp.Jobs[0].Title)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		resp, err := svc.ListActive(ctx, dto.JobFilter{JobType: "Engineering", Location: "Remote"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Frontend Engineer", resp.Jobs[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		resp, err := svc.ListActive(ctx, dto.JobFilter{Search: "astronaut"}, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, resp.Jobs)
		assert.Equal(t, int64(0), resp.Pagination.TotalItems)
	})
}

func TestListActivePagination(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	_, employer := e.addEmployer("acme", "Acme Inc")
	for i := 0; i < 5; i++ {
		e.addJob(employer, "Backend Engineer", "Engineering", true)
	}

	page1, err := svc.ListActive(ctx, dto.JobFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1.Jobs, 2)
	assert.Equal(t, int64(5), page1.Pagination.TotalItems)
	assert.Equal(t, 3, page1.Pagination.TotalPages)

	page3, err := svc.ListActive(ctx, dto.JobFilter{}, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3.Jobs, 1)
}

func TestGetJobReturnsInactivePostings(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	_, employer := e.addEmployer("acme", "Acme Inc")
	job := e.addJob(employer, "Closed Position", "Engineering", false)

	resp, err := svc.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	_, err = svc.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestUpdateJobOwnership(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	ownerUser, owner := e.addEmployer("acme", "Acme Inc")
	otherUser, _ := e.addEmployer("globex", "Globex")
	job := e.addJob(owner, "Backend Engineer", "Engineering", true)

	newTitle := "Senior Backend Engineer"

	t.Run("owner can update", func(t *testing.T) {
		resp, err := svc.Update(ctx, ownerUser.ID, job.ID, &dto.UpdateJobRequest{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, newTitle, resp.Title)
	})

	t.Run("foreign employer is denied", func(t *testing.T) {
		_, err := svc.Update(ctx, otherUser.ID, job.ID, &dto.UpdateJobRequest{Title: &newTitle})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("missing job reports not found", func(t *testing.T) {
		_, err := svc.Update(ctx, ownerUser.ID, 9999, &dto.UpdateJobRequest{Title: &newTitle})
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})

	t.Run("updated title is still validated", func(t *testing.T) {
		bad := "Dev"
		_, err := svc.Update(ctx, ownerUser.ID, job.ID, &dto.UpdateJobRequest{Title: &bad})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("deactivating hides the job from the public list", func(t *testing.T) {
		inactive := false
		_, err := svc.Update(ctx, ownerUser.ID, job.ID, &dto.UpdateJobRequest{IsActive: &inactive})
		require.NoError(t, err)

		listed, err := svc.ListActive(ctx, dto.JobFilter{}, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, listed.Jobs)
	})
}

func TestDeleteJobOwnership(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	ownerUser, owner := e.addEmployer("acme", "Acme Inc")
	otherUser, _ := e.addEmployer("globex", "Globex")
	job := e.addJob(owner, "Backend Engineer", "Engineering", true)

	assert.ErrorIs(t, svc.Delete(ctx, otherUser.ID, job.ID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(ctx, ownerUser.ID, 9999), apperrors.ErrJobNotFound)

	require.NoError(t, svc.Delete(ctx, ownerUser.ID, job.ID))
	_, err := svc.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestListMineAndStats(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	ownerUser, owner := e.addEmployer("acme", "Acme Inc")
	_, other := e.addEmployer("globex", "Globex")

	active := e.addJob(owner, "Backend Engineer", "Engineering", true)
	e.addJob(owner, "Closed Position", "Engineering", false)
	e.addJob(other, "Product Designer", "Design", true)

	e.jobs.appCounts[active.ID] = 3

	mine, err := svc.ListMine(ctx, ownerUser.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2, "own listing includes inactive postings")
	for _, job := range mine {
		assert.NotEqual(t, "Product Designer", job.Title)
	}

	stats, err := svc.Stats(ctx, ownerUser.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalJobs)
	assert.Equal(t, int64(1), stats.ActiveJobs)
	assert.Equal(t, int64(3), stats.TotalApplications)
}

func TestCountsByCategory(t *testing.T) {
	e := newTestEnv()
	svc := newJobService(e)
	ctx := context.Background()

	_, employer := e.addEmployer("acme", "Acme Inc")
	e.addJob(employer, "Backend Engineer", "Engineering", true)
	e.addJob(employer, "Frontend Engineer", "Engineering", true)
	e.addJob(employer, "Product Designer", "Design", true)
	e.addJob(employer, "Old Role Posting", "Design", false)

	counts, err := svc.CountsByCategory(ctx)
	require.NoError(t, err)

	require.Len(t, counts, 2)
	assert.Equal(t, dto.CategoryCount{Category: "Engineering", Count: 2}, counts[0])
	assert.Equal(t, dto.CategoryCount{Category: "Design", Count: 1}, counts[1])
}
