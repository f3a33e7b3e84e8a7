package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campushire/campushire/internal/app/auth"
	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/app/repositories"
	"github.com/campushire/campushire/internal/app/repositories/user"
	"github.com/campushire/campushire/internal/pkg/apperrors"
)

// In-memory fakes mirroring the repository error semantics, so the services
// can be exercised without a database.

type fakeUserStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*models.User
	students  map[int64]*models.Student  // keyed by user ID
	employers map[int64]*models.Employer // keyed by user ID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:     make(map[int64]*models.User),
		students:  make(map[int64]*models.Student),
		employers: make(map[int64]*models.Employer),
	}
}

func (f *fakeUserStore) RegisterStudent(ctx context.Context, u *models.User, s *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	s.UserID = u.ID
	f.nextID++
	s.ID = f.nextID
	f.users[u.ID] = u
	f.students[u.ID] = s
	return nil
}

func (f *fakeUserStore) RegisterEmployer(ctx context.Context, u *models.User, e *models.Employer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	e.UserID = u.ID
	f.nextID++
	e.ID = f.nextID
	f.users[u.ID] = u
	f.employers[u.ID] = e
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserStore) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserStore) UpdateUserProfile(ctx context.Context, userID int64, update user.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.PhoneNumber != nil {
		u.PhoneNumber = update.PhoneNumber
	}
	if update.Gender != nil {
		u.Gender = update.Gender
	}
	return nil
}

func (f *fakeUserStore) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.students[userID]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentProfileNotFound
}

func (f *fakeUserStore) GetEmployerByUserID(ctx context.Context, userID int64) (*models.Employer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.employers[userID]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEmployerProfileNotFound
}

func (f *fakeUserStore) UpdateStudentFields(ctx context.Context, userID int64, update user.StudentFieldsUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[userID]
	if !ok {
		return apperrors.ErrStudentProfileNotFound
	}
	if update.Degree != nil {
		s.Degree = *update.Degree
	}
	if update.YearOfStudy != nil {
		s.YearOfStudy = *update.YearOfStudy
	}
	if update.Bio != nil {
		s.Bio = *update.Bio
	}
	if update.Address != nil {
		s.Address = update.Address
	}
	if update.City != nil {
		s.City = update.City
	}
	if update.Province != nil {
		s.Province = update.Province
	}
	if update.Zip != nil {
		s.Zip = update.Zip
	}
	return nil
}

func (f *fakeUserStore) UpdateStudentCV(ctx context.Context, userID int64, cvURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[userID]
	if !ok {
		return apperrors.ErrStudentProfileNotFound
	}
	s.CVURL = &cvURL
	return nil
}

func (f *fakeUserStore) UpdateStudentProfilePicture(ctx context.Context, userID int64, pictureURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[userID]
	if !ok {
		return apperrors.ErrStudentProfileNotFound
	}
	s.ProfilePicture = &pictureURL
	return nil
}

func (f *fakeUserStore) UpdateEmployerFields(ctx context.Context, userID int64, companyName, industry *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employers[userID]
	if !ok {
		return apperrors.ErrEmployerProfileNotFound
	}
	if companyName != nil {
		e.CompanyName = *companyName
	}
	if industry != nil {
		e.Industry = *industry
	}
	return nil
}

func (f *fakeUserStore) studentByProfileID(id int64) *models.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (f *fakeUserStore) employerByProfileID(id int64) *models.Employer {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employers {
		if e.ID == id {
			return e
		}
	}
	return nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[int64]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[int64]string)}
}

func (f *fakeTokenStore) GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.tokens[userID]; ok {
		return existing, nil
	}
	f.tokens[userID] = candidate
	return candidate, nil
}

func (f *fakeTokenStore) GetUserIDByToken(ctx context.Context, token string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, t := range f.tokens {
		if t == token {
			return userID, nil
		}
	}
	return 0, apperrors.ErrTokenNotFound
}

func (f *fakeTokenStore) DeleteByUserID(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, userID)
	return nil
}

type fakeJobStore struct {
	mu        sync.Mutex
	nextID    int64
	order     []int64
	jobs      map[int64]*models.Job
	appCounts map[int64]int64
	users     *fakeUserStore
}

func newFakeJobStore(users *fakeUserStore) *fakeJobStore {
	return &fakeJobStore{
		jobs:      make(map[int64]*models.Job),
		appCounts: make(map[int64]int64),
		users:     users,
	}
}

func (f *fakeJobStore) Create(ctx context.Context, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	job.ID = f.nextID
	job.PostedAt = time.Now()
	f.jobs[job.ID] = job
	f.order = append(f.order, job.ID)
	return nil
}

func (f *fakeJobStore) GetByID(ctx context.Context, id int64) (*models.Job, int64, error) {
	f.mu.Lock()
	job, ok := f.jobs[id]
	count := f.appCounts[id]
	f.mu.Unlock()
	if !ok {
		return nil, 0, apperrors.ErrJobNotFound
	}
	if job.Employer == nil {
		job.Employer = f.users.employerByProfileID(job.EmployerID)
	}
	return job, count, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (f *fakeJobStore) matches(job *models.Job, filter repositories.JobFilter) bool {
	if !job.IsActive {
		return false
	}
	if filter.Search != "" {
		companyName := ""
		if employer := f.users.employerByProfileID(job.EmployerID); employer != nil {
			companyName = employer.CompanyName
		}
		if !containsFold(job.Title, filter.Search) && !containsFold(job.Description, filter.Search) &&
			!containsFold(job.DetailedExperience, filter.Search) && !containsFold(companyName, filter.Search) {
			return false
		}
	}
	if filter.Location != "" && !containsFold(job.Location, filter.Location) {
		return false
	}
	if filter.JobType != "" && !containsFold(job.JobType, filter.JobType) {
		return false
	}
	if filter.Experience != "" && !containsFold(job.Experience, filter.Experience) {
		return false
	}
	return true
}

func (f *fakeJobStore) ListActive(ctx context.Context, filter repositories.JobFilter, offset, limit int) ([]*models.Job, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.Job
	// newest first, like the real query
	for i := len(f.order) - 1; i >= 0; i-- {
		job := f.jobs[f.order[i]]
		if f.matches(job, filter) {
			matched = append(matched, job)
		}
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeJobStore) ListByEmployer(ctx context.Context, employerID int64) ([]repositories.JobWithCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []repositories.JobWithCount
	for i := len(f.order) - 1; i >= 0; i-- {
		job := f.jobs[f.order[i]]
		if job.EmployerID == employerID {
			result = append(result, repositories.JobWithCount{
				Job:               *job,
				ApplicationsCount: f.appCounts[job.ID],
			})
		}
	}
	return result, nil
}

func (f *fakeJobStore) UpdateOwned(ctx context.Context, jobID, employerID int64, update repositories.JobUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job, ok := f.jobs[jobID]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	if job.EmployerID != employerID {
		return apperrors.ErrPermissionDenied
	}
	if update.Title != nil {
		job.Title = *update.Title
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.JobType != nil {
		job.JobType = *update.JobType
	}
	if update.Experience != nil {
		job.Experience = *update.Experience
	}
	if update.DetailedExperience != nil {
		job.DetailedExperience = *update.DetailedExperience
	}
	if update.Education != nil {
		job.Education = *update.Education
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.SalaryRange != nil {
		job.SalaryRange = *update.SalaryRange
	}
	if update.Vacancies != nil {
		job.Vacancies = *update.Vacancies
	}
	if update.IsActive != nil {
		job.IsActive = *update.IsActive
	}
	if update.Deadline != nil {
		job.Deadline = update.Deadline
	}
	return nil
}

func (f *fakeJobStore) DeleteOwned(ctx context.Context, jobID, employerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job, ok := f.jobs[jobID]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	if job.EmployerID != employerID {
		return apperrors.ErrPermissionDenied
	}
	delete(f.jobs, jobID)
	delete(f.appCounts, jobID)
	for i, id := range f.order {
		if id == jobID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeJobStore) Stats(ctx context.Context, employerID int64) (*repositories.JobStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := &repositories.JobStats{}
	for _, job := range f.jobs {
		if job.EmployerID != employerID {
			continue
		}
		stats.TotalJobs++
		if job.IsActive {
			stats.ActiveJobs++
		}
		stats.TotalApplications += f.appCounts[job.ID]
	}
	return stats, nil
}

func (f *fakeJobStore) CountsByCategory(ctx context.Context) ([]repositories.CategoryCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	byCategory := make(map[string]int64)
	for _, job := range f.jobs {
		if job.IsActive {
			byCategory[job.JobType]++
		}
	}

	result := make([]repositories.CategoryCount, 0, len(byCategory))
	for category, count := range byCategory {
		result = append(result, repositories.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}

type fakeApplicationStore struct {
	mu     sync.Mutex
	nextID int64
	order  []int64
	apps   map[int64]*models.Application
	jobs   *fakeJobStore
	users  *fakeUserStore
}

func newFakeApplicationStore(jobs *fakeJobStore, users *fakeUserStore) *fakeApplicationStore {
	return &fakeApplicationStore{
		apps:  make(map[int64]*models.Application),
		jobs:  jobs,
		users: users,
	}
}

func (f *fakeApplicationStore) Create(ctx context.Context, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return apperrors.ErrAlreadyApplied
		}
	}

	f.nextID++
	app.ID = f.nextID
	app.AppliedAt = time.Now()
	stored := *app
	f.apps[app.ID] = &stored
	f.order = append(f.order, app.ID)

	f.jobs.mu.Lock()
	f.jobs.appCounts[app.JobID]++
	f.jobs.mu.Unlock()
	return nil
}

// withRelations returns a copy with the job (including its employer) and the
// applicant (including their account) attached, like the joined repo query.
func (f *fakeApplicationStore) withRelations(app *models.Application) *models.Application {
	clone := *app
	if job, _, err := f.jobs.GetByID(context.Background(), app.JobID); err == nil {
		clone.Job = job
	}
	if student := f.users.studentByProfileID(app.ApplicantID); student != nil {
		if student.User == nil {
			student.User, _ = f.users.GetByID(context.Background(), student.UserID)
		}
		clone.Applicant = student
	}
	return &clone
}

func (f *fakeApplicationStore) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	f.mu.Lock()
	app, ok := f.apps[id]
	f.mu.Unlock()
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return f.withRelations(app), nil
}

func (f *fakeApplicationStore) ListByApplicant(ctx context.Context, applicantID int64) ([]*models.Application, error) {
	f.mu.Lock()
	ids := make([]int64, len(f.order))
	copy(ids, f.order)
	f.mu.Unlock()

	var result []*models.Application
	for i := len(ids) - 1; i >= 0; i-- {
		f.mu.Lock()
		app := f.apps[ids[i]]
		f.mu.Unlock()
		if app != nil && app.ApplicantID == applicantID {
			result = append(result, f.withRelations(app))
		}
	}
	return result, nil
}

func (f *fakeApplicationStore) ListByJob(ctx context.Context, jobID int64) ([]*models.Application, error) {
	f.mu.Lock()
	ids := make([]int64, len(f.order))
	copy(ids, f.order)
	f.mu.Unlock()

	var result []*models.Application
	for i := len(ids) - 1; i >= 0; i-- {
		f.mu.Lock()
		app := f.apps[ids[i]]
		f.mu.Unlock()
		if app != nil && app.JobID == jobID {
			result = append(result, f.withRelations(app))
		}
	}
	return result, nil
}

func (f *fakeApplicationStore) UpdateStatusOwned(ctx context.Context, id, employerID int64, status models.ApplicationStatus, notes *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	job, ok := f.jobs.jobs[app.JobID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	if job.EmployerID != employerID {
		return apperrors.ErrPermissionDenied
	}
	app.Status = status
	if notes != nil {
		app.EmployerNotes = *notes
	}
	return nil
}

type fakeEmailService struct {
	mu        sync.Mutex
	sentTo    []string
	resetURLs []string
}

func (f *fakeEmailService) SendPasswordResetEmail(toEmail, toName, resetURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentTo = append(f.sentTo, toEmail)
	f.resetURLs = append(f.resetURLs, resetURL)
	return nil
}

// testEnv bundles the fakes with an authorization service wired against them.
type testEnv struct {
	users  *fakeUserStore
	tokens *fakeTokenStore
	jobs   *fakeJobStore
	apps   *fakeApplicationStore
	email  *fakeEmailService
	authz  *auth.AuthorizationService
}

func newTestEnv() *testEnv {
	users := newFakeUserStore()
	jobs := newFakeJobStore(users)
	return &testEnv{
		users:  users,
		tokens: newFakeTokenStore(),
		jobs:   jobs,
		apps:   newFakeApplicationStore(jobs, users),
		email:  &fakeEmailService{},
		authz:  auth.NewAuthorizationService(users, jobs),
	}
}

func (e *testEnv) addStudent(username, studentID string, cvURL *string) (*models.User, *models.Student) {
	u := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		FirstName: "Alex",
		LastName:  "Test",
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}
	s := &models.Student{StudentID: studentID, Degree: "BSc", YearOfStudy: "3", CVURL: cvURL}
	if err := e.users.RegisterStudent(context.Background(), u, s); err != nil {
		panic(err)
	}
	s.User = u
	return u, s
}

func (e *testEnv) addEmployer(username, company string) (*models.User, *models.Employer) {
	u := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		FirstName: "Alex",
		LastName:  "Test",
		RoleType:  models.RoleEmployer,
		IsActive:  true,
	}
	emp := &models.Employer{CompanyName: company, Industry: "Tech"}
	if err := e.users.RegisterEmployer(context.Background(), u, emp); err != nil {
		panic(err)
	}
	emp.User = u
	return u, emp
}

func (e *testEnv) addJob(employer *models.Employer, title, jobType string, active bool) *models.Job {
	job := &models.Job{
		EmployerID:  employer.ID,
		Title:       title,
		Description: "A role with plenty of interesting work to do.",
		JobType:     jobType,
		Location:    "Remote",
		Vacancies:   1,
		IsActive:    active,
	}
	if err := e.jobs.Create(context.Background(), job); err != nil {
		panic(err)
	}
	return job
}
