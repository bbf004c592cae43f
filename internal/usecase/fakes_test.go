package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/interview"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/note"
	"talentbridge/internal/domain/offer"
	"talentbridge/internal/domain/skill"
	"talentbridge/internal/domain/user"
	"talentbridge/internal/events"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

type fakeUsers struct {
	byID map[uuid.UUID]user.User
	err  error
}

func newFakeUsers(users ...user.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]user.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u user.User) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return user.User{}, repository.ErrDuplicate
		}
	}
	u.CreatedAt, u.UpdatedAt = testNow, testNow
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, repository.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u user.User) (user.User, error) {
	if _, ok := f.byID[u.ID]; !ok {
		return user.User{}, repository.ErrNotFound
	}
	f.byID[u.ID] = u
	return u, nil
}

type fakeProfiles struct {
	byID map[uuid.UUID]user.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[uuid.UUID]user.Profile{}}
}

func (f *fakeProfiles) set(id uuid.UUID, skills ...string) {
	f.byID[id] = user.Profile{UserID: id, Skills: skills}
}

func (f *fakeProfiles) Get(_ context.Context, id uuid.UUID) (user.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return user.Profile{UserID: id, Skills: []string{}}, nil
	}
	return p, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p user.Profile) (user.Profile, error) {
	p.UpdatedAt = testNow
	f.byID[p.UserID] = p
	return p, nil
}

func (f *fakeProfiles) SkillsByUserIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]string, error) {
	out := map[uuid.UUID][]string{}
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out[id] = p.Skills
		}
	}
	return out, nil
}

type fakeSkills struct {
	names   []string
	ensured [][]string
	calls   int
}

func (f *fakeSkills) SuggestByPrefix(_ context.Context, prefix string, limit int) ([]skill.Skill, error) {
	f.calls++
	out := []skill.Skill{}
	for _, n := range f.names {
		if strings.HasPrefix(n, prefix) && len(out) < limit {
			out = append(out, skill.Skill{ID: uuid.New(), Name: n})
		}
	}
	return out, nil
}

func (f *fakeSkills) EnsureNames(_ context.Context, names []string) error {
	f.ensured = append(f.ensured, names)
	return nil
}

type fakeJobs struct {
	byID    map[uuid.UUID]job.Job
	listErr error
	lists   []repository.JobListFilter
	// afterList runs once the rows are read, standing in for a concurrent write.
	afterList func()
}

func newFakeJobs(jobs ...job.Job) *fakeJobs {
	f := &fakeJobs{byID: map[uuid.UUID]job.Job{}}
	for _, j := range jobs {
		f.byID[j.ID] = j
	}
	return f
}

func (f *fakeJobs) Create(_ context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	j.Status = job.StatusOpen
	j.CreatedAt, j.UpdatedAt = testNow, testNow
	f.byID[j.ID] = j
	return j, nil
}

func (f *fakeJobs) Update(_ context.Context, j job.Job) (job.Job, error) {
	cur, ok := f.byID[j.ID]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	j.Status, j.CreatedAt, j.ClosedAt = cur.Status, cur.CreatedAt, cur.ClosedAt
	f.byID[j.ID] = j
	return j, nil
}

func (f *fakeJobs) Close(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	now := testNow
	j.Status, j.ClosedAt = job.StatusClosed, &now
	f.byID[id] = j
	return j, nil
}

func (f *fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobs) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]job.Job, error) {
	out := []job.Job{}
	for _, j := range f.byID {
		if j.EmployerID == employerID {
			out = append(out, j)
		}
	}
	return out, nil
}

// ListOpen matches variants against titles only, newest first.
func (f *fakeJobs) ListOpen(_ context.Context, filter repository.JobListFilter) ([]job.Job, error) {
	f.lists = append(f.lists, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []job.Job{}
	for _, j := range f.byID {
		if !j.IsOpen() {
			continue
		}
		if len(filter.TitleVariants) > 0 {
			hit := false
			for _, v := range filter.TitleVariants {
				if strings.Contains(strings.ToLower(j.Title), v) {
					hit = true
				}
			}
			if !hit {
				continue
			}
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if f.afterList != nil {
		f.afterList()
	}
	return out, nil
}

type fakeApps struct {
	byID  map[uuid.UUID]application.Application
	names map[uuid.UUID]string
	prof  *fakeProfiles
	jobs  *fakeJobs
	// Set by newFakeInterviews and newFakeOffers so terminal moves can settle them.
	interviews *fakeInterviews
	offers     *fakeOffers
	// staleOnUpdate simulates a concurrent writer.
	staleOnUpdate bool
}

func newFakeApps(prof *fakeProfiles, jobs *fakeJobs) *fakeApps {
	return &fakeApps{byID: map[uuid.UUID]application.Application{}, names: map[uuid.UUID]string{}, prof: prof, jobs: jobs}
}

func (f *fakeApps) add(a application.Application) application.Application {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusApplied
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = testNow
	}
	a.UpdatedAt = a.CreatedAt
	f.byID[a.ID] = a
	return a
}

func (f *fakeApps) Create(_ context.Context, a application.Application) (application.Application, error) {
	for _, existing := range f.byID {
		if existing.JobID == a.JobID && existing.CandidateID == a.CandidateID {
			return application.Application{}, repository.ErrDuplicate
		}
	}
	return f.add(a), nil
}

func (f *fakeApps) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := f.byID[id]
	if !ok {
		return application.Application{}, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeApps) ListByJob(ctx context.Context, jobID uuid.UUID) ([]repository.ApplicantRow, error) {
	out := []repository.ApplicantRow{}
	for _, a := range f.byID {
		if a.JobID != jobID {
			continue
		}
		p, _ := f.prof.Get(ctx, a.CandidateID)
		out = append(out, repository.ApplicantRow{
			Application:     a,
			CandidateName:   f.names[a.CandidateID],
			CandidateSkills: p.Skills,
		})
	}
	return out, nil
}

func (f *fakeApps) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]repository.TrackerRow, error) {
	out := []repository.TrackerRow{}
	for _, a := range f.byID {
		if a.CandidateID != candidateID {
			continue
		}
		j := f.jobs.byID[a.JobID]
		p, _ := f.prof.Get(ctx, candidateID)
		out = append(out, repository.TrackerRow{
			Application:     a,
			JobTitle:        j.Title,
			CompanyName:     j.CompanyName,
			JobStatus:       string(j.Status),
			RequiredSkills:  j.RequiredSkills,
			CandidateSkills: p.Skills,
		})
	}
	return out, nil
}

func (f *fakeApps) UpdateStatus(_ context.Context, id uuid.UUID, from, to application.Status) (repository.StatusChange, error) {
	a, ok := f.byID[id]
	if !ok {
		return repository.StatusChange{}, repository.ErrNotFound
	}
	if f.staleOnUpdate || a.Status != from {
		return repository.StatusChange{}, repository.ErrStaleState
	}
	a.Status = to
	f.byID[id] = a

	change := repository.StatusChange{Application: a}
	if !to.Terminal() {
		return change, nil
	}
	if f.interviews != nil {
		for ivID, iv := range f.interviews.byID {
			if iv.ApplicationID == id && iv.Status == interview.StatusScheduled {
				iv.Status = interview.StatusCancelled
				f.interviews.byID[ivID] = iv
				change.CancelledInterviews = append(change.CancelledInterviews, iv)
			}
		}
	}
	if f.offers != nil {
		for oID, o := range f.offers.byID {
			if o.ApplicationID == id && o.Status == offer.StatusPending {
				o.Status = offer.StatusWithdrawn
				f.offers.byID[oID] = o
				change.WithdrawnOffers = append(change.WithdrawnOffers, o)
			}
		}
	}
	return change, nil
}

type fakeInterviews struct {
	apps *fakeApps
	byID map[uuid.UUID]interview.Interview
}

func newFakeInterviews(apps *fakeApps) *fakeInterviews {
	f := &fakeInterviews{apps: apps, byID: map[uuid.UUID]interview.Interview{}}
	apps.interviews = f
	return f
}

func (f *fakeInterviews) CreateAndAdvance(_ context.Context, iv interview.Interview) (interview.Interview, application.Application, error) {
	app, ok := f.apps.byID[iv.ApplicationID]
	if !ok {
		return interview.Interview{}, application.Application{}, repository.ErrNotFound
	}
	for _, other := range f.byID {
		if other.EmployerID == iv.EmployerID && other.Status == interview.StatusScheduled && other.Overlaps(iv.ScheduledAt, iv.EndsAt()) {
			return interview.Interview{}, application.Application{}, repository.ErrOverlap
		}
	}
	iv.ID = uuid.New()
	iv.Status = interview.StatusScheduled
	f.byID[iv.ID] = iv

	app.Status = application.StatusInterviewing
	f.apps.byID[app.ID] = app
	return iv, app, nil
}

func (f *fakeInterviews) GetByID(_ context.Context, id uuid.UUID) (interview.Interview, error) {
	iv, ok := f.byID[id]
	if !ok {
		return interview.Interview{}, repository.ErrNotFound
	}
	return iv, nil
}

func (f *fakeInterviews) ListByApplication(_ context.Context, appID uuid.UUID) ([]interview.Interview, error) {
	out := []interview.Interview{}
	for _, iv := range f.byID {
		if iv.ApplicationID == appID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeInterviews) UpdateStatus(_ context.Context, id uuid.UUID, from, to interview.Status) (interview.Interview, error) {
	iv, ok := f.byID[id]
	if !ok {
		return interview.Interview{}, repository.ErrNotFound
	}
	if iv.Status != from {
		return interview.Interview{}, repository.ErrStaleState
	}
	iv.Status = to
	f.byID[id] = iv
	return iv, nil
}

func (f *fakeInterviews) ListUpcomingForUser(_ context.Context, userID uuid.UUID, now time.Time, _ int) ([]repository.UpcomingInterview, error) {
	out := []repository.UpcomingInterview{}
	for _, iv := range f.byID {
		app := f.apps.byID[iv.ApplicationID]
		if iv.Status != interview.StatusScheduled || !iv.ScheduledAt.After(now) {
			continue
		}
		if iv.EmployerID != userID && app.CandidateID != userID {
			continue
		}
		out = append(out, repository.UpcomingInterview{Interview: iv, JobID: app.JobID, CandidateID: app.CandidateID})
	}
	return out, nil
}

type fakeOffers struct {
	apps *fakeApps
	byID map[uuid.UUID]offer.Offer
}

func newFakeOffers(apps *fakeApps) *fakeOffers {
	f := &fakeOffers{apps: apps, byID: map[uuid.UUID]offer.Offer{}}
	apps.offers = f
	return f
}

func (f *fakeOffers) CreateAndAdvance(_ context.Context, o offer.Offer) (offer.Offer, application.Application, error) {
	app, ok := f.apps.byID[o.ApplicationID]
	if !ok {
		return offer.Offer{}, application.Application{}, repository.ErrNotFound
	}
	for _, other := range f.byID {
		if other.ApplicationID == o.ApplicationID && other.Status == offer.StatusPending {
			return offer.Offer{}, application.Application{}, repository.ErrDuplicate
		}
	}
	o.ID = uuid.New()
	o.Status = offer.StatusPending
	o.CreatedAt = testNow
	f.byID[o.ID] = o

	app.Status = application.StatusOffered
	f.apps.byID[app.ID] = app
	return o, app, nil
}

func (f *fakeOffers) Respond(_ context.Context, id uuid.UUID, accept bool, now time.Time) (offer.Offer, application.Application, error) {
	o, ok := f.byID[id]
	if !ok {
		return offer.Offer{}, application.Application{}, repository.ErrNotFound
	}
	if o.Status != offer.StatusPending {
		return offer.Offer{}, application.Application{}, repository.ErrStaleState
	}
	app := f.apps.byID[o.ApplicationID]
	if accept {
		o.Status, app.Status = offer.StatusAccepted, application.StatusHired
	} else {
		o.Status, app.Status = offer.StatusDeclined, application.StatusDeclined
	}
	o.RespondedAt = &now
	f.byID[id] = o
	f.apps.byID[app.ID] = app
	return o, app, nil
}

func (f *fakeOffers) Withdraw(_ context.Context, id uuid.UUID) (offer.Offer, error) {
	o, ok := f.byID[id]
	if !ok {
		return offer.Offer{}, repository.ErrNotFound
	}
	if o.Status != offer.StatusPending {
		return offer.Offer{}, repository.ErrStaleState
	}
	o.Status = offer.StatusWithdrawn
	f.byID[id] = o
	return o, nil
}

func (f *fakeOffers) GetByID(_ context.Context, id uuid.UUID) (offer.Offer, error) {
	o, ok := f.byID[id]
	if !ok {
		return offer.Offer{}, repository.ErrNotFound
	}
	return o, nil
}

func (f *fakeOffers) ListByApplication(_ context.Context, appID uuid.UUID) ([]offer.Offer, error) {
	out := []offer.Offer{}
	for _, o := range f.byID {
		if o.ApplicationID == appID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeNotes struct {
	byID map[uuid.UUID]note.Note
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{byID: map[uuid.UUID]note.Note{}}
}

func (f *fakeNotes) Create(_ context.Context, n note.Note) (note.Note, error) {
	n.ID = uuid.New()
	n.CreatedAt = testNow
	f.byID[n.ID] = n
	return n, nil
}

func (f *fakeNotes) GetByID(_ context.Context, id uuid.UUID) (note.Note, error) {
	n, ok := f.byID[id]
	if !ok {
		return note.Note{}, repository.ErrNotFound
	}
	return n, nil
}

func (f *fakeNotes) ListByApplication(_ context.Context, appID uuid.UUID) ([]note.Note, error) {
	out := []note.Note{}
	for _, n := range f.byID {
		if n.ApplicationID == appID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotes) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// memCache is an in-process SearchCache.
type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) keys(prefix string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// SetIfNotExists shares one keyspace with the JSON values, like Redis.
func (c *memCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, taken := c.data[key]; taken {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

func (c *memCache) InvalidateNamespaces(_ context.Context, namespaces ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ns := range namespaces {
		c.invalidated = append(c.invalidated, ns)
		for k := range c.data {
			if strings.HasPrefix(k, ns+":") {
				delete(c.data, k)
			}
		}
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// world wires every fake around one employer, one student and one open job.
type world struct {
	users      *fakeUsers
	profiles   *fakeProfiles
	jobs       *fakeJobs
	apps       *fakeApps
	interviews *fakeInterviews
	offers     *fakeOffers
	notes      *fakeNotes
	pub        *recordingPublisher

	employer uuid.UUID
	student  uuid.UUID
	job      job.Job
}

func newWorld() *world {
	w := &world{employer: uuid.New(), student: uuid.New(), pub: &recordingPublisher{}}
	w.users = newFakeUsers(
		user.User{ID: w.employer, Email: "hr@acme.example", FullName: "Acme HR", Role: user.RoleEmployer},
		user.User{ID: w.student, Email: "sam@uni.example", FullName: "Sam Student", Role: user.RoleStudent},
	)
	w.profiles = newFakeProfiles()
	w.profiles.set(w.student, "Go", " SQL ")
	w.job = job.Job{
		ID:             uuid.New(),
		EmployerID:     w.employer,
		Title:          "Backend Intern",
		CompanyName:    "Acme",
		EmploymentType: job.Internship,
		RequiredSkills: []string{"go", "sql", "docker"},
		Status:         job.StatusOpen,
		CreatedAt:      testNow.Add(-time.Hour),
	}
	w.jobs = newFakeJobs(w.job)
	w.apps = newFakeApps(w.profiles, w.jobs)
	w.apps.names[w.student] = "Sam Student"
	w.interviews = newFakeInterviews(w.apps)
	w.offers = newFakeOffers(w.apps)
	w.notes = newFakeNotes()
	return w
}

func (w *world) applicationUsecase() *Application {
	return NewApplicationUsecase(ApplicationDeps{
		Applications: w.apps,
		Jobs:         w.jobs,
		Users:        w.users,
		Profiles:     w.profiles,
		Interviews:   w.interviews,
		Offers:       w.offers,
		Notes:        w.notes,
		Events:       w.pub,
	})
}

func (w *world) interviewUsecase() *Interview {
	uc := NewInterviewUsecase(w.apps, w.jobs, w.interviews, w.pub, nil)
	uc.now = fixedNow
	return uc
}

func (w *world) offerUsecase() *Offer {
	uc := NewOfferUsecase(w.apps, w.jobs, w.offers, w.pub, nil)
	uc.now = fixedNow
	return uc
}

func (w *world) apply(status application.Status) application.Application {
	return w.apps.add(application.Application{JobID: w.job.ID, CandidateID: w.student, Status: status})
}
