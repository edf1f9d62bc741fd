package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/contract"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
)

// fakeUow is an in-memory unit of work shared by the service tests. It
// interprets just the specification types the services actually use.
type fakeUow struct {
	mu sync.Mutex

	users    []*entity.User
	messages []*entity.ChatMessage
	journals []*entity.JournalEntry
	mentions []*entity.EntityMention
	leads    []*entity.Lead
	known    []*entity.KnownEntity
	terms    []*entity.GlossaryTerm
	tasks    []*entity.Task
	goals    []*entity.Goal
	states   map[uuid.UUID]*entity.OnboardingState
	answers  map[string]*entity.QuestionAnswer
	regs     []*entity.ProviderRegistration
	audits   []*entity.SyncAuditLog
	runs     []*entity.DreamRun
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		states:  make(map[uuid.UUID]*entity.OnboardingState),
		answers: make(map[string]*entity.QuestionAnswer),
	}
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeFactory(uow *fakeUow) unitofwork.RepositoryFactory {
	return &fakeUowFactory{uow: uow}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return &fakeUserRepo{u} }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{u}
}
func (u *fakeUow) JournalEntryRepository() contract.JournalEntryRepository {
	return &fakeJournalRepo{u}
}
func (u *fakeUow) EntityMentionRepository() contract.EntityMentionRepository {
	return &fakeMentionRepo{u}
}
func (u *fakeUow) LeadRepository() contract.LeadRepository { return &fakeLeadRepo{u} }
func (u *fakeUow) KnownEntityRepository() contract.KnownEntityRepository {
	return &fakeKnownRepo{u}
}
func (u *fakeUow) GlossaryTermRepository() contract.GlossaryTermRepository {
	return &fakeTermRepo{u}
}
func (u *fakeUow) TaskRepository() contract.TaskRepository { return &fakeTaskRepo{u} }
func (u *fakeUow) GoalRepository() contract.GoalRepository { return &fakeGoalRepo{u} }
func (u *fakeUow) OnboardingStateRepository() contract.OnboardingStateRepository {
	return &fakeStateRepo{u}
}
func (u *fakeUow) QuestionAnswerRepository() contract.QuestionAnswerRepository {
	return &fakeAnswerRepo{u}
}
func (u *fakeUow) ProviderRegistrationRepository() contract.ProviderRegistrationRepository {
	return &fakeRegRepo{u}
}
func (u *fakeUow) SyncAuditLogRepository() contract.SyncAuditLogRepository {
	return &fakeAuditRepo{u}
}
func (u *fakeUow) DreamRunRepository() contract.DreamRunRepository { return &fakeRunRepo{u} }

// --- spec interpretation helpers ---

type specMatch struct {
	userId     *uuid.UUID
	id         *uuid.UUID
	status     string
	statusIn   []string
	ranAfter   *time.Time
	from, to   *time.Time
	dueBefore  *time.Time
	dueOn      *time.Time
	nameILike  string
	termLower  string
	timeframe  string
	field      string
	fieldValue interface{}
	orderBy    string
	orderDesc  bool
	limit      int
}

func interpret(specs []specification.Specification) specMatch {
	m := specMatch{}
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			id := sp.ID
			m.id = &id
		case specification.UserOwnedBy:
			id := sp.UserID
			m.userId = &id
		case specification.ByStatus:
			m.status = sp.Status
		case specification.ByStatusIn:
			m.statusIn = sp.Statuses
		case specification.RanAfter:
			t := sp.After
			m.ranAfter = &t
		case specification.CreatedBetween:
			from, to := sp.From, sp.To
			m.from, m.to = &from, &to
		case specification.DueBefore:
			t := sp.Before
			m.dueBefore = &t
		case specification.DueOn:
			t := sp.Day
			m.dueOn = &t
		case specification.NameILike:
			m.nameILike = sp.Name
		case specification.ByTermLower:
			m.termLower = sp.Term
		case specification.ByTimeframe:
			m.timeframe = sp.Timeframe
		case specification.FilterBy:
			m.field = sp.Field
			m.fieldValue = sp.Value
		case specification.OrderBy:
			m.orderBy = sp.Field
			m.orderDesc = sp.Desc
		case specification.Pagination:
			m.limit = sp.Limit
		}
	}
	return m
}

func (m specMatch) matchStatus(status string) bool {
	if m.status != "" && status != m.status {
		return false
	}
	if len(m.statusIn) > 0 {
		found := false
		for _, s := range m.statusIn {
			if s == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// --- repositories ---

type fakeUserRepo struct{ u *fakeUow }

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	m := interpret(specs)
	for _, user := range r.u.users {
		if m.id == nil || user.Id == *m.id {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return r.u.users, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.u.users)), nil
}

type fakeMessageRepo struct{ u *fakeUow }

func (r *fakeMessageRepo) Create(ctx context.Context, msg *entity.ChatMessage) error {
	r.u.messages = append(r.u.messages, msg)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	m := interpret(specs)
	var out []*entity.ChatMessage
	for _, msg := range r.u.messages {
		if m.userId != nil && msg.UserId != *m.userId {
			continue
		}
		if m.from != nil && (msg.CreatedAt.Before(*m.from) || !msg.CreatedAt.Before(*m.to)) {
			continue
		}
		out = append(out, msg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	msgs, _ := r.FindAll(ctx, specs...)
	return int64(len(msgs)), nil
}

func (r *fakeMessageRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	var kept []*entity.ChatMessage
	for _, msg := range r.u.messages {
		if msg.UserId != userId {
			kept = append(kept, msg)
		}
	}
	r.u.messages = kept
	return nil
}

type fakeJournalRepo struct{ u *fakeUow }

func (r *fakeJournalRepo) Create(ctx context.Context, e *entity.JournalEntry) error {
	r.u.journals = append(r.u.journals, e)
	return nil
}

func (r *fakeJournalRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalEntry, error) {
	if len(r.u.journals) == 0 {
		return nil, nil
	}
	return r.u.journals[0], nil
}

func (r *fakeJournalRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error) {
	return r.u.journals, nil
}

type fakeMentionRepo struct{ u *fakeUow }

func (r *fakeMentionRepo) Create(ctx context.Context, m *entity.EntityMention) error {
	for _, existing := range r.u.mentions {
		if existing.JournalEntryId == m.JournalEntryId && existing.KnownEntityId == m.KnownEntityId {
			return nil // conflict clause behavior
		}
	}
	r.u.mentions = append(r.u.mentions, m)
	return nil
}

func (r *fakeMentionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EntityMention, error) {
	m := interpret(specs)
	var out []*entity.EntityMention
	for _, mention := range r.u.mentions {
		if m.userId != nil && mention.UserId != *m.userId {
			continue
		}
		out = append(out, mention)
	}
	return out, nil
}

type fakeLeadRepo struct{ u *fakeUow }

func (r *fakeLeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	r.u.leads = append(r.u.leads, l)
	return nil
}

func (r *fakeLeadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error) {
	if len(r.u.leads) == 0 {
		return nil, nil
	}
	return r.u.leads[0], nil
}

func (r *fakeLeadRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error) {
	return r.u.leads, nil
}

type fakeKnownRepo struct{ u *fakeUow }

func (r *fakeKnownRepo) Create(ctx context.Context, k *entity.KnownEntity) error {
	r.u.known = append(r.u.known, k)
	return nil
}

func (r *fakeKnownRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnownEntity, error) {
	m := interpret(specs)
	for _, k := range r.u.known {
		if m.userId != nil && k.UserId != *m.userId {
			continue
		}
		if m.nameILike != "" && !strings.EqualFold(k.Name, m.nameILike) {
			continue
		}
		return k, nil
	}
	return nil, nil
}

func (r *fakeKnownRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnownEntity, error) {
	return r.u.known, nil
}

type fakeTermRepo struct{ u *fakeUow }

func (r *fakeTermRepo) Create(ctx context.Context, t *entity.GlossaryTerm) error {
	for _, existing := range r.u.terms {
		if existing.UserId == t.UserId && strings.EqualFold(existing.Term, t.Term) {
			return nil
		}
	}
	r.u.terms = append(r.u.terms, t)
	return nil
}

func (r *fakeTermRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GlossaryTerm, error) {
	m := interpret(specs)
	for _, t := range r.u.terms {
		if m.userId != nil && t.UserId != *m.userId {
			continue
		}
		if m.termLower != "" && !strings.EqualFold(t.Term, m.termLower) {
			continue
		}
		return t, nil
	}
	return nil, nil
}

func (r *fakeTermRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GlossaryTerm, error) {
	return r.u.terms, nil
}

type fakeTaskRepo struct{ u *fakeUow }

func (r *fakeTaskRepo) Create(ctx context.Context, t *entity.Task) error {
	r.u.tasks = append(r.u.tasks, t)
	return nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, t *entity.Task) error {
	for i, existing := range r.u.tasks {
		if existing.Id == t.Id {
			r.u.tasks[i] = t
			return nil
		}
	}
	r.u.tasks = append(r.u.tasks, t)
	return nil
}

func (r *fakeTaskRepo) matches(t *entity.Task, m specMatch) bool {
	if m.id != nil && t.Id != *m.id {
		return false
	}
	if m.userId != nil && t.UserId != *m.userId {
		return false
	}
	if !m.matchStatus(t.Status) {
		return false
	}
	if m.dueBefore != nil && (t.DueDate == nil || !t.DueDate.Before(*m.dueBefore)) {
		return false
	}
	if m.dueOn != nil {
		if t.DueDate == nil {
			return false
		}
		day := *m.dueOn
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		if t.DueDate.Before(start) || !t.DueDate.Before(start.AddDate(0, 0, 1)) {
			return false
		}
	}
	if m.field == "priority" && t.Priority != m.fieldValue {
		return false
	}
	return true
}

func (r *fakeTaskRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error) {
	m := interpret(specs)
	for _, t := range r.u.tasks {
		if r.matches(t, m) {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error) {
	m := interpret(specs)
	var out []*entity.Task
	for _, t := range r.u.tasks {
		if r.matches(t, m) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	tasks, _ := r.FindAll(ctx, specs...)
	return int64(len(tasks)), nil
}

type fakeGoalRepo struct{ u *fakeUow }

func (r *fakeGoalRepo) Create(ctx context.Context, g *entity.Goal) error {
	r.u.goals = append(r.u.goals, g)
	return nil
}

func (r *fakeGoalRepo) Update(ctx context.Context, g *entity.Goal) error {
	for i, existing := range r.u.goals {
		if existing.Id == g.Id {
			r.u.goals[i] = g
			return nil
		}
	}
	return nil
}

func (r *fakeGoalRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error) {
	m := interpret(specs)
	var out []*entity.Goal
	for _, g := range r.u.goals {
		if m.userId != nil && g.UserId != *m.userId {
			continue
		}
		if m.timeframe != "" && g.Timeframe != m.timeframe {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

type fakeStateRepo struct{ u *fakeUow }

func (r *fakeStateRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.OnboardingState, error) {
	return r.u.states[userId], nil
}

func (r *fakeStateRepo) Create(ctx context.Context, s *entity.OnboardingState) error {
	r.u.states[s.UserId] = s
	return nil
}

func (r *fakeStateRepo) Update(ctx context.Context, s *entity.OnboardingState) error {
	r.u.states[s.UserId] = s
	return nil
}

type fakeAnswerRepo struct{ u *fakeUow }

func (r *fakeAnswerRepo) Upsert(ctx context.Context, a *entity.QuestionAnswer) error {
	r.u.answers[a.UserId.String()+"/"+a.QuestionId] = a
	return nil
}

func (r *fakeAnswerRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuestionAnswer, error) {
	var out []*entity.QuestionAnswer
	for _, a := range r.u.answers {
		out = append(out, a)
	}
	return out, nil
}

type fakeRegRepo struct{ u *fakeUow }

func (r *fakeRegRepo) Create(ctx context.Context, reg *entity.ProviderRegistration) error {
	r.u.regs = append(r.u.regs, reg)
	return nil
}

func (r *fakeRegRepo) Update(ctx context.Context, reg *entity.ProviderRegistration) error {
	for i, existing := range r.u.regs {
		if existing.Id == reg.Id {
			r.u.regs[i] = reg
			return nil
		}
	}
	r.u.regs = append(r.u.regs, reg)
	return nil
}

func (r *fakeRegRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProviderRegistration, error) {
	regs, _ := r.FindAll(ctx, specs...)
	if len(regs) == 0 {
		return nil, nil
	}
	return regs[0], nil
}

func (r *fakeRegRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProviderRegistration, error) {
	m := interpret(specs)
	var out []*entity.ProviderRegistration
	for _, reg := range r.u.regs {
		if m.userId != nil && reg.UserId != *m.userId {
			continue
		}
		if !m.matchStatus(reg.Status) {
			continue
		}
		out = append(out, reg)
	}
	return out, nil
}

type fakeAuditRepo struct{ u *fakeUow }

// The audit repo is the only one reached from a consumer goroutine, so it
// is the only one that locks.
func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.SyncAuditLog) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, existing := range r.u.audits {
		if existing.ProviderId == log.ProviderId && existing.SourceId == log.SourceId {
			return nil
		}
	}
	r.u.audits = append(r.u.audits, log)
	return nil
}

func (r *fakeAuditRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return int64(len(r.u.audits)), nil
}

func (u *fakeUow) auditCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.audits)
}

type fakeRunRepo struct{ u *fakeUow }

func (r *fakeRunRepo) Create(ctx context.Context, run *entity.DreamRun) error {
	r.u.runs = append(r.u.runs, run)
	return nil
}

func (r *fakeRunRepo) matches(run *entity.DreamRun, m specMatch) bool {
	if m.userId != nil && run.UserId != *m.userId {
		return false
	}
	if !m.matchStatus(run.Status) {
		return false
	}
	if m.ranAfter != nil && !run.RanAt.After(*m.ranAfter) {
		return false
	}
	return true
}

func (r *fakeRunRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DreamRun, error) {
	m := interpret(specs)
	for _, run := range r.u.runs {
		if r.matches(run, m) {
			return run, nil
		}
	}
	return nil, nil
}

func (r *fakeRunRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DreamRun, error) {
	m := interpret(specs)
	var out []*entity.DreamRun
	for _, run := range r.u.runs {
		if r.matches(run, m) {
			out = append(out, run)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if m.orderDesc {
			return out[i].RanAt.After(out[j].RanAt)
		}
		return out[i].RanAt.Before(out[j].RanAt)
	})
	if m.limit > 0 && m.limit < len(out) {
		out = out[:m.limit]
	}
	return out, nil
}

func (r *fakeRunRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	runs, _ := r.FindAll(ctx, specs...)
	return int64(len(runs)), nil
}

// nopLogger discards everything; the services under test never read logs back.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit int) ([]logger.LogEntry, error)   { return nil, nil }
