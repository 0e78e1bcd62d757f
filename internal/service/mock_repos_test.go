package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"student-mgmt/internal/model"
	"student-mgmt/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%03d", m.seq)
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	seq      int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.ID == "" {
		m.seq++
		student.ID = fmt.Sprintf("stu-%03d", m.seq)
	}
	now := time.Now()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	if student.UpdatedAt.IsZero() {
		student.UpdatedAt = now
	}
	copied := *student
	m.students[student.ID] = &copied
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// List 复刻真实实现的过滤语义：搜索词对姓名/班级/地址做不区分大小写
// 的子串匹配，class/rank 精确匹配（"all" 等价于不过滤），AND 组合，
// 按 created_at 升序返回。
func (m *mockStudentRepo) List(_ context.Context, filter repository.StudentFilter) ([]model.Student, error) {
	var result []model.Student
	search := strings.ToLower(filter.Search)

	for _, s := range m.students {
		if search != "" {
			hit := strings.Contains(strings.ToLower(s.Name), search) ||
				strings.Contains(strings.ToLower(s.Class), search) ||
				strings.Contains(strings.ToLower(s.Address), search)
			if !hit {
				continue
			}
		}
		if filter.Class != "" && filter.Class != "all" && s.Class != filter.Class {
			continue
		}
		if filter.Rank != "" && filter.Rank != "all" && s.Rank != filter.Rank {
			continue
		}
		result = append(result, *s)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	student.UpdatedAt = time.Now()
	copied := *student
	m.students[student.ID] = &copied
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.students[id]; !ok {
		return 0, nil
	}
	delete(m.students, id)
	return 1, nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	m.sessions[session.SID] = session
	return nil
}

func (m *mockSessionRepo) GetValid(_ context.Context, sid string) (*model.Session, error) {
	s, ok := m.sessions[sid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !s.Expire.After(time.Now()) {
		delete(m.sessions, sid)
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) Delete(_ context.Context, sid string) error {
	delete(m.sessions, sid)
	return nil
}

func (m *mockSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for sid, s := range m.sessions {
		if !s.Expire.After(time.Now()) {
			delete(m.sessions, sid)
			n++
		}
	}
	return n, nil
}
