package handler

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"student-mgmt/config"
	"student-mgmt/internal/dto"
	"student-mgmt/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()
}

// errInternal 模拟不可识别的存储层错误
var errInternal = errors.New("数据库连接中断")

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.UserResponse
	loginSID         string
	loginErr         error
	logoutErr        error
	logoutCalledWith string
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
	adminErr         error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.UserResponse, string, error) {
	return m.loginResult, m.loginSID, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, sid string) error {
	m.logoutCalledWith = sid
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) EnsureDefaultAdmin(_ context.Context) error {
	return m.adminErr
}

// ── Mock StudentService ──

type mockStudentService struct {
	listResult   []dto.StudentResponse
	listErr      error
	listGotReq   *dto.StudentListRequest
	getResult    *dto.StudentResponse
	getErr       error
	createResult *dto.StudentResponse
	createErr    error
	updateResult *dto.StudentResponse
	updateErr    error
	updateGotID  string
	deleteErr    error
	deleteGotID  string
	statsResult  *dto.StudentStatsResponse
	statsErr     error
}

func (m *mockStudentService) List(_ context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, error) {
	m.listGotReq = req
	return m.listResult, m.listErr
}
func (m *mockStudentService) GetByID(_ context.Context, _ string) (*dto.StudentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) Create(_ context.Context, _ *dto.StudentRequest) (*dto.StudentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockStudentService) Update(_ context.Context, id string, _ *dto.StudentRequest) (*dto.StudentResponse, error) {
	m.updateGotID = id
	return m.updateResult, m.updateErr
}
func (m *mockStudentService) Delete(_ context.Context, id string) error {
	m.deleteGotID = id
	return m.deleteErr
}
func (m *mockStudentService) Stats(_ context.Context) (*dto.StudentStatsResponse, error) {
	return m.statsResult, m.statsErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportStudents(_ context.Context, _ *dto.StudentListRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── 公共辅助 ──

func testSessionManager() *session.Manager {
	return session.NewManager(&config.AuthConfig{
		SessionSecret: "test-secret-0123456789",
		SessionTTL:    168 * time.Hour,
	})
}

// fakeAuth 模拟会话中间件，直接注入 user_id
func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}
