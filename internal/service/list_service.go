package service

import (
	"context"
	"fmt"

	"homecare-admin/internal/export"
	"homecare-admin/internal/listview"

	"go.uber.org/zap"
)

// ListService 列表视图与导出
type ListService struct {
	Deps
	engine *listview.Engine
	tables map[string]*listview.Table
}

func NewListService(d Deps) *ListService {
	s := &ListService{Deps: d, engine: listview.NewEngine(d.Store.DB()), tables: map[string]*listview.Table{}}
	for _, t := range []*listview.Table{
		listview.AgenciesTable(),
		listview.CaseManagersTable(),
		listview.ParticipantsTable(),
		listview.CaregiversTable(),
		listview.ServicesTable(),
		listview.UsersTable(),
	} {
		s.tables[t.Name] = t
	}
	return s
}

// Table 按资源名查找表定义，如 case-managers
func (s *ListService) Table(name string) (*listview.Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}
	return t, nil
}

func (s *ListService) List(ctx context.Context, name string, q listview.Query) (*listview.Result, error) {
	t, err := s.Table(name)
	if err != nil {
		return nil, err
	}
	return s.engine.Run(ctx, t, q)
}

// ExportFile 导出结果
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
	Rows        int
}

// Export renders every row matching q (no pagination, limited to q.Selected when given) as XLSX.
func (s *ListService) Export(ctx context.Context, name string, q listview.Query) (*ExportFile, error) {
	t, err := s.Table(name)
	if err != nil {
		return nil, err
	}
	if t.Export == nil {
		return nil, fmt.Errorf("table %q has no export", name)
	}
	rows, err := s.engine.All(ctx, t, q)
	if err != nil {
		return nil, err
	}
	data, err := export.GenerateTableExport(t, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", name, err)
	}
	s.logger().Info("Table exported", zap.String("table", name), zap.Int("rows", len(rows)), zap.Int("selected", len(q.Selected)))
	return &ExportFile{
		FileName:    export.FileName(t, s.now()),
		ContentType: export.ContentType,
		Data:        data,
		Rows:        len(rows),
	}, nil
}
