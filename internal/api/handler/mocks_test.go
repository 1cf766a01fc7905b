package handler

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/exporting"
	"github.com/vfg2006/revenue-compare-api/internal/ingest"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/comparing"
)

type mockComparer struct {
	mock.Mock
}

var _ comparing.Comparer = (*mockComparer)(nil)

func (m *mockComparer) CompareYears(ctx context.Context, input domain.YearComparison, userID int) (*domain.YearComparisonReport, error) {
	args := m.Called(ctx, input, userID)
	report, _ := args.Get(0).(*domain.YearComparisonReport)
	return report, args.Error(1)
}

func (m *mockComparer) ExportYearComparison(ctx context.Context, input domain.YearComparison) (*exporting.Workbook, error) {
	args := m.Called(ctx, input)
	wb, _ := args.Get(0).(*exporting.Workbook)
	return wb, args.Error(1)
}

func (m *mockComparer) ListComparisonHistory(ctx context.Context, limit int) ([]*domain.YearComparisonReport, error) {
	args := m.Called(ctx, limit)
	reports, _ := args.Get(0).([]*domain.YearComparisonReport)
	return reports, args.Error(1)
}

func (m *mockComparer) DefaultThresholds() domain.GrowthThresholds {
	return domain.DefaultGrowthThresholds()
}

func (m *mockComparer) CreateDataset(ctx context.Context, name, filename string, r io.Reader) (*domain.Dataset, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, name, filename, string(body))
	dataset, _ := args.Get(0).(*domain.Dataset)
	return dataset, args.Error(1)
}

func (m *mockComparer) ListDatasets(ctx context.Context) ([]*domain.Dataset, error) {
	args := m.Called(ctx)
	datasets, _ := args.Get(0).([]*domain.Dataset)
	return datasets, args.Error(1)
}

func (m *mockComparer) DeleteDataset(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockComparer) GetSeries(ctx context.Context, id string, dateRange domain.DateRange) (*domain.DatasetAnalysis, error) {
	args := m.Called(ctx, id, dateRange)
	analysis, _ := args.Get(0).(*domain.DatasetAnalysis)
	return analysis, args.Error(1)
}

func (m *mockComparer) DescribeDataset(ctx context.Context, id string, dateRange domain.DateRange) (*domain.DatasetAnalysis, error) {
	args := m.Called(ctx, id, dateRange)
	analysis, _ := args.Get(0).(*domain.DatasetAnalysis)
	return analysis, args.Error(1)
}

func (m *mockComparer) GrowthForDataset(ctx context.Context, id string, window int, dateRange domain.DateRange) (*domain.DatasetAnalysis, error) {
	args := m.Called(ctx, id, window, dateRange)
	analysis, _ := args.Get(0).(*domain.DatasetAnalysis)
	return analysis, args.Error(1)
}

func (m *mockComparer) ExportDataset(ctx context.Context, id string, window int, dateRange domain.DateRange) (*exporting.Workbook, error) {
	args := m.Called(ctx, id, window, dateRange)
	wb, _ := args.Get(0).(*exporting.Workbook)
	return wb, args.Error(1)
}

func (m *mockComparer) SampleAnalysis(ctx context.Context, params ingest.SampleParams, window int) (*comparing.SampleReport, error) {
	args := m.Called(ctx, params, window)
	report, _ := args.Get(0).(*comparing.SampleReport)
	return report, args.Error(1)
}

func (m *mockComparer) RegenerateSample(ctx context.Context, params ingest.SampleParams, window int) (*comparing.SampleReport, error) {
	args := m.Called(ctx, params, window)
	report, _ := args.Get(0).(*comparing.SampleReport)
	return report, args.Error(1)
}

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) LoginUser(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuthenticator) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockAuthenticator) ValidateToken(tokenString string) (*domain.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*domain.Claims)
	return claims, args.Error(1)
}

type mockCronJob struct {
	mock.Mock
}

func (m *mockCronJob) TriggerManualRun() bool {
	return m.Called().Bool(0)
}

func (m *mockCronJob) GetStatus() map[string]any {
	status, _ := m.Called().Get(0).(map[string]any)
	return status
}
