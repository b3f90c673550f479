package rest

import (
	"context"
	"io"

	"medicore-be/internal/cart"
	"medicore-be/internal/catalog"
	"medicore-be/internal/order"
	"medicore-be/internal/prescription"
	"medicore-be/internal/report"
	"medicore-be/internal/user"

	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of user.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, input user.RegisterInput) (*user.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, userID uint) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, params user.UpdateProfileParams) (*user.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockUserService) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserService) SetRole(ctx context.Context, id uint, role user.Role) (*user.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockCatalogService is a mock implementation of catalog.Service
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Get(ctx context.Context, id string) (*catalog.Medicine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Medicine), args.Error(1)
}

func (m *MockCatalogService) Search(ctx context.Context, params catalog.ListParams) (*catalog.Page, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Page), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) (*catalog.Categories, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Categories), args.Error(1)
}

func (m *MockCatalogService) Popular(ctx context.Context, limit int) ([]*catalog.Medicine, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Medicine), args.Error(1)
}

func (m *MockCatalogService) Create(ctx context.Context, input catalog.MedicineInput) (*catalog.Medicine, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Medicine), args.Error(1)
}

func (m *MockCatalogService) Update(ctx context.Context, id string, input catalog.MedicineInput) (*catalog.Medicine, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Medicine), args.Error(1)
}

func (m *MockCatalogService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockCartService is a mock implementation of cart.Service
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Add(ctx context.Context, userID uint, medicineID string, quantity int) (*cart.Entry, error) {
	args := m.Called(ctx, userID, medicineID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Entry), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID uint, medicineID string, quantity int) error {
	return m.Called(ctx, userID, medicineID, quantity).Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, userID uint, medicineID string) error {
	return m.Called(ctx, userID, medicineID).Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockCartService) List(ctx context.Context, userID uint) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

// MockOrderService is a mock implementation of order.Service
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, in order.PlaceOrderInput) (*order.Placement, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Placement), args.Error(1)
}

func (m *MockOrderService) ListForUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id string, userID uint, isAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, id, userID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOrderService) Invoice(ctx context.Context, id string, userID uint, isAdmin bool) (*order.Invoice, error) {
	args := m.Called(ctx, id, userID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Invoice), args.Error(1)
}

// MockPrescriptionService is a mock implementation of prescription.Service
type MockPrescriptionService struct {
	mock.Mock
}

func (m *MockPrescriptionService) Upload(ctx context.Context, in prescription.Upload) (*prescription.UploadResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescription.UploadResult), args.Error(1)
}

func (m *MockPrescriptionService) SetStatus(ctx context.Context, id string, status prescription.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockPrescriptionService) ListForUser(ctx context.Context, userID uint) ([]*prescription.Prescription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*prescription.Prescription), args.Error(1)
}

func (m *MockPrescriptionService) ListAll(ctx context.Context) ([]*prescription.Prescription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*prescription.Prescription), args.Error(1)
}

func (m *MockPrescriptionService) Open(ctx context.Context, id string) (*prescription.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescription.Document), args.Error(1)
}

// MockReportService is a mock implementation of report.Service
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Stats(ctx context.Context) (*report.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Stats), args.Error(1)
}

func (m *MockReportService) Alerts(ctx context.Context) (*report.Alerts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Alerts), args.Error(1)
}

func (m *MockReportService) Reports(ctx context.Context) (*report.Reports, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Reports), args.Error(1)
}

func (m *MockReportService) ExportInventory(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	if fn, ok := args.Get(0).(func(io.Writer) error); ok {
		return fn(w)
	}
	return args.Error(0)
}

// MockPinger is a mock database handle for health checks
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
