package httpapi

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/dmitrijs2005/taskcal/internal/server/services"
)

var errMock = errors.New("mock failure")

// MockUserService accepts the access token "good" as user "u1".
type MockUserService struct {
	RegisterFunc func(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	LoginFunc    func(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshFunc  func(ctx context.Context, token string) (*services.TokenPair, error)
	LogoutFunc   func(ctx context.Context, token string) error
}

func (m *MockUserService) Register(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password)
	}
	return nil, nil, errMock
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, nil, errMock
}

func (m *MockUserService) RefreshToken(ctx context.Context, token string) (*services.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, token)
	}
	return nil, errMock
}

func (m *MockUserService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockUserService) AuthenticatedUserID(token string) (string, error) {
	if token == "good" {
		return "u1", nil
	}
	return "", common.ErrInvalidToken
}

type MockBlueprintService struct {
	ListFunc   func(ctx context.Context, owner string) ([]*models.Blueprint, error)
	CreateFunc func(ctx context.Context, owner string, in services.NewBlueprint) (*models.Blueprint, error)
	UpdateFunc func(ctx context.Context, owner, id string, p models.BlueprintPatch) (*models.Blueprint, error)
	DeleteFunc func(ctx context.Context, owner, id string) error
}

func (m *MockBlueprintService) List(ctx context.Context, owner string) ([]*models.Blueprint, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, owner)
	}
	return []*models.Blueprint{}, nil
}

func (m *MockBlueprintService) Create(ctx context.Context, owner string, in services.NewBlueprint) (*models.Blueprint, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, owner, in)
	}
	return nil, errMock
}

func (m *MockBlueprintService) Update(ctx context.Context, owner, id string, p models.BlueprintPatch) (*models.Blueprint, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, owner, id, p)
	}
	return nil, errMock
}

func (m *MockBlueprintService) Delete(ctx context.Context, owner, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, owner, id)
	}
	return errMock
}

type MockCalendarService struct {
	ListFunc   func(ctx context.Context, owner string) ([]*models.CalendarEntry, error)
	CreateFunc func(ctx context.Context, owner string, in services.NewEntry) (*models.CalendarEntry, error)
	UpdateFunc func(ctx context.Context, owner, id string, p models.EntryPatch) (*models.CalendarEntry, error)
	DeleteFunc func(ctx context.Context, owner, id string) error
	ExportFunc func(ctx context.Context, owner string) (*services.ExportResult, error)
}

func (m *MockCalendarService) List(ctx context.Context, owner string) ([]*models.CalendarEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, owner)
	}
	return []*models.CalendarEntry{}, nil
}

func (m *MockCalendarService) Create(ctx context.Context, owner string, in services.NewEntry) (*models.CalendarEntry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, owner, in)
	}
	return nil, errMock
}

func (m *MockCalendarService) Update(ctx context.Context, owner, id string, p models.EntryPatch) (*models.CalendarEntry, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, owner, id, p)
	}
	return nil, errMock
}

func (m *MockCalendarService) Delete(ctx context.Context, owner, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, owner, id)
	}
	return errMock
}

func (m *MockCalendarService) Export(ctx context.Context, owner string) (*services.ExportResult, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, owner)
	}
	return nil, errMock
}

type MockShareService struct {
	MintFunc       func(ctx context.Context, owner string, t models.ShareType, p models.Permission) (*services.MintResult, error)
	ResolveFunc    func(ctx context.Context, token string) (*services.SharedCalendar, error)
	ListFunc       func(ctx context.Context, owner string) ([]*models.ShareLink, error)
	DeactivateFunc func(ctx context.Context, owner, token string) error
}

func (m *MockShareService) Mint(ctx context.Context, owner string, t models.ShareType, p models.Permission) (*services.MintResult, error) {
	if m.MintFunc != nil {
		return m.MintFunc(ctx, owner, t, p)
	}
	return nil, errMock
}

func (m *MockShareService) Resolve(ctx context.Context, token string) (*services.SharedCalendar, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, token)
	}
	return nil, common.ErrLinkUnavailable
}

func (m *MockShareService) List(ctx context.Context, owner string) ([]*models.ShareLink, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, owner)
	}
	return []*models.ShareLink{}, nil
}

func (m *MockShareService) Deactivate(ctx context.Context, owner, token string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, owner, token)
	}
	return common.ErrorNotFound
}
