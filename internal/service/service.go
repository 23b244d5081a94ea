package service

import (
	"context"
	"errors"
	"time"

	"homecare-admin/internal/domain"
	"homecare-admin/internal/repository"
	"homecare-admin/internal/validation"

	"go.uber.org/zap"
)

// Input 已解码的请求体（JSON 或表单）
type Input = map[string]any

// Deps 各服务共享的依赖
type Deps struct {
	Store  *repository.Store
	Logger *zap.Logger
	// Now is the clock for "today" (dob rule, service date defaults). nil means time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) validator() *validation.Validator {
	v := validation.NewValidator(d.Store.Repos().Lookup)
	v.Now = d.now
	return v
}

// validate runs rs against in. Lookup failures are returned as-is (storage errors).
func (d Deps) validate(ctx context.Context, rs validation.RuleSet, in Input) (validation.Values, error) {
	if in == nil {
		in = Input{}
	}
	out, err := d.validator().Validate(ctx, rs, in)
	if err != nil {
		if verr, ok := IsValidation(err); ok {
			d.logger().Debug("Validation failed", zap.Strings("fields", verr.Fields()))
		}
		return nil, err
	}
	return validation.Values(out), nil
}

// duplicateAs 并发写入绕过 unique 校验时，把唯一约束冲突转为 field 上的校验错误
func duplicateAs(err error, field string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return validation.Taken(field)
	}
	return err
}

// Services 全部业务服务
type Services struct {
	Agencies     *AgencyService
	CaseManagers *CaseManagerService
	Participants *ParticipantService
	Caregivers   *CaregiverService
	Services     *CareServiceService
	Users        *UserService
	Dashboard    *DashboardService
	Lists        *ListService
}

func NewServices(d Deps) *Services {
	return &Services{
		Agencies:     NewAgencyService(d),
		CaseManagers: NewCaseManagerService(d),
		Participants: NewParticipantService(d),
		Caregivers:   NewCaregiverService(d),
		Services:     NewCareServiceService(d),
		Users:        NewUserService(d),
		Dashboard:    NewDashboardService(d),
		Lists:        NewListService(d),
	}
}

// IsValidation reports whether err carries field errors.
func IsValidation(err error) (*validation.Error, bool) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// IsNotFound 资源或外键目标不存在
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// FormOptions 表单下拉选项（create / edit 页面）
type FormOptions struct {
	Agencies        []domain.AgencyOption      `json:"agencies,omitempty"`
	CaseManagers    []domain.CaseManagerOption `json:"case_managers,omitempty"`
	Participants    []domain.ParticipantOption `json:"participants,omitempty"`
	Caregivers      []domain.CaregiverOption   `json:"caregivers,omitempty"`
	Genders         []domain.EnumOption        `json:"genders,omitempty"`
	ServiceTypes    []domain.EnumOption        `json:"service_types,omitempty"`
	ServiceStatuses []domain.EnumOption        `json:"service_statuses,omitempty"`
}
