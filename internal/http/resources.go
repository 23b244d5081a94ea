package httpapi

import (
	"context"

	"homecare-admin/internal/service"
)

// 各实体服务到 Resource 的适配

type agencyResource struct{ s *service.AgencyService }

func (r agencyResource) Get(ctx context.Context, id string) (any, error) { return r.s.Get(ctx, id) }

func (r agencyResource) Create(ctx context.Context, in service.Input) (any, string, error) {
	a, err := r.s.Create(ctx, in)
	if err != nil {
		return nil, "", err
	}
	return a, a.ID, nil
}

func (r agencyResource) Update(ctx context.Context, id string, in service.Input) (any, error) {
	return r.s.Update(ctx, id, in)
}

func (r agencyResource) Delete(ctx context.Context, id string) error { return r.s.Delete(ctx, id) }

func (r agencyResource) FormOptions(context.Context) (*service.FormOptions, error) { return nil, nil }

type caseManagerResource struct{ s *service.CaseManagerService }

func (r caseManagerResource) Get(ctx context.Context, id string) (any, error) { return r.s.Get(ctx, id) }

func (r caseManagerResource) Create(ctx context.Context, in service.Input) (any, string, error) {
	cm, err := r.s.Create(ctx, in)
	if err != nil {
		return nil, "", err
	}
	return cm, cm.ID, nil
}

func (r caseManagerResource) Update(ctx context.Context, id string, in service.Input) (any, error) {
	return r.s.Update(ctx, id, in)
}

func (r caseManagerResource) Delete(ctx context.Context, id string) error { return r.s.Delete(ctx, id) }

func (r caseManagerResource) FormOptions(ctx context.Context) (*service.FormOptions, error) {
	return r.s.FormOptions(ctx)
}

type participantResource struct{ s *service.ParticipantService }

func (r participantResource) Get(ctx context.Context, id string) (any, error) { return r.s.Get(ctx, id) }

func (r participantResource) Create(ctx context.Context, in service.Input) (any, string, error) {
	res, err := r.s.Create(ctx, in)
	if err != nil {
		return nil, "", err
	}
	return res, res.Participant.ID, nil
}

func (r participantResource) Update(ctx context.Context, id string, in service.Input) (any, error) {
	return r.s.Update(ctx, id, in)
}

func (r participantResource) Delete(ctx context.Context, id string) error { return r.s.Delete(ctx, id) }

func (r participantResource) FormOptions(ctx context.Context) (*service.FormOptions, error) {
	return r.s.FormOptions(ctx)
}

type caregiverResource struct{ s *service.CaregiverService }

func (r caregiverResource) Get(ctx context.Context, id string) (any, error) { return r.s.Get(ctx, id) }

func (r caregiverResource) Create(ctx context.Context, in service.Input) (any, string, error) {
	c, err := r.s.Create(ctx, in)
	if err != nil {
		return nil, "", err
	}
	return c, c.ID, nil
}

func (r caregiverResource) Update(ctx context.Context, id string, in service.Input) (any, error) {
	return r.s.Update(ctx, id, in)
}

func (r caregiverResource) Delete(ctx context.Context, id string) error { return r.s.Delete(ctx, id) }

func (r caregiverResource) FormOptions(context.Context) (*service.FormOptions, error) { return nil, nil }

type careServiceResource struct{ s *service.CareServiceService }

func (r careServiceResource) Get(ctx context.Context, id string) (any, error) { return r.s.Get(ctx, id) }

func (r careServiceResource) Create(ctx context.Context, in service.Input) (any, string, error) {
	svc, err := r.s.Create(ctx, in)
	if err != nil {
		return nil, "", err
	}
	return svc, svc.ID, nil
}

func (r careServiceResource) Update(ctx context.Context, id string, in service.Input) (any, error) {
	return r.s.Update(ctx, id, in)
}

func (r careServiceResource) Delete(ctx context.Context, id string) error { return r.s.Delete(ctx, id) }

func (r careServiceResource) FormOptions(ctx context.Context) (*service.FormOptions, error) {
	return r.s.FormOptions(ctx)
}

type userResource struct{ s *service.UserService }

func (r userResource) Get(ctx context.Context, id string) (any, error) { return r.s.Get(ctx, id) }

func (r userResource) Create(ctx context.Context, in service.Input) (any, string, error) {
	u, err := r.s.Create(ctx, in)
	if err != nil {
		return nil, "", err
	}
	return u, u.ID, nil
}

func (r userResource) Update(ctx context.Context, id string, in service.Input) (any, error) {
	return r.s.Update(ctx, id, in)
}

func (r userResource) Delete(ctx context.Context, id string) error { return r.s.Delete(ctx, id) }

func (r userResource) FormOptions(context.Context) (*service.FormOptions, error) { return nil, nil }

// 确保实现了接口
var (
	_ Resource = agencyResource{}
	_ Resource = caseManagerResource{}
	_ Resource = participantResource{}
	_ Resource = caregiverResource{}
	_ Resource = careServiceResource{}
	_ Resource = userResource{}
)
