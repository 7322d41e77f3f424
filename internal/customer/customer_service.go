package customer

import (
	"context"
	"errors"
	"jornada40/internal/plan"
	"strings"

	customererrors "jornada40/internal/customer/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=customer_service.go -destination=mock/customer_service_mock.go -package=mock
type Service interface {
	GetMe(ctx context.Context, userID string) (CustomerResponse, error)
	PatchMe(ctx context.Context, userID string, req PatchCustomerRequest) (CustomerResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	plans  plan.Service
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, plans plan.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("customer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.service")
	}
	return &service{db: db, repo: repo, plans: plans, logger: l}
}

func (s *service) GetMe(ctx context.Context, userID string) (CustomerResponse, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return CustomerResponse{}, mapCustomerRepoError(err)
	}

	companies, employees, err := s.repo.CountUsage(ctx, userID)
	if err != nil {
		s.logger.Error("count usage failed", zap.String("user_id", userID), zap.Error(err))
		return CustomerResponse{}, err
	}
	return mapToResponse(c, companies, employees), nil
}

func (s *service) PatchMe(ctx context.Context, userID string, req PatchCustomerRequest) (CustomerResponse, error) {
	var (
		result               *Customer
		companies, employees int64
	)

	var target *plan.Plan
	if req.PlanID != nil {
		p, err := s.plans.GetActiveByID(ctx, *req.PlanID)
		if err != nil {
			return CustomerResponse{}, err
		}
		target = p
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		c, err := qtx.FindByUserID(ctx, userID)
		if err != nil {
			return mapCustomerRepoError(err)
		}

		companies, employees, err = qtx.CountUsage(ctx, userID)
		if err != nil {
			return err
		}

		if target != nil && target.ID != c.PlanID {
			if int64(target.MaxCompanies) < companies || int64(target.MaxEmployees) < employees {
				return customererrors.ErrPlanTooSmall
			}
			c.PlanID = target.ID
		}

		applyPatch(c, req)
		if err := ValidateIdentity(c); err != nil {
			return err
		}

		c.Plan = nil
		if err := qtx.Update(ctx, c); err != nil {
			return err
		}

		result, err = qtx.FindByUserID(ctx, userID)
		return err
	})
	if err != nil {
		s.logger.Warn("patch customer failed", zap.String("user_id", userID), zap.Error(err))
		return CustomerResponse{}, err
	}

	s.logger.Info("customer updated", zap.String("user_id", userID), zap.String("plan_id", result.PlanID))
	return mapToResponse(result, companies, employees), nil
}

func applyPatch(c *Customer, req PatchCustomerRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&c.FirstNames, req.FirstNames)
	set(&c.PaternalSurname, req.PaternalSurname)
	set(&c.MaternalSurname, req.MaternalSurname)
	set(&c.BusinessName, req.BusinessName)
	set(&c.Phone, req.Phone)
	set(&c.Address, req.Address)
}

// ValidateIdentity enforces the identity fields each customer type needs.
func ValidateIdentity(c *Customer) error {
	if c.CustomerType == CustomerLegalEntity {
		if c.BusinessName == "" {
			return customererrors.ErrBusinessNameRequired
		}
		return nil
	}
	if c.FirstNames == "" || c.PaternalSurname == "" {
		return customererrors.ErrPersonNameRequired
	}
	return nil
}

func mapCustomerRepoError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customererrors.ErrCustomerNotFound
	}
	return err
}

func mapToResponse(c *Customer, companies, employees int64) CustomerResponse {
	resp := CustomerResponse{
		ID:              c.ID.String(),
		UserID:          c.UserID.String(),
		CustomerType:    string(c.CustomerType),
		TaxID:           c.TaxID,
		DisplayName:     c.DisplayName(),
		FirstNames:      c.FirstNames,
		PaternalSurname: c.PaternalSurname,
		MaternalSurname: c.MaternalSurname,
		BusinessName:    c.BusinessName,
		Phone:           c.Phone,
		Address:         c.Address,
		Usage:           UsageResponse{Companies: companies, Employees: employees},
	}
	if c.Plan != nil {
		resp.Plan = &PlanSummary{
			ID:           c.Plan.ID,
			Name:         c.Plan.Name,
			PriceCLP:     c.Plan.PriceCLP,
			MaxCompanies: c.Plan.MaxCompanies,
			MaxEmployees: c.Plan.MaxEmployees,
		}
	}
	return resp
}
