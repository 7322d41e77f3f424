package contract

import (
	"context"
	"jornada40/internal/events"
	"jornada40/internal/messaging/kafka"
	"jornada40/internal/shared/contextutil"
	"math"
	"time"

	contracterrors "jornada40/internal/contract/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout         = "2006-01-02"
	defaultWeeklyHours = 44.0
	defaultWorkingDays = 5
)

//go:generate mockgen -source=contract_service.go -destination=mock/contract_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, ownerID string, req CreateContractRequest) (ContractResponse, error)
	GetAll(ctx context.Context, ownerID string, filter ContractFilter) ([]ContractResponse, error)
	GetByID(ctx context.Context, ownerID, id string) (ContractResponse, error)
	Update(ctx context.Context, ownerID, id string, req UpdateContractRequest) (ContractResponse, error)
	Patch(ctx context.Context, ownerID, id string, req PatchContractRequest) (ContractResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *gorm.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("contract.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateContractRequest) (ContractResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create contract requested",
		zap.String("request_id", rid),
		zap.String("owner_id", ownerID),
		zap.String("employee_id", req.EmployeeID),
	)

	c := &Contract{ID: uuid.New()}
	if err := applyFull(c, req); err != nil {
		s.logger.Warn("create contract invalid input", zap.Error(err))
		return ContractResponse{}, err
	}

	var created *Contract
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := s.checkEmployee(ctx, qtx, ownerID, c); err != nil {
			return err
		}
		if err := qtx.Create(ctx, c); err != nil {
			return MapRepositoryError(err)
		}

		var err error
		created, err = qtx.FindByIDAndOwner(ctx, ownerID, c.ID.String())
		if err != nil {
			return MapRepositoryError(err)
		}

		return s.enqueue(ctx, tx, events.ContractCreated, ownerID, created)
	})
	if err != nil {
		s.logger.Warn("create contract failed", zap.String("request_id", rid), zap.Error(err))
		return ContractResponse{}, err
	}

	s.logger.Info("create contract success",
		zap.String("request_id", rid),
		zap.String("contract_id", created.ID.String()),
		zap.String("employee_id", created.EmployeeID.String()),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, ownerID string, filter ContractFilter) ([]ContractResponse, error) {
	s.logger.Debug("get all contracts requested",
		zap.String("owner_id", ownerID),
		zap.String("employee_id", filter.EmployeeID),
		zap.String("company_id", filter.CompanyID),
	)

	for _, id := range []string{filter.EmployeeID, filter.CompanyID} {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return []ContractResponse{}, nil
		}
	}

	contracts, err := s.repo.FindAllByOwner(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error("get all contracts failed", zap.Error(err))
		return nil, MapRepositoryError(err)
	}

	res := make([]ContractResponse, len(contracts))
	for i, c := range contracts {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, ownerID, id string) (ContractResponse, error) {
	s.logger.Debug("get contract by id requested",
		zap.String("owner_id", ownerID),
		zap.String("contract_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return ContractResponse{}, contracterrors.ErrContractNotFound
	}

	c, err := s.repo.FindByIDAndOwner(ctx, ownerID, id)
	if err != nil {
		return ContractResponse{}, MapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, ownerID, id string, req UpdateContractRequest) (ContractResponse, error) {
	return s.save(ctx, ownerID, id, func(c *Contract) error {
		return applyFull(c, req)
	})
}

func (s *service) Patch(ctx context.Context, ownerID, id string, req PatchContractRequest) (ContractResponse, error) {
	return s.save(ctx, ownerID, id, func(c *Contract) error {
		if req.EmployeeID != nil {
			employeeID, err := uuid.Parse(*req.EmployeeID)
			if err != nil {
				return contracterrors.ErrEmployeeNotOwned
			}
			c.EmployeeID = employeeID
		}
		if req.StartDate != nil {
			start, err := time.Parse(dateLayout, *req.StartDate)
			if err != nil {
				return contracterrors.ErrInvalidStartDate
			}
			c.StartDate = start
		}
		if req.EndDate != nil {
			end, err := parseOptionalDate(*req.EndDate)
			if err != nil {
				return contracterrors.ErrInvalidEndDate
			}
			c.EndDate = end
		}
		if req.WeeklyHours != nil {
			c.WeeklyHours = roundHours(*req.WeeklyHours)
		}
		if req.WorkingDays != nil {
			c.WorkingDays = *req.WorkingDays
		}
		if req.ScheduleType != nil {
			c.ScheduleType = ScheduleType(*req.ScheduleType)
		}
		if req.BaseSalary != nil {
			c.BaseSalary = *req.BaseSalary
		}
		if req.MealBreakCountsAsWork != nil {
			c.MealBreakCountsAsWork = *req.MealBreakCountsAsWork
		}
		return ValidateSchedule(c)
	})
}

func (s *service) save(ctx context.Context, ownerID, id string, apply func(*Contract) error) (ContractResponse, error) {
	s.logger.Debug("update contract requested",
		zap.String("owner_id", ownerID),
		zap.String("contract_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return ContractResponse{}, contracterrors.ErrContractNotFound
	}

	var updated *Contract
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		c, err := qtx.FindByIDAndOwner(ctx, ownerID, id)
		if err != nil {
			return MapRepositoryError(err)
		}
		previousEmployee := c.EmployeeID

		if err := apply(c); err != nil {
			return err
		}
		if c.EmployeeID != previousEmployee {
			if err := s.checkEmployee(ctx, qtx, ownerID, c); err != nil {
				return err
			}
		}

		c.Employee = nil
		if err := qtx.Update(ctx, c); err != nil {
			return MapRepositoryError(err)
		}

		updated, err = qtx.FindByIDAndOwner(ctx, ownerID, id)
		return MapRepositoryError(err)
	})
	if err != nil {
		s.logger.Warn("update contract failed", zap.String("contract_id", id), zap.Error(err))
		return ContractResponse{}, err
	}

	s.logger.Info("update contract success", zap.String("contract_id", id))
	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete contract requested",
		zap.String("owner_id", ownerID),
		zap.String("contract_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return contracterrors.ErrContractNotFound
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		c, err := qtx.FindByIDAndOwner(ctx, ownerID, id)
		if err != nil {
			return MapRepositoryError(err)
		}
		if err := qtx.Delete(ctx, ownerID, id); err != nil {
			return MapRepositoryError(err)
		}

		return s.enqueue(ctx, tx, events.ContractDeleted, ownerID, c)
	})
	if err != nil {
		s.logger.Warn("delete contract failed", zap.String("contract_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete contract success", zap.String("request_id", rid), zap.String("contract_id", id))
	return nil
}

// checkEmployee enforces that the employee is in the caller's closure and
// has no other contract.
func (s *service) checkEmployee(ctx context.Context, repo Repository, ownerID string, c *Contract) error {
	employeeID := c.EmployeeID.String()

	owned, err := repo.EmployeeOwnedBy(ctx, ownerID, employeeID)
	if err != nil {
		return err
	}
	if !owned {
		s.logger.Warn("contract employee outside owner scope",
			zap.String("owner_id", ownerID),
			zap.String("employee_id", employeeID),
		)
		return contracterrors.ErrEmployeeNotOwned
	}

	exists, err := repo.ExistsForEmployee(ctx, employeeID, c.ID.String())
	if err != nil {
		return err
	}
	if exists {
		return contracterrors.ErrContractAlreadyExists
	}
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, eventType, ownerID string, c *Contract) error {
	if s.outbox == nil {
		return nil
	}
	evt := events.LifecycleEvent{
		EventType:     eventType,
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: events.AggregateContract,
		AggregateID:   c.ID.String(),
		OwnerID:       ownerID,
	}
	if c.Employee != nil {
		evt.CompanyID = c.Employee.CompanyID.String()
	}
	return kafka.EnqueueLifecycle(ctx, s.outbox.WithTx(tx), evt)
}

// applyFull copies every field of a create/PUT body onto c, filling the
// defaults and checking the schedule rules.
func applyFull(c *Contract, req CreateContractRequest) error {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return contracterrors.ErrEmployeeNotOwned
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return contracterrors.ErrInvalidStartDate
	}
	var end *time.Time
	if req.EndDate != nil {
		if end, err = parseOptionalDate(*req.EndDate); err != nil {
			return contracterrors.ErrInvalidEndDate
		}
	}

	hours := DefaultWeeklyHours(start)
	if req.WeeklyHours != nil {
		hours = *req.WeeklyHours
	}
	days := defaultWorkingDays
	if req.WorkingDays != nil {
		days = *req.WorkingDays
	}
	schedule := ScheduleType(req.ScheduleType)
	if schedule == "" {
		schedule = ScheduleOrdinary
	}

	c.EmployeeID = employeeID
	c.WeeklyHours = roundHours(hours)
	c.WorkingDays = days
	c.ScheduleType = schedule
	if req.BaseSalary != nil {
		c.BaseSalary = *req.BaseSalary
	}
	c.MealBreakCountsAsWork = req.MealBreakCountsAsWork
	c.StartDate = start
	c.EndDate = end

	return ValidateSchedule(c)
}

// DefaultWeeklyHours is 44 capped by the legal limit in force on start.
func DefaultWeeklyHours(start time.Time) float64 {
	return math.Min(defaultWeeklyHours, LegalWeeklyLimit(start).InexactFloat64())
}

func roundHours(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(1)
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func mapToResponse(c Contract) ContractResponse {
	hours, _ := c.WeeklyHours.Float64()
	limit, _ := LegalWeeklyLimit(c.StartDate).Float64()

	resp := ContractResponse{
		ID:                    c.ID.String(),
		EmployeeID:            c.EmployeeID.String(),
		WeeklyHours:           hours,
		WorkingDays:           c.WorkingDays,
		ScheduleType:          string(c.ScheduleType),
		ScheduleLabel:         c.ScheduleType.Label(),
		BaseSalary:            c.BaseSalary,
		MealBreakCountsAsWork: c.MealBreakCountsAsWork,
		StartDate:             c.StartDate.Format(dateLayout),
		EndDate:               formatDatePtr(c.EndDate),
		LegalWeeklyLimit:      limit,
	}
	if e := c.Employee; e != nil {
		resp.EmployeeName = e.FullName()
		resp.EmployeeTaxID = e.TaxID
		resp.CompanyID = e.CompanyID.String()
	}
	return resp
}
