package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"jornada40/internal/events"
	"jornada40/internal/messaging/kafka"
	"jornada40/internal/shared/apperror"
	"jornada40/internal/shared/contextutil"
	"jornada40/internal/shared/counter"
	"jornada40/internal/shared/rut"
	"net/http"
	"time"

	employeeerrors "jornada40/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	employeeOptionsTTL       = time.Hour
	dateLayout               = "2006-01-02"
)

func GetEmployeeOptionsKey(ownerID string) string {
	return EmployeeOptionsKeyPrefix + ownerID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, ownerID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, ownerID string, filter EmployeeFilter) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, ownerID string) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, ownerID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, ownerID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Patch(ctx context.Context, ownerID, id string, req PatchEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
	Export(ctx context.Context, ownerID string) ([]byte, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("owner_id", ownerID),
		zap.String("company_id", req.CompanyID),
	)

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrCompanyNotOwned
	}

	empl := &Employee{
		ID:        uuid.New(),
		CompanyID: companyID,
		IsActive:  true,
	}
	if err := applyFull(empl, req); err != nil {
		s.logger.Warn("create employee invalid input", zap.Error(err))
		return EmployeeResponse{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := s.checkCompany(ctx, qtx, ownerID, empl.CompanyID.String()); err != nil {
			return err
		}
		if err := s.checkPlanLimit(ctx, qtx, ownerID); err != nil {
			return err
		}
		if err := checkTaxID(ctx, qtx, empl, ""); err != nil {
			return err
		}

		if empl.EmployeeNumber == "" {
			nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, empl.CompanyID.String(), counter.CounterEmployeeNumber)
			if err != nil {
				s.logger.Error("create employee generate number failed", zap.Error(err))
				return err
			}
			empl.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
		}

		if err := qtx.Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		return s.enqueue(ctx, tx, events.EmployeeCreated, ownerID, empl)
	})
	if err != nil {
		s.logger.Warn("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, ownerID)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, ownerID string, filter EmployeeFilter) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested",
		zap.String("owner_id", ownerID),
		zap.String("company_id", filter.CompanyID),
	)

	if filter.CompanyID != "" {
		if _, err := uuid.Parse(filter.CompanyID); err != nil {
			return []EmployeeResponse{}, nil
		}
	}

	empls, err := s.repo.FindAllByOwner(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, ownerID string) ([]EmployeeOptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey(ownerID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByOwner(ctx, ownerID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{
				ID:        e.ID.String(),
				FullName:  e.FullName(),
				TaxID:     e.TaxID,
				CompanyID: e.CompanyID.String(),
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, employeeOptionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, ownerID, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("owner_id", ownerID),
		zap.String("employee_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByIDAndOwner(ctx, ownerID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, ownerID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	return s.save(ctx, ownerID, id, func(empl *Employee) error {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			return employeeerrors.ErrCompanyNotOwned
		}
		empl.CompanyID = companyID

		number := empl.EmployeeNumber
		if err := applyFull(empl, req); err != nil {
			return err
		}
		if empl.EmployeeNumber == "" {
			empl.EmployeeNumber = number
		}
		return nil
	})
}

func (s *service) Patch(ctx context.Context, ownerID, id string, req PatchEmployeeRequest) (EmployeeResponse, error) {
	return s.save(ctx, ownerID, id, func(empl *Employee) error {
		if req.CompanyID != nil {
			companyID, err := uuid.Parse(*req.CompanyID)
			if err != nil {
				return employeeerrors.ErrCompanyNotOwned
			}
			empl.CompanyID = companyID
		}
		if req.TaxID != nil {
			taxID, err := rut.Normalize(*req.TaxID)
			if err != nil {
				return employeeerrors.ErrInvalidTaxID
			}
			empl.TaxID = taxID
		}
		if req.BirthDate != nil {
			birth, err := parseOptionalDate(*req.BirthDate)
			if err != nil {
				return employeeerrors.ErrInvalidBirthDate
			}
			empl.BirthDate = birth
		}
		if req.HireDate != nil {
			hire, err := time.Parse(dateLayout, *req.HireDate)
			if err != nil {
				return employeeerrors.ErrInvalidHireDate
			}
			empl.HireDate = hire
		}

		setIfPresent(&empl.EmployeeNumber, req.EmployeeNumber)
		setIfPresent(&empl.FirstNames, req.FirstNames)
		setIfPresent(&empl.LastNames, req.LastNames)
		setIfPresent(&empl.Email, req.Email)
		setIfPresent(&empl.Phone, req.Phone)
		setIfPresent(&empl.MaritalStatus, req.MaritalStatus)
		setIfPresent(&empl.Nationality, req.Nationality)
		setIfPresent(&empl.Role, req.Role)
		setIfPresent(&empl.Department, req.Department)
		setIfPresent(&empl.Branch, req.Branch)
		setIfPresent(&empl.PensionFund, req.PensionFund)
		if req.Sex != nil {
			empl.Sex = Sex(*req.Sex)
		}
		if req.WorkModality != nil {
			empl.WorkModality = WorkModality(*req.WorkModality)
		}
		if req.HealthSystem != nil {
			empl.HealthSystem = HealthSystem(*req.HealthSystem)
		}
		if req.BaseSalary != nil {
			empl.BaseSalary = *req.BaseSalary
		}
		if req.IsActive != nil {
			empl.IsActive = *req.IsActive
		}
		return nil
	})
}

func (s *service) save(ctx context.Context, ownerID, id string, apply func(*Employee) error) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("owner_id", ownerID),
		zap.String("employee_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	var updated Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByIDAndOwner(ctx, ownerID, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		previousCompany := empl.CompanyID

		if err := apply(empl); err != nil {
			return err
		}
		if empl.CompanyID != previousCompany {
			if err := s.checkCompany(ctx, qtx, ownerID, empl.CompanyID.String()); err != nil {
				return err
			}
		}
		if err := checkTaxID(ctx, qtx, empl, id); err != nil {
			return err
		}

		if err := qtx.Update(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		updated = *empl
		return nil
	})
	if err != nil {
		s.logger.Warn("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, ownerID)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("owner_id", ownerID),
		zap.String("employee_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		empl, err := qtx.FindByIDAndOwner(ctx, ownerID, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if err := qtx.Delete(ctx, ownerID, id); err != nil {
			return mapRepositoryError(err)
		}

		return s.enqueue(ctx, tx, events.EmployeeDeleted, ownerID, empl)
	})
	if err != nil {
		s.logger.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, ownerID)
	s.logger.Info("delete employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return nil
}

func (s *service) Export(ctx context.Context, ownerID string) ([]byte, error) {
	s.logger.Debug("export employees requested", zap.String("owner_id", ownerID))

	empls, err := s.repo.FindAllByOwner(ctx, ownerID, EmployeeFilter{})
	if err != nil {
		s.logger.Error("export employees fetch failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	data, err := buildRoster(empls)
	if err != nil {
		s.logger.Error("export employees write failed", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to build employee roster", http.StatusInternalServerError)
	}

	s.logger.Info("export employees success", zap.Int("rows", len(empls)))
	return data, nil
}

func (s *service) checkCompany(ctx context.Context, repo Repository, ownerID, companyID string) error {
	owned, err := repo.CompanyOwnedBy(ctx, ownerID, companyID)
	if err != nil {
		return err
	}
	if !owned {
		s.logger.Warn("employee company outside owner scope",
			zap.String("owner_id", ownerID),
			zap.String("company_id", companyID),
		)
		return employeeerrors.ErrCompanyNotOwned
	}
	return nil
}

func (s *service) checkPlanLimit(ctx context.Context, repo Repository, ownerID string) error {
	limit, found, err := repo.EmployeeLimit(ctx, ownerID)
	if err != nil || !found {
		return err
	}

	count, err := repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if count >= int64(limit) {
		s.logger.Warn("employee plan limit reached",
			zap.String("owner_id", ownerID),
			zap.Int("limit", limit),
		)
		return employeeerrors.ErrPlanEmployeeLimit
	}
	return nil
}

func checkTaxID(ctx context.Context, repo Repository, empl *Employee, excludeID string) error {
	taken, err := repo.TaxIDTaken(ctx, empl.CompanyID.String(), empl.TaxID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return employeeerrors.ErrTaxIDAlreadyExists
	}
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, eventType, ownerID string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}
	return kafka.EnqueueLifecycle(ctx, s.outbox.WithTx(tx), events.LifecycleEvent{
		EventType:     eventType,
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: events.AggregateEmployee,
		AggregateID:   empl.ID.String(),
		OwnerID:       ownerID,
		CompanyID:     empl.CompanyID.String(),
	})
}

func (s *service) invalidateOptions(ctx context.Context, ownerID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(ownerID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

// applyFull copies every editable field of a create/PUT body onto empl.
func applyFull(empl *Employee, req CreateEmployeeRequest) error {
	taxID, err := rut.Normalize(req.TaxID)
	if err != nil {
		return employeeerrors.ErrInvalidTaxID
	}
	hire, err := time.Parse(dateLayout, req.HireDate)
	if err != nil {
		return employeeerrors.ErrInvalidHireDate
	}
	birth, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		return employeeerrors.ErrInvalidBirthDate
	}

	empl.EmployeeNumber = req.EmployeeNumber
	empl.TaxID = taxID
	empl.FirstNames = req.FirstNames
	empl.LastNames = req.LastNames
	empl.Email = req.Email
	empl.Phone = req.Phone
	empl.BirthDate = birth
	empl.Sex = Sex(req.Sex)
	empl.MaritalStatus = req.MaritalStatus
	empl.Nationality = req.Nationality
	empl.Role = req.Role
	empl.Department = req.Department
	empl.Branch = req.Branch
	empl.WorkModality = WorkModality(req.WorkModality)
	if empl.WorkModality == "" {
		empl.WorkModality = WorkModalityOnSite
	}
	empl.BaseSalary = req.BaseSalary
	empl.HealthSystem = HealthSystem(req.HealthSystem)
	empl.PensionFund = req.PensionFund
	empl.HireDate = hire
	if req.IsActive != nil {
		empl.IsActive = *req.IsActive
	}
	return nil
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

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		CompanyID:      empl.CompanyID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		TaxID:          empl.TaxID,
		FirstNames:     empl.FirstNames,
		LastNames:      empl.LastNames,
		FullName:       empl.FullName(),
		Email:          empl.Email,
		Phone:          empl.Phone,
		BirthDate:      formatDatePtr(empl.BirthDate),
		Sex:            string(empl.Sex),
		MaritalStatus:  empl.MaritalStatus,
		Nationality:    empl.Nationality,
		Role:           empl.Role,
		Department:     empl.Department,
		Branch:         empl.Branch,
		WorkModality:   string(empl.WorkModality),
		BaseSalary:     empl.BaseSalary,
		HealthSystem:   string(empl.HealthSystem),
		PensionFund:    empl.PensionFund,
		HireDate:       empl.HireDate.Format(dateLayout),
		IsActive:       empl.IsActive,
	}

	if c := empl.Contract; c != nil {
		hours, _ := c.WeeklyHours.Float64()
		resp.Contract = &EmployeeContractResponse{
			ID:           c.ID.String(),
			ScheduleType: c.ScheduleType,
			WeeklyHours:  hours,
			WorkingDays:  c.WorkingDays,
			StartDate:    c.StartDate.Format(dateLayout),
			EndDate:      formatDatePtr(c.EndDate),
		}
	}

	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
