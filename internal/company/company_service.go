package company

import (
	"context"
	"jornada40/internal/employee"
	"jornada40/internal/events"
	"jornada40/internal/messaging/kafka"
	"jornada40/internal/shared/apperror"
	"jornada40/internal/shared/contextutil"
	"jornada40/internal/shared/rut"
	"time"

	companyerrors "jornada40/internal/company/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, ownerID string, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context, ownerID string) ([]CompanyResponse, error)
	GetByID(ctx context.Context, ownerID, id string) (CompanyResponse, error)
	Update(ctx context.Context, ownerID, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Patch(ctx context.Context, ownerID, id string, req PatchCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		logger: l,
	}
}

// NewCompany builds a company owned by ownerID from a create request,
// normalising the RUT. It is shared with signup.
func NewCompany(ownerID uuid.UUID, req CreateCompanyRequest) (*Company, error) {
	taxID, err := rut.Normalize(req.TaxID)
	if err != nil {
		return nil, companyerrors.ErrInvalidTaxID
	}

	return &Company{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		LegalName:      req.LegalName,
		TaxID:          taxID,
		Alias:          req.Alias,
		LineOfBusiness: req.LineOfBusiness,
		Address:        req.Address,
		Commune:        req.Commune,
		City:           req.City,
		Branch:         req.Branch,
	}, nil
}

// CreateInTx persists comp through repo (already bound to tx) and queues
// its lifecycle event when outbox is set.
func CreateInTx(ctx context.Context, repo Repository, outbox kafka.OutboxRepository, tx *gorm.DB, comp *Company) error {
	exists, err := repo.ExistsByOwner(ctx, comp.OwnerID.String())
	if err != nil {
		return err
	}
	if exists {
		return companyerrors.ErrOwnerAlreadyHasCompany
	}

	if err := repo.Create(ctx, comp); err != nil {
		return mapRepositoryError(err)
	}

	if outbox == nil {
		return nil
	}
	return kafka.EnqueueLifecycle(ctx, outbox.WithTx(tx), events.LifecycleEvent{
		EventType:     events.CompanyCreated,
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: events.AggregateCompany,
		AggregateID:   comp.ID.String(),
		OwnerID:       comp.OwnerID.String(),
		CompanyID:     comp.ID.String(),
	})
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateCompanyRequest) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create company requested",
		zap.String("request_id", rid),
		zap.String("owner_id", ownerID),
	)

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return CompanyResponse{}, apperror.ErrUnauthorized
	}

	comp, err := NewCompany(ownerUUID, req)
	if err != nil {
		s.logger.Warn("create company invalid rut", zap.String("tax_id", req.TaxID))
		return CompanyResponse{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return CreateInTx(ctx, s.repo.WithTx(tx), s.outbox, tx, comp)
	})
	if err != nil {
		s.logger.Error("create company failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, err
	}

	s.invalidateOptions(ctx, ownerID)
	s.logger.Info("create company success",
		zap.String("request_id", rid),
		zap.String("company_id", comp.ID.String()),
	)

	return mapToResponse(*comp), nil
}

func (s *service) GetAll(ctx context.Context, ownerID string) ([]CompanyResponse, error) {
	s.logger.Debug("get all companies requested", zap.String("owner_id", ownerID))

	companies, err := s.repo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("get all companies failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, ownerID, id string) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrCompanyNotFound
	}

	comp, err := s.repo.FindByIDAndOwner(ctx, ownerID, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*comp), nil
}

func (s *service) Update(ctx context.Context, ownerID, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	return s.save(ctx, ownerID, id, func(comp *Company) error {
		taxID, err := rut.Normalize(req.TaxID)
		if err != nil {
			return companyerrors.ErrInvalidTaxID
		}
		comp.LegalName = req.LegalName
		comp.TaxID = taxID
		comp.Alias = req.Alias
		comp.LineOfBusiness = req.LineOfBusiness
		comp.Address = req.Address
		comp.Commune = req.Commune
		comp.City = req.City
		comp.Branch = req.Branch
		return nil
	})
}

func (s *service) Patch(ctx context.Context, ownerID, id string, req PatchCompanyRequest) (CompanyResponse, error) {
	return s.save(ctx, ownerID, id, func(comp *Company) error {
		if req.TaxID != nil {
			taxID, err := rut.Normalize(*req.TaxID)
			if err != nil {
				return companyerrors.ErrInvalidTaxID
			}
			comp.TaxID = taxID
		}
		setIfPresent(&comp.LegalName, req.LegalName)
		setIfPresent(&comp.Alias, req.Alias)
		setIfPresent(&comp.LineOfBusiness, req.LineOfBusiness)
		setIfPresent(&comp.Address, req.Address)
		setIfPresent(&comp.Commune, req.Commune)
		setIfPresent(&comp.City, req.City)
		setIfPresent(&comp.Branch, req.Branch)
		return nil
	})
}

func (s *service) save(ctx context.Context, ownerID, id string, apply func(*Company) error) (CompanyResponse, error) {
	s.logger.Debug("update company requested",
		zap.String("owner_id", ownerID),
		zap.String("company_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrCompanyNotFound
	}

	var updated Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		comp, err := qtx.FindByIDAndOwner(ctx, ownerID, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if err := apply(comp); err != nil {
			return err
		}
		if err := qtx.Update(ctx, comp); err != nil {
			return mapRepositoryError(err)
		}

		updated = *comp
		return nil
	})
	if err != nil {
		s.logger.Warn("update company failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, err
	}

	s.invalidateOptions(ctx, ownerID)
	s.logger.Info("update company success", zap.String("company_id", id))

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete company requested",
		zap.String("owner_id", ownerID),
		zap.String("company_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return companyerrors.ErrCompanyNotFound
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, ownerID, id); err != nil {
			return mapRepositoryError(err)
		}

		if s.outbox == nil {
			return nil
		}
		return kafka.EnqueueLifecycle(ctx, s.outbox.WithTx(tx), events.LifecycleEvent{
			EventType:     events.CompanyDeleted,
			RequestID:     rid,
			AggregateType: events.AggregateCompany,
			AggregateID:   id,
			OwnerID:       ownerID,
			CompanyID:     id,
		})
	})
	if err != nil {
		s.logger.Warn("delete company failed", zap.String("company_id", id), zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, ownerID)
	s.logger.Info("delete company success", zap.String("request_id", rid), zap.String("company_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, ownerID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := employee.GetEmployeeOptionsKey(ownerID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID.String(),
		OwnerID:        c.OwnerID.String(),
		LegalName:      c.LegalName,
		TaxID:          c.TaxID,
		Alias:          c.Alias,
		LineOfBusiness: c.LineOfBusiness,
		Address:        c.Address,
		Commune:        c.Commune,
		City:           c.City,
		Branch:         c.Branch,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      c.UpdatedAt.Format(time.RFC3339),
	}
}
