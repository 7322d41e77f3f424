package auth

import (
	"context"
	"errors"
	"jornada40/internal/company"
	"jornada40/internal/customer"
	"jornada40/internal/messaging/kafka"
	"jornada40/internal/plan"
	"jornada40/internal/shared/contextutil"
	"jornada40/internal/shared/rut"
	"strings"

	autherrors "jornada40/internal/auth/errors"
	"jornada40/internal/auth/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

// Deps groups the collaborators signup writes through.
type Deps struct {
	DB        *gorm.DB
	Users     Repository
	Customers customer.Repository
	Companies company.Repository
	Plans     plan.Service
	Outbox    kafka.OutboxRepository
	Tokens    *token.Manager
}

type service struct {
	db        *gorm.DB
	repo      Repository
	customers customer.Repository
	companies company.Repository
	plans     plan.Service
	outbox    kafka.OutboxRepository
	tokens    *token.Manager
	logger    *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:        deps.DB,
		repo:      deps.Users,
		customers: deps.Customers,
		companies: deps.Companies,
		plans:     deps.Plans,
		outbox:    deps.Outbox,
		tokens:    deps.Tokens,
		logger:    l,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := normalizeEmail(req.Email)

	taxID, err := rut.Normalize(req.TaxID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidTaxID
	}

	user := &User{ID: uuid.New(), Email: email, IsActive: true}
	cust := &customer.Customer{
		ID:              uuid.New(),
		UserID:          user.ID,
		CustomerType:    customer.CustomerType(req.CustomerType),
		TaxID:           taxID,
		FirstNames:      strings.TrimSpace(req.FirstNames),
		PaternalSurname: strings.TrimSpace(req.PaternalSurname),
		MaternalSurname: strings.TrimSpace(req.MaternalSurname),
		BusinessName:    strings.TrimSpace(req.BusinessName),
		Phone:           strings.TrimSpace(req.Phone),
		Address:         strings.TrimSpace(req.Address),
	}
	if err := customer.ValidateIdentity(cust); err != nil {
		return AuthResponse{}, err
	}

	p, err := s.plans.GetActiveByID(ctx, strings.TrimSpace(req.PlanID))
	if err != nil {
		return AuthResponse{}, err
	}
	cust.PlanID = p.ID

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.String("request_id", rid), zap.Error(err))
		return AuthResponse{}, err
	}
	user.Password = string(hashed)

	var companyID string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return autherrors.ErrEmailAlreadyRegistered
		}

		if err := qtx.Create(ctx, user); err != nil {
			return mapRepositoryError(err)
		}
		if err := s.customers.WithTx(tx).Create(ctx, cust); err != nil {
			return mapRepositoryError(err)
		}

		if cust.CustomerType != customer.CustomerLegalEntity {
			return nil
		}

		comp, err := company.NewCompany(user.ID, company.CreateCompanyRequest{
			LegalName: cust.BusinessName,
			TaxID:     taxID,
			Address:   cust.Address,
		})
		if err != nil {
			return err
		}
		if err := company.CreateInTx(ctx, s.companies.WithTx(tx), s.outbox, tx, comp); err != nil {
			return err
		}
		companyID = comp.ID.String()
		return nil
	})
	if err != nil {
		s.logger.Warn("register failed", zap.String("request_id", rid), zap.Error(err))
		return AuthResponse{}, err
	}

	s.logger.Info("user registered",
		zap.String("request_id", rid),
		zap.String("user_id", user.ID.String()),
		zap.String("plan_id", cust.PlanID),
		zap.String("customer_type", string(cust.CustomerType)),
	)

	return AuthResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		CustomerType: string(cust.CustomerType),
		DisplayName:  cust.DisplayName(),
		PlanID:       cust.PlanID,
		CompanyID:    companyID,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issuePair(ctx, user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	return s.issuePair(ctx, user)
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, autherrors.ErrUserNotFound
	}

	resp, err := s.buildResponse(ctx, user)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) issuePair(ctx context.Context, user *User) (string, string, AuthResponse, error) {
	access, err := s.tokens.Issue(user.ID.String(), token.KindAccess)
	if err != nil {
		s.logger.Error("issue access token failed", zap.Error(err))
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.tokens.Issue(user.ID.String(), token.KindRefresh)
	if err != nil {
		s.logger.Error("issue refresh token failed", zap.Error(err))
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	resp, err := s.buildResponse(ctx, user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return access, refresh, resp, nil
}

// buildResponse adds the billing profile when the user has one.
func (s *service) buildResponse(ctx context.Context, user *User) (AuthResponse, error) {
	resp := AuthResponse{ID: user.ID.String(), Email: user.Email}

	cust, err := s.customers.FindByUserID(ctx, user.ID.String())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return resp, nil
	}
	if err != nil {
		s.logger.Error("load customer profile failed", zap.String("user_id", resp.ID), zap.Error(err))
		return AuthResponse{}, err
	}

	resp.CustomerType = string(cust.CustomerType)
	resp.DisplayName = cust.DisplayName()
	resp.PlanID = cust.PlanID
	return resp, nil
}
