package annex

import (
	"context"
	"errors"
	"jornada40/internal/contract"
	"jornada40/internal/shared/apperror"
	"net/http"

	annexerrors "jornada40/internal/annex/errors"
	contracterrors "jornada40/internal/contract/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Result is a rendered annex. Filename is empty for the HTML fallback.
type Result struct {
	ContentType string
	Filename    string
	Body        []byte
}

//go:generate mockgen -source=annex_service.go -destination=mock/annex_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, ownerID, contractID string) (Result, error)
}

type service struct {
	contracts  contract.Repository
	capability Capability
	logger     *zap.Logger
}

func NewService(contracts contract.Repository, capability Capability, logger ...*zap.Logger) Service {
	l := zap.L().Named("annex.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("annex.service")
	}
	return &service{
		contracts:  contracts,
		capability: capability,
		logger:     l,
	}
}

func (s *service) Generate(ctx context.Context, ownerID, contractID string) (Result, error) {
	s.logger.Debug("generate annex requested",
		zap.String("owner_id", ownerID),
		zap.String("contract_id", contractID),
		zap.String("engine", string(s.capability.Engine)),
	)
	if _, err := uuid.Parse(contractID); err != nil {
		return Result{}, contracterrors.ErrContractNotFound
	}

	c, err := s.contracts.FindByIDAndOwner(ctx, ownerID, contractID)
	if err != nil {
		if mapped := contract.MapRepositoryError(err); errors.Is(mapped, contracterrors.ErrContractNotFound) {
			s.logger.Warn("annex contract not found", zap.String("contract_id", contractID))
			return Result{}, mapped
		}
		s.logger.Error("annex contract lookup failed", zap.String("contract_id", contractID), zap.Error(err))
		return Result{}, apperror.Wrap(err, apperror.ErrInternal.Code, apperror.ErrInternal.Message, http.StatusInternalServerError)
	}

	doc := newDocument(c)
	html, err := renderHTML(doc)
	if err != nil {
		return Result{}, s.renderFailed(contractID, err)
	}

	if !s.capability.PDF {
		return Result{ContentType: ContentTypeHTML, Body: html}, nil
	}

	var pdf []byte
	switch s.capability.Engine {
	case EngineWkhtmltopdf:
		pdf, err = renderWkhtmltopdf(ctx, s.capability.Binary, html)
	default:
		pdf, err = renderBuiltinPDF(doc.Lines())
	}
	if err != nil {
		return Result{}, s.renderFailed(contractID, err)
	}

	s.logger.Info("generate annex success",
		zap.String("contract_id", contractID),
		zap.Int("bytes", len(pdf)),
	)
	return Result{
		ContentType: ContentTypePDF,
		Filename:    formatFilename(doc.EmployeeTaxID),
		Body:        pdf,
	}, nil
}

func (s *service) renderFailed(contractID string, err error) error {
	s.logger.Error("annex render failed",
		zap.String("contract_id", contractID),
		zap.String("engine", string(s.capability.Engine)),
		zap.Error(err),
	)
	return apperror.Wrap(err, annexerrors.ErrRenderFailed.Code, annexerrors.ErrRenderFailed.Message, http.StatusInternalServerError)
}
