package controllers

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ClinicController struct {
	Log            *zap.Logger
	ClinicUsecase  contracts.ClinicUsecase
	InternalConfig *config.InternalConfig
}

func NewClinicController(logger *zap.Logger, clinicUsecase contracts.ClinicUsecase, internalConfig *config.InternalConfig) *ClinicController {
	return &ClinicController{
		Log:            logger,
		ClinicUsecase:  clinicUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *ClinicController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request := &requests.SearchClinics{
		Query:      strings.TrimSpace(query.Get(constvars.URLQueryParamSearch)),
		City:       strings.TrimSpace(query.Get(constvars.URLQueryParamCity)),
		State:      strings.TrimSpace(query.Get(constvars.URLQueryParamState)),
		Specialty:  strings.TrimSpace(query.Get(constvars.URLQueryParamSpecialty)),
		MinPrice:   query.Get(constvars.URLQueryParamMinPrice),
		MaxPrice:   query.Get(constvars.URLQueryParamMaxPrice),
		Pagination: utils.BuildPaginationRequest(r),
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	clinics, total, err := ctrl.ClinicUsecase.Search(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, request.Page, request.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetClinicsSuccessMessage, pagination, clinics)
}

func (ctrl *ClinicController) FindByID(w http.ResponseWriter, r *http.Request) {
	clinicID := chi.URLParam(r, constvars.URLParamClinicID)
	if err := utils.ValidateUrlParam(clinicID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamClinicID))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	clinic, err := ctrl.ClinicUsecase.FindByID(ctx, clinicID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetClinicSuccessMessage, clinic)
}

func (ctrl *ClinicController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	request := &requests.GetAvailability{
		ClinicID: chi.URLParam(r, constvars.URLParamClinicID),
		Date:     r.URL.Query().Get(constvars.URLQueryParamDate),
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.ClinicUsecase.GetAvailability(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, response)
}

func (ctrl *ClinicController) FindAvailabilityWindows(w http.ResponseWriter, r *http.Request) {
	clinicID := chi.URLParam(r, constvars.URLParamClinicID)
	if err := utils.ValidateUrlParam(clinicID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamClinicID))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	windows, err := ctrl.ClinicUsecase.FindAvailabilityWindows(ctx, clinicID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilityWindowsSuccessMessage, windows)
}
