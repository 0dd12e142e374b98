package controllers

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
	InternalConfig *config.InternalConfig
}

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase, internalConfig *config.InternalConfig) *BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
		InternalConfig: internalConfig,
	}
}

// draftTarget extracts the session and clinic every draft route works on.
func (ctrl *BookingController) draftTarget(w http.ResponseWriter, r *http.Request) (*models.Session, string, bool) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return nil, "", false
	}

	clinicID := chi.URLParam(r, constvars.URLParamClinicID)
	if err := utils.ValidateUrlParam(clinicID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamClinicID))
		return nil, "", false
	}
	return session, clinicID, true
}

func (ctrl *BookingController) GetDraft(w http.ResponseWriter, r *http.Request) {
	session, clinicID, ok := ctrl.draftTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	draft, err := ctrl.BookingUsecase.GetDraft(ctx, session, clinicID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDraftSuccessMessage, draft)
}

func (ctrl *BookingController) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	session, clinicID, ok := ctrl.draftTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	if err := ctrl.BookingUsecase.DiscardDraft(ctx, session, clinicID); err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteDraftSuccessMessage, nil)
}

// SetDate answers with the draft still loading when availability does not
// arrive before the request deadline.
func (ctrl *BookingController) SetDate(w http.ResponseWriter, r *http.Request) {
	session, clinicID, ok := ctrl.draftTarget(w, r)
	if !ok {
		return
	}

	request := new(requests.SetDraftDate)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	draft, err := ctrl.BookingUsecase.SetDate(ctx, session, clinicID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDraftSuccessMessage, draft)
}

func (ctrl *BookingController) ToggleTime(w http.ResponseWriter, r *http.Request) {
	session, clinicID, ok := ctrl.draftTarget(w, r)
	if !ok {
		return
	}

	clock := chi.URLParam(r, constvars.URLParamTime)
	if !utils.IsValidClock(clock) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidTime(errors.New("time must be HH:MM"), clock))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	draft, err := ctrl.BookingUsecase.ToggleTime(ctx, session, clinicID, clock)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDraftSuccessMessage, draft)
}

func (ctrl *BookingController) SetNotes(w http.ResponseWriter, r *http.Request) {
	session, clinicID, ok := ctrl.draftTarget(w, r)
	if !ok {
		return
	}

	request := new(requests.SetDraftNotes)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	draft, err := ctrl.BookingUsecase.SetNotes(ctx, session, clinicID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDraftSuccessMessage, draft)
}

func (ctrl *BookingController) SetTermsAccepted(w http.ResponseWriter, r *http.Request) {
	session, clinicID, ok := ctrl.draftTarget(w, r)
	if !ok {
		return
	}

	request := new(requests.SetDraftTerms)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	draft, err := ctrl.BookingUsecase.SetTermsAccepted(ctx, session, clinicID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDraftSuccessMessage, draft)
}

func (ctrl *BookingController) Submit(w http.ResponseWriter, r *http.Request) {
	session, clinicID, ok := ctrl.draftTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.BookingUsecase.Submit(ctx, session, clinicID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SubmitBookingSuccessMessage, response)
}
