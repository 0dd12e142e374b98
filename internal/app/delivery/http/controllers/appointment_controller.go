package controllers

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	InternalConfig     *config.InternalConfig
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, internalConfig *config.InternalConfig) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
		InternalConfig:     internalConfig,
	}
}

func buildStatsRequest(query url.Values) *requests.AppointmentStats {
	return &requests.AppointmentStats{
		ClinicID: query.Get(constvars.URLQueryParamClinic),
		UserID:   query.Get(constvars.URLQueryParamUser),
		DateFrom: query.Get(constvars.URLQueryParamDateFrom),
		DateTo:   query.Get(constvars.URLQueryParamDateTo),
		Period:   query.Get(constvars.URLQueryParamPeriod),
		Weekday:  query.Get(constvars.URLQueryParamWeekday),
		Status:   query.Get(constvars.URLQueryParamStatus),
	}
}

// Stats aggregates appointments for the clinic or user given in the query,
// defaulting to the clinics owned by the session user.
func (ctrl *AppointmentController) Stats(w http.ResponseWriter, r *http.Request) {
	ctrl.stats(w, r, buildStatsRequest(r.URL.Query()))
}

// ClinicStats aggregates appointments of the clinic in the path. The path
// clinic takes precedence over any clinic_id query value.
func (ctrl *AppointmentController) ClinicStats(w http.ResponseWriter, r *http.Request) {
	clinicID := chi.URLParam(r, constvars.URLParamClinicID)
	if err := utils.ValidateUrlParam(clinicID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamClinicID))
		return
	}

	request := buildStatsRequest(r.URL.Query())
	request.ClinicOverride = clinicID
	ctrl.stats(w, r, request)
}

func (ctrl *AppointmentController) stats(w http.ResponseWriter, r *http.Request, request *requests.AppointmentStats) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.Stats(ctx, session, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentStatsSuccessMessage, response)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.UpdateAppointmentStatus)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.AppointmentID = chi.URLParam(r, constvars.URLParamAppointmentID)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.UpdateStatus(ctx, session, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAppointmentStatusSuccess, response)
}

func (ctrl *AppointmentController) FindMine(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	query := r.URL.Query()
	request := &requests.MyAppointments{
		DateFrom: query.Get(constvars.URLQueryParamDateFrom),
		DateTo:   query.Get(constvars.URLQueryParamDateTo),
		Status:   query.Get(constvars.URLQueryParamStatus),
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.FindMine(ctx, session, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, appointments)
}
